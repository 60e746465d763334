package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishSerializesInOrder(t *testing.T) {
	b := NewBuilder().
		AddBackground(0, 0, 300, 200, 9270).
		AddAlphaRegion(10, 10, 280, 180).
		AddLabel(20, 20, 1152, "Ingots").
		AddHtml(20, 40, 200, 40, "<b>Iron</b>", true, false).
		AddButton(20, 100, 4005, 4007, 5).
		AddTextEntry(20, 140, 120, 20, 0, 2, "Hello")
	serial, strs := b.Finish()

	assert.Equal(t,
		"{ resizepic 0 0 9270 300 200 }"+
			"{ checkertrans 10 10 280 180 }"+
			"{ text 20 20 1152 0 }"+
			"{ htmlgump 20 40 200 40 1 1 0 }"+
			"{ button 20 100 4005 4007 1 0 5 }"+
			"{ textentry 20 140 120 20 0 2 2 }",
		serial)
	assert.Equal(t, []string{"Ingots", "<b>Iron</b>", "Hello"}, strs)
}

func TestFinishIsIdempotent(t *testing.T) {
	b := NewBuilder().AddLabel(0, 0, 0, "a").AddLabel(0, 20, 0, "a")
	s1, t1 := b.Finish()
	s2, t2 := b.Finish()
	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
	// Duplicates stay in reference order.
	assert.Equal(t, []string{"a", "a"}, t1)
}

func TestFlagsSerializeFirst(t *testing.T) {
	b := NewBuilder().AddImage(0, 0, 100).Closable(false).Movable(false)
	serial, _ := b.Finish()
	assert.Equal(t, "{ noclose }{ nomove }{ gumppic 0 0 100 }", serial)

	l, err := Parse(serial, nil)
	require.NoError(t, err)
	assert.Equal(t, Flags{NoClose: true, NoMove: true}, l.Flags)
}

func TestTooltipNeedsPrecedingPrimitive(t *testing.T) {
	b := NewBuilder()
	assert.ErrorIs(t, b.AddTooltip("nothing yet"), ErrDanglingTooltip)

	b.AddButton(0, 0, 1, 2, 1)
	require.NoError(t, b.AddTooltip("Cast"))
	require.NoError(t, b.AddTooltipLocalized(1011036))

	b.AddPage(1)
	assert.ErrorIs(t, b.AddTooltip("new page"), ErrDanglingTooltip)
	b.AddGroup(1)
	assert.ErrorIs(t, b.AddTooltipLocalized(5), ErrDanglingTooltip)
	b.AddImageHue(0, 0, 10, 33)
	assert.NoError(t, b.AddTooltip("ok"))
}

func TestTooltipRejectsDelimiters(t *testing.T) {
	b := NewBuilder().AddImage(0, 0, 1)
	assert.True(t, errors.Is(b.AddTooltip("a@b"), ErrTooltipText))
	assert.Equal(t, 1, b.Len())
}

func TestTooltipRejectsZeroLocaleKey(t *testing.T) {
	b := NewBuilder().AddImage(0, 0, 1)
	assert.ErrorIs(t, b.AddTooltipLocalized(0), ErrTooltipKey)
	assert.Equal(t, 1, b.Len())
	serial, _ := b.Finish()
	assert.NotContains(t, serial, "tooltip")
}

func TestRadioTakesCurrentGroup(t *testing.T) {
	b := NewBuilder().
		AddRadio(0, 0, 208, 209, true, 1).
		AddGroup(7).
		AddRadio(0, 20, 208, 209, false, 2).
		AddCheckBox(0, 40, 210, 211, true, 3)
	l := b.Layout()
	sw := l.Switches()
	require.Len(t, sw, 3)
	assert.Equal(t, Switch{ID: 1, Radio: true, Group: 0, Initial: true}, sw[1])
	assert.Equal(t, Switch{ID: 2, Radio: true, Group: 7}, sw[2])
	assert.Equal(t, Switch{ID: 3, Initial: true}, sw[3])
}

func TestParseRoundTrip(t *testing.T) {
	b := NewBuilder().
		AddPage(0).
		AddBackground(-5, 10, 400, 300, 9200).
		AddHtmlLocalized(10, 10, 100, 20, 1044010, false, true).
		AddPageButton(10, 40, 4005, 4007, 2).
		AddItemImage(10, 60, 0x1BF2).
		AddItemImageHue(40, 60, 0x1BF2, 0x973).
		AddTiledImage(0, 0, 50, 50, 2624).
		AddCheckBox(10, 90, 210, 211, false, 11).
		AddGroup(1).
		AddRadio(10, 110, 208, 209, true, 12)
	require.NoError(t, b.AddTooltip("Pick me"))
	b.AddPage(2).AddLabel(0, 0, 0, "second").AddTextEntry(0, 20, 100, 20, 0, 3, "")
	require.NoError(t, b.AddTooltipLocalized(textTooltipKey))

	want := b.Layout()
	got, err := Parse(want.Serial, want.Strings)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Contains("second"))
	require.Len(t, got.TextEntries(), 1)
	assert.Equal(t, 3, got.TextEntries()[0].ID)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		serial string
		strs   []string
	}{
		"garbage":        {"text 0 0 0 0", []string{"x"}},
		"unterminated":   {"{ text 0 0 0 0", []string{"x"}},
		"unknown":        {"{ frobnicate 1 }", nil},
		"arity":          {"{ gumppic 1 2 }", nil},
		"range":          {"{ gumppic 1 2 -3 }", nil},
		"missing string": {"{ text 0 0 0 1 }", []string{"x"}},
		"unused string":  {"{ gumppic 1 2 3 }", []string{"x"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.serial, tc.strs)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}

	_, err := Parse("{ page 1 }{ tooltip 5 }", nil)
	assert.ErrorIs(t, err, ErrDanglingTooltip)
}

func TestCacheReturnsIndependentCopies(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)
	serial, strs := NewBuilder().AddLabel(1, 2, 3, "hi").AddButton(0, 0, 1, 2, 7).Finish()

	a, err := c.Parse(serial, strs)
	require.NoError(t, err)
	a.Primitives[0] = Page{Index: 9}
	a.Strings[0] = "changed"

	b, err := c.Parse(serial, strs)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, Label{X: 1, Y: 2, Hue: 3, Text: "hi"}, b.Primitives[0])
	assert.Equal(t, []string{"hi"}, b.Strings)

	_, err = c.Parse("{ nonsense }", nil)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, 1, c.Len())

	_, err = NewCache(0)
	assert.Error(t, err)
}
