package layout

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildFrom drives a Builder from generated op codes. Tooltip ops the
// builder rejects are skipped, so the result is always an accepted sequence.
func buildFrom(ops []uint32, texts []string) *Builder {
	b := NewBuilder()
	text := func(i int) string {
		if len(texts) == 0 {
			return ""
		}
		return texts[i%len(texts)]
	}
	for i, op := range ops {
		x, y := int16(op>>8), int16(op>>16)
		w, h := uint16(op), uint16(op>>4)
		switch op % 17 {
		case 0:
			b.AddPage(uint16(op >> 24))
		case 1:
			b.AddGroup(uint16(op >> 20))
		case 2:
			b.AddBackground(x, y, w, h, op)
		case 3:
			b.AddAlphaRegion(x, y, w, h)
		case 4:
			b.AddLabel(x, y, uint16(op>>3), text(i))
		case 5:
			b.AddHtml(x, y, w, h, text(i), op&1 == 0, op&2 == 0)
		case 6:
			b.AddHtmlLocalized(x, y, w, h, op, op&1 == 1, op&2 == 2)
		case 7:
			b.AddButton(x, y, op, op+1, int(int32(op)))
		case 8:
			b.AddPageButton(x, y, op, op+1, uint16(op>>12))
		case 9:
			b.AddCheckBox(x, y, 210, 211, op&1 == 1, int(op>>1))
		case 10:
			b.AddRadio(x, y, 208, 209, op&1 == 1, int(op>>1))
		case 11:
			b.AddTextEntry(x, y, w, h, uint16(op>>5), int(op>>2), text(i))
		case 12:
			if op&1 == 1 {
				b.AddImageHue(x, y, op, uint16(op>>7))
			} else {
				b.AddImage(x, y, op)
			}
		case 13:
			if op&1 == 1 {
				b.AddItemImageHue(x, y, op, uint16(op>>7))
			} else {
				b.AddItemImage(x, y, op)
			}
		case 14:
			b.AddTiledImage(x, y, w, h, op)
		case 15:
			_ = b.AddTooltip(text(i))
		case 16:
			_ = b.AddTooltipLocalized(op)
		}
	}
	return b
}

func TestLayoutRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(Finish()) reproduces primitives and strings", prop.ForAll(
		func(ops []uint32, texts []string) bool {
			want := buildFrom(ops, texts).Layout()
			got, err := Parse(want.Serial, want.Strings)
			if err != nil {
				t.Logf("parse %q: %v", want.Serial, err)
				return false
			}
			return reflect.DeepEqual(want, got)
		},
		gen.SliceOf(gen.UInt32()),
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("string table holds one entry per reference", prop.ForAll(
		func(ops []uint32, texts []string) bool {
			l := buildFrom(ops, texts).Layout()
			refs := 0
			for _, p := range l.Primitives {
				switch p.(type) {
				case Label, Html, TextEntry:
					refs++
				}
			}
			return refs == len(l.Strings)
		},
		gen.SliceOf(gen.UInt32()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
