// Package layout builds gump layouts: an ordered list of drawing
// primitives plus the string table some of them index into.
package layout

import (
	"errors"
	"strings"
)

var (
	// ErrDanglingTooltip is returned when a tooltip has nothing on the
	// current page to attach to.
	ErrDanglingTooltip = errors.New("tooltip has no preceding primitive on this page")
	// ErrTooltipText is returned for tooltip text the host cannot carry.
	ErrTooltipText = errors.New("tooltip text must not contain '@', '{' or '}'")
	// ErrTooltipKey is returned for locale key 0, which marks a text tooltip.
	ErrTooltipKey = errors.New("tooltip locale key must not be 0")
)

// Flags are dialog-wide behaviors. The zero value is a normal dialog.
type Flags struct {
	NoClose   bool
	NoMove    bool
	NoDispose bool
	NoResize  bool
}

// Layout is a finished dialog description.
type Layout struct {
	Flags      Flags
	Primitives []Primitive
	Serial     string
	Strings    []string
}

// Builder accumulates primitives. Adds are chainable; only tooltips can
// fail. A Builder is not safe for concurrent use.
type Builder struct {
	flags      Flags
	prims      []Primitive
	page       uint16
	group      uint16
	attachable bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) SetFlags(f Flags) *Builder {
	b.flags = f
	return b
}

func (b *Builder) Closable(v bool) *Builder   { b.flags.NoClose = !v; return b }
func (b *Builder) Movable(v bool) *Builder    { b.flags.NoMove = !v; return b }
func (b *Builder) Disposable(v bool) *Builder { b.flags.NoDispose = !v; return b }
func (b *Builder) Resizable(v bool) *Builder  { b.flags.NoResize = !v; return b }

// CurrentPage is the page primitives are being added to.
func (b *Builder) CurrentPage() uint16 { return b.page }

// Len is the number of primitives added so far, markers included.
func (b *Builder) Len() int { return len(b.prims) }

func (b *Builder) add(p Primitive) *Builder {
	b.prims = append(b.prims, p)
	if attachable(p) {
		b.attachable = true
	}
	return b
}

func (b *Builder) AddPage(n uint16) *Builder {
	b.page = n
	b.attachable = false
	b.prims = append(b.prims, Page{Index: n})
	return b
}

// AddGroup starts a new radio group; radios added after it share it.
func (b *Builder) AddGroup(n uint16) *Builder {
	b.group = n
	b.prims = append(b.prims, Group{Index: n})
	return b
}

func (b *Builder) AddBackground(x, y int16, w, h uint16, art uint32) *Builder {
	return b.add(Background{X: x, Y: y, W: w, H: h, Art: art})
}

func (b *Builder) AddAlphaRegion(x, y int16, w, h uint16) *Builder {
	return b.add(AlphaRegion{X: x, Y: y, W: w, H: h})
}

func (b *Builder) AddLabel(x, y int16, hue uint16, text string) *Builder {
	return b.add(Label{X: x, Y: y, Hue: hue, Text: text})
}

func (b *Builder) AddHtml(x, y int16, w, h uint16, text string, background, scrollbar bool) *Builder {
	return b.add(Html{X: x, Y: y, W: w, H: h, Text: text, Background: background, Scrollbar: scrollbar})
}

func (b *Builder) AddHtmlLocalized(x, y int16, w, h uint16, key uint32, background, scrollbar bool) *Builder {
	return b.add(HtmlLocalized{X: x, Y: y, W: w, H: h, Key: key, Background: background, Scrollbar: scrollbar})
}

// AddButton adds a reply button reporting id when pressed.
func (b *Builder) AddButton(x, y int16, normal, pressed uint32, id int) *Builder {
	return b.add(Button{X: x, Y: y, Normal: normal, Pressed: pressed, ID: id, Kind: ButtonReply})
}

// AddPageButton adds a button that flips to page without replying.
func (b *Builder) AddPageButton(x, y int16, normal, pressed uint32, page uint16) *Builder {
	return b.add(Button{X: x, Y: y, Normal: normal, Pressed: pressed, Kind: ButtonPage, Page: page})
}

func (b *Builder) AddCheckBox(x, y int16, unchecked, checked uint32, initial bool, id int) *Builder {
	return b.add(CheckBox{X: x, Y: y, Unchecked: unchecked, Checked: checked, Initial: initial, ID: id})
}

func (b *Builder) AddRadio(x, y int16, unchecked, checked uint32, initial bool, id int) *Builder {
	return b.add(Radio{X: x, Y: y, Unchecked: unchecked, Checked: checked, Initial: initial, ID: id, Group: b.group})
}

func (b *Builder) AddTextEntry(x, y int16, w, h uint16, hue uint16, id int, initial string) *Builder {
	return b.add(TextEntry{X: x, Y: y, W: w, H: h, Hue: hue, ID: id, Initial: initial})
}

func (b *Builder) AddImage(x, y int16, art uint32) *Builder {
	return b.add(Image{X: x, Y: y, Art: art})
}

func (b *Builder) AddImageHue(x, y int16, art uint32, hue uint16) *Builder {
	return b.add(Image{X: x, Y: y, Art: art, Hue: hue, Hued: true})
}

func (b *Builder) AddItemImage(x, y int16, graphic uint32) *Builder {
	return b.add(ItemImage{X: x, Y: y, Graphic: graphic})
}

func (b *Builder) AddItemImageHue(x, y int16, graphic uint32, hue uint16) *Builder {
	return b.add(ItemImage{X: x, Y: y, Graphic: graphic, Hue: hue, Hued: true})
}

func (b *Builder) AddTiledImage(x, y int16, w, h uint16, art uint32) *Builder {
	return b.add(TiledImage{X: x, Y: y, W: w, H: h, Art: art})
}

// AddTooltip attaches text to the most recently added primitive.
func (b *Builder) AddTooltip(text string) error {
	if strings.ContainsAny(text, "@{}") {
		return ErrTooltipText
	}
	return b.addTooltip(Tooltip{Text: text})
}

// AddTooltipLocalized attaches a client locale string.
func (b *Builder) AddTooltipLocalized(key uint32) error {
	if key == 0 {
		return ErrTooltipKey
	}
	return b.addTooltip(Tooltip{Key: key})
}

func (b *Builder) addTooltip(t Tooltip) error {
	if !b.attachable {
		return ErrDanglingTooltip
	}
	b.prims = append(b.prims, t)
	return nil
}

// Finish serializes what has been added so far. It does not reset the
// builder and returns the same result when called again.
func (b *Builder) Finish() (string, []string) {
	return encode(b.flags, b.prims)
}

// Layout returns the finished layout, primitives included.
func (b *Builder) Layout() Layout {
	serial, strs := b.Finish()
	prims := append([]Primitive(nil), b.prims...)
	return Layout{Flags: b.flags, Primitives: prims, Serial: serial, Strings: strs}
}

// Encoded returns the serialized layout and string table, encoding the
// primitives when the layout was assembled by hand.
func (l *Layout) Encoded() (string, []string) {
	if l.Serial == "" {
		return encode(l.Flags, l.Primitives)
	}
	return l.Serial, l.Strings
}

// TextEntries returns the text entries in layout order.
func (l *Layout) TextEntries() []TextEntry {
	var out []TextEntry
	for _, p := range l.Primitives {
		if te, ok := p.(TextEntry); ok {
			out = append(out, te)
		}
	}
	return out
}

// Switch describes a checkbox or radio.
type Switch struct {
	ID      int
	Radio   bool
	Group   uint16
	Initial bool
}

// Switches returns every checkbox and radio keyed by switch id. When an
// id is repeated the last one wins.
func (l *Layout) Switches() map[int]Switch {
	out := map[int]Switch{}
	for _, p := range l.Primitives {
		switch v := p.(type) {
		case CheckBox:
			out[v.ID] = Switch{ID: v.ID, Initial: v.Initial}
		case Radio:
			out[v.ID] = Switch{ID: v.ID, Radio: true, Group: v.Group, Initial: v.Initial}
		}
	}
	return out
}

// Contains reports whether s occurs in the string table.
func (l *Layout) Contains(s string) bool {
	for _, v := range l.Strings {
		if v == s {
			return true
		}
	}
	return false
}
