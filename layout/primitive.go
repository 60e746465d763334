package layout

// Primitive is one drawing element of a dialog layout. The set of
// implementations is closed; see the types below.
type Primitive interface {
	primitive()
}

// ButtonKind selects what a button does when pressed.
type ButtonKind uint8

const (
	// ButtonPage flips the dialog to Button.Page without a server round trip.
	ButtonPage ButtonKind = 0
	// ButtonReply closes the dialog and reports Button.ID.
	ButtonReply ButtonKind = 1
)

type Background struct {
	X, Y int16
	W, H uint16
	Art  uint32
}

type AlphaRegion struct {
	X, Y int16
	W, H uint16
}

type Label struct {
	X, Y int16
	Hue  uint16
	Text string
}

type Html struct {
	X, Y       int16
	W, H       uint16
	Text       string
	Background bool
	Scrollbar  bool
}

// HtmlLocalized draws a client locale string instead of literal text.
type HtmlLocalized struct {
	X, Y       int16
	W, H       uint16
	Key        uint32
	Background bool
	Scrollbar  bool
}

type Button struct {
	X, Y    int16
	Normal  uint32
	Pressed uint32
	ID      int
	Kind    ButtonKind
	Page    uint16
}

type CheckBox struct {
	X, Y      int16
	Unchecked uint32
	Checked   uint32
	Initial   bool
	ID        int
}

// Radio belongs to the group most recently opened with AddGroup; only one
// radio per group can be checked.
type Radio struct {
	X, Y      int16
	Unchecked uint32
	Checked   uint32
	Initial   bool
	ID        int
	Group     uint16
}

type TextEntry struct {
	X, Y    int16
	W, H    uint16
	Hue     uint16
	ID      int
	Initial string
}

type Image struct {
	X, Y int16
	Art  uint32
	Hue  uint16
	Hued bool
}

// ItemImage draws item (tile) art rather than gump art.
type ItemImage struct {
	X, Y    int16
	Graphic uint32
	Hue     uint16
	Hued    bool
}

type TiledImage struct {
	X, Y int16
	W, H uint16
	Art  uint32
}

// Tooltip attaches to the primitive added just before it. Exactly one of
// Text or Key is meaningful: a zero Key means Text is shown.
type Tooltip struct {
	Text string
	Key  uint32
}

// Page starts page Index. Page 0 is always visible.
type Page struct {
	Index uint16
}

// Group starts radio group Index for the radios that follow.
type Group struct {
	Index uint16
}

func (Background) primitive()    {}
func (AlphaRegion) primitive()   {}
func (Label) primitive()         {}
func (Html) primitive()          {}
func (HtmlLocalized) primitive() {}
func (Button) primitive()        {}
func (CheckBox) primitive()      {}
func (Radio) primitive()         {}
func (TextEntry) primitive()     {}
func (Image) primitive()         {}
func (ItemImage) primitive()     {}
func (TiledImage) primitive()    {}
func (Tooltip) primitive()       {}
func (Page) primitive()          {}
func (Group) primitive()         {}

// attachable reports whether a tooltip may follow p.
func attachable(p Primitive) bool {
	switch p.(type) {
	case Tooltip, Page, Group:
		return false
	}
	return true
}
