package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// textTooltipKey is the locale entry "~1_val~" the client expands to its
// argument; literal tooltip text rides on it.
const textTooltipKey = 1114778

// ErrMalformed wraps every parse failure.
var ErrMalformed = errors.New("malformed layout")

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}

func encode(flags Flags, prims []Primitive) (string, []string) {
	var sb strings.Builder
	var strs []string
	ref := func(s string) int {
		strs = append(strs, s)
		return len(strs) - 1
	}
	cmd := func(format string, args ...any) {
		sb.WriteString("{ ")
		fmt.Fprintf(&sb, format, args...)
		sb.WriteString(" }")
	}

	if flags.NoClose {
		cmd("noclose")
	}
	if flags.NoMove {
		cmd("nomove")
	}
	if flags.NoDispose {
		cmd("nodispose")
	}
	if flags.NoResize {
		cmd("noresize")
	}

	for _, p := range prims {
		switch v := p.(type) {
		case Page:
			cmd("page %d", v.Index)
		case Group:
			cmd("group %d", v.Index)
		case Background:
			cmd("resizepic %d %d %d %d %d", v.X, v.Y, v.Art, v.W, v.H)
		case AlphaRegion:
			cmd("checkertrans %d %d %d %d", v.X, v.Y, v.W, v.H)
		case Label:
			cmd("text %d %d %d %d", v.X, v.Y, v.Hue, ref(v.Text))
		case Html:
			cmd("htmlgump %d %d %d %d %d %d %d", v.X, v.Y, v.W, v.H, ref(v.Text), b2i(v.Background), b2i(v.Scrollbar))
		case HtmlLocalized:
			cmd("xmfhtmlgump %d %d %d %d %d %d %d", v.X, v.Y, v.W, v.H, v.Key, b2i(v.Background), b2i(v.Scrollbar))
		case Button:
			cmd("button %d %d %d %d %d %d %d", v.X, v.Y, v.Normal, v.Pressed, v.Kind, v.Page, v.ID)
		case CheckBox:
			cmd("checkbox %d %d %d %d %d %d", v.X, v.Y, v.Unchecked, v.Checked, b2i(v.Initial), v.ID)
		case Radio:
			cmd("radio %d %d %d %d %d %d", v.X, v.Y, v.Unchecked, v.Checked, b2i(v.Initial), v.ID)
		case TextEntry:
			cmd("textentry %d %d %d %d %d %d %d", v.X, v.Y, v.W, v.H, v.Hue, v.ID, ref(v.Initial))
		case Image:
			if v.Hued {
				cmd("gumppic %d %d %d hue=%d", v.X, v.Y, v.Art, v.Hue)
			} else {
				cmd("gumppic %d %d %d", v.X, v.Y, v.Art)
			}
		case ItemImage:
			if v.Hued {
				cmd("tilepichue %d %d %d %d", v.X, v.Y, v.Graphic, v.Hue)
			} else {
				cmd("tilepic %d %d %d", v.X, v.Y, v.Graphic)
			}
		case TiledImage:
			cmd("gumppictiled %d %d %d %d %d", v.X, v.Y, v.W, v.H, v.Art)
		case Tooltip:
			if v.Key == 0 {
				cmd("tooltip %d @%s@", textTooltipKey, v.Text)
			} else {
				cmd("tooltip %d", v.Key)
			}
		}
	}
	return sb.String(), strs
}

// Parse rebuilds a Layout from a serialized layout and its string table.
// It accepts what Finish produces.
func Parse(serial string, strs []string) (Layout, error) {
	l := Layout{Serial: serial, Strings: append([]string(nil), strs...)}
	p := &parser{strs: strs}
	rest := serial
	for {
		rest = strings.TrimLeft(rest, " \t\r\n")
		if rest == "" {
			break
		}
		if rest[0] != '{' {
			return Layout{}, fmt.Errorf("%w: expected '{' at %q", ErrMalformed, clip(rest))
		}
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return Layout{}, fmt.Errorf("%w: unterminated command %q", ErrMalformed, clip(rest))
		}
		body := strings.TrimSpace(rest[1:end])
		rest = rest[end+1:]
		if err := p.command(&l, body); err != nil {
			return Layout{}, err
		}
	}
	if p.used != len(strs) {
		return Layout{}, fmt.Errorf("%w: %d strings referenced, %d supplied", ErrMalformed, p.used, len(strs))
	}
	return l, nil
}

func clip(s string) string {
	if len(s) > 24 {
		return s[:24] + "..."
	}
	return s
}

type parser struct {
	strs       []string
	used       int
	group      uint16
	attachable bool
	err        error
}

func (p *parser) command(l *Layout, body string) error {
	var arg string
	hasArg := false
	if i := strings.IndexByte(body, '@'); i >= 0 {
		j := strings.LastIndexByte(body, '@')
		if j == i {
			return fmt.Errorf("%w: unbalanced '@' in %q", ErrMalformed, body)
		}
		arg = body[i+1 : j]
		hasArg = true
		body = strings.TrimSpace(body[:i])
	}
	f := strings.Fields(body)
	if len(f) == 0 {
		return fmt.Errorf("%w: empty command", ErrMalformed)
	}
	name, a := f[0], f[1:]
	r := &argReader{name: name, args: a}

	var prim Primitive
	switch name {
	case "noclose", "nomove", "nodispose", "noresize":
		if err := r.want(0); err != nil {
			return err
		}
		switch name {
		case "noclose":
			l.Flags.NoClose = true
		case "nomove":
			l.Flags.NoMove = true
		case "nodispose":
			l.Flags.NoDispose = true
		case "noresize":
			l.Flags.NoResize = true
		}
		return nil
	case "page":
		if err := r.want(1); err != nil {
			return err
		}
		prim = Page{Index: r.u16()}
		p.attachable = false
	case "group":
		if err := r.want(1); err != nil {
			return err
		}
		p.group = r.u16()
		prim = Group{Index: p.group}
	case "resizepic":
		if err := r.want(5); err != nil {
			return err
		}
		prim = Background{X: r.i16(), Y: r.i16(), Art: r.u32(), W: r.u16(), H: r.u16()}
	case "checkertrans":
		if err := r.want(4); err != nil {
			return err
		}
		prim = AlphaRegion{X: r.i16(), Y: r.i16(), W: r.u16(), H: r.u16()}
	case "text":
		if err := r.want(4); err != nil {
			return err
		}
		prim = Label{X: r.i16(), Y: r.i16(), Hue: r.u16(), Text: p.str(r)}
	case "htmlgump":
		if err := r.want(7); err != nil {
			return err
		}
		prim = Html{X: r.i16(), Y: r.i16(), W: r.u16(), H: r.u16(), Text: p.str(r), Background: r.flag(), Scrollbar: r.flag()}
	case "xmfhtmlgump":
		if err := r.want(7); err != nil {
			return err
		}
		prim = HtmlLocalized{X: r.i16(), Y: r.i16(), W: r.u16(), H: r.u16(), Key: r.u32(), Background: r.flag(), Scrollbar: r.flag()}
	case "button":
		if err := r.want(7); err != nil {
			return err
		}
		prim = Button{X: r.i16(), Y: r.i16(), Normal: r.u32(), Pressed: r.u32(), Kind: ButtonKind(r.u8()), Page: r.u16(), ID: r.int()}
	case "checkbox":
		if err := r.want(6); err != nil {
			return err
		}
		prim = CheckBox{X: r.i16(), Y: r.i16(), Unchecked: r.u32(), Checked: r.u32(), Initial: r.flag(), ID: r.int()}
	case "radio":
		if err := r.want(6); err != nil {
			return err
		}
		prim = Radio{X: r.i16(), Y: r.i16(), Unchecked: r.u32(), Checked: r.u32(), Initial: r.flag(), ID: r.int(), Group: p.group}
	case "textentry":
		if err := r.want(7); err != nil {
			return err
		}
		prim = TextEntry{X: r.i16(), Y: r.i16(), W: r.u16(), H: r.u16(), Hue: r.u16(), ID: r.int(), Initial: p.str(r)}
	case "gumppic":
		if len(a) == 4 && strings.HasPrefix(a[3], "hue=") {
			r.args = append(a[:3:3], strings.TrimPrefix(a[3], "hue="))
			prim = Image{X: r.i16(), Y: r.i16(), Art: r.u32(), Hue: r.u16(), Hued: true}
			break
		}
		if err := r.want(3); err != nil {
			return err
		}
		prim = Image{X: r.i16(), Y: r.i16(), Art: r.u32()}
	case "tilepic":
		if err := r.want(3); err != nil {
			return err
		}
		prim = ItemImage{X: r.i16(), Y: r.i16(), Graphic: r.u32()}
	case "tilepichue":
		if err := r.want(4); err != nil {
			return err
		}
		prim = ItemImage{X: r.i16(), Y: r.i16(), Graphic: r.u32(), Hue: r.u16(), Hued: true}
	case "gumppictiled":
		if err := r.want(5); err != nil {
			return err
		}
		prim = TiledImage{X: r.i16(), Y: r.i16(), W: r.u16(), H: r.u16(), Art: r.u32()}
	case "tooltip":
		if err := r.want(1); err != nil {
			return err
		}
		key := r.u32()
		if !p.attachable {
			return ErrDanglingTooltip
		}
		if hasArg && key == textTooltipKey {
			prim = Tooltip{Text: arg}
		} else {
			prim = Tooltip{Key: key}
		}
	default:
		return fmt.Errorf("%w: unknown command %q", ErrMalformed, name)
	}
	if r.err != nil {
		return r.err
	}
	if p.err != nil {
		return p.err
	}
	if attachable(prim) {
		p.attachable = true
	}
	l.Primitives = append(l.Primitives, prim)
	return nil
}

// str resolves the next argument as a string table index. Indices must
// appear in order since the table is built in reference order.
func (p *parser) str(r *argReader) string {
	idx := r.int()
	if r.err != nil || p.err != nil {
		return ""
	}
	if idx != p.used || idx >= len(p.strs) {
		p.err = fmt.Errorf("%w: %s references string %d, expected %d of %d", ErrMalformed, r.name, idx, p.used, len(p.strs))
		return ""
	}
	p.used++
	return p.strs[idx]
}

type argReader struct {
	name string
	args []string
	pos  int
	err  error
}

func (r *argReader) want(n int) error {
	if len(r.args) != n {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrMalformed, r.name, n, len(r.args))
	}
	return nil
}

func (r *argReader) next(bits int, signed bool) int64 {
	if r.err != nil || r.pos >= len(r.args) {
		return 0
	}
	s := r.args[r.pos]
	r.pos++
	var (
		v   int64
		err error
	)
	if signed {
		v, err = strconv.ParseInt(s, 10, bits)
	} else {
		var u uint64
		u, err = strconv.ParseUint(s, 10, bits)
		v = int64(u)
	}
	if err != nil {
		r.err = fmt.Errorf("%w: %s argument %d: %v", ErrMalformed, r.name, r.pos, err)
	}
	return v
}

func (r *argReader) i16() int16  { return int16(r.next(16, true)) }
func (r *argReader) u8() uint8   { return uint8(r.next(8, false)) }
func (r *argReader) u16() uint16 { return uint16(r.next(16, false)) }
func (r *argReader) u32() uint32 { return uint32(r.next(32, false)) }
func (r *argReader) int() int    { return int(r.next(32, true)) }
func (r *argReader) flag() bool  { return r.next(8, false) != 0 }
