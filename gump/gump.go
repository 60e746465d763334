// Code generated for editor support.
// This file provides stubs for the "gump" package so editors can type-check
// scripts without the script host. Implementations are no-ops.

package gump

import (
	"errors"
	"time"
)

// Dialog ids
type ID uint32

func Sum(name string) ID { return 0 }

var (
	ErrDisconnected = errors.New("host disconnected")
	ErrIDCollision  = errors.New("dialog id collision")
)

// Layout building
type Flags struct {
	NoClose, NoMove, NoDispose, NoResize bool
}

type Layout struct {
	Flags   Flags
	Serial  string
	Strings []string
}

type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) SetFlags(f Flags) *Builder    { return b }
func (b *Builder) Closable(v bool) *Builder     { return b }
func (b *Builder) Movable(v bool) *Builder      { return b }
func (b *Builder) Disposable(v bool) *Builder   { return b }
func (b *Builder) Resizable(v bool) *Builder    { return b }
func (b *Builder) CurrentPage() uint16          { return 0 }
func (b *Builder) Len() int                     { return 0 }
func (b *Builder) AddPage(n uint16) *Builder    { return b }
func (b *Builder) AddGroup(n uint16) *Builder   { return b }
func (b *Builder) Finish() (string, []string)   { return "", nil }
func (b *Builder) Layout() Layout               { return Layout{} }
func (b *Builder) AddTooltip(text string) error { return nil }
func (b *Builder) AddTooltipLocalized(key uint32) error {
	return nil
}

func (b *Builder) AddBackground(x, y int16, w, h uint16, art uint32) *Builder { return b }
func (b *Builder) AddAlphaRegion(x, y int16, w, h uint16) *Builder            { return b }
func (b *Builder) AddLabel(x, y int16, hue uint16, text string) *Builder      { return b }
func (b *Builder) AddHtml(x, y int16, w, h uint16, text string, background, scrollbar bool) *Builder {
	return b
}
func (b *Builder) AddHtmlLocalized(x, y int16, w, h uint16, key uint32, background, scrollbar bool) *Builder {
	return b
}
func (b *Builder) AddButton(x, y int16, normal, pressed uint32, id int) *Builder { return b }
func (b *Builder) AddPageButton(x, y int16, normal, pressed uint32, page uint16) *Builder {
	return b
}
func (b *Builder) AddCheckBox(x, y int16, unchecked, checked uint32, initial bool, id int) *Builder {
	return b
}
func (b *Builder) AddRadio(x, y int16, unchecked, checked uint32, initial bool, id int) *Builder {
	return b
}
func (b *Builder) AddTextEntry(x, y int16, w, h uint16, hue uint16, id int, initial string) *Builder {
	return b
}
func (b *Builder) AddImage(x, y int16, art uint32) *Builder                        { return b }
func (b *Builder) AddImageHue(x, y int16, art uint32, hue uint16) *Builder         { return b }
func (b *Builder) AddItemImage(x, y int16, graphic uint32) *Builder                { return b }
func (b *Builder) AddItemImageHue(x, y int16, graphic uint32, hue uint16) *Builder { return b }
func (b *Builder) AddTiledImage(x, y int16, w, h uint16, art uint32) *Builder      { return b }

// Responses
type Response struct {
	ButtonID int
	Switches []int
	Texts    map[int]string
}

func (r Response) Closed() bool               { return r.ButtonID == 0 }
func (r Response) Has(id int) bool            { return false }
func (r Response) Text(id int) (string, bool) { return "", false }

type Outcome struct {
	Response Response
	Expired  bool
}

// Dialogs, named per script
func Allocate(name string) (ID, error)               { return 0, nil }
func Present(name string, l Layout) (Outcome, error) { return Outcome{}, nil }
func PresentAt(name string, l Layout, x, y int, timeout time.Duration) (Outcome, error) {
	return Outcome{}, nil
}
func Live(name string, collect func() any, build func(any) (Layout, error), react func(any, Response) bool) error {
	return nil
}
func Close(name string) error { return nil }

// Host
func Pause(d time.Duration)    {}
func Connected() bool        { return false }
func Refresh() time.Duration { return 0 }
func Stopped() bool          { return false }

// Output and formatting
func Print(msg string)              {}
func Notify(title, body string)     {}
func Comma(v int64) string            { return "" }
func Ordinal(x int) string            { return "" }
func Duration(d time.Duration) string { return "" }
