// Package memhost is an in-memory host.Adapter. It keeps a fake clock,
// records every send and close, and plays back user interactions queued
// by the caller, which makes the controller testable without a client.
package memhost

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"gumpkit/gumpid"
	"gumpkit/host"
	"gumpkit/layout"
	"gumpkit/response"
)

var _ host.Adapter = (*Host)(nil)

// Op names an adapter operation for fault injection.
type Op string

const (
	OpSend  Op = "send"
	OpClose Op = "close"
	OpWait  Op = "wait"
	OpRead  Op = "read"
	OpList  Op = "list"
)

// ErrNotConnected is returned by sends while the host is disconnected.
var ErrNotConnected = errors.New("memhost: not connected")

// Send is one recorded SendDialog call.
type Send struct {
	ID      gumpid.ID
	Serial  string
	Strings []string
	X, Y    int
	At      time.Duration
}

// Interaction is what the user does to a dialog before it closes. A zero
// Button closes the dialog without a reply.
type Interaction struct {
	Button int
	Toggle []int
	Type   map[int]string
	// Delay is how long after the wait starts the user acts. A delay
	// longer than the wait leaves the interaction queued.
	Delay time.Duration
}

// Press is an interaction that presses reply button id.
func Press(id int) Interaction { return Interaction{Button: id} }

// CloseByUser is an interaction that right-click closes the dialog.
func CloseByUser() Interaction { return Interaction{} }

func (i Interaction) WithToggle(ids ...int) Interaction {
	i.Toggle = append(slices.Clone(i.Toggle), ids...)
	return i
}

func (i Interaction) WithText(entry int, text string) Interaction {
	m := maps.Clone(i.Type)
	if m == nil {
		m = map[int]string{}
	}
	m[entry] = text
	i.Type = m
	return i
}

func (i Interaction) After(d time.Duration) Interaction {
	i.Delay = d
	return i
}

type dialog struct {
	layout layout.Layout
	server bool
}

// Host is safe for concurrent use.
type Host struct {
	mu        sync.Mutex
	now       time.Duration
	connected bool
	open      map[gumpid.ID]*dialog
	results   map[gumpid.ID]*response.Raw
	pending   map[gumpid.ID]bool
	queued    map[gumpid.ID][]Interaction
	faults    map[Op]error
	sends     []Send
	closes    []gumpid.ID
	waits     int
	lose      bool

	layouts *layout.Cache

	disconnectAfter int
	onWait          func(id gumpid.ID, n int)
}

func New() *Host {
	layouts, _ := layout.NewCache(64)
	return &Host{
		layouts:   layouts,
		connected: true,
		open:      map[gumpid.ID]*dialog{},
		results:   map[gumpid.ID]*response.Raw{},
		pending:   map[gumpid.ID]bool{},
		queued:    map[gumpid.ID][]Interaction{},
		faults:    map[Op]error{},
	}
}

// Queue adds interactions the user performs on dialog id, in order, one
// per displayed send.
func (h *Host) Queue(id gumpid.ID, in ...Interaction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queued[id] = append(h.queued[id], in...)
}

// FailNext makes the next call of op return err.
func (h *Host) FailNext(op Op, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.faults[op] = err
}

// SetConnected flips the connection flag.
func (h *Host) SetConnected(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connected = v
}

// DisconnectAfterWaits disconnects the host once n waits have completed.
func (h *Host) DisconnectAfterWaits(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnectAfter = n
}

// OnWait installs a hook run at the start of every wait, with the wait
// count so far. It runs without the host lock held.
func (h *Host) OnWait(fn func(id gumpid.ID, n int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onWait = fn
}

// LoseResults makes ReadDialogResult return nil even after a response.
func (h *Host) LoseResults(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lose = v
}

// ServerOpen shows a dialog the script did not send.
func (h *Host) ServerOpen(id gumpid.ID, serial string, strs []string) error {
	l, err := h.layouts.Parse(serial, strs)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open[id] = &dialog{layout: l, server: true}
	return nil
}

// ServerRespond closes dialog id with raw as if the user answered it.
func (h *Host) ServerRespond(id gumpid.ID, raw response.Raw) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.open, id)
	r := raw
	h.results[id] = &r
	h.pending[id] = true
}

func (h *Host) Sends() []Send {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.sends)
}

// SendsFor returns the sends for one dialog id.
func (h *Host) SendsFor(id gumpid.ID) []Send {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []Send
	for _, s := range h.sends {
		if s.ID == id {
			out = append(out, s)
		}
	}
	return out
}

func (h *Host) Closes() []gumpid.ID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.closes)
}

// IsOpen reports whether dialog id is showing.
func (h *Host) IsOpen(id gumpid.ID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.open[id]
	return ok
}

func (h *Host) Waits() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.waits
}

func (h *Host) fault(op Op) error {
	if err, ok := h.faults[op]; ok {
		delete(h.faults, op)
		return err
	}
	return nil
}

func (h *Host) SendDialog(id gumpid.ID, serial string, strs []string, x, y int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fault(OpSend); err != nil {
		return err
	}
	if !h.connected {
		return ErrNotConnected
	}
	l, err := h.layouts.Parse(serial, strs)
	if err != nil {
		return fmt.Errorf("memhost: send %s: %w", id, err)
	}
	h.sends = append(h.sends, Send{ID: id, Serial: serial, Strings: slices.Clone(strs), X: x, Y: y, At: h.now})
	h.open[id] = &dialog{layout: l}
	delete(h.pending, id)
	return nil
}

func (h *Host) CloseDialog(id gumpid.ID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fault(OpClose); err != nil {
		return err
	}
	if _, ok := h.open[id]; ok {
		delete(h.open, id)
		h.closes = append(h.closes, id)
	}
	delete(h.pending, id)
	return nil
}

func (h *Host) WaitForResponse(id gumpid.ID, timeout time.Duration) (bool, error) {
	h.mu.Lock()
	hook := h.onWait
	n := h.waits
	h.mu.Unlock()
	if hook != nil {
		hook(id, n)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.waits++
	if h.disconnectAfter > 0 && h.waits >= h.disconnectAfter {
		h.connected = false
	}
	if err := h.fault(OpWait); err != nil {
		return false, err
	}
	if h.pending[id] {
		delete(h.pending, id)
		return true, nil
	}
	d, open := h.open[id]
	q := h.queued[id]
	if !open || len(q) == 0 || q[0].Delay > timeout {
		h.now += timeout
		return false, nil
	}
	in := q[0]
	h.queued[id] = q[1:]
	h.now += in.Delay
	raw := apply(d.layout, in)
	h.results[id] = &raw
	delete(h.open, id)
	return true, nil
}

// apply plays in against l the way the client would: toggles flip
// checkboxes, a radio unchecks the rest of its group, typed text replaces
// the entry. Every entry and every checked switch is reported.
func apply(l layout.Layout, in Interaction) response.Raw {
	switches := l.Switches()
	checked := map[int]bool{}
	for id, sw := range switches {
		checked[id] = sw.Initial
	}
	for _, id := range in.Toggle {
		sw, ok := switches[id]
		if !ok {
			continue
		}
		if !sw.Radio {
			checked[id] = !checked[id]
			continue
		}
		for other, o := range switches {
			if o.Radio && o.Group == sw.Group {
				checked[other] = false
			}
		}
		checked[id] = true
	}

	raw := response.Raw{ButtonID: in.Button, Texts: map[int]string{}}
	for id, on := range checked {
		if on {
			raw.SwitchIDs = append(raw.SwitchIDs, id)
		}
	}
	slices.Sort(raw.SwitchIDs)
	for _, te := range l.TextEntries() {
		raw.Texts[te.ID] = te.Initial
		if s, ok := in.Type[te.ID]; ok {
			raw.Texts[te.ID] = s
		}
	}
	return raw
}

func (h *Host) ReadDialogResult(id gumpid.ID) (*response.Raw, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fault(OpRead); err != nil {
		return nil, err
	}
	r, ok := h.results[id]
	if !ok || h.lose {
		return nil, nil
	}
	out := *r
	out.SwitchIDs = slices.Clone(r.SwitchIDs)
	out.Texts = maps.Clone(r.Texts)
	return &out, nil
}

func (h *Host) AllOpenDialogIDs() ([]gumpid.ID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fault(OpList); err != nil {
		return nil, err
	}
	ids := make([]gumpid.ID, 0, len(h.open))
	for id := range h.open {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (h *Host) Pause(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now += d
}

func (h *Host) Now() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

func (h *Host) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connected
}
