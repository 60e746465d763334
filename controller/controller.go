// Package controller presents dialogs through a host and correlates the
// user's answer with the send that produced it.
//
// A Controller runs on the calling goroutine and only suspends inside the
// host's Pause and WaitForResponse. Every send, response, close and expiry
// is mirrored in a registry.Registry.
package controller

import (
	"context"
	"fmt"
	"time"

	"gumpkit/gumpid"
	"gumpkit/host"
	"gumpkit/internal/logger"
	"gumpkit/internal/tracer"
	"gumpkit/layout"
	"gumpkit/registry"
	"gumpkit/response"
)

// Outcome is the result of waiting on a dialog. Expired is set when no
// response arrived before the deadline; Response is zero then.
type Outcome struct {
	Response response.Response
	Expired  bool
}

type Controller struct {
	host      host.Adapter
	reg       *registry.Registry
	ids       *gumpid.Allocator
	log       *logger.Logger
	pos       registry.Point
	minRedraw time.Duration
}

type Option func(*Controller)

// WithRegistry replaces registry.Default.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Controller) { c.reg = r }
}

// WithAllocator replaces the allocator built over the registry.
func WithAllocator(a *gumpid.Allocator) Option {
	return func(c *Controller) { c.ids = a }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithDefaultPosition sets where live views are drawn.
func WithDefaultPosition(x, y int) Option {
	return func(c *Controller) { c.pos = registry.Point{X: x, Y: y} }
}

// WithMinRedraw sets the shortest gap between two redraws of a live view.
// Zero disables throttling.
func WithMinRedraw(d time.Duration) Option {
	return func(c *Controller) { c.minRedraw = d }
}

func New(h host.Adapter, opts ...Option) *Controller {
	c := &Controller{
		host: h,
		reg:  registry.Default,
		pos:  registry.Point{X: 100, Y: 100},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ids == nil {
		c.ids = gumpid.NewAllocator(c.reg.Live)
	}
	if c.log == nil {
		c.log = logger.Discard()
	}
	return c
}

func (c *Controller) Registry() *registry.Registry { return c.reg }

func (c *Controller) Allocator() *gumpid.Allocator { return c.ids }

func (c *Controller) Host() host.Adapter { return c.host }

// Position is the default position for live views.
func (c *Controller) Position() registry.Point { return c.pos }

// Allocate returns the id for name, failing with gumpid.ErrIDCollision
// when another live dialog holds it.
func (c *Controller) Allocate(name string) (gumpid.ID, error) {
	return c.ids.Allocate(name)
}

func (c *Controller) fail(op string, id gumpid.ID, err error) error {
	c.reg.RecordClose(id)
	c.log.Warnf("gump %s %s: %v", op, id, err)
	return &AdapterError{Op: op, ID: id, Err: err}
}

// Present shows l as dialog id and waits up to timeout for the user.
// A prior open dialog with the same id is closed first. On timeout the
// record is Expired and Outcome.Expired is set.
func (c *Controller) Present(ctx context.Context, id gumpid.ID, l layout.Layout, pos registry.Point, timeout time.Duration) (Outcome, error) {
	return c.present(ctx, id, "", l, pos, timeout)
}

// PresentNamed allocates the id for name and presents. A collision is
// returned without sending anything.
func (c *Controller) PresentNamed(ctx context.Context, name string, l layout.Layout, pos registry.Point, timeout time.Duration) (Outcome, error) {
	id, err := c.ids.Allocate(name)
	if err != nil {
		return Outcome{}, fmt.Errorf("present %q: %w", name, err)
	}
	return c.present(ctx, id, gumpid.Key(name), l, pos, timeout)
}

func (c *Controller) present(ctx context.Context, id gumpid.ID, name string, l layout.Layout, pos registry.Point, timeout time.Duration) (out Outcome, err error) {
	ctx, span := tracer.StartDialog(ctx, "present", uint32(id), name)
	defer func() { tracer.End(span, err) }()

	if err := c.Show(ctx, id, l, pos); err != nil {
		return Outcome{}, err
	}
	out, err = c.Wait(id, timeout)
	if err != nil {
		return Outcome{}, err
	}
	if out.Expired {
		span.AddEvent("expired")
	} else {
		span.SetAttributes(tracer.KeyButton.Int(out.Response.ButtonID))
	}
	return out, nil
}

// Show sends l as dialog id without waiting. A prior open dialog with the
// same id is closed first.
func (c *Controller) Show(ctx context.Context, id gumpid.ID, l layout.Layout, pos registry.Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.host.Connected() {
		return ErrDisconnected
	}
	if c.reg.State(id) == registry.Open {
		if err := c.host.CloseDialog(id); err != nil {
			return c.fail("close", id, err)
		}
		c.reg.RecordClose(id)
	}

	serial, strs := l.Encoded()
	l.Serial, l.Strings = serial, strs
	c.reg.RecordSend(id, l, pos, c.host.Now())
	c.log.DebugLayout(fmt.Sprintf("gump send %s at %d,%d", id, pos.X, pos.Y), serial)
	if err := c.host.SendDialog(id, serial, strs, pos.X, pos.Y); err != nil {
		return c.fail("send", id, err)
	}
	return nil
}

// Wait waits up to timeout for the response to the open dialog id. With
// no response the record becomes Expired.
func (c *Controller) Wait(id gumpid.ID, timeout time.Duration) (Outcome, error) {
	return c.wait(id, timeout, true)
}

// Poll is Wait for live views: a timeout is a heartbeat and leaves the
// dialog open.
func (c *Controller) Poll(id gumpid.ID, timeout time.Duration) (Outcome, error) {
	return c.wait(id, timeout, false)
}

func (c *Controller) wait(id gumpid.ID, timeout time.Duration, expire bool) (Outcome, error) {
	if c.reg.State(id) != registry.Open {
		return Outcome{}, fmt.Errorf("wait %s: %w", id, ErrNotOpen)
	}
	got, err := c.host.WaitForResponse(id, timeout)
	if err != nil {
		return Outcome{}, c.fail("wait", id, err)
	}
	if !got {
		if expire {
			c.reg.RecordExpiry(id)
			c.log.Debugf("gump %s expired after %s", id, timeout)
		}
		return Outcome{Expired: true}, nil
	}

	raw, err := c.host.ReadDialogResult(id)
	if err != nil {
		return Outcome{}, c.fail("read", id, err)
	}
	var (
		resp response.Response
		ok   bool
	)
	if raw == nil {
		// The host said a response arrived but kept no result: the dialog
		// is gone, so report it as closed without a reply.
		c.log.Debugf("gump %s responded without a result", id)
		resp, ok = c.reg.RecordCancel(id)
	} else {
		resp, ok = c.reg.RecordResponse(id, *raw)
	}
	if !ok {
		return Outcome{}, fmt.Errorf("response %s: %w", id, ErrNotOpen)
	}
	c.log.Debugf("gump %s response button=%d switches=%v", id, resp.ButtonID, resp.Switches)
	return Outcome{Response: resp}, nil
}

// Close closes dialog id if this controller has it open. Dialogs the
// controller did not send are left alone; see CloseAny.
func (c *Controller) Close(id gumpid.ID) error {
	if c.reg.State(id) != registry.Open {
		return nil
	}
	if err := c.host.CloseDialog(id); err != nil {
		return c.fail("close", id, err)
	}
	c.reg.RecordClose(id)
	return nil
}

// CloseAny asks the host to close dialog id whoever opened it.
func (c *Controller) CloseAny(id gumpid.ID) error {
	if c.reg.State(id) == registry.Open {
		return c.Close(id)
	}
	if err := c.host.CloseDialog(id); err != nil {
		c.log.Warnf("gump close %s: %v", id, err)
		return &AdapterError{Op: "close", ID: id, Err: err}
	}
	return nil
}

// Showing reports whether the host currently displays dialog id.
func (c *Controller) Showing(id gumpid.ID) (bool, error) {
	ids, err := c.host.AllOpenDialogIDs()
	if err != nil {
		return false, &AdapterError{Op: "list", ID: id, Err: err}
	}
	for _, open := range ids {
		if open == id {
			return true, nil
		}
	}
	return false, nil
}

// Foreign reads the result of a dialog this controller did not send, such
// as one the server opened. It is parsed without a layout and nothing is
// recorded. A nil response means the host has no result.
func (c *Controller) Foreign(id gumpid.ID) (*response.Response, error) {
	raw, err := c.host.ReadDialogResult(id)
	if err != nil {
		return nil, &AdapterError{Op: "read", ID: id, Err: err}
	}
	if raw == nil {
		return nil, nil
	}
	resp := response.Parse(nil, *raw)
	return &resp, nil
}
