package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"gumpkit/gumpid"
	"gumpkit/internal/tracer"
	"gumpkit/layout"
	"gumpkit/registry"
	"gumpkit/response"
	"gumpkit/viewmodel"
)

// View is a live dialog: Collect reads the model from game state and
// Build draws it. Build must be a pure function of the model.
type View[M any] interface {
	Collect() M
	Build(M) (layout.Layout, error)
}

// ViewFuncs adapts a pair of functions to View.
type ViewFuncs[M any] struct {
	CollectFunc func() M
	BuildFunc   func(M) (layout.Layout, error)
}

func (v ViewFuncs[M]) Collect() M { return v.CollectFunc() }

func (v ViewFuncs[M]) Build(m M) (layout.Layout, error) { return v.BuildFunc(m) }

// ReactFunc handles a response to a live view. Returning true stops the
// loop and closes the dialog.
type ReactFunc[M any] func(model M, r response.Response) (stop bool)

// Live keeps dialog id in sync with view until the host disconnects,
// react asks to stop, or ctx is done.
//
// The dialog is redrawn when the collected model differs from the last
// drawn one, or when the previous send was answered. Redraws are spaced
// at least the controller's min redraw apart; a throttled change is drawn
// on a later pass. refresh is the heartbeat: each pass waits at most that
// long for a response. Heartbeats do not expire the dialog.
//
// Disconnection is a clean exit and returns nil.
func Live[M any](ctx context.Context, c *Controller, id gumpid.ID, view View[M], react ReactFunc[M], refresh time.Duration) error {
	if refresh <= 0 {
		return fmt.Errorf("live %s: refresh must be positive, got %s", id, refresh)
	}
	var (
		gate    viewmodel.Gate[M]
		limiter *rate.Limiter
		pause   = refresh
	)
	if c.minRedraw > 0 {
		limiter = rate.NewLimiter(rate.Every(c.minRedraw), 1)
		pause = min(refresh, c.minRedraw)
	}
	allow := func() bool {
		if limiter == nil {
			return true
		}
		return limiter.AllowN(time.Unix(0, 0).Add(c.host.Now()), 1)
	}

	for {
		if err := ctx.Err(); err != nil {
			if cerr := c.Close(id); cerr != nil {
				return errors.Join(err, cerr)
			}
			return err
		}
		if !c.host.Connected() {
			c.log.Debugf("gump %s live: host disconnected", id)
			return nil
		}

		model := view.Collect()
		open := c.reg.State(id) == registry.Open
		if (!open || gate.Peek(model)) && allow() {
			l, err := view.Build(model)
			if err != nil {
				return fmt.Errorf("live %s: build: %w", id, err)
			}
			if prev, ok := gate.Last(); ok && c.log.Debugging() {
				if d := viewmodel.Diff(prev, model); d != "" {
					c.log.Debugf("gump %s model changed (-old +new):\n%s", id, d)
				}
			}
			if err := c.redraw(ctx, id, l); err != nil {
				if errors.Is(err, ErrDisconnected) {
					return nil
				}
				return err
			}
			gate.Changed(model)
			open = true
		}

		if !open {
			c.host.Pause(pause)
			continue
		}
		out, err := c.Poll(id, refresh)
		if err != nil {
			return err
		}
		if out.Expired || react == nil {
			continue
		}
		if react(model, out.Response) {
			return c.Close(id)
		}
	}
}

func (c *Controller) redraw(ctx context.Context, id gumpid.ID, l layout.Layout) (err error) {
	name, _ := c.ids.Owner(id)
	ctx, span := tracer.StartDialog(ctx, "redraw", uint32(id), name)
	defer func() { tracer.End(span, err) }()
	return c.Show(ctx, id, l, c.pos)
}
