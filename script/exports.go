package script

import (
	"context"
	"os"
	"reflect"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gen2brain/beeep"
	"github.com/hako/durafmt"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"gumpkit/controller"
	"gumpkit/gumpid"
	"gumpkit/layout"
	"gumpkit/registry"
	"gumpkit/response"
)

// APIVersion is the value scripts declare in scriptAPIVersion.
const APIVersion = 1

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// Yaegi expects keys as "importPath/pkgName"; scripts import "gump".
var baseExports = interp.Exports{
	"gump/gump": {
		"NewBuilder": reflect.ValueOf(layout.NewBuilder),
		"Builder":    reflect.ValueOf((*layout.Builder)(nil)),
		"Layout":     reflect.ValueOf((*layout.Layout)(nil)),
		"Flags":      reflect.ValueOf((*layout.Flags)(nil)),
		"Response":   reflect.ValueOf((*response.Response)(nil)),
		"Outcome":    reflect.ValueOf((*controller.Outcome)(nil)),
		"ID":         reflect.ValueOf((*gumpid.ID)(nil)),
		"Sum":        reflect.ValueOf(gumpid.Sum),
		"Comma":      reflect.ValueOf(humanize.Comma),
		"Ordinal":    reflect.ValueOf(humanize.Ordinal),
		"Duration":   reflect.ValueOf(formatDuration),

		"ErrDisconnected": reflect.ValueOf(&controller.ErrDisconnected).Elem(),
		"ErrIDCollision":  reflect.ValueOf(&gumpid.ErrIDCollision).Elem(),
	},
}

var allowedPkgs = []string{
	"errors/errors",
	"fmt/fmt",
	"math/math",
	"sort/sort",
	"strconv/strconv",
	"strings/strings",
	"time/time",
	"unicode/utf8/utf8",
}

func restrictedStdlib() interp.Exports {
	restricted := interp.Exports{}
	for _, key := range allowedPkgs {
		if syms, ok := stdlib.Symbols[key]; ok {
			restricted[key] = syms
		}
	}
	return restricted
}

func formatDuration(d time.Duration) string {
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).Format(shortUnits)
}

// exportsFor binds the dialog API to one script. Dialog names are
// namespaced by owner so two scripts can both open "main".
func (h *Host) exportsFor(ctx context.Context, owner string) interp.Exports {
	ex := make(interp.Exports)
	for pkg, symbols := range baseExports {
		m := map[string]reflect.Value{}
		for k, v := range symbols {
			m[k] = v
		}
		name := func(n string) string { return owner + "/" + n }
		m["Allocate"] = reflect.ValueOf(func(n string) (gumpid.ID, error) {
			return h.ctrl.Allocate(name(n))
		})
		m["Present"] = reflect.ValueOf(func(n string, l layout.Layout) (controller.Outcome, error) {
			return h.ctrl.PresentNamed(ctx, name(n), l, h.ctrl.Position(), h.timeout)
		})
		m["PresentAt"] = reflect.ValueOf(func(n string, l layout.Layout, x, y int, timeout time.Duration) (controller.Outcome, error) {
			return h.ctrl.PresentNamed(ctx, name(n), l, registry.Point{X: x, Y: y}, timeout)
		})
		m["Live"] = reflect.ValueOf(func(n string, collect func() any, build func(any) (layout.Layout, error), react func(any, response.Response) bool) error {
			id, err := h.ctrl.Allocate(name(n))
			if err != nil {
				return err
			}
			view := controller.ViewFuncs[any]{CollectFunc: collect, BuildFunc: build}
			return controller.Live[any](ctx, h.ctrl, id, view, react, h.refresh)
		})
		m["Close"] = reflect.ValueOf(func(n string) error {
			id, ok := h.ctrl.Allocator().Lookup(name(n))
			if !ok {
				return nil
			}
			return h.ctrl.Close(id)
		})
		m["Pause"] = reflect.ValueOf(func(d time.Duration) { h.ctrl.Host().Pause(d) })
		m["Connected"] = reflect.ValueOf(func() bool { return h.ctrl.Host().Connected() })
		m["Refresh"] = reflect.ValueOf(func() time.Duration { return h.refresh })
		m["Print"] = reflect.ValueOf(func(msg string) { h.print(owner, msg) })
		m["Notify"] = reflect.ValueOf(func(title, body string) { h.notify(owner, title, body) })
		m["Stopped"] = reflect.ValueOf(func() bool { return ctx.Err() != nil })
		ex[pkg] = m
	}
	return ex
}

func (h *Host) print(owner, msg string) {
	h.log.Debugf("[%s] %s", owner, msg)
	if h.console != nil {
		h.console(owner, msg)
	}
}

// notify shows a desktop notification, best-effort and non-fatal.
func (h *Host) notify(owner, title, body string) {
	if !h.notifyEnabled || body == "" {
		return
	}
	// Skip on headless Linux without DISPLAY; beeep would error.
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		h.log.Warnf("script %s: notify: %v", owner, err)
	}
}
