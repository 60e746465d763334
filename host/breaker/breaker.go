// Package breaker wraps a host.Adapter with a circuit breaker. When the
// host keeps failing, calls fail fast instead of reaching it, so a script
// in a live loop does not hammer a dead client.
package breaker

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"gumpkit/config"
	"gumpkit/gumpid"
	"gumpkit/host"
	"gumpkit/internal/logger"
	"gumpkit/response"
)

// ErrOpen matches every call refused while the circuit is open.
var ErrOpen = errors.New("host circuit open")

const (
	defaultMaxFailures uint32        = 5
	defaultTimeout     time.Duration = 30 * time.Second
	defaultInterval    time.Duration = 60 * time.Second
)

// Adapter routes the fallible host calls through one breaker. Pause, Now
// and Connected pass straight through.
type Adapter struct {
	inner   host.Adapter
	breaker *gobreaker.CircuitBreaker[any]
}

var _ host.Adapter = (*Adapter)(nil)

// Wrap returns inner behind a breaker. Zero fields in cfg take defaults.
func Wrap(inner host.Adapter, cfg config.BreakerConfig, log *logger.Logger) *Adapter {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = logger.Discard()
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "host",
		MaxRequests: 1, // one probe while half-open
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})
	return &Adapter{inner: inner, breaker: cb}
}

// State reports the breaker state.
func (a *Adapter) State() gobreaker.State { return a.breaker.State() }

func (a *Adapter) call(op string, fn func() (any, error)) (any, error) {
	v, err := a.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrOpen, err)
	}
	return v, err
}

func (a *Adapter) SendDialog(id gumpid.ID, serial string, strs []string, x, y int) error {
	_, err := a.call("send", func() (any, error) {
		return nil, a.inner.SendDialog(id, serial, strs, x, y)
	})
	return err
}

func (a *Adapter) CloseDialog(id gumpid.ID) error {
	_, err := a.call("close", func() (any, error) {
		return nil, a.inner.CloseDialog(id)
	})
	return err
}

func (a *Adapter) WaitForResponse(id gumpid.ID, timeout time.Duration) (bool, error) {
	v, err := a.call("wait", func() (any, error) {
		return a.inner.WaitForResponse(id, timeout)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (a *Adapter) ReadDialogResult(id gumpid.ID) (*response.Raw, error) {
	v, err := a.call("read", func() (any, error) {
		return a.inner.ReadDialogResult(id)
	})
	if err != nil {
		return nil, err
	}
	raw, _ := v.(*response.Raw)
	return raw, nil
}

func (a *Adapter) AllOpenDialogIDs() ([]gumpid.ID, error) {
	v, err := a.call("list", func() (any, error) {
		return a.inner.AllOpenDialogIDs()
	})
	if err != nil {
		return nil, err
	}
	ids, _ := v.([]gumpid.ID)
	return ids, nil
}

func (a *Adapter) Pause(d time.Duration) { a.inner.Pause(d) }

func (a *Adapter) Now() time.Duration { return a.inner.Now() }

func (a *Adapter) Connected() bool { return a.inner.Connected() }
