package controller

import (
	"errors"
	"fmt"

	"gumpkit/gumpid"
)

var (
	// ErrDisconnected means the host is not connected; nothing was sent.
	ErrDisconnected = errors.New("host disconnected")
	// ErrAdapterFailure matches every *AdapterError.
	ErrAdapterFailure = errors.New("host adapter failure")
	// ErrNotOpen is returned when waiting on a dialog this controller has
	// no open send for.
	ErrNotOpen = errors.New("dialog not open")
)

// AdapterError is a failed host call. The dialog is recorded as closed by
// the script before it is returned.
type AdapterError struct {
	Op  string
	ID  gumpid.ID
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s dialog %s: %v", e.Op, e.ID, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

func (e *AdapterError) Is(target error) bool { return target == ErrAdapterFailure }
