// Package host is the seam between the dialog controller and the client
// assistant that actually shows dialogs.
package host

import (
	"time"

	"gumpkit/gumpid"
	"gumpkit/response"
)

// Adapter is everything the controller needs from the host. Only Pause
// and WaitForResponse may block.
type Adapter interface {
	// SendDialog shows a dialog built from a serialized layout and its
	// string table at screen position x, y.
	SendDialog(id gumpid.ID, serial string, strings []string, x, y int) error
	// CloseDialog asks the host to close dialog id.
	CloseDialog(id gumpid.ID) error
	// WaitForResponse blocks up to timeout and reports whether a response,
	// a user close included, arrived for id.
	WaitForResponse(id gumpid.ID, timeout time.Duration) (bool, error)
	// ReadDialogResult returns the last result for id, nil if none.
	ReadDialogResult(id gumpid.ID) (*response.Raw, error)
	// AllOpenDialogIDs lists dialogs the host currently shows, including
	// ones the server opened.
	AllOpenDialogIDs() ([]gumpid.ID, error)
	Pause(d time.Duration)
	// Now is a monotonic clock.
	Now() time.Duration
	Connected() bool
}
