// Package gumpid derives dialog identifiers from names.
//
// Scripts used to compute hash("Name") & 0xFFFFFFFF themselves, which made
// two scripts silently share a dialog when their names aliased. The
// Allocator keeps the name behind every id it hands out and refuses an id
// whose current holder is still showing a dialog.
package gumpid

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/unicode/norm"
)

// ID is a 32-bit dialog identifier as understood by the host.
type ID uint32

func (id ID) String() string { return fmt.Sprintf("0x%08X", uint32(id)) }

// ErrIDCollision is returned when a name resolves to an id that another
// name holds while that dialog is live.
var ErrIDCollision = errors.New("dialog id collision")

// CollisionError carries the names involved in a collision.
type CollisionError struct {
	ID       ID
	Name     string
	Existing string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("dialog id %s for %q is live under %q", e.ID, e.Name, e.Existing)
}

func (e *CollisionError) Is(target error) bool { return target == ErrIDCollision }

// LiveFunc reports whether a dialog id currently has an open dialog.
type LiveFunc func(ID) bool

// Sum hashes name into an ID. It is a pure function of name: the name is
// NFC normalized and trimmed first so visually identical names agree.
// Zero is never returned since hosts use it for "no dialog".
func Sum(name string) ID {
	id := ID(xxhash.Sum64String(Key(name)) & 0xFFFFFFFF)
	if id == 0 {
		id = 1
	}
	return id
}

// Key is the form of name that Sum hashes and the Allocator binds.
func Key(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Allocator remembers which name owns each allocated or reserved id.
// Names are compared by Key.
type Allocator struct {
	mu     sync.Mutex
	owners map[ID]string
	ids    map[string]ID
	live   LiveFunc
}

// NewAllocator returns an Allocator that consults live before letting a
// second name take an id. A nil live treats every id as not live.
func NewAllocator(live LiveFunc) *Allocator {
	if live == nil {
		live = func(ID) bool { return false }
	}
	return &Allocator{
		owners: map[ID]string{},
		ids:    map[string]ID{},
		live:   live,
	}
}

// Allocate returns the hashed id for name and binds it to name.
func (a *Allocator) Allocate(name string) (ID, error) {
	id := Sum(name)
	if err := a.bind(id, Key(name)); err != nil {
		return 0, err
	}
	return id, nil
}

// Reserve binds a caller-chosen literal id to name.
func (a *Allocator) Reserve(id ID, name string) error {
	if id == 0 {
		return fmt.Errorf("reserve %q: id 0 is reserved", name)
	}
	return a.bind(id, Key(name))
}

func (a *Allocator) bind(id ID, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if prev, ok := a.owners[id]; ok && prev != name {
		if a.live(id) {
			return &CollisionError{ID: id, Name: name, Existing: prev}
		}
		delete(a.ids, prev)
	}
	if old, ok := a.ids[name]; ok && old != id {
		delete(a.owners, old)
	}
	a.owners[id] = name
	a.ids[name] = id
	return nil
}

// Release forgets the binding for name.
func (a *Allocator) Release(name string) {
	name = Key(name)
	a.mu.Lock()
	defer a.mu.Unlock()
	if id, ok := a.ids[name]; ok {
		delete(a.ids, name)
		delete(a.owners, id)
	}
}

// Owner returns the name bound to id.
func (a *Allocator) Owner(id ID) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	name, ok := a.owners[id]
	return name, ok
}

// Lookup returns the id bound to name.
func (a *Allocator) Lookup(name string) (ID, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.ids[Key(name)]
	return id, ok
}
