// Package registry keeps the process-wide record of every dialog the
// controller has sent.
package registry

import (
	"maps"
	"slices"
	"sync"
	"time"

	"gumpkit/gumpid"
	"gumpkit/layout"
	"gumpkit/response"
)

// State is where a dialog is in its lifecycle.
type State int

const (
	Unsent State = iota
	Open
	ClosedByUser
	ClosedByScript
	Expired
)

func (s State) String() string {
	switch s {
	case Unsent:
		return "unsent"
	case Open:
		return "open"
	case ClosedByUser:
		return "closed-by-user"
	case ClosedByScript:
		return "closed-by-script"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Point is a screen position.
type Point struct {
	X, Y int
}

// Record is the bookkeeping entry for one dialog id. Records returned by
// the Registry are copies.
type Record struct {
	ID           gumpid.ID
	Layout       *layout.Layout
	Position     Point
	State        State
	LastResponse *response.Response
	OpenedAt     time.Duration
	Sends        int
}

// Registry maps dialog ids to records. The zero value is not usable; use
// New or Default.
type Registry struct {
	mu      sync.RWMutex
	records map[gumpid.ID]*Record
}

// Default is the registry shared by every script in the process.
var Default = New()

func New() *Registry {
	return &Registry{records: map[gumpid.ID]*Record{}}
}

// RecordSend marks id Open with a fresh layout. It is allowed from any
// state and clears the previous response.
func (r *Registry) RecordSend(id gumpid.ID, l layout.Layout, pos Point, now time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		rec = &Record{ID: id}
		r.records[id] = rec
	}
	rec.Layout = &l
	rec.Position = pos
	rec.State = Open
	rec.LastResponse = nil
	rec.OpenedAt = now
	rec.Sends++
}

// RecordResponse parses raw against the sent layout and closes the
// record as ClosedByUser. A response for a dialog that is not Open is
// ignored and ok is false.
func (r *Registry) RecordResponse(id gumpid.ID, raw response.Raw) (resp response.Response, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, found := r.records[id]
	if !found || rec.State != Open {
		return response.Response{}, false
	}
	return r.respond(rec, response.Parse(rec.Layout, raw)), true
}

// RecordCancel closes an Open record as ClosedByUser with the cancel
// response for its layout. It is used when the host lost the result.
func (r *Registry) RecordCancel(id gumpid.ID) (resp response.Response, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, found := r.records[id]
	if !found || rec.State != Open {
		return response.Response{}, false
	}
	return r.respond(rec, response.Cancel(rec.Layout)), true
}

func (r *Registry) respond(rec *Record, resp response.Response) response.Response {
	kept := resp
	kept.Switches = slices.Clone(resp.Switches)
	kept.Texts = maps.Clone(resp.Texts)
	rec.LastResponse = &kept
	rec.State = ClosedByUser
	return resp
}

// RecordClose marks an Open record ClosedByScript.
func (r *Registry) RecordClose(id gumpid.ID) bool {
	return r.transition(id, ClosedByScript)
}

// RecordExpiry marks an Open record Expired.
func (r *Registry) RecordExpiry(id gumpid.ID) bool {
	return r.transition(id, Expired)
}

func (r *Registry) transition(id gumpid.ID, to State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.State != Open {
		return false
	}
	rec.State = to
	return true
}

// Lookup returns a copy of the record for id.
func (r *Registry) Lookup(id gumpid.ID) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

func (rec *Record) clone() Record {
	c := *rec
	if rec.Layout != nil {
		l := *rec.Layout
		l.Primitives = slices.Clone(l.Primitives)
		l.Strings = slices.Clone(l.Strings)
		c.Layout = &l
	}
	if rec.LastResponse != nil {
		resp := *rec.LastResponse
		resp.Switches = slices.Clone(resp.Switches)
		resp.Texts = maps.Clone(resp.Texts)
		c.LastResponse = &resp
	}
	return c
}

// State returns the state of id, Unsent when it has no record.
func (r *Registry) State(id gumpid.ID) State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.records[id]; ok {
		return rec.State
	}
	return Unsent
}

// Live reports whether id is Open. It is the gumpid.LiveFunc used for
// collision checks.
func (r *Registry) Live(id gumpid.ID) bool {
	return r.State(id) == Open
}

// Open lists the ids currently Open, sorted.
func (r *Registry) Open() []gumpid.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []gumpid.ID
	for id, rec := range r.records {
		if rec.State == Open {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Len is the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
