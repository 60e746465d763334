// Package viewmodel decides whether a live view needs redrawing.
//
// Models are plain values built by scripts: structs, slices of tuples,
// maps from hue to count. Equality is structural: map insertion order is
// irrelevant, slice order is not, unexported fields are compared.
package viewmodel

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var opts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, opts...)
}

// Diff returns a human readable diff, empty when equal.
func Diff(a, b any) string {
	return cmp.Diff(a, b, opts...)
}

// Gate remembers the last model that was drawn. The model is kept by
// reference: a model must not be mutated after it is passed to Changed.
type Gate[M any] struct {
	prev M
	set  bool
}

// Changed reports whether m differs from the last model passed to
// Changed, and remembers m. The first call always reports a change.
func (g *Gate[M]) Changed(m M) bool {
	if g.set && Equal(g.prev, m) {
		return false
	}
	g.prev = m
	g.set = true
	return true
}

// Peek reports whether m differs without remembering it.
func (g *Gate[M]) Peek(m M) bool {
	return !g.set || !Equal(g.prev, m)
}

// Last returns the remembered model.
func (g *Gate[M]) Last() (M, bool) {
	return g.prev, g.set
}

// Reset forgets the remembered model so the next Changed reports true.
func (g *Gate[M]) Reset() {
	var zero M
	g.prev = zero
	g.set = false
}
