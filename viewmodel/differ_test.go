package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type layer struct {
	Name    string
	Current int
	Max     int
}

type ingots struct {
	counts map[string]int
	order  []string
}

func TestEqualMappingsIgnoreInsertionOrder(t *testing.T) {
	a := map[string]int{}
	a["iron"] = 100
	a["dull copper"] = 4
	b := map[string]int{}
	b["dull copper"] = 4
	b["iron"] = 100
	assert.True(t, Equal(a, b))

	b["iron"] = 101
	assert.False(t, Equal(a, b))
	assert.Contains(t, Diff(a, b), "iron")
}

func TestEqualSequencesAreOrdered(t *testing.T) {
	a := []layer{{"RightHand", 50, 50}, {"Head", 40, 80}}
	b := []layer{{"Head", 40, 80}, {"RightHand", 50, 50}}
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, []layer{{"RightHand", 50, 50}, {"Head", 40, 80}}))
	assert.Empty(t, Diff(a, a))
}

func TestEqualUnexportedFields(t *testing.T) {
	a := ingots{counts: map[string]int{"iron": 0}, order: []string{"iron"}}
	b := ingots{counts: map[string]int{"iron": 0}, order: []string{"iron"}}
	assert.True(t, Equal(a, b))
	b.counts["iron"] = 100
	assert.False(t, Equal(a, b))
}

func TestGate(t *testing.T) {
	var g Gate[[]layer]
	m := []layer{{"RightHand", 50, 50}, {"Head", 40, 80}}

	assert.True(t, g.Peek(m))
	assert.True(t, g.Changed(m))
	assert.False(t, g.Changed([]layer{{"RightHand", 50, 50}, {"Head", 40, 80}}))
	assert.True(t, g.Changed([]layer{{"RightHand", 49, 50}, {"Head", 40, 80}}))

	last, ok := g.Last()
	assert.True(t, ok)
	assert.Equal(t, 49, last[0].Current)

	g.Reset()
	assert.True(t, g.Changed(last))
}
