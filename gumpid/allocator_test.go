package gumpid

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateIsStable(t *testing.T) {
	a := NewAllocator(nil)
	first, err := a.Allocate("Durability")
	require.NoError(t, err)
	second, err := a.Allocate("Durability")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, Sum("Durability"), first)
	assert.NotEqual(t, Sum("Durability"), Sum("Ingots"))
}

func TestSumNormalizesName(t *testing.T) {
	// "é" precomposed vs. "e" + combining acute accent.
	assert.Equal(t, Sum("Caf\u00e9"), Sum("Cafe\u0301"))
	assert.Equal(t, Sum("Runebook"), Sum("  Runebook "))
}

func TestCollisionOnlyWhenLive(t *testing.T) {
	live := map[ID]bool{}
	a := NewAllocator(func(id ID) bool { return live[id] })

	target := Sum("spells")
	require.NoError(t, a.Reserve(target, "atlas"))

	// Not live: the new name takes over the id.
	id, err := a.Allocate("spells")
	require.NoError(t, err)
	assert.Equal(t, target, id)
	owner, ok := a.Owner(id)
	require.True(t, ok)
	assert.Equal(t, "spells", owner)
	_, ok = a.Lookup("atlas")
	assert.False(t, ok)

	// Live: the other name is refused.
	live[target] = true
	err = a.Reserve(target, "atlas")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIDCollision))
	var ce *CollisionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "atlas", ce.Name)
	assert.Equal(t, "spells", ce.Existing)

	// The holder itself may re-allocate while live.
	_, err = a.Allocate("spells")
	assert.NoError(t, err)
}

func TestEquivalentNamesShareBinding(t *testing.T) {
	live := map[ID]bool{}
	a := NewAllocator(func(id ID) bool { return live[id] })
	id, err := a.Allocate("Main")
	require.NoError(t, err)
	live[id] = true

	again, err := a.Allocate(" Main")
	require.NoError(t, err)
	assert.Equal(t, id, again)
	cafe, err := a.Allocate("Caf\u00e9")
	require.NoError(t, err)
	live[cafe] = true
	_, err = a.Allocate("Cafe\u0301")
	assert.NoError(t, err)

	owner, _ := a.Owner(id)
	assert.Equal(t, "Main", owner)
	got, ok := a.Lookup("Main  ")
	require.True(t, ok)
	assert.Equal(t, id, got)
	a.Release(" Main")
	_, ok = a.Owner(id)
	assert.False(t, ok)
}

func TestReserveRejectsZero(t *testing.T) {
	a := NewAllocator(nil)
	assert.Error(t, a.Reserve(0, "zero"))
}

func TestReserveMovesName(t *testing.T) {
	a := NewAllocator(nil)
	require.NoError(t, a.Reserve(100, "menu"))
	require.NoError(t, a.Reserve(200, "menu"))
	_, ok := a.Owner(100)
	assert.False(t, ok)
	id, ok := a.Lookup("menu")
	require.True(t, ok)
	assert.Equal(t, ID(200), id)

	a.Release("menu")
	_, ok = a.Owner(200)
	assert.False(t, ok)
}

func TestSumIsPure(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("Sum(name) is a function of name", prop.ForAll(
		func(name string) bool {
			a := NewAllocator(nil)
			id, err := a.Allocate(name)
			return err == nil && id == Sum(name) && id != 0
		},
		gen.AnyString(),
	))
	properties.TestingRun(t)
}
