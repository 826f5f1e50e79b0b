package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlinkerStartsVisible(t *testing.T) {
	b := NewBlinker(nil)
	assert.False(t, b.Running())
	assert.False(t, b.Visible())

	b.Start()
	defer b.Stop()
	assert.True(t, b.Running())
	assert.True(t, b.Visible())
}

func TestBlinkerStopHidesAndIsIdempotent(t *testing.T) {
	b := NewBlinker(nil)
	b.Start()
	b.Stop()
	assert.False(t, b.Running())
	assert.False(t, b.Visible())

	assert.NotPanics(t, b.Stop)
}

func TestBlinkerFlipTogglesAndNotifies(t *testing.T) {
	var flips int
	b := NewBlinker(func() { flips++ })
	b.Start()
	defer b.Stop()

	b.flip()
	assert.False(t, b.Visible())
	b.flip()
	assert.True(t, b.Visible())
	assert.Equal(t, 2, flips)
}

func TestBlinkerFlipAfterStopIsNoop(t *testing.T) {
	var flips int
	b := NewBlinker(func() { flips++ })
	b.Start()
	b.Stop()

	b.flip()
	assert.False(t, b.Visible())
	assert.Zero(t, flips)
}

func TestBlinkerRestartResetsPhase(t *testing.T) {
	b := NewBlinker(nil)
	b.Start()
	b.flip() // hidden
	b.Start()
	defer b.Stop()
	assert.True(t, b.Visible(), "restart begins a fresh visible phase")
}
