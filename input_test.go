package sceneedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputKeyEdges(t *testing.T) {
	in := NewInput(800, 600)
	assert.True(t, in.Focused)

	in.NewFrame()
	in.SetKey(KeyW, true)
	assert.True(t, in.Pressed[KeyW])
	assert.True(t, in.JustPressed[KeyW])

	in.NewFrame()
	in.SetKey(KeyW, true)
	assert.True(t, in.Pressed[KeyW])
	assert.False(t, in.JustPressed[KeyW], "held keys only press once")

	in.NewFrame()
	in.SetKey(KeyW, false)
	assert.False(t, in.Pressed[KeyW])
	assert.True(t, in.JustReleased[KeyW])

	in.NewFrame()
	assert.False(t, in.JustReleased[KeyW])
}

func TestInputModifiers(t *testing.T) {
	in := NewInput(800, 600)
	in.SetKey(KeyShift, true)
	assert.True(t, in.Shift())
	assert.False(t, in.Control())
	in.SetKey(KeyControl, true)
	assert.True(t, in.Control())
}

func TestInputMouseDelta(t *testing.T) {
	in := NewInput(800, 600)
	in.NewFrame()
	in.MoveMouse(100, 50)
	in.NewFrame()
	in.MoveMouse(110, 45)
	assert.Equal(t, 10.0, in.MouseDeltaX)
	assert.Equal(t, -5.0, in.MouseDeltaY)

	in.NewFrame()
	assert.Zero(t, in.MouseDeltaX)
	assert.Zero(t, in.MouseDeltaY)
	assert.Equal(t, 110.0, in.MouseX)
}
