package sceneedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func flyFrame(f *FlyCamera, in *Input, dt float64, keys ...int) bool {
	in.NewFrame()
	for _, k := range []int{KeyW, KeyA, KeyS, KeyD, KeySpace, KeyControl, MouseButtonRight} {
		in.SetKey(k, false)
	}
	for _, k := range keys {
		in.SetKey(k, true)
	}
	in.Dt = dt
	return f.Update(in)
}

func TestFlyCameraMoves(t *testing.T) {
	tests := []struct {
		name string
		keys []int
		want mgl32.Vec3
	}{
		{"forward", []int{KeyW}, mgl32.Vec3{0, -17.5, 0}},
		{"back", []int{KeyS}, mgl32.Vec3{0, -22.5, 0}},
		{"strafe right", []int{KeyD}, mgl32.Vec3{2.5, -20, 0}},
		{"rise", []int{KeySpace}, mgl32.Vec3{0, -20, 2.5}},
		{"sink", []int{KeyControl}, mgl32.Vec3{0, -20, -2.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := frontCamera()
			f := NewFlyCamera(DefaultConfig(), cam)
			assert.True(t, flyFrame(f, NewInput(800, 600), 0.5, tt.keys...))
			assert.True(t, cam.Position.ApproxEqualThreshold(tt.want, 1e-4), "got %v", cam.Position)
		})
	}
}

func TestFlyCameraDiagonalIsNotFaster(t *testing.T) {
	cam := frontCamera()
	f := NewFlyCamera(DefaultConfig(), cam)
	flyFrame(f, NewInput(800, 600), 1, KeyW, KeyD)
	moved := cam.Position.Sub(mgl32.Vec3{0, -20, 0})
	assert.InDelta(t, 5, moved.Len(), 1e-4)
}

func TestFlyCameraIdle(t *testing.T) {
	cam := frontCamera()
	f := NewFlyCamera(DefaultConfig(), cam)
	in := NewInput(800, 600)

	assert.False(t, flyFrame(f, in, 0.5, KeyA, KeyD), "opposite keys cancel")
	assert.False(t, flyFrame(f, in, 0, KeyW), "no time, no motion")
	assert.Equal(t, mgl32.Vec3{0, -20, 0}, cam.Position)
}

func TestFlyCameraLook(t *testing.T) {
	cam := frontCamera()
	f := NewFlyCamera(DefaultConfig(), cam)
	in := NewInput(800, 600)

	// Mouse motion without the right button does not turn.
	in.NewFrame()
	in.MoveMouse(100, 0)
	assert.False(t, f.Update(in))
	assert.InDelta(t, 0, cam.Forward().X(), 1e-5)

	in.NewFrame()
	in.SetKey(MouseButtonRight, true)
	in.MoveMouse(200, 0)
	assert.True(t, f.Update(in))
	assert.Greater(t, cam.Forward().X(), float32(0), "dragging right turns right")

	in.NewFrame()
	in.MoveMouse(200, 100000)
	f.Update(in)
	assert.InDelta(t, mgl32.DegToRad(89), cam.Pitch, 1e-4)
}
