package sceneedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sceneedit/geom"
)

const flyMaxPitch = 89.0

// FlyCamera steers the editor camera in fly mode. W/S move along the view
// direction, A/D strafe, Space and Control rise and sink along world up.
// Holding the right mouse button turns the view.
type FlyCamera struct {
	cam         *geom.Camera
	Speed       float32
	Sensitivity float32
}

func NewFlyCamera(cfg Config, cam *geom.Camera) *FlyCamera {
	return &FlyCamera{cam: cam, Speed: cfg.FlySpeed, Sensitivity: cfg.FlySensitivity}
}

// Update applies one frame of movement and returns true when the camera moved
// or turned.
func (f *FlyCamera) Update(in *Input) bool {
	changed := false

	if in.Pressed[MouseButtonRight] && (in.MouseDeltaX != 0 || in.MouseDeltaY != 0) {
		f.cam.Yaw -= mgl32.DegToRad(float32(in.MouseDeltaX) * f.Sensitivity)
		pitch := mgl32.RadToDeg(f.cam.Pitch) + float32(in.MouseDeltaY)*f.Sensitivity
		pitch = mgl32.Clamp(pitch, -flyMaxPitch, flyMaxPitch)
		f.cam.Pitch = mgl32.DegToRad(pitch)
		f.cam.Yaw = float32(math.Remainder(float64(f.cam.Yaw), 2*math.Pi))
		changed = true
	}

	dt := float32(in.Dt)
	if dt <= 0 {
		return changed
	}

	var move mgl32.Vec3
	forward, right := f.cam.Forward(), f.cam.Right()
	if in.Pressed[KeyW] {
		move = move.Add(forward)
	}
	if in.Pressed[KeyS] {
		move = move.Sub(forward)
	}
	if in.Pressed[KeyD] {
		move = move.Add(right)
	}
	if in.Pressed[KeyA] {
		move = move.Sub(right)
	}
	if in.Pressed[KeySpace] {
		move = move.Add(geom.WorldUp)
	}
	if in.Pressed[KeyControl] {
		move = move.Sub(geom.WorldUp)
	}
	if move.Len() > 0 {
		f.cam.Position = f.cam.Position.Add(move.Normalize().Mul(f.Speed * dt))
		changed = true
	}
	return changed
}
