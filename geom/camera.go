package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the engine's up axis (Z-up).
var WorldUp = mgl32.Vec3{0, 0, 1}

// Camera is a perspective yaw/pitch camera. Screen coordinates are pixels
// with the origin at the bottom-left corner of the viewport and y growing up.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // radians
	Pitch    float32 // radians
	FovY     float32 // degrees
	Near     float32
	Far      float32
	Width    int
	Height   int
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 2, 20},
		FovY:     60.0,
		Near:     0.1,
		Far:      1000.0,
		Width:    width,
		Height:   height,
	}
}

const maxPitch = 89.0 * math.Pi / 180.0

func (c *Camera) Forward() mgl32.Vec3 {
	// Z-up: Forward in XY plane, Z for pitch
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
	}
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Forward().Cross(WorldUp).Normalize()
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

// LookAt points the camera at target. Pitch is clamped short of straight
// up/down so the view basis stays defined.
func (c *Camera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	pitch := math.Asin(float64(mgl32.Clamp(dir.Z(), -1, 1)))
	c.Pitch = float32(math.Max(-maxPitch, math.Min(maxPitch, pitch)))
	c.Yaw = float32(math.Atan2(float64(dir.X()), float64(-dir.Y())))
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	eye := c.Position
	return mgl32.LookAtV(eye, eye.Add(c.Forward()), WorldUp)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = float32(c.Width) / float32(c.Height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// WorldToScreen projects p into screen pixels. ok is false when p is behind
// the camera; points beside the viewport still project and report ok.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (mgl32.Vec2, bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1.0))
	if clip.W() <= 1e-6 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1.0 / clip.W())
	screen := mgl32.Vec2{
		(ndc.X() + 1) * 0.5 * float32(c.Width),
		(ndc.Y() + 1) * 0.5 * float32(c.Height),
	}
	if !IsFinite32(screen.X()) || !IsFinite32(screen.Y()) {
		return mgl32.Vec2{}, false
	}
	return screen, true
}

// InViewport reports whether a screen point lies within the viewport.
func (c *Camera) InViewport(s mgl32.Vec2) bool {
	return s.X() >= 0 && s.Y() >= 0 && s.X() <= float32(c.Width) && s.Y() <= float32(c.Height)
}

// ScreenToRay returns the world ray from the eye through a screen pixel.
func (c *Camera) ScreenToRay(x, y float32) Ray {
	nx := 2.0*x/float32(c.Width) - 1.0
	ny := 2.0*y/float32(c.Height) - 1.0

	inv := c.ViewProjection().Inv()
	near := inv.Mul4x1(mgl32.Vec4{nx, ny, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})
	nearW := near.Vec3().Mul(1.0 / near.W())
	farW := far.Vec3().Mul(1.0 / far.W())

	dir := farW.Sub(nearW)
	if dir.Len() == 0 || !IsFinite(dir) {
		return Ray{Origin: c.Position, Direction: c.Forward()}
	}
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// DistanceTo returns the distance from the eye to p.
func (c *Camera) DistanceTo(p mgl32.Vec3) float32 {
	return p.Sub(c.Position).Len()
}

// ExtractFrustum extracts the 6 planes of the frustum from the view-projection matrix.
// Returns planes in order: Left, Right, Bottom, Top, Near, Far.
// Plane is Ax + By + Cz + D = 0 with the normal pointing inside.
func ExtractFrustum(vp mgl32.Mat4) [6]mgl32.Vec4 {
	var planes [6]mgl32.Vec4
	for i := 0; i < 3; i++ {
		for k := 0; k < 4; k++ {
			planes[2*i][k] = vp.At(3, k) + vp.At(i, k)
			planes[2*i+1][k] = vp.At(3, k) - vp.At(i, k)
		}
	}

	for i := 0; i < 6; i++ {
		length := float32(math.Sqrt(float64(planes[i][0]*planes[i][0] + planes[i][1]*planes[i][1] + planes[i][2]*planes[i][2])))
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}
	return planes
}

// AABBInFrustum reports whether any part of the box can be inside the frustum.
func AABBInFrustum(aabb [2]mgl32.Vec3, planes [6]mgl32.Vec4) bool {
	for _, plane := range planes {
		// Most-inside corner along the plane normal.
		var p mgl32.Vec3
		for k := 0; k < 3; k++ {
			if plane[k] > 0 {
				p[k] = aabb[1][k]
			} else {
				p[k] = aabb[0][k]
			}
		}
		if plane[0]*p[0]+plane[1]*p[1]+plane[2]*p[2]+plane[3] < 0 {
			return false
		}
	}
	return true
}

// BoundsOf returns the axis aligned bounds of points.
func BoundsOf(points []mgl32.Vec3) [2]mgl32.Vec3 {
	inf := float32(1e20)
	lo := mgl32.Vec3{inf, inf, inf}
	hi := mgl32.Vec3{-inf, -inf, -inf}
	for _, p := range points {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return [2]mgl32.Vec3{lo, hi}
}
