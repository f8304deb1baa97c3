package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frontCamera() *Camera {
	cam := NewCamera(800, 600)
	cam.Position = mgl32.Vec3{0, -20, 0}
	cam.LookAt(mgl32.Vec3{})
	return cam
}

func TestCameraLookAt(t *testing.T) {
	cam := frontCamera()
	assert.True(t, cam.Forward().ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5), "forward %v", cam.Forward())
	assert.True(t, cam.Right().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5), "right %v", cam.Right())
	assert.True(t, cam.Up().ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5), "up %v", cam.Up())

	// Straight down clamps short of the pole.
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.LookAt(mgl32.Vec3{})
	assert.Less(t, float64(cam.Pitch), -1.5)
	assert.Greater(t, float64(cam.Pitch), -math.Pi/2)
}

func TestWorldToScreen(t *testing.T) {
	cam := frontCamera()

	center, ok := cam.WorldToScreen(mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 400, center.X(), 1e-3)
	assert.InDelta(t, 300, center.Y(), 1e-3)

	right, ok := cam.WorldToScreen(mgl32.Vec3{1, 0, 0})
	require.True(t, ok)
	assert.Greater(t, right.X(), center.X())

	up, ok := cam.WorldToScreen(mgl32.Vec3{0, 0, 1})
	require.True(t, ok)
	assert.Greater(t, up.Y(), center.Y(), "screen y grows upward")

	_, ok = cam.WorldToScreen(mgl32.Vec3{0, -40, 0})
	assert.False(t, ok, "behind the eye")

	far, ok := cam.WorldToScreen(mgl32.Vec3{500, 0, 0})
	require.True(t, ok)
	assert.False(t, cam.InViewport(far))
	assert.True(t, cam.InViewport(center))
}

func TestScreenToRayRoundTrip(t *testing.T) {
	cam := frontCamera()
	points := []mgl32.Vec3{{0, 0, 0}, {3, 2, -1}, {-4, 5, 2}}
	for _, p := range points {
		s, ok := cam.WorldToScreen(p)
		require.True(t, ok)
		ray := cam.ScreenToRay(s.X(), s.Y())
		// Distance from p to the ray line.
		toP := p.Sub(ray.Origin)
		perp := toP.Sub(ray.Direction.Mul(toP.Dot(ray.Direction))).Len()
		assert.InDelta(t, 0, perp, 1e-2, "point %v ray %v", p, ray)
	}
}

func TestFrustumCulling(t *testing.T) {
	// Camera at origin looking down -Z, 90 deg FOV, near 1, far 100.
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 1.0, 100.0)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	planes := ExtractFrustum(proj.Mul4(view))

	tests := []struct {
		name     string
		aabbMin  mgl32.Vec3
		aabbMax  mgl32.Vec3
		expected bool
	}{
		{"Inside (center)", mgl32.Vec3{-1, -1, -10}, mgl32.Vec3{1, 1, -5}, true},
		{"Outside (Left)", mgl32.Vec3{-20, -1, -10}, mgl32.Vec3{-15, 1, -5}, false},
		{"Outside (Right)", mgl32.Vec3{15, -1, -10}, mgl32.Vec3{20, 1, -5}, false},
		{"Outside (Behind/Near)", mgl32.Vec3{-1, -1, 2}, mgl32.Vec3{1, 1, 5}, false},
		{"Outside (Far)", mgl32.Vec3{-1, -1, -200}, mgl32.Vec3{1, 1, -150}, false},
		{"Intersecting (Left Plane)", mgl32.Vec3{-15, -1, -10}, mgl32.Vec3{-5, 1, -5}, true},
		{"Encompassing (Huge box)", mgl32.Vec3{-1000, -1000, -1000}, mgl32.Vec3{1000, 1000, 1000}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			visible := AABBInFrustum([2]mgl32.Vec3{tc.aabbMin, tc.aabbMax}, planes)
			assert.Equal(t, tc.expected, visible)
		})
	}
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([]mgl32.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 7}})
	assert.Equal(t, mgl32.Vec3{-1, -2, 0}, b[0])
	assert.Equal(t, mgl32.Vec3{1, 4, 7}, b[1])
}
