package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayPlane(t *testing.T) {
	ground := Plane{Normal: mgl32.Vec3{0, 0, 1}, Point: mgl32.Vec3{0, 0, 0}}

	tests := []struct {
		name string
		ray  Ray
		ok   bool
		hit  mgl32.Vec3
	}{
		{
			name: "straight down",
			ray:  Ray{Origin: mgl32.Vec3{1, 2, 10}, Direction: mgl32.Vec3{0, 0, -1}},
			ok:   true,
			hit:  mgl32.Vec3{1, 2, 0},
		},
		{
			name: "parallel",
			ray:  Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{1, 0, 0}},
			ok:   false,
		},
		{
			name: "pointing away",
			ray:  Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, 1}},
			ok:   false,
		},
		{
			name: "grazing",
			ray:  Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{1, 0, -1e-7}.Normalize()},
			ok:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := RayPlane(tc.ray, ground)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, hit.ApproxEqualThreshold(tc.hit, 1e-5), "hit %v", hit)
			}
		})
	}
}

func TestClosestPoints(t *testing.T) {
	// Ray along -Y from (1, 5, 0) passes the X axis line at x=1.
	tRay, s, d := ClosestPoints(mgl32.Vec3{1, 5, 0}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 5, tRay, 1e-5)
	assert.InDelta(t, 1, s, 1e-5)
	assert.InDelta(t, 0, d, 1e-5)

	// Parallel lines fall back to the origin distance.
	_, _, d = ClosestPoints(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 3, d, 1e-5)
}

func TestPointInPolygon(t *testing.T) {
	square := []mgl32.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	skewed := []mgl32.Vec2{{0, 0}, {10, 2}, {12, 12}, {1, 9}}

	assert.True(t, PointInPolygon(mgl32.Vec2{5, 5}, square))
	assert.False(t, PointInPolygon(mgl32.Vec2{15, 5}, square))
	assert.False(t, PointInPolygon(mgl32.Vec2{-1, -1}, square))
	assert.True(t, PointInPolygon(mgl32.Vec2{6, 6}, skewed))
	assert.False(t, PointInPolygon(mgl32.Vec2{11, 1}, skewed))

	// Reversed winding gives the same answer.
	reversed := []mgl32.Vec2{{0, 10}, {10, 10}, {10, 0}, {0, 0}}
	assert.True(t, PointInPolygon(mgl32.Vec2{5, 5}, reversed))

	assert.False(t, PointInPolygon(mgl32.Vec2{0, 0}, square[:2]))
}

func TestDistanceToSegment(t *testing.T) {
	a, b := mgl32.Vec2{0, 0}, mgl32.Vec2{10, 0}
	assert.InDelta(t, 3, DistanceToSegment(mgl32.Vec2{5, 3}, a, b), 1e-5)
	assert.InDelta(t, 5, DistanceToSegment(mgl32.Vec2{13, 4}, a, b), 1e-5)
	assert.InDelta(t, 5, DistanceToSegment(mgl32.Vec2{3, 4}, a, a), 1e-5)
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(mgl32.Vec2{10, 2}, mgl32.Vec2{4, 8})
	assert.Equal(t, mgl32.Vec2{4, 2}, r.Min)
	assert.Equal(t, mgl32.Vec2{10, 8}, r.Max)

	same := RectFromCorners(mgl32.Vec2{4, 8}, mgl32.Vec2{10, 2})
	assert.Equal(t, r, same)
}

func TestViewOctant(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{1, -1, 1}, ViewOctant(mgl32.Vec3{5, -5, 5}, mgl32.Vec3{}, mgl32.QuatIdent()))

	// A handle turned 180 degrees around Z sees the same eye from the other side.
	rot := mgl32.QuatRotate(math.Pi, mgl32.Vec3{0, 0, 1})
	assert.Equal(t, mgl32.Vec3{-1, 1, 1}, ViewOctant(mgl32.Vec3{5, -5, 5}, mgl32.Vec3{}, rot))
}

func TestIsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	assert.True(t, IsFinite(mgl32.Vec3{1, 2, 3}))
	assert.False(t, IsFinite(mgl32.Vec3{nan, 0, 0}))
	assert.False(t, IsFinite(mgl32.Vec3{0, inf, 0}))
}
