package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is the set of points p with (p - Point) . Normal == 0.
type Plane struct {
	Normal mgl32.Vec3
	Point  mgl32.Vec3
}

// parallelEpsilon is the smallest |dir . normal| still treated as a crossing.
const parallelEpsilon = 1e-5

// RayPlane intersects r with p. ok is false when the ray runs parallel to the
// plane, points away from it, or the hit is not a finite point.
func RayPlane(r Ray, p Plane) (hit mgl32.Vec3, ok bool) {
	denom := r.Direction.Dot(p.Normal)
	if math.Abs(float64(denom)) < parallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 || !IsFinite32(t) {
		return mgl32.Vec3{}, false
	}
	hit = r.At(t)
	if !IsFinite(hit) {
		return mgl32.Vec3{}, false
	}
	return hit, true
}

// ClosestPoints returns the ray parameter t, the line parameter s and the
// distance between the closest points of ray (ro, rd) and line (ao, ad).
func ClosestPoints(ro, rd, ao, ad mgl32.Vec3) (float32, float32, float32) {
	r := ro.Sub(ao)
	a := rd.Dot(rd)
	b := rd.Dot(ad)
	e := ad.Dot(ad)
	f := ad.Dot(r)

	det := a*e - b*b
	if det < 1e-6 {
		return 0, 0, r.Len()
	}

	c := rd.Dot(r)
	t := (b*f - c*e) / det
	s := (a*f - b*c) / det

	p1 := ro.Add(rd.Mul(t))
	p2 := ao.Add(ad.Mul(s))
	return t, s, p1.Sub(p2).Len()
}

func IsFinite32(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func IsFinite(v mgl32.Vec3) bool {
	return IsFinite32(v[0]) && IsFinite32(v[1]) && IsFinite32(v[2])
}

// ViewOctant returns, for each local axis of a frame at center with rotation
// rot, +1 when eye lies on the positive side of that axis and -1 otherwise.
func ViewOctant(eye, center mgl32.Vec3, rot mgl32.Quat) mgl32.Vec3 {
	local := rot.Conjugate().Rotate(eye.Sub(center))
	var octant mgl32.Vec3
	for i := 0; i < 3; i++ {
		if local[i] >= 0 {
			octant[i] = 1
		} else {
			octant[i] = -1
		}
	}
	return octant
}
