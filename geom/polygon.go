package geom

import "github.com/go-gl/mathgl/mgl32"

// PointInPolygon reports whether p lies inside poly using the even-odd rule.
// The polygon may be given in either winding order.
func PointInPolygon(p mgl32.Vec2, poly []mgl32.Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a.Y() > p.Y()) != (b.Y() > p.Y()) {
			x := (b.X()-a.X())*(p.Y()-a.Y())/(b.Y()-a.Y()) + a.X()
			if p.X() < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// DistanceToSegment returns the distance from p to the segment [a, b].
func DistanceToSegment(p, a, b mgl32.Vec2) float32 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Len()
	}
	t := mgl32.Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// Rect is an axis aligned screen rectangle.
type Rect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// RectFromCorners normalizes two arbitrary corners into a Rect.
func RectFromCorners(a, b mgl32.Vec2) Rect {
	return Rect{
		Min: mgl32.Vec2{min(a.X(), b.X()), min(a.Y(), b.Y())},
		Max: mgl32.Vec2{max(a.X(), b.X()), max(a.Y(), b.Y())},
	}
}
