package sceneedit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sceneedit/geom"
)

// ScreenBox is an object's screen-space bounds. Screen y grows upward, so
// TopLeft holds (minX, maxY) and BottomRight holds (maxX, minY).
type ScreenBox struct {
	TopLeft     mgl32.Vec2
	BottomRight mgl32.Vec2
	// Depth is the distance from the camera to the nearest vertex.
	Depth float32
}

// Inside reports whether the box lies fully inside r.
func (b ScreenBox) Inside(r geom.Rect) bool {
	return b.TopLeft.X() > r.Min.X() &&
		b.TopLeft.Y() < r.Max.Y() &&
		b.BottomRight.X() < r.Max.X() &&
		b.BottomRight.Y() > r.Min.Y()
}

// Contains reports whether the screen point p is inside the box.
func (b ScreenBox) Contains(p mgl32.Vec2) bool {
	return p.X() >= b.TopLeft.X() && p.X() <= b.BottomRight.X() &&
		p.Y() >= b.BottomRight.Y() && p.Y() <= b.TopLeft.Y()
}

// BoundingBoxCache keeps screen boxes of visible selectable objects. An
// object with any vertex off screen has no entry at all, so it cannot be
// marquee selected until it is fully in view.
type BoundingBoxCache struct {
	scene Scene
	cam   *geom.Camera
	boxes map[ObjectId]ScreenBox
}

func NewBoundingBoxCache(scene Scene, cam *geom.Camera) *BoundingBoxCache {
	return &BoundingBoxCache{scene: scene, cam: cam, boxes: make(map[ObjectId]ScreenBox)}
}

// Rebuild drops every entry and recomputes boxes for ids.
func (c *BoundingBoxCache) Rebuild(ids []ObjectId) {
	clear(c.boxes)
	c.Refresh(ids)
}

// Refresh recomputes the entries for ids only.
func (c *BoundingBoxCache) Refresh(ids []ObjectId) {
	planes := geom.ExtractFrustum(c.cam.ViewProjection())
	for _, id := range ids {
		obj, ok := c.scene.Object(id)
		if !ok {
			delete(c.boxes, id)
			continue
		}
		if box, ok := c.computeBox(obj, planes); ok {
			c.boxes[id] = box
		} else {
			delete(c.boxes, id)
		}
	}
}

func (c *BoundingBoxCache) Remove(ids []ObjectId) {
	for _, id := range ids {
		delete(c.boxes, id)
	}
}

func (c *BoundingBoxCache) Box(id ObjectId) (ScreenBox, bool) {
	b, ok := c.boxes[id]
	return b, ok
}

func (c *BoundingBoxCache) Len() int { return len(c.boxes) }

// PickAt returns the nearest cached object whose box contains p.
func (c *BoundingBoxCache) PickAt(p mgl32.Vec2) (ObjectId, bool) {
	var best ObjectId
	found := false
	bestDepth := float32(0)
	for id, box := range c.boxes {
		if !box.Contains(p) {
			continue
		}
		if !found || box.Depth < bestDepth || (box.Depth == bestDepth && id < best) {
			best, bestDepth, found = id, box.Depth, true
		}
	}
	return best, found
}

func (c *BoundingBoxCache) computeBox(obj Transformable, planes [6]mgl32.Vec4) (ScreenBox, bool) {
	r, ok := obj.(Renderable)
	if !ok {
		return ScreenBox{}, false
	}
	verts := r.WorldVertices()
	if len(verts) == 0 {
		return ScreenBox{}, false
	}
	if !geom.AABBInFrustum(geom.BoundsOf(verts), planes) {
		return ScreenBox{}, false
	}

	inf := float32(1e20)
	lo := mgl32.Vec2{inf, inf}
	hi := mgl32.Vec2{-inf, -inf}
	depth := inf
	for _, v := range verts {
		s, ok := c.cam.WorldToScreen(v)
		if !ok || !c.cam.InViewport(s) {
			return ScreenBox{}, false
		}
		lo = mgl32.Vec2{min(lo.X(), s.X()), min(lo.Y(), s.Y())}
		hi = mgl32.Vec2{max(hi.X(), s.X()), max(hi.Y(), s.Y())}
		depth = min(depth, c.cam.DistanceTo(v))
	}
	return ScreenBox{
		TopLeft:     mgl32.Vec2{lo.X(), hi.Y()},
		BottomRight: mgl32.Vec2{hi.X(), lo.Y()},
		Depth:       depth,
	}, true
}
