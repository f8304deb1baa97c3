package sceneedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sceneedit/geom"
)

// HandleDelta is what a handle move produced this frame. It is one of
// TranslateDelta, RotateDelta or ScaleDelta.
type HandleDelta interface {
	Tool() ToolMode
}

type TranslateDelta struct {
	Axes DragAxisSet
	// Displacement is this frame's world move, Total the move since the drag began.
	Displacement mgl32.Vec3
	Total        mgl32.Vec3
}

type RotateDelta struct {
	Axes DragAxisSet
	Axis mgl32.Vec3 // world axis
	// Angle is this frame's step, TotalAngle the angle since the drag began. Radians.
	Angle      float32
	TotalAngle float32
}

type ScaleDelta struct {
	Axes DragAxisSet
	// Factor is the per-axis multiplier accumulated since the drag began.
	Factor mgl32.Vec3
}

func (TranslateDelta) Tool() ToolMode { return ToolTranslate }
func (RotateDelta) Tool() ToolMode    { return ToolRotate }
func (ScaleDelta) Tool() ToolMode     { return ToolScale }

// handleDrag is the per-tool drag state. Each implementation keeps only what
// its tool needs; update returns ok=false for frames that must be ignored.
type handleDrag interface {
	axes() DragAxisSet
	update(h *TransformHandle, mouse, delta mgl32.Vec2) (HandleDelta, bool)
}

// screenAxis projects the world direction dir at p onto the screen and
// returns the normalized screen direction.
func screenAxis(cam *geom.Camera, p, dir mgl32.Vec3) (mgl32.Vec2, bool) {
	s0, ok0 := cam.WorldToScreen(p)
	s1, ok1 := cam.WorldToScreen(p.Add(dir))
	if !ok0 || !ok1 {
		return mgl32.Vec2{}, false
	}
	v := s1.Sub(s0)
	if v.Len() < 1e-4 {
		return mgl32.Vec2{}, false
	}
	return v.Normalize(), true
}

type translateDrag struct {
	set    DragAxisSet
	origin mgl32.Vec3
	axis   mgl32.Vec3 // single axis drags
	plane  geom.Plane // planar drags
	offset mgl32.Vec3
}

func newTranslateDrag(h *TransformHandle, set DragAxisSet, mouse mgl32.Vec2) *translateDrag {
	d := &translateDrag{set: set, origin: h.position}
	if set.Count() == 1 {
		d.axis = h.rotation.Rotate(unitAxes[set.Axes()[0]])
		return d
	}
	d.plane = geom.Plane{Normal: h.rotation.Rotate(unitAxes[set.Missing()]), Point: h.position}
	if hit, ok := geom.RayPlane(h.cam.ScreenToRay(mouse.X(), mouse.Y()), d.plane); ok {
		d.offset = hit.Sub(h.position)
	}
	return d
}

func (d *translateDrag) axes() DragAxisSet { return d.set }

func (d *translateDrag) update(h *TransformHandle, mouse, delta mgl32.Vec2) (HandleDelta, bool) {
	var next mgl32.Vec3
	if d.set.Count() == 1 {
		dir, ok := screenAxis(h.cam, h.position, d.axis)
		if !ok {
			return nil, false
		}
		// Signed scalar projection so the handle follows the cursor.
		amount := delta.Dot(dir) * h.cfg.TranslateSpeed * h.cam.DistanceTo(h.position)
		next = h.position.Add(d.axis.Mul(amount))
	} else {
		hit, ok := geom.RayPlane(h.cam.ScreenToRay(mouse.X(), mouse.Y()), d.plane)
		if !ok {
			return nil, false
		}
		next = hit.Sub(d.offset)
	}

	if !geom.IsFinite(next) {
		return nil, false
	}
	next = clampDistance(next, h.cfg.MaxDistance)
	disp := next.Sub(h.position)
	h.position = next
	return TranslateDelta{Axes: d.set, Displacement: disp, Total: next.Sub(d.origin)}, true
}

// clampDistance snaps each coordinate beyond ±limit onto ±limit.
func clampDistance(p mgl32.Vec3, limit float32) mgl32.Vec3 {
	for i := 0; i < 3; i++ {
		if p[i] > limit {
			p[i] = limit
		} else if p[i] < -limit {
			p[i] = -limit
		}
	}
	return p
}

// edgeOnThreshold is the |axis . view| below which the rotation plane is
// treated as seen edge-on.
const edgeOnThreshold = 0.1

type rotateDrag struct {
	set           DragAxisSet
	axis          mgl32.Vec3
	tangent       mgl32.Vec2
	startRotation mgl32.Quat
	angle         float32
}

func newRotateDrag(h *TransformHandle, hit handleHit) *rotateDrag {
	axis := h.rotation.Rotate(unitAxes[hit.axes.Axes()[0]])
	d := &rotateDrag{set: hit.axes, axis: axis, startRotation: h.rotation}

	view := h.position.Sub(h.cam.Position)
	if view.Len() > 0 {
		view = view.Normalize()
	}
	fallback := axis.Cross(view)

	world := axis.Cross(hit.point.Sub(h.position))
	if float32(math.Abs(float64(axis.Dot(view)))) < edgeOnThreshold || world.Len() < 1e-6 {
		world = fallback
	}
	step := h.armLength() * 0.1
	if world.Len() > 0 {
		world = world.Normalize().Mul(step)
	}
	t, ok := screenAxis(h.cam, hit.point, world)
	if !ok && fallback.Len() > 0 {
		t, ok = screenAxis(h.cam, hit.point, fallback.Normalize().Mul(step))
	}
	if !ok {
		t = mgl32.Vec2{1, 0}
	}
	d.tangent = t
	return d
}

func (d *rotateDrag) axes() DragAxisSet { return d.set }

func (d *rotateDrag) update(h *TransformHandle, mouse, delta mgl32.Vec2) (HandleDelta, bool) {
	step := mgl32.DegToRad(delta.Dot(d.tangent) * h.cfg.RotateSpeed)
	if !geom.IsFinite32(step) {
		return nil, false
	}
	total := d.angle + step
	// Always from the drag-start orientation so frames do not compound.
	rot := mgl32.QuatRotate(total, d.axis).Mul(d.startRotation).Normalize()
	if !geom.IsFinite32(rot.W) || !geom.IsFinite(rot.V) {
		return nil, false
	}
	d.angle = total
	h.rotation = rot
	return RotateDelta{Axes: d.set, Axis: d.axis, Angle: step, TotalAngle: total}, true
}

type scaleDrag struct {
	set      DragAxisSet
	axis     mgl32.Vec3 // single axis drags
	accum    mgl32.Vec3
	lastDist float32
}

func newScaleDrag(h *TransformHandle, set DragAxisSet, mouse mgl32.Vec2) *scaleDrag {
	d := &scaleDrag{set: set}
	if set.Count() == 1 {
		d.axis = h.rotation.Rotate(unitAxes[set.Axes()[0]])
		return d
	}
	if center, ok := h.cam.WorldToScreen(h.position); ok {
		d.lastDist = mouse.Sub(center).Len()
	}
	return d
}

func (d *scaleDrag) axes() DragAxisSet { return d.set }

func (d *scaleDrag) update(h *TransformHandle, mouse, delta mgl32.Vec2) (HandleDelta, bool) {
	if d.set.Count() == 1 {
		dir, ok := screenAxis(h.cam, h.position, d.axis)
		if !ok {
			return nil, false
		}
		d.accum[d.set.Axes()[0]] += delta.Dot(dir) * h.cfg.ScaleSpeed
	} else {
		center, ok := h.cam.WorldToScreen(h.position)
		if !ok {
			return nil, false
		}
		dist := mouse.Sub(center).Len()
		change := (dist - d.lastDist) * h.cfg.ScaleSpeed
		d.lastDist = dist
		for i := 0; i < 3; i++ {
			d.accum[i] += change
		}
	}
	return ScaleDelta{Axes: d.set, Factor: d.factor(h.cfg.MinScaleFactor)}, true
}

func (d *scaleDrag) factor(minFactor float32) mgl32.Vec3 {
	var f mgl32.Vec3
	for i := 0; i < 3; i++ {
		f[i] = max(1+d.accum[i], minFactor)
	}
	return f
}
