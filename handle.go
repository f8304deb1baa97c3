package sceneedit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sceneedit/geom"
)

type HandleEventKind int

const (
	HandleBegin HandleEventKind = iota
	HandleMove
	HandleFinish
	// HandleAbort ends a drag that was discarded rather than released.
	HandleAbort
	HandleToolChanged
)

type HandleEvent struct {
	Kind HandleEventKind
	Tool ToolMode
	Axes DragAxisSet
	// Delta is set on HandleMove only.
	Delta HandleDelta
}

// handleHit is the result of a successful hit test.
type handleHit struct {
	axes DragAxisSet
	// point is the world point on a rotation ring under the cursor.
	point mgl32.Vec3
}

// TransformHandle is the on-screen translate/rotate/scale manipulator. It
// knows nothing about the selection; listeners turn its events into edits.
type TransformHandle struct {
	cfg   Config
	cam   *geom.Camera
	modes *ModeController
	log   Logger

	position mgl32.Vec3
	rotation mgl32.Quat
	tool     ToolMode
	hidden   bool

	drag     handleDrag
	geometry HandleGeometry

	listeners []func(HandleEvent)
}

func NewTransformHandle(cfg Config, cam *geom.Camera, modes *ModeController, log Logger) *TransformHandle {
	h := &TransformHandle{
		cfg:      cfg,
		cam:      cam,
		modes:    modes,
		log:      orNop(log),
		rotation: mgl32.QuatIdent(),
		hidden:   true,
	}
	h.rebuildGeometry()
	return h
}

// Listen registers fn for every handle event. Listeners run in registration
// order; for each drag they see Begin, then Move per frame, then Finish or Abort.
func (h *TransformHandle) Listen(fn func(HandleEvent)) {
	h.listeners = append(h.listeners, fn)
}

func (h *TransformHandle) emit(ev HandleEvent) {
	for _, fn := range h.listeners {
		fn(ev)
	}
}

func (h *TransformHandle) Position() mgl32.Vec3 { return h.position }
func (h *TransformHandle) Rotation() mgl32.Quat { return h.rotation }
func (h *TransformHandle) Tool() ToolMode       { return h.tool }
func (h *TransformHandle) Hidden() bool         { return h.hidden }
func (h *TransformHandle) Dragging() bool       { return h.drag != nil }

// DragAxes returns the axes of the active drag, AxisNone when idle.
func (h *TransformHandle) DragAxes() DragAxisSet {
	if h.drag == nil {
		return AxisNone
	}
	return h.drag.axes()
}

// Scale is the multiplier accumulated by an active scale drag, unit otherwise.
func (h *TransformHandle) Scale() mgl32.Vec3 {
	if d, ok := h.drag.(*scaleDrag); ok {
		return d.factor(h.cfg.MinScaleFactor)
	}
	return mgl32.Vec3{1, 1, 1}
}

// Geometry returns the handle's current world-space shape.
func (h *TransformHandle) Geometry() HandleGeometry {
	return h.geometry
}

func (h *TransformHandle) SetPosition(p mgl32.Vec3) {
	if !geom.IsFinite(p) {
		return
	}
	h.position = p
	h.rebuildGeometry()
}

func (h *TransformHandle) SetRotation(q mgl32.Quat) {
	h.rotation = q.Normalize()
	h.rebuildGeometry()
}

// SetTool switches tools, discarding any drag in progress.
func (h *TransformHandle) SetTool(t ToolMode) {
	if t == h.tool {
		return
	}
	h.CancelDrag()
	h.tool = t
	h.rebuildGeometry()
	h.log.Debugf("handle tool -> %s", t)
	h.emit(HandleEvent{Kind: HandleToolChanged, Tool: t})
}

func (h *TransformHandle) Show() {
	if !h.hidden {
		return
	}
	h.hidden = false
	h.rebuildGeometry()
}

// Hide hides the handle, aborting any drag in progress.
func (h *TransformHandle) Hide() {
	if h.hidden {
		return
	}
	h.CancelDrag()
	h.hidden = true
}

// armLength keeps the handle at a roughly constant size on screen.
func (h *TransformHandle) armLength() float32 {
	d := h.cam.DistanceTo(h.position)
	if d < h.cam.Near {
		d = h.cam.Near
	}
	return d * h.cfg.HandleScreenSize
}

func (h *TransformHandle) rebuildGeometry() {
	h.geometry = buildHandleGeometry(geometryParams{
		tool:         h.tool,
		origin:       h.position,
		rotation:     h.rotation,
		length:       h.armLength(),
		quadFraction: h.cfg.PlaneQuadFraction,
		octant:       geom.ViewOctant(h.cam.Position, h.position, h.rotation),
		segments:     h.cfg.RingSegments,
		scale:        h.Scale(),
	})
}

// Update runs one frame of handle input. It returns true when the handle
// owns the mouse this frame, in which case the marquee must not see it.
func (h *TransformHandle) Update(in *Input) bool {
	if h.hidden {
		return false
	}
	mouse := mgl32.Vec2{float32(in.MouseX), float32(in.MouseY)}

	if h.drag != nil {
		delta := mgl32.Vec2{float32(in.MouseDeltaX), float32(in.MouseDeltaY)}
		released := !in.Pressed[MouseButtonLeft]
		// The release frame still carries the last motion.
		if !released || delta.X() != 0 || delta.Y() != 0 {
			h.move(mouse, delta)
		}
		if released {
			h.EndDrag()
		}
		return true
	}

	if !h.modes.EditInputEnabled() || !in.JustPressed[MouseButtonLeft] {
		return false
	}
	if h.modes.CursorOwner() != CursorFree {
		return false
	}
	hit := h.hitTest(mouse)
	if hit.axes == AxisNone {
		return false
	}
	if !h.modes.CaptureCursor(CursorHandle) {
		return false
	}
	h.begin(hit, mouse)
	return true
}

func (h *TransformHandle) begin(hit handleHit, mouse mgl32.Vec2) {
	switch h.tool {
	case ToolTranslate:
		h.drag = newTranslateDrag(h, hit.axes, mouse)
	case ToolRotate:
		h.drag = newRotateDrag(h, hit)
	case ToolScale:
		h.drag = newScaleDrag(h, hit.axes, mouse)
	}
	h.log.Debugf("handle drag begin tool=%s axes=%s", h.tool, hit.axes)
	h.emit(HandleEvent{Kind: HandleBegin, Tool: h.tool, Axes: hit.axes})
}

func (h *TransformHandle) move(mouse, delta mgl32.Vec2) {
	d, ok := h.drag.update(h, mouse, delta)
	if !ok {
		return
	}
	h.emit(HandleEvent{Kind: HandleMove, Tool: h.tool, Axes: h.drag.axes(), Delta: d})
	if h.drag == nil {
		return
	}
	h.rebuildGeometry()
}

// EndDrag finishes the active drag as if the mouse was released.
func (h *TransformHandle) EndDrag() {
	if h.drag == nil {
		return
	}
	axes := h.drag.axes()
	h.drag = nil
	h.rebuildGeometry()
	h.modes.ReleaseCursor()
	h.log.Debugf("handle drag finish tool=%s axes=%s", h.tool, axes)
	h.emit(HandleEvent{Kind: HandleFinish, Tool: h.tool, Axes: axes})
}

// CancelDrag drops the active drag without a Finish event.
func (h *TransformHandle) CancelDrag() {
	if h.drag == nil {
		return
	}
	axes := h.drag.axes()
	h.drag = nil
	h.rebuildGeometry()
	h.modes.ReleaseCursor()
	h.log.Debugf("handle drag aborted tool=%s axes=%s", h.tool, axes)
	h.emit(HandleEvent{Kind: HandleAbort, Tool: h.tool, Axes: axes})
}

// CheckHandleActivated hit tests the handle at a screen point and returns
// the axes that would be dragged, AxisNone on a miss.
func (h *TransformHandle) CheckHandleActivated(mouse mgl32.Vec2) DragAxisSet {
	if h.hidden {
		return AxisNone
	}
	return h.hitTest(mouse).axes
}

func (h *TransformHandle) hitTest(mouse mgl32.Vec2) handleHit {
	// The camera may have moved since the last rebuild.
	h.rebuildGeometry()
	if h.tool == ToolRotate {
		return h.hitRings(mouse)
	}
	return h.hitArms(mouse)
}

func (h *TransformHandle) hitArms(mouse mgl32.Vec2) handleHit {
	g := h.geometry
	tol := h.cfg.HandlePixelTolerance
	center, ok := h.cam.WorldToScreen(g.Origin)
	if !ok {
		return handleHit{}
	}

	if h.tool == ToolScale && mouse.Sub(center).Len() <= tol {
		return handleHit{axes: AxisXYZ}
	}

	for n := 0; n < 3; n++ {
		poly := make([]mgl32.Vec2, 0, 4)
		for _, corner := range g.PlaneQuads[n] {
			s, ok := h.cam.WorldToScreen(corner)
			if !ok {
				break
			}
			poly = append(poly, s)
		}
		if len(poly) == 4 && geom.PointInPolygon(mouse, poly) {
			a, b := planeAxes(n)
			return handleHit{axes: axisBit(a) | axisBit(b)}
		}
	}

	for i := 0; i < 3; i++ {
		end, ok := h.cam.WorldToScreen(g.Arms[i])
		if !ok {
			continue
		}
		if geom.DistanceToSegment(mouse, center, end) <= tol {
			return handleHit{axes: axisBit(i)}
		}
	}
	return handleHit{}
}

func (h *TransformHandle) hitRings(mouse mgl32.Vec2) handleHit {
	best := handleHit{}
	bestDist := h.cfg.HandlePixelTolerance
	found := false

	for n, ring := range h.geometry.Rings {
		for k := range ring {
			p0, p1 := ring[k], ring[(k+1)%len(ring)]
			mid := p0.Add(p1).Mul(0.5)
			normal := mid.Sub(h.position)
			view := mid.Sub(h.cam.Position)
			if normal.Len() == 0 || view.Len() == 0 {
				continue
			}
			// The far half of a ring faces away from the camera.
			if normal.Normalize().Dot(view.Normalize()) > h.cfg.RingFacingCutoff {
				continue
			}
			s0, ok0 := h.cam.WorldToScreen(p0)
			s1, ok1 := h.cam.WorldToScreen(p1)
			if !ok0 || !ok1 {
				continue
			}
			d := geom.DistanceToSegment(mouse, s0, s1)
			if d > bestDist || (found && d == bestDist) {
				continue
			}
			bestDist = d
			found = true
			best = handleHit{axes: axisBit(n), point: h.ringPoint(mouse, p0, p1)}
		}
	}
	return best
}

// ringPoint returns the point of ring segment [p0, p1] nearest the mouse ray.
func (h *TransformHandle) ringPoint(mouse mgl32.Vec2, p0, p1 mgl32.Vec3) mgl32.Vec3 {
	seg := p1.Sub(p0)
	n := seg.Len()
	if n == 0 {
		return p0
	}
	ray := h.cam.ScreenToRay(mouse.X(), mouse.Y())
	_, s, _ := geom.ClosestPoints(ray.Origin, ray.Direction, p0, seg.Mul(1/n))
	return p0.Add(seg.Mul(mgl32.Clamp(s/n, 0, 1)))
}
