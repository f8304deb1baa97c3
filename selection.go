package sceneedit

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/sceneedit/geom"
)

// SelectionSet keeps the selectable objects, the selected subset and the
// pivot (mean position of the selection). It drives the handle's pose and
// applies handle deltas to the selected objects.
type SelectionSet struct {
	scene  Scene
	handle *TransformHandle
	log    Logger

	selectable map[ObjectId]struct{}
	selected   map[ObjectId]struct{}

	// Running sum of selected positions; pivot = sum / count.
	sum   mgl64.Vec3
	pivot mgl32.Vec3

	drag *selectionDrag

	countListeners     []func(count int)
	transformListeners []func(ids []ObjectId)
	commitListeners    []func(before, after map[ObjectId]TransformState)
}

// selectionDrag is captured once when a handle drag begins. Every frame is
// computed from it and the handle's total delta.
type selectionDrag struct {
	ids   []ObjectId
	start map[ObjectId]TransformState
	pivot mgl32.Vec3
	sum   mgl64.Vec3
	moved bool
}

func NewSelectionSet(scene Scene, handle *TransformHandle, log Logger) *SelectionSet {
	s := &SelectionSet{
		scene:      scene,
		handle:     handle,
		log:        orNop(log),
		selectable: make(map[ObjectId]struct{}),
		selected:   make(map[ObjectId]struct{}),
	}
	if handle != nil {
		handle.Listen(s.onHandleEvent)
	}
	return s
}

// OnCountChanged is called whenever the number of selected objects changes.
func (s *SelectionSet) OnCountChanged(fn func(count int)) {
	s.countListeners = append(s.countListeners, fn)
}

// OnTransformed is called with the objects whose transforms were changed
// by a finished handle drag or a transform undo/redo.
func (s *SelectionSet) OnTransformed(fn func(ids []ObjectId)) {
	s.transformListeners = append(s.transformListeners, fn)
}

// OnDragCommitted receives the before/after transforms of a finished drag.
func (s *SelectionSet) OnDragCommitted(fn func(before, after map[ObjectId]TransformState)) {
	s.commitListeners = append(s.commitListeners, fn)
}

func (s *SelectionSet) AddSelectable(id ObjectId) {
	obj, ok := s.scene.Object(id)
	if !ok {
		return
	}
	if l, ok := obj.(Lockable); ok && l.IsLocked() {
		return
	}
	s.selectable[id] = struct{}{}
}

// RemoveSelectable deselects id first when needed.
func (s *SelectionSet) RemoveSelectable(id ObjectId) {
	s.Deselect(id)
	delete(s.selectable, id)
}

func (s *SelectionSet) IsSelectable(id ObjectId) bool {
	_, ok := s.selectable[id]
	return ok
}

func (s *SelectionSet) IsSelected(id ObjectId) bool {
	_, ok := s.selected[id]
	return ok
}

func (s *SelectionSet) Count() int { return len(s.selected) }

// Selection returns the selected ids in ascending order.
func (s *SelectionSet) Selection() []ObjectId { return sortedIds(s.selected) }

// Selectable returns the selectable ids in ascending order.
func (s *SelectionSet) Selectable() []ObjectId { return sortedIds(s.selectable) }

// Pivot is the mean position of the selection, zero when nothing is selected.
func (s *SelectionSet) Pivot() mgl32.Vec3 { return s.pivot }

// Select is a no-op for ids that are not selectable or already selected.
func (s *SelectionSet) Select(id ObjectId) {
	if !s.select1(id) {
		return
	}
	s.updatePivot()
	s.changed()
}

func (s *SelectionSet) Deselect(id ObjectId) {
	if !s.deselect1(id) {
		return
	}
	s.updatePivot()
	s.changed()
}

func (s *SelectionSet) SelectAll() {
	for id := range s.selectable {
		s.select1(id)
	}
	s.RecomputePivot()
	s.changed()
}

func (s *SelectionSet) DeselectAll() {
	for id := range s.selected {
		s.deselect1(id)
	}
	s.RecomputePivot()
	s.changed()
}

// SetSelection makes exactly ids (those that are selectable) selected.
func (s *SelectionSet) SetSelection(ids []ObjectId) {
	want := make(map[ObjectId]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := want[id]; !ok {
			s.deselect1(id)
		}
	}
	for id := range want {
		s.select1(id)
	}
	s.RecomputePivot()
	s.changed()
}

func (s *SelectionSet) select1(id ObjectId) bool {
	if _, ok := s.selectable[id]; !ok {
		return false
	}
	if _, ok := s.selected[id]; ok {
		return false
	}
	obj, ok := s.scene.Object(id)
	if !ok {
		return false
	}
	s.selected[id] = struct{}{}
	s.sum = s.sum.Add(vec64(obj.Position()))
	setOutline(obj, true)
	return true
}

func (s *SelectionSet) deselect1(id ObjectId) bool {
	if _, ok := s.selected[id]; !ok {
		return false
	}
	delete(s.selected, id)
	if obj, ok := s.scene.Object(id); ok {
		s.sum = s.sum.Sub(vec64(obj.Position()))
		setOutline(obj, false)
	}
	return true
}

func (s *SelectionSet) updatePivot() {
	if len(s.selected) == 0 {
		s.sum = mgl64.Vec3{}
		s.pivot = mgl32.Vec3{}
		return
	}
	s.pivot = vec32(s.sum.Mul(1 / float64(len(s.selected))))
}

// RecomputePivot rebuilds the running sum from the live positions.
func (s *SelectionSet) RecomputePivot() {
	s.sum = mgl64.Vec3{}
	for id := range s.selected {
		if obj, ok := s.scene.Object(id); ok {
			s.sum = s.sum.Add(vec64(obj.Position()))
		}
	}
	s.updatePivot()
}

// TransformsChanged tells the selection that ids were moved from outside
// a handle drag.
func (s *SelectionSet) TransformsChanged(ids []ObjectId) {
	s.RecomputePivot()
	s.SyncHandle()
	for _, fn := range s.transformListeners {
		fn(ids)
	}
}

func (s *SelectionSet) changed() {
	s.SyncHandle()
	n := len(s.selected)
	for _, fn := range s.countListeners {
		fn(n)
	}
}

// SyncHandle places the handle on the pivot. With exactly one object and
// the rotate or scale tool the handle takes the object's rotation; in every
// other case it resets to identity.
func (s *SelectionSet) SyncHandle() {
	if s.handle == nil {
		return
	}
	if len(s.selected) == 0 {
		s.handle.Hide()
		return
	}
	if s.drag != nil {
		return
	}
	s.handle.SetPosition(s.pivot)
	rot := mgl32.QuatIdent()
	if len(s.selected) == 1 && s.handle.Tool() != ToolTranslate {
		for id := range s.selected {
			if obj, ok := s.scene.Object(id); ok {
				rot = obj.Rotation()
			}
		}
	}
	s.handle.SetRotation(rot)
	s.handle.Show()
}

func (s *SelectionSet) onHandleEvent(ev HandleEvent) {
	switch ev.Kind {
	case HandleBegin:
		s.beginDrag()
	case HandleMove:
		s.applyDelta(ev.Delta)
	case HandleFinish:
		s.finishDrag()
	case HandleAbort:
		s.abortDrag()
	case HandleToolChanged:
		s.SyncHandle()
	}
}

func (s *SelectionSet) beginDrag() {
	d := &selectionDrag{
		ids:   s.Selection(),
		start: make(map[ObjectId]TransformState, len(s.selected)),
		pivot: s.pivot,
		sum:   s.sum,
	}
	for _, id := range d.ids {
		if obj, ok := s.scene.Object(id); ok {
			d.start[id] = captureTransform(obj)
		}
	}
	s.drag = d
}

func (s *SelectionSet) applyDelta(delta HandleDelta) {
	d := s.drag
	if d == nil {
		return
	}
	switch dl := delta.(type) {
	case TranslateDelta:
		s.applyTranslate(dl.Total)
	case RotateDelta:
		s.applyRotate(dl.Axis, dl.TotalAngle)
	case ScaleDelta:
		s.applyScale(dl.Factor)
	}
}

// applyTranslate moves every object by the total handle translation and
// shifts the running sum by total * count.
func (s *SelectionSet) applyTranslate(total mgl32.Vec3) {
	d := s.drag
	for _, id := range d.ids {
		obj, ok := s.scene.Object(id)
		if !ok {
			continue
		}
		p := d.start[id].Position.Add(total)
		if !geom.IsFinite(p) {
			continue
		}
		obj.SetPosition(p)
	}
	d.moved = true
	s.sum = d.sum.Add(vec64(total).Mul(float64(len(s.selected))))
	s.updatePivot()
}

// applyRotate orbits every object around the drag-start pivot.
func (s *SelectionSet) applyRotate(axis mgl32.Vec3, angle float32) {
	d := s.drag
	q := mgl32.QuatRotate(angle, axis)
	for _, id := range d.ids {
		obj, ok := s.scene.Object(id)
		if !ok {
			continue
		}
		st := d.start[id]
		p := d.pivot.Add(q.Rotate(st.Position.Sub(d.pivot)))
		if !geom.IsFinite(p) {
			continue
		}
		obj.SetPosition(p)
		obj.SetRotation(q.Mul(st.Rotation).Normalize())
	}
	d.moved = true
}

// applyScale scales positions about the drag-start pivot and local scales,
// always from the drag-start snapshot.
func (s *SelectionSet) applyScale(factor mgl32.Vec3) {
	d := s.drag
	for _, id := range d.ids {
		obj, ok := s.scene.Object(id)
		if !ok {
			continue
		}
		st := d.start[id]
		var pos, scale mgl32.Vec3
		for a := 0; a < 3; a++ {
			scale[a] = st.Scale[a] * factor[a]
			pos[a] = (st.Position[a]-d.pivot[a])*factor[a] + d.pivot[a]
		}
		if !geom.IsFinite(pos) || !geom.IsFinite(scale) {
			continue
		}
		obj.SetPosition(pos)
		obj.SetScale(scale)
	}
	d.moved = true
}

func (s *SelectionSet) finishDrag() {
	d := s.drag
	s.drag = nil
	if d == nil {
		return
	}
	s.RecomputePivot()
	s.SyncHandle()
	if !d.moved {
		return
	}

	after := make(map[ObjectId]TransformState, len(d.ids))
	for _, id := range d.ids {
		if obj, ok := s.scene.Object(id); ok {
			after[id] = captureTransform(obj)
		}
	}
	s.log.Debugf("selection drag committed for %d objects", len(after))
	for _, fn := range s.transformListeners {
		fn(d.ids)
	}
	for _, fn := range s.commitListeners {
		fn(d.start, after)
	}
}

// abortDrag puts every object back to its drag-start transform.
func (s *SelectionSet) abortDrag() {
	d := s.drag
	s.drag = nil
	if d == nil {
		return
	}
	for id, st := range d.start {
		if obj, ok := s.scene.Object(id); ok {
			st.applyTo(obj)
		}
	}
	s.RecomputePivot()
	s.SyncHandle()
}

func setOutline(obj Transformable, enabled bool) {
	if r, ok := obj.(Renderable); ok {
		r.SetOutline(enabled)
	}
}

func sortedIds(set map[ObjectId]struct{}) []ObjectId {
	ids := make([]ObjectId, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
