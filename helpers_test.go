package sceneedit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sceneedit/geom"
)

type testObject struct {
	pos      mgl32.Vec3
	rot      mgl32.Quat
	scale    mgl32.Vec3
	mesh     []mgl32.Vec3
	outlined bool
	locked   bool
}

func (o *testObject) Position() mgl32.Vec3     { return o.pos }
func (o *testObject) SetPosition(p mgl32.Vec3) { o.pos = p }
func (o *testObject) Rotation() mgl32.Quat     { return o.rot }
func (o *testObject) SetRotation(q mgl32.Quat) { o.rot = q }
func (o *testObject) Scale() mgl32.Vec3        { return o.scale }
func (o *testObject) SetScale(s mgl32.Vec3)    { o.scale = s }
func (o *testObject) SetOutline(enabled bool)  { o.outlined = enabled }
func (o *testObject) IsLocked() bool           { return o.locked }

func (o *testObject) WorldVertices() []mgl32.Vec3 {
	m := mgl32.Translate3D(o.pos.X(), o.pos.Y(), o.pos.Z()).
		Mul4(o.rot.Mat4()).
		Mul4(mgl32.Scale3D(o.scale.X(), o.scale.Y(), o.scale.Z()))
	out := make([]mgl32.Vec3, len(o.mesh))
	for i, v := range o.mesh {
		out[i] = m.Mul4x1(v.Vec4(1)).Vec3()
	}
	return out
}

// bareObject has no visible geometry.
type bareObject struct {
	pos   mgl32.Vec3
	rot   mgl32.Quat
	scale mgl32.Vec3
}

func (o *bareObject) Position() mgl32.Vec3     { return o.pos }
func (o *bareObject) SetPosition(p mgl32.Vec3) { o.pos = p }
func (o *bareObject) Rotation() mgl32.Quat     { return o.rot }
func (o *bareObject) SetRotation(q mgl32.Quat) { o.rot = q }
func (o *bareObject) Scale() mgl32.Vec3        { return o.scale }
func (o *bareObject) SetScale(s mgl32.Vec3)    { o.scale = s }

type testScene struct {
	objects map[ObjectId]Transformable
	removed map[ObjectId]bool
}

func newTestScene() *testScene {
	return &testScene{objects: make(map[ObjectId]Transformable), removed: make(map[ObjectId]bool)}
}

func unitCube() []mgl32.Vec3 {
	var out []mgl32.Vec3
	for _, x := range []float32{-0.5, 0.5} {
		for _, y := range []float32{-0.5, 0.5} {
			for _, z := range []float32{-0.5, 0.5} {
				out = append(out, mgl32.Vec3{x, y, z})
			}
		}
	}
	return out
}

func (s *testScene) add(id ObjectId, pos mgl32.Vec3) *testObject {
	obj := &testObject{pos: pos, rot: mgl32.QuatIdent(), scale: mgl32.Vec3{1, 1, 1}, mesh: unitCube()}
	s.objects[id] = obj
	return obj
}

func (s *testScene) obj(id ObjectId) *testObject {
	return s.objects[id].(*testObject)
}

func (s *testScene) Object(id ObjectId) (Transformable, bool) {
	obj, ok := s.objects[id]
	if !ok || s.removed[id] {
		return nil, false
	}
	return obj, true
}

func (s *testScene) RemoveFromMap(ids []ObjectId) {
	for _, id := range ids {
		s.removed[id] = true
	}
}

func (s *testScene) RestoreToMap(ids []ObjectId) {
	for _, id := range ids {
		delete(s.removed, id)
	}
}

// frontCamera sits on -Y looking at the origin: +X is screen right, +Z is
// screen up, and the origin projects to the viewport center (400, 300).
func frontCamera() *geom.Camera {
	cam := geom.NewCamera(800, 600)
	cam.Position = mgl32.Vec3{0, -20, 0}
	cam.LookAt(mgl32.Vec3{})
	return cam
}

// editor bundles the services the way a session wires them, without the
// session's key handling.
type editor struct {
	cfg     Config
	scene   *testScene
	cam     *geom.Camera
	modes   *ModeController
	handle  *TransformHandle
	sel     *SelectionSet
	cache   *BoundingBoxCache
	history *EditHistory
	marquee *MarqueeSelector
	in      *Input
}

func newEditor() *editor {
	return newEditorWith(DefaultConfig())
}

func newEditorWith(cfg Config) *editor {
	e := &editor{cfg: cfg, scene: newTestScene(), cam: frontCamera()}
	e.modes = NewModeController(nil)
	e.modes.SetMode(ModeEdit)
	e.handle = NewTransformHandle(e.cfg, e.cam, e.modes, nil)
	e.sel = NewSelectionSet(e.scene, e.handle, nil)
	e.cache = NewBoundingBoxCache(e.scene, e.cam)
	e.history = NewEditHistory(e.cfg.HistoryMaxDepth, nil)
	e.marquee = NewMarqueeSelector(e.cfg, e.sel, e.cache, e.modes, e.history, nil)
	e.in = NewInput(800, 600)
	return e
}

// place adds a selectable unit cube.
func (e *editor) place(id ObjectId, pos mgl32.Vec3) *testObject {
	obj := e.scene.add(id, pos)
	e.sel.AddSelectable(id)
	return obj
}

func (e *editor) rebuildBoxes() {
	e.cache.Rebuild(e.sel.Selectable())
}

// frame runs one editor frame: handle first, marquee only when the handle
// did not claim the input.
func (e *editor) frame(x, y float64, down bool, keys ...int) {
	e.in.NewFrame()
	e.in.MoveMouse(x, y)
	held := map[int]bool{}
	for _, k := range keys {
		held[k] = true
	}
	for _, k := range []int{KeyShift, KeyControl, KeyEscape} {
		e.in.SetKey(k, held[k])
	}
	e.in.SetKey(MouseButtonLeft, down)
	if !e.handle.Update(e.in) {
		e.marquee.Update(e.in)
	}
}
