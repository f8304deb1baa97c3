package sceneedit

import (
	"github.com/gekko3d/sceneedit/geom"
)

// Session owns every editor service and runs them once per frame in a fixed
// order: handle, then marquee, then the fly camera, then key commands and
// mode housekeeping.
type Session struct {
	cfg   Config
	log   Logger
	cam   *geom.Camera
	scene MapHost

	Modes     *ModeController
	Handle    *TransformHandle
	Selection *SelectionSet
	Cache     *BoundingBoxCache
	Marquee   *MarqueeSelector
	History   *EditHistory
	Fly       *FlyCamera

	focused bool

	dragListeners []func(active bool)
}

func NewSession(cfg Config, scene MapHost, cam *geom.Camera, log Logger) *Session {
	log = orNop(log)
	if err := cfg.Keys.validate(); err != nil {
		log.Warnf("editor keys: %v, using default bindings", err)
		cfg.Keys = DefaultConfig().Keys
	}
	s := &Session{cfg: cfg, log: log, cam: cam, scene: scene, focused: true}

	s.Modes = NewModeController(log)
	s.History = NewEditHistory(cfg.HistoryMaxDepth, log)
	s.Handle = NewTransformHandle(cfg, cam, s.Modes, log)
	s.Selection = NewSelectionSet(scene, s.Handle, log)
	s.Cache = NewBoundingBoxCache(scene, cam)
	s.Marquee = NewMarqueeSelector(cfg, s.Selection, s.Cache, s.Modes, s.History, log)
	s.Fly = NewFlyCamera(cfg, cam)

	s.Modes.OnModeChanged(s.onModeChanged)
	s.Selection.OnTransformed(s.Cache.Refresh)
	s.Selection.OnDragCommitted(func(before, after map[ObjectId]TransformState) {
		s.History.AddCommand(NewTransformCommand(scene, s.Selection, before, after))
	})
	s.Handle.Listen(func(ev HandleEvent) {
		switch ev.Kind {
		case HandleBegin:
			s.notifyDrag(true)
		case HandleFinish, HandleAbort:
			s.notifyDrag(false)
		}
	})
	s.Marquee.OnDragChanged(s.notifyDrag)
	return s
}

// OnSelectionCountChanged forwards the selection count to outer layers.
func (s *Session) OnSelectionCountChanged(fn func(count int)) {
	s.Selection.OnCountChanged(fn)
}

func (s *Session) OnModeChanged(fn func(from, to EditorMode)) {
	s.Modes.OnModeChanged(fn)
}

// OnDragChanged is called when any handle or marquee drag begins or ends.
func (s *Session) OnDragChanged(fn func(active bool)) {
	s.dragListeners = append(s.dragListeners, fn)
}

func (s *Session) notifyDrag(active bool) {
	for _, fn := range s.dragListeners {
		fn(active)
	}
}

func (s *Session) onModeChanged(from, to EditorMode) {
	if to != ModeEdit {
		s.endDrags()
	}
	if from == ModeFly && to == ModeEdit {
		s.RefreshBoxes()
	}
}

// endDrags finishes a handle drag, so the edit is kept, and cancels a
// marquee drag.
func (s *Session) endDrags() {
	s.Handle.EndDrag()
	s.Marquee.Cancel()
}

// RefreshBoxes recomputes every cached screen box. Call it after the camera
// moved in edit mode.
func (s *Session) RefreshBoxes() {
	s.Cache.Rebuild(s.Selection.Selectable())
}

// Update runs one editor frame.
func (s *Session) Update(in *Input) {
	if in.WindowWidth > 0 && in.WindowHeight > 0 {
		s.cam.Width, s.cam.Height = in.WindowWidth, in.WindowHeight
	}

	if !in.Focused {
		if s.focused {
			s.focusLost()
		}
		s.focused = false
		return
	}
	s.focused = true

	if !s.Handle.Update(in) {
		s.Marquee.Update(in)
	}
	if s.Modes.Mode() == ModeFly {
		s.Fly.Update(in)
	}
	s.handleKeys(in)
}

func (s *Session) focusLost() {
	s.log.Debugf("focus lost, ending drags")
	s.endDrags()
	s.Modes.ReleaseCursor()
}

func (s *Session) handleKeys(in *Input) {
	k := s.cfg.Keys
	if s.Modes.EditInputEnabled() && !s.Modes.DragActive() {
		switch {
		case in.JustPressed[k.ToolTranslate] && !in.Control():
			s.Handle.SetTool(ToolTranslate)
		case in.JustPressed[k.ToolRotate] && !in.Control():
			s.Handle.SetTool(ToolRotate)
		case in.JustPressed[k.ToolScale] && !in.Control():
			s.Handle.SetTool(ToolScale)
		case in.JustPressed[k.Undo] && in.Control():
			s.History.Undo()
		case in.JustPressed[k.Redo] && in.Control():
			s.History.Redo()
		case in.JustPressed[k.Delete]:
			s.DeleteSelection()
		case in.JustPressed[k.SelectAll] && in.Control():
			s.SelectAll()
		case in.JustPressed[k.DeselectAll] && in.Control():
			s.DeselectAll()
		}
	}

	if in.JustPressed[k.ToggleMode] {
		s.Modes.Toggle()
	}
}

// SelectAll selects every selectable object as one undoable edit.
func (s *Session) SelectAll() {
	before := s.Selection.Selection()
	s.Selection.SelectAll()
	s.record(before)
}

// DeselectAll clears the selection as one undoable edit.
func (s *Session) DeselectAll() {
	before := s.Selection.Selection()
	s.Selection.DeselectAll()
	s.record(before)
}

func (s *Session) record(before []ObjectId) {
	after := s.Selection.Selection()
	if cmd := newSelectionCommand(s.Selection, MarqueeReplace, before, after); cmd != nil {
		s.History.AddCommand(cmd)
	}
}

// DeleteSelection takes the selected objects out of the map. It returns
// false when nothing is selected or a drag is in progress.
func (s *Session) DeleteSelection() bool {
	ids := s.Selection.Selection()
	if len(ids) == 0 || s.Modes.DragActive() {
		return false
	}
	cmd := NewDeleteCommand(s.scene, s, s.Selection, ids)
	cmd.Apply()
	s.History.AddCommand(cmd)
	s.log.Infof("deleted %d objects", len(ids))
	return true
}

// ObjectsPasted adds freshly pasted objects as one undoable edit and
// selects them.
func (s *Session) ObjectsPasted(ids []ObjectId) {
	if len(ids) == 0 {
		return
	}
	cmd := NewPasteCommand(s.scene, s, s.Selection, ids, s.Selection.Selection())
	cmd.Apply()
	s.History.AddCommand(cmd)
}

// ObjectsImported makes imported objects selectable. Imports are not undoable.
func (s *Session) ObjectsImported(ids []ObjectId) {
	s.OnObjectsImported(ids)
}

func (s *Session) OnObjectsImported(ids []ObjectId) {
	for _, id := range ids {
		s.Selection.AddSelectable(id)
	}
	s.RefreshBoxes()
}

func (s *Session) OnObjectsPasted(ids []ObjectId) {
	s.OnObjectsImported(ids)
}

func (s *Session) OnObjectsDeleted(ids []ObjectId) {
	for _, id := range ids {
		s.Selection.RemoveSelectable(id)
	}
	s.Cache.Remove(ids)
}

var _ MapListener = (*Session)(nil)
