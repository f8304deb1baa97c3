package sceneedit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sceneedit/geom"
)

type MarqueeMode int

const (
	MarqueeReplace MarqueeMode = iota
	MarqueeAdditive
	MarqueeSubtractive
)

func (m MarqueeMode) String() string {
	switch m {
	case MarqueeReplace:
		return "replace"
	case MarqueeAdditive:
		return "additive"
	case MarqueeSubtractive:
		return "subtractive"
	}
	return "unknown"
}

// marqueeModeFor reads the held modifiers. Ctrl wins over Shift.
func marqueeModeFor(in *Input) MarqueeMode {
	switch {
	case in.Control():
		return MarqueeSubtractive
	case in.Shift():
		return MarqueeAdditive
	}
	return MarqueeReplace
}

type marqueeState int

const (
	marqueeIdle marqueeState = iota
	marqueePending
	marqueeDragging
)

// MarqueeSelector turns click and drag-box gestures into selection changes.
// A drag records exactly one history command when it is released.
type MarqueeSelector struct {
	cfg     Config
	sel     *SelectionSet
	cache   *BoundingBoxCache
	modes   *ModeController
	history *EditHistory
	log     Logger

	state   marqueeState
	start   mgl32.Vec2
	current mgl32.Vec2
	mode    MarqueeMode

	snapshot    map[ObjectId]struct{}
	snapshotIds []ObjectId

	dragListeners []func(active bool)
}

func NewMarqueeSelector(cfg Config, sel *SelectionSet, cache *BoundingBoxCache, modes *ModeController, history *EditHistory, log Logger) *MarqueeSelector {
	return &MarqueeSelector{
		cfg:     cfg,
		sel:     sel,
		cache:   cache,
		modes:   modes,
		history: history,
		log:     orNop(log),
	}
}

// OnDragChanged is called when a marquee drag starts (true) or ends (false).
func (m *MarqueeSelector) OnDragChanged(fn func(active bool)) {
	m.dragListeners = append(m.dragListeners, fn)
}

func (m *MarqueeSelector) Dragging() bool { return m.state == marqueeDragging }

func (m *MarqueeSelector) Mode() MarqueeMode { return m.mode }

// Rect returns the current drag rectangle while dragging.
func (m *MarqueeSelector) Rect() (geom.Rect, bool) {
	if m.state != marqueeDragging {
		return geom.Rect{}, false
	}
	return geom.RectFromCorners(m.start, m.current), true
}

// Update runs one frame. The session skips it on frames the handle claimed.
func (m *MarqueeSelector) Update(in *Input) {
	if !m.modes.EditInputEnabled() {
		m.Cancel()
		return
	}
	mouse := mgl32.Vec2{float32(in.MouseX), float32(in.MouseY)}

	switch m.state {
	case marqueeIdle:
		if in.JustPressed[MouseButtonLeft] && m.modes.CursorOwner() == CursorFree {
			m.state = marqueePending
			m.start = mouse
			m.current = mouse
		}
		return

	case marqueePending:
		if !in.Pressed[MouseButtonLeft] {
			m.state = marqueeIdle
			m.click(mouse, marqueeModeFor(in))
			return
		}
		if mouse.Sub(m.start).Len() <= m.cfg.DragDeadzone {
			return
		}
		if !m.modes.CaptureCursor(CursorMarquee) {
			return
		}
		m.beginDrag()
	}

	// Dragging
	if in.JustPressed[m.cfg.Keys.Cancel] {
		m.Cancel()
		return
	}
	if !in.Pressed[MouseButtonLeft] {
		m.finish()
		return
	}
	m.mode = marqueeModeFor(in)
	m.current = mouse
	m.apply()
}

func (m *MarqueeSelector) beginDrag() {
	m.state = marqueeDragging
	m.snapshotIds = m.sel.Selection()
	m.snapshot = make(map[ObjectId]struct{}, len(m.snapshotIds))
	for _, id := range m.snapshotIds {
		m.snapshot[id] = struct{}{}
	}
	m.log.Debugf("marquee drag begin with %d selected", len(m.snapshotIds))
	m.notify(true)
}

// apply drives the selection from the rectangle for the current mode. The
// drag-start snapshot stays fixed for the whole drag.
func (m *MarqueeSelector) apply() {
	rect := geom.RectFromCorners(m.start, m.current)
	for _, id := range m.sel.Selectable() {
		box, ok := m.cache.Box(id)
		contained := ok && box.Inside(rect)
		_, inSnapshot := m.snapshot[id]

		switch m.mode {
		case MarqueeReplace:
			m.setSelected(id, contained)
		case MarqueeAdditive:
			m.setSelected(id, inSnapshot || contained)
		case MarqueeSubtractive:
			if inSnapshot {
				m.setSelected(id, !contained)
			}
		}
	}
}

func (m *MarqueeSelector) setSelected(id ObjectId, selected bool) {
	if selected {
		m.sel.Select(id)
	} else {
		m.sel.Deselect(id)
	}
}

func (m *MarqueeSelector) finish() {
	after := m.sel.Selection()
	cmd := newSelectionCommand(m.sel, m.mode, m.snapshotIds, after)
	m.end()
	if cmd != nil {
		m.history.AddCommand(cmd)
	}
	m.log.Debugf("marquee drag finished mode=%s selected=%d", m.mode, len(after))
}

// Cancel abandons a drag and restores the drag-start selection exactly.
func (m *MarqueeSelector) Cancel() {
	switch m.state {
	case marqueePending:
		m.state = marqueeIdle
	case marqueeDragging:
		m.sel.SetSelection(m.snapshotIds)
		m.end()
		m.log.Debugf("marquee drag cancelled")
	}
}

func (m *MarqueeSelector) end() {
	m.state = marqueeIdle
	m.snapshot = nil
	m.snapshotIds = nil
	m.modes.ReleaseCursor()
	m.notify(false)
}

func (m *MarqueeSelector) notify(active bool) {
	for _, fn := range m.dragListeners {
		fn(active)
	}
}

// click selects the object under the cursor: replace without modifiers,
// add with Shift, remove with Ctrl.
func (m *MarqueeSelector) click(p mgl32.Vec2, mode MarqueeMode) {
	before := m.sel.Selection()
	id, hit := m.cache.PickAt(p)
	switch mode {
	case MarqueeReplace:
		if hit {
			m.sel.SetSelection([]ObjectId{id})
		} else {
			m.sel.DeselectAll()
		}
	case MarqueeAdditive:
		if hit {
			m.sel.Select(id)
		}
	case MarqueeSubtractive:
		if hit {
			m.sel.Deselect(id)
		}
	}
	if cmd := newSelectionCommand(m.sel, mode, before, m.sel.Selection()); cmd != nil {
		m.history.AddCommand(cmd)
	}
}
