package sceneedit

type EditorMode int

const (
	ModeFly EditorMode = iota
	ModeEdit
	ModeUI
)

func (m EditorMode) String() string {
	switch m {
	case ModeFly:
		return "fly"
	case ModeEdit:
		return "edit"
	case ModeUI:
		return "ui"
	}
	return "unknown"
}

// CursorOwner identifies who currently captures the mouse.
type CursorOwner int

const (
	CursorFree CursorOwner = iota
	CursorHandle
	CursorMarquee
	CursorWidget
)

// ModeController tracks Fly/Edit/UI mode and owns the single cursor
// capture token shared by the handle, the marquee and UI widgets.
type ModeController struct {
	mode       EditorMode
	beforeUI   EditorMode
	popupDepth int
	owner      CursorOwner
	log        Logger

	modeListeners    []func(from, to EditorMode)
	releaseListeners []func(prev CursorOwner)
}

func NewModeController(log Logger) *ModeController {
	return &ModeController{mode: ModeFly, log: orNop(log)}
}

func (mc *ModeController) Mode() EditorMode { return mc.mode }

// EditInputEnabled reports whether the handle and marquee may process input.
func (mc *ModeController) EditInputEnabled() bool { return mc.mode == ModeEdit }

// DragActive reports whether a handle or marquee drag holds the cursor.
func (mc *ModeController) DragActive() bool {
	return mc.owner == CursorHandle || mc.owner == CursorMarquee
}

// Toggle switches between Fly and Edit. It refuses while a drag is active
// or a popup is open.
func (mc *ModeController) Toggle() bool {
	if mc.mode == ModeUI || mc.DragActive() {
		return false
	}
	if mc.mode == ModeFly {
		mc.setMode(ModeEdit)
	} else {
		mc.setMode(ModeFly)
	}
	return true
}

// SetMode forces Fly or Edit, ignoring the drag guard. Used at startup.
func (mc *ModeController) SetMode(m EditorMode) {
	if m == ModeUI {
		mc.OpenPopup()
		return
	}
	if mc.mode == ModeUI {
		mc.beforeUI = m
		return
	}
	mc.setMode(m)
}

// OpenPopup enters UI mode. Popups nest; the previous mode comes back when
// the last one closes.
func (mc *ModeController) OpenPopup() {
	mc.popupDepth++
	if mc.popupDepth > 1 {
		return
	}
	mc.beforeUI = mc.mode
	mc.setMode(ModeUI)
}

func (mc *ModeController) ClosePopup() {
	if mc.popupDepth == 0 {
		return
	}
	mc.popupDepth--
	if mc.popupDepth == 0 {
		mc.setMode(mc.beforeUI)
	}
}

func (mc *ModeController) setMode(m EditorMode) {
	if m == mc.mode {
		return
	}
	from := mc.mode
	mc.mode = m
	mc.log.Debugf("editor mode %s -> %s", from, m)
	for _, fn := range mc.modeListeners {
		fn(from, m)
	}
}

// CaptureCursor hands the cursor to owner. It returns false when someone
// already holds it.
func (mc *ModeController) CaptureCursor(owner CursorOwner) bool {
	if owner == CursorFree || mc.owner != CursorFree {
		return false
	}
	mc.owner = owner
	return true
}

// ReleaseCursor frees the cursor and notifies listeners, even when nobody
// held it.
func (mc *ModeController) ReleaseCursor() {
	prev := mc.owner
	mc.owner = CursorFree
	for _, fn := range mc.releaseListeners {
		fn(prev)
	}
}

func (mc *ModeController) CursorOwner() CursorOwner { return mc.owner }

func (mc *ModeController) OnModeChanged(fn func(from, to EditorMode)) {
	mc.modeListeners = append(mc.modeListeners, fn)
}

func (mc *ModeController) OnCursorReleased(fn func(prev CursorOwner)) {
	mc.releaseListeners = append(mc.releaseListeners, fn)
}
