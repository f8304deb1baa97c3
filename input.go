package sceneedit

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// KeyCount bounds the key code space.
const KeyCount = 256

// Input is one frame of polled input. Mouse coordinates are screen pixels,
// origin bottom-left, y up.
type Input struct {
	Pressed [KeyCount]bool

	JustPressed  [KeyCount]bool
	JustReleased [KeyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	WindowWidth, WindowHeight int

	// Dt is the frame time in seconds. The frame loop fills it in.
	Dt float64

	// Focused is false on frames where the window lost focus.
	Focused bool
}

// NewInput returns a focused input for a window of the given size.
func NewInput(width, height int) *Input {
	return &Input{WindowWidth: width, WindowHeight: height, Focused: true}
}

// NewFrame clears the per-frame edges and the mouse delta. Call it before
// feeding the frame's key and mouse state.
func (in *Input) NewFrame() {
	clear(in.JustPressed[:])
	clear(in.JustReleased[:])
	in.MouseDeltaX = 0
	in.MouseDeltaY = 0
}

// SetKey records a key or button state for this frame, deriving the
// JustPressed/JustReleased edges from the previous Pressed state.
func (in *Input) SetKey(key int, down bool) {
	in.JustPressed[key] = false
	in.JustReleased[key] = false
	if down {
		if !in.Pressed[key] {
			in.JustPressed[key] = true
		}
		in.Pressed[key] = true
	} else {
		if in.Pressed[key] {
			in.JustReleased[key] = true
		}
		in.Pressed[key] = false
	}
}

// MoveMouse sets the cursor position and the delta from the previous one.
func (in *Input) MoveMouse(x, y float64) {
	in.MouseDeltaX = x - in.MouseX
	in.MouseDeltaY = y - in.MouseY
	in.MouseX = x
	in.MouseY = y
}

func (in *Input) Shift() bool { return in.Pressed[KeyShift] }

func (in *Input) Control() bool { return in.Pressed[KeyControl] }
