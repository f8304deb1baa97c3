// Package glfwinput fills a sceneedit.Input from a GLFW window once per frame.
package glfwinput

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/sceneedit"
)

// Window is the part of *glfw.Window the poller reads.
type Window interface {
	GetKey(key glfw.Key) glfw.Action
	GetMouseButton(button glfw.MouseButton) glfw.Action
	GetCursorPos() (x, y float64)
	GetSize() (width, height int)
	GetAttrib(attrib glfw.Hint) int
}

type Poller struct {
	window Window
	// primed is false until the first poll, so the first cursor read does
	// not produce a jump in the mouse delta.
	primed bool
}

func NewPoller(w Window) *Poller {
	return &Poller{window: w}
}

// Poll reads the window state into in. glfw.PollEvents must already have run
// this frame.
func (p *Poller) Poll(in *sceneedit.Input) {
	in.NewFrame()

	for key, glfwKeys := range keyToGlfw {
		down := false
		for _, k := range glfwKeys {
			if p.window.GetKey(k) == glfw.Press {
				down = true
			}
		}
		in.SetKey(key, down)
	}
	for btn, glfwBtn := range buttonToGlfw {
		in.SetKey(btn, p.window.GetMouseButton(glfwBtn) == glfw.Press)
	}

	in.WindowWidth, in.WindowHeight = p.window.GetSize()
	in.Focused = p.window.GetAttrib(glfw.Focused) == glfw.True

	// GLFW reports the cursor from the top left; the editor works y-up.
	mx, my := p.window.GetCursorPos()
	y := float64(in.WindowHeight) - my
	if !p.primed {
		in.MouseX, in.MouseY = mx, y
		p.primed = true
	}
	in.MoveMouse(mx, y)
}

var buttonToGlfw = map[int]glfw.MouseButton{
	sceneedit.MouseButtonLeft:   glfw.MouseButtonLeft,
	sceneedit.MouseButtonRight:  glfw.MouseButtonRight,
	sceneedit.MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var keyToGlfw = map[int][]glfw.Key{
	sceneedit.KeyA:         {glfw.KeyA},
	sceneedit.KeyB:         {glfw.KeyB},
	sceneedit.KeyC:         {glfw.KeyC},
	sceneedit.KeyD:         {glfw.KeyD},
	sceneedit.KeyE:         {glfw.KeyE},
	sceneedit.KeyF:         {glfw.KeyF},
	sceneedit.KeyG:         {glfw.KeyG},
	sceneedit.KeyH:         {glfw.KeyH},
	sceneedit.KeyI:         {glfw.KeyI},
	sceneedit.KeyJ:         {glfw.KeyJ},
	sceneedit.KeyK:         {glfw.KeyK},
	sceneedit.KeyL:         {glfw.KeyL},
	sceneedit.KeyM:         {glfw.KeyM},
	sceneedit.KeyN:         {glfw.KeyN},
	sceneedit.KeyO:         {glfw.KeyO},
	sceneedit.KeyP:         {glfw.KeyP},
	sceneedit.KeyQ:         {glfw.KeyQ},
	sceneedit.KeyR:         {glfw.KeyR},
	sceneedit.KeyS:         {glfw.KeyS},
	sceneedit.KeyT:         {glfw.KeyT},
	sceneedit.KeyU:         {glfw.KeyU},
	sceneedit.KeyV:         {glfw.KeyV},
	sceneedit.KeyW:         {glfw.KeyW},
	sceneedit.KeyX:         {glfw.KeyX},
	sceneedit.KeyY:         {glfw.KeyY},
	sceneedit.KeyZ:         {glfw.KeyZ},
	sceneedit.Key0:         {glfw.Key0},
	sceneedit.Key1:         {glfw.Key1},
	sceneedit.Key2:         {glfw.Key2},
	sceneedit.Key3:         {glfw.Key3},
	sceneedit.Key4:         {glfw.Key4},
	sceneedit.Key5:         {glfw.Key5},
	sceneedit.Key6:         {glfw.Key6},
	sceneedit.Key7:         {glfw.Key7},
	sceneedit.Key8:         {glfw.Key8},
	sceneedit.Key9:         {glfw.Key9},
	sceneedit.KeySpace:     {glfw.KeySpace},
	sceneedit.KeyEnter:     {glfw.KeyEnter},
	sceneedit.KeyEscape:    {glfw.KeyEscape},
	sceneedit.KeyTab:       {glfw.KeyTab},
	sceneedit.KeyBackspace: {glfw.KeyBackspace},
	sceneedit.KeyInsert:    {glfw.KeyInsert},
	sceneedit.KeyDelete:    {glfw.KeyDelete},
	sceneedit.KeyRight:     {glfw.KeyRight},
	sceneedit.KeyLeft:      {glfw.KeyLeft},
	sceneedit.KeyDown:      {glfw.KeyDown},
	sceneedit.KeyUp:        {glfw.KeyUp},
	sceneedit.KeyF1:        {glfw.KeyF1},
	sceneedit.KeyF2:        {glfw.KeyF2},
	sceneedit.KeyF3:        {glfw.KeyF3},
	sceneedit.KeyF4:        {glfw.KeyF4},
	sceneedit.KeyF5:        {glfw.KeyF5},
	sceneedit.KeyF6:        {glfw.KeyF6},
	sceneedit.KeyF7:        {glfw.KeyF7},
	sceneedit.KeyF8:        {glfw.KeyF8},
	sceneedit.KeyF9:        {glfw.KeyF9},
	sceneedit.KeyF10:       {glfw.KeyF10},
	sceneedit.KeyF11:       {glfw.KeyF11},
	sceneedit.KeyF12:       {glfw.KeyF12},
	sceneedit.KeyMinus:     {glfw.KeyMinus},
	sceneedit.KeyEqual:     {glfw.KeyEqual},
	sceneedit.KeyKPPlus:    {glfw.KeyKPAdd},
	sceneedit.KeyKPMinus:   {glfw.KeyKPSubtract},
	sceneedit.KeyShift:     {glfw.KeyLeftShift, glfw.KeyRightShift},
	sceneedit.KeyControl:   {glfw.KeyLeftControl, glfw.KeyRightControl},
	sceneedit.KeyLeftAlt:   {glfw.KeyLeftAlt},
}
