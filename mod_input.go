package lumen

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyD
	KeyE
	KeyL
	KeyQ
	KeyS
	KeyW
	KeySpace
	KeyEscape
	KeyTab
	KeyF1
	KeyF2
	KeyF3
	KeyMinus
	KeyEqual
	KeyShift
	KeyControl
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

var keyToGlfw = map[int]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyD:       glfw.KeyD,
	KeyE:       glfw.KeyE,
	KeyL:       glfw.KeyL,
	KeyQ:       glfw.KeyQ,
	KeyS:       glfw.KeyS,
	KeyW:       glfw.KeyW,
	KeySpace:   glfw.KeySpace,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyF1:      glfw.KeyF1,
	KeyF2:      glfw.KeyF2,
	KeyF3:      glfw.KeyF3,
	KeyMinus:   glfw.KeyMinus,
	KeyEqual:   glfw.KeyEqual,
	KeyShift:   glfw.KeyLeftShift,
	KeyControl: glfw.KeyLeftControl,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}

type InputModule struct {
	// CaptureMouse starts with the cursor hidden and locked for mouse look.
	CaptureMouse bool
}

type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool
	Scroll                   float64

	firstMouse bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{MouseCaptured: mod.CaptureMouse, firstMouse: true})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

// setKey records the key's state for this frame and derives the edge flags.
func (input *Input) setKey(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

// moveMouse updates the cursor position. The first sample after capture yields no delta.
func (input *Input) moveMouse(x, y float64) {
	if !input.MouseCaptured || input.firstMouse {
		input.MouseDeltaX, input.MouseDeltaY = 0, 0
		input.firstMouse = !input.MouseCaptured
	} else {
		input.MouseDeltaX = x - input.MouseX
		input.MouseDeltaY = y - input.MouseY
	}
	input.MouseX, input.MouseY = x, y
}

// inputSystem samples the state gathered by the last event poll.
func inputSystem(s *WindowState, input *Input) {
	win := s.Window()
	if win == nil {
		return
	}

	for key, glfwKey := range keyToGlfw {
		input.setKey(key, win.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.setKey(btn, win.GetMouseButton(glfwBtn) == glfw.Press)
	}

	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
		input.firstMouse = true
	}
	input.moveMouse(win.GetCursorPos())
	input.Scroll = s.takeScroll()

	if input.MouseCaptured {
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// DefaultToggleCooldown is the minimum time between two flips of a Toggle.
const DefaultToggleCooldown = 250 * time.Millisecond

// Toggle turns a held key into single flips: it fires on the press edge, at most once per
// Cooldown, and not again until the key is released.
type Toggle struct {
	Cooldown time.Duration
	last     time.Time
	held     bool
}

func NewToggle() *Toggle {
	return &Toggle{Cooldown: DefaultToggleCooldown}
}

func (t *Toggle) Fire(pressed bool, now time.Time) bool {
	if !pressed {
		t.held = false
		return false
	}
	if t.held {
		return false
	}
	t.held = true
	if !t.last.IsZero() && now.Sub(t.last) < t.Cooldown {
		return false
	}
	t.last = now
	return true
}
