package lumen

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
	defaultWindowTitle  = "Lumen"
)

// WindowState is the single GLFW window shared by input and the renderer. Its callbacks
// write only into this struct.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	FramebufferWidth  int
	FramebufferHeight int
	// Resized is set by the framebuffer callback and cleared by whoever handles it.
	Resized bool
	// ScrollY accumulates wheel offsets between two input updates.
	ScrollY float64
}

func (s *WindowState) Window() *glfw.Window {
	return s.windowGlfw
}

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw != nil && s.windowGlfw.ShouldClose()
}

func (s *WindowState) onFramebufferSize(width, height int) {
	s.FramebufferWidth = width
	s.FramebufferHeight = height
	s.Resized = true
}

func (s *WindowState) onScroll(yoff float64) {
	s.ScrollY += yoff
}

// takeScroll returns the accumulated wheel offset and resets it.
func (s *WindowState) takeScroll() float64 {
	y := s.ScrollY
	s.ScrollY = 0
	return y
}

func (s *WindowState) destroy() {
	if s.windowGlfw == nil {
		return
	}
	s.windowGlfw.Destroy()
	s.windowGlfw = nil
	glfw.Terminate()
}

// createWindowState opens a window without a client API; WebGPU owns the surface.
// Must run on the main OS thread.
func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		panic(err)
	}

	s := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	s.FramebufferWidth, s.FramebufferHeight = win.GetFramebufferSize()

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		s.onFramebufferSize(width, height)
	})
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		s.WindowWidth, s.WindowHeight = width, height
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		s.onScroll(yoff)
	})
	return s
}

// PlatformWindowModule provides the shared WindowState resource.
// Install is idempotent: an existing WindowState is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	return &PlatformWindowModule{Width: width, Height: height, Title: title}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, m.Width, m.Height, m.Title)
}

func ensureWindowResource(app *App, width, height int, title string) *WindowState {
	if ws := Resource[WindowState](app); ws != nil {
		return ws
	}
	if width <= 0 {
		width = defaultWindowWidth
	}
	if height <= 0 {
		height = defaultWindowHeight
	}
	if title == "" {
		title = defaultWindowTitle
	}
	ws := createWindowState(width, height, title)
	app.addResources(ws)
	if app.stateful {
		app.UseSystem(
			System(windowCloseSystem).
				InStage(Finale).
				InState(OnEnter(StateExit)),
		)
	}
	app.Logger().Infof("Created window (%dx%d) '%s'", width, height, title)
	return ws
}

func windowCloseSystem(s *WindowState) {
	s.destroy()
}
