package lumen

import (
	"fmt"

	app_ds "github.com/gekko3d/lumen/deferred/ds/app"
	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// RendererModule creates the renderer on the shared window and schedules the frame:
// controls in Update, uploads in PreRender, passes in Render, present in Finale.
type RendererModule struct {
	Name    RendererName
	Options app_ds.Options
}

// RendererState is the renderer resource together with its key toggles.
type RendererState struct {
	Renderer *app_ds.Renderer
	markers  *Toggle
	viewMode *Toggle
	hud      *Toggle
}

func (m RendererModule) Install(app *App, cmd *Commands) {
	name := m.Name
	if name == "" {
		name = rendererNameFor(m.Options.Pipeline)
	}
	ensureSingleRenderer(app, string(name))
	ws := ensureWindowResource(app, 0, 0, "")

	r := app_ds.NewRenderer(ws.Window(), m.Options, app.Logger())
	if info := Resource[SceneInfo](app); info != nil {
		r.Placeholders = info.Placeholders
	}
	if err := r.Init(); err != nil {
		r.Release()
		panic(fmt.Errorf("renderer init: %w", err))
	}
	app.Logger().Infof("Renderer selected: %s", name)

	cmd.AddResources(&RendererState{
		Renderer: r,
		markers:  NewToggle(),
		viewMode: NewToggle(),
		hud:      NewToggle(),
	})

	app.UseSystem(
		System(rendererControlSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(rendererUpdateSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(rendererRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	app.UseSystem(
		System(presentSystem).
			InStage(Finale).
			RunAlways(),
	)
	app.UseSystem(
		System(rendererReleaseSystem).
			InStage(Render).
			InState(OnEnter(StateExit)),
	)
}

// rendererControlSystem handles the renderer keys: L markers, F2 view mode, F1 HUD.
func rendererControlSystem(input *Input, t *Time, state *RendererState, cmd *Commands) {
	r := state.Renderer
	if state.markers.Fire(input.Pressed[KeyL], t.Time) {
		on := r.ToggleMarkers()
		cmd.Logger().Debugf("light markers: %v", on)
	}
	if state.viewMode.Fire(input.Pressed[KeyF2], t.Time) {
		r.CycleViewMode()
	}
	if state.hud.Fire(input.Pressed[KeyF1], t.Time) {
		r.Options.ShowHUD = !r.Options.ShowHUD
	}
}

// rendererUpdateSystem applies a pending resize, then uploads this frame's uniforms.
// Failing to recreate GPU resources ends the run.
func rendererUpdateSystem(ws *WindowState, state *RendererState, scene *core.Scene, cam *core.Camera, cmd *Commands) {
	r := state.Renderer
	if ws.Resized {
		ws.Resized = false
		if err := r.Resize(ws.FramebufferWidth, ws.FramebufferHeight); err != nil {
			cmd.Logger().Errorf("resize: %v", err)
			cmd.ChangeState(StateExit)
			return
		}
	}
	if err := r.Update(scene, cam); err != nil {
		cmd.Logger().Errorf("update: %v", err)
		cmd.ChangeState(StateExit)
	}
}

func rendererRenderSystem(ws *WindowState, state *RendererState, scene *core.Scene, cmd *Commands) {
	if ws.FramebufferWidth <= 0 || ws.FramebufferHeight <= 0 {
		return
	}
	if err := state.Renderer.Render(scene); err != nil {
		cmd.Logger().Errorf("render: %v", err)
		state.Renderer.Profiler.AddCount("frames.failed", 1)
	}
}

// presentSystem shows the frame, then polls window events for the next one.
func presentSystem(state *RendererState) {
	state.Renderer.Present()
	glfw.PollEvents()
}

func rendererReleaseSystem(state *RendererState, cmd *Commands) {
	cmd.Logger().Infof("releasing renderer")
	state.Renderer.Release()
}
