package app

import (
	"errors"
	"fmt"

	"github.com/gekko3d/lumen/deferred/ds/core"
	"github.com/gekko3d/lumen/deferred/ds/gpu"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrFramePending = errors.New("renderer: previous frame not yet presented")

type Options struct {
	Pipeline    PipelineKind
	Exposure    float32
	Ambient     mgl32.Vec3
	Shininess   float32
	MarkerScale float32
	ShowMarkers bool
	ShowHUD     bool
	VSync       bool
}

func DefaultOptions() Options {
	return Options{
		Pipeline:    PipelineDeferred,
		Exposure:    1,
		Ambient:     mgl32.Vec3{0.1, 0.1, 0.1},
		Shininess:   16,
		MarkerScale: 0.05,
		ShowMarkers: true,
		ShowHUD:     true,
		VSync:       true,
	}
}

// Renderer owns every GPU object of the demo. Passes receive it, or the parts of it they
// need, explicitly.
type Renderer struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Ctx       *gpu.Context
	Resources *gpu.SceneResources
	Targets   *gpu.FrameTargets
	Pipeline  Pipeline
	Composite *gpu.CompositePass
	Markers   *gpu.MarkerPass
	Text      *gpu.TextPass
	TextItems []core.TextItem

	Profiler *Profiler
	Logger   core.Logger
	Options  Options
	ViewMode gpu.ViewMode

	// Placeholders is the number of textures replaced by the placeholder at load time.
	Placeholders int

	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView

	LastRenderTime float64
	FrameCount     int
	FPS            float64
	FPSTime        float64
}

func NewRenderer(window *glfw.Window, opts Options, logger core.Logger) *Renderer {
	return &Renderer{
		Window:   window,
		Options:  opts,
		Logger:   core.OrNop(logger),
		Profiler: NewProfiler(),
	}
}

// Init creates the device and every pipeline. Any error leaves the renderer unusable.
func (r *Renderer) Init() error {
	r.Instance = wgpu.CreateInstance(nil)
	r.Surface = r.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(r.Window))

	adapter, err := r.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	r.Adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Main Device"})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	r.Device = device
	r.Queue = device.GetQueue()

	caps := r.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return errors.New("surface reports no formats")
	}
	presentMode := wgpu.PresentModeFifo
	if !r.Options.VSync {
		presentMode = wgpu.PresentModeImmediate
	}
	width, height := r.Window.GetFramebufferSize()
	r.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	}
	r.Surface.Configure(adapter, device, r.Config)
	r.Logger.Infof("surface %dx%d format=%v", r.Config.Width, r.Config.Height, r.Config.Format)

	if r.Ctx, err = gpu.NewContext(device, r.Config.Format); err != nil {
		return err
	}
	if r.Resources, err = gpu.NewSceneResources(r.Ctx, r.Logger); err != nil {
		return err
	}
	if r.Targets, err = gpu.NewFrameTargets(device, r.Config.Width, r.Config.Height); err != nil {
		return err
	}
	if r.Pipeline, err = NewPipeline(r.Options.Pipeline, r.Ctx, r.Config.Width, r.Config.Height); err != nil {
		return fmt.Errorf("%s pipeline: %w", r.Options.Pipeline, err)
	}
	if r.Composite, err = gpu.NewCompositePass(r.Ctx, r.Options.Exposure); err != nil {
		return err
	}
	if err = r.Composite.Bind(r.Targets.Lit); err != nil {
		return err
	}
	if r.Markers, err = gpu.NewMarkerPass(r.Ctx); err != nil {
		return err
	}
	if r.Text, err = gpu.NewTextPass(r.Ctx, core.NewTextRenderer(nil)); err != nil {
		return err
	}
	r.Logger.Infof("renderer ready: pipeline=%s", r.Pipeline.Name())
	return nil
}

// Resize reconfigures the surface and regenerates every size-dependent target.
// A zero-sized framebuffer (minimised window) is ignored.
func (r *Renderer) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if uint32(w) == r.Config.Width && uint32(h) == r.Config.Height {
		return nil
	}
	r.Config.Width = uint32(w)
	r.Config.Height = uint32(h)
	r.Surface.Configure(r.Adapter, r.Device, r.Config)

	targets, err := gpu.NewFrameTargets(r.Device, r.Config.Width, r.Config.Height)
	if err != nil {
		return err
	}
	r.Targets.Release()
	r.Targets = targets
	if err := r.Pipeline.Resize(r.Config.Width, r.Config.Height); err != nil {
		return err
	}
	if err := r.Composite.Bind(r.Targets.Lit); err != nil {
		return err
	}
	r.Logger.Debugf("resized to %dx%d", w, h)
	return nil
}

// Update uploads the frame's camera, objects and culled lights.
func (r *Renderer) Update(scene *core.Scene, cam *core.Camera) error {
	defer r.Profiler.Scope("update")()

	if err := r.Resources.Sync(scene); err != nil {
		return err
	}
	w, h := r.Config.Width, r.Config.Height
	r.Resources.UpdateCamera(cam, w, h)
	r.Resources.UpdateObjects(scene)

	aspect := float32(w) / float32(max(h, 1))
	frustum := core.ExtractFrustum(cam.ViewProjection(aspect))
	visible, dropped := core.CullLights(scene.PointLights, scene.Attenuation, scene.Cutoff, frustum, core.MaxPointLights)
	r.Resources.UpdateLighting(gpu.LightingFrame{
		ViewPos:     cam.Position,
		Ambient:     r.Options.Ambient,
		Shininess:   r.Options.Shininess,
		Attenuation: scene.Attenuation,
		Lights:      visible,
		Mode:        r.ViewMode,
	})
	r.Profiler.SetCount("lights", len(scene.PointLights))
	r.Profiler.SetCount("lights.visible", len(visible))
	r.Profiler.SetCount("lights.dropped", dropped)
	r.Profiler.SetCount("textures.missing", r.Placeholders)

	if r.Options.ShowMarkers {
		if err := r.Markers.Update(scene.PointLights, r.Options.MarkerScale); err != nil {
			return err
		}
	}

	r.ClearText()
	if r.Options.ShowHUD {
		r.TextItems = HUDLines(HUDStats{
			FPS:          r.FPS,
			Pipeline:     r.Pipeline.Name(),
			ViewMode:     r.ViewMode.String(),
			Width:        int(w),
			Height:       int(h),
			Objects:      len(scene.Objects),
			Lights:       len(scene.PointLights),
			Visible:      len(visible),
			Dropped:      dropped,
			Placeholders: r.Placeholders,
			Markers:      r.Options.ShowMarkers,
			Profile:      r.Profiler.GetStatsString(),
		})
	}
	return r.Text.Update(r.TextItems, int(w), int(h))
}

func (r *Renderer) ClearText() {
	r.TextItems = r.TextItems[:0]
}

func (r *Renderer) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	r.TextItems = append(r.TextItems, core.TextItem{
		Text:     text,
		Position: [2]float32{x, y},
		Scale:    scale,
		Color:    color,
	})
}

// Render encodes and submits one frame: scene passes, composite to the surface, depth
// resolve, light markers, then the HUD. The surface image is held until Present.
func (r *Renderer) Render(scene *core.Scene) error {
	if r.frameTexture != nil {
		return ErrFramePending
	}
	defer r.Profiler.Scope("render")()

	texture, err := r.Surface.GetCurrentTexture()
	if err != nil {
		// Outdated or lost surfaces recover on the next configure.
		r.Logger.Warnf("GetCurrentTexture failed: %v", err)
		r.Profiler.AddCount("frames.skipped", 1)
		return nil
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("surface view: %w", err)
	}
	encoder, err := r.Device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		texture.Release()
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	// The surface image is presented even when encoding fails part way.
	r.frameTexture, r.frameView = texture, view

	frame := &Frame{
		Encoder:   encoder,
		Scene:     scene,
		Resources: r.Resources,
		Targets:   r.Targets,
		Profiler:  r.Profiler,
	}
	if err := r.Pipeline.Encode(frame); err != nil {
		return err
	}
	if err := r.Composite.Encode(encoder, view, r.Resources); err != nil {
		return fmt.Errorf("composite pass: %w", err)
	}
	if err := r.Pipeline.ResolveDepth(frame); err != nil {
		return fmt.Errorf("depth resolve: %w", err)
	}
	if r.Options.ShowMarkers {
		if err := r.Markers.Encode(encoder, view, r.Targets.Depth, r.Resources); err != nil {
			return fmt.Errorf("marker pass: %w", err)
		}
	}
	if err := r.Text.Encode(encoder, view); err != nil {
		return fmt.Errorf("text pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()
	r.Queue.Submit(cmd)
	return nil
}

// Present shows the image acquired by Render, if any, and lets the device make progress.
func (r *Renderer) Present() {
	if r.frameTexture != nil {
		r.Surface.Present()
		r.frameView.Release()
		r.frameTexture.Release()
		r.frameView, r.frameTexture = nil, nil
	}
	r.Device.Poll(false, nil)

	now := glfw.GetTime()
	if r.LastRenderTime > 0 {
		r.FrameCount++
		r.FPSTime += now - r.LastRenderTime
		if r.FPSTime >= 1.0 {
			r.FPS = float64(r.FrameCount) / r.FPSTime
			r.FrameCount = 0
			r.FPSTime = 0
			r.Profiler.Reset()
		}
	}
	r.LastRenderTime = now
}

func (r *Renderer) CycleViewMode() gpu.ViewMode {
	r.ViewMode = r.ViewMode.Next()
	r.Logger.Infof("view mode: %s", r.ViewMode)
	return r.ViewMode
}

func (r *Renderer) ToggleMarkers() bool {
	r.Options.ShowMarkers = !r.Options.ShowMarkers
	return r.Options.ShowMarkers
}

// Release frees GPU objects in reverse creation order. It is safe after a failed Init.
func (r *Renderer) Release() {
	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	if r.frameTexture != nil {
		r.frameTexture.Release()
		r.frameTexture = nil
	}
	if r.Text != nil {
		r.Text.Release()
	}
	if r.Markers != nil {
		r.Markers.Release()
	}
	if r.Composite != nil {
		r.Composite.Release()
	}
	if r.Pipeline != nil {
		r.Pipeline.Release()
	}
	if r.Targets != nil {
		r.Targets.Release()
	}
	if r.Resources != nil {
		r.Resources.Release()
	}
	if r.Ctx != nil {
		r.Ctx.Release()
	}
	if r.Device != nil {
		r.Device.Release()
	}
	if r.Adapter != nil {
		r.Adapter.Release()
	}
	if r.Surface != nil {
		r.Surface.Release()
	}
	if r.Instance != nil {
		r.Instance.Release()
	}
}
