package lumen

import (
	"errors"
	"fmt"
	"os"

	app_ds "github.com/gekko3d/lumen/deferred/ds/app"
	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	FOV         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
}

type LightingConfig struct {
	Ambient     [3]float32 `yaml:"ambient"`
	Shininess   float32    `yaml:"shininess"`
	Exposure    float32    `yaml:"exposure"`
	MarkerScale float32    `yaml:"marker_scale"`
	ShowMarkers bool       `yaml:"show_markers"`
}

// Config is the demo's file configuration. Command-line flags override it.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Pipeline string         `yaml:"pipeline"`
	Debug    bool           `yaml:"debug"`
	HUD      bool           `yaml:"hud"`
	// Scene is a scene file; when empty the default scene is built around Model.
	Scene  string `yaml:"scene"`
	Model  string `yaml:"model"`
	Lights int    `yaml:"lights"`
	Seed   int64  `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
			Title:  defaultWindowTitle,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 1, 3},
			Yaw:         -90,
			Pitch:       0,
			FOV:         core.FOVMax,
			Near:        0.1,
			Far:         100,
			Speed:       2.5,
			Sensitivity: 0.05,
		},
		Lighting: LightingConfig{
			Ambient:     [3]float32{0.1, 0.1, 0.1},
			Shininess:   16,
			Exposure:    1,
			MarkerScale: 0.05,
			ShowMarkers: true,
		},
		Pipeline: string(app_ds.PipelineDeferred),
		HUD:      true,
		Seed:     1,
	}
}

// LoadConfig reads path over DefaultConfig, so a file only needs the keys it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip range [%g, %g]", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.FOV < core.FOVMin || c.Camera.FOV > core.FOVMax {
		errs = append(errs, fmt.Errorf("camera fov %g outside [%g, %g]", c.Camera.FOV, core.FOVMin, core.FOVMax))
	}
	if c.Lighting.Exposure <= 0 {
		errs = append(errs, fmt.Errorf("exposure %g", c.Lighting.Exposure))
	}
	if c.Lights < 0 {
		errs = append(errs, fmt.Errorf("lights %d", c.Lights))
	}
	if _, err := app_ds.ParsePipelineKind(c.Pipeline); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) NewCamera() *core.Camera {
	cam := core.NewCamera()
	cam.Position = mgl32.Vec3(c.Camera.Position)
	cam.FOV = c.Camera.FOV
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	cam.Speed = c.Camera.Speed
	cam.Sensitivity = c.Camera.Sensitivity
	cam.SetOrientation(c.Camera.Yaw, c.Camera.Pitch)
	return cam
}

func (c Config) RendererOptions() (app_ds.Options, error) {
	kind, err := app_ds.ParsePipelineKind(c.Pipeline)
	if err != nil {
		return app_ds.Options{}, err
	}
	opts := app_ds.DefaultOptions()
	opts.Pipeline = kind
	opts.Exposure = c.Lighting.Exposure
	opts.Ambient = mgl32.Vec3(c.Lighting.Ambient)
	opts.Shininess = c.Lighting.Shininess
	opts.MarkerScale = c.Lighting.MarkerScale
	opts.ShowMarkers = c.Lighting.ShowMarkers
	opts.ShowHUD = c.HUD
	opts.VSync = c.Window.VSync
	return opts, nil
}
