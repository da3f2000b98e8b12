package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/lumen"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	scenePath := flag.String("scene", "", "YAML scene file (default: built-in scene)")
	pipeline := flag.String("pipeline", "", "Render pipeline: deferred or forward")
	debug := flag.Bool("debug", false, "Enable debug logging")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	lights := flag.Int("lights", 0, "Extra random point lights")
	seed := flag.Int64("seed", 0, "Seed for random lights")
	flag.Parse()

	cfg := lumen.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = lumen.LoadConfig(*configPath); err != nil {
			fatal(err)
		}
	}

	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *scenePath
		case "pipeline":
			cfg.Pipeline = *pipeline
		case "debug":
			cfg.Debug = *debug
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "lights":
			cfg.Lights = *lights
		case "seed":
			cfg.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	renderer, err := cfg.Renderer()
	if err != nil {
		fatal(err)
	}

	app := lumen.NewAppBuilder().
		UseStates(lumen.StateRunning, lumen.StateExit).
		UseModule(
			lumen.LoggingModule{Prefix: "lumen", Debug: cfg.Debug},
			lumen.TimeModule{},
			lumen.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			lumen.InputModule{CaptureMouse: true},
			lumen.FlyingCameraModule{Camera: cfg.NewCamera()},
			lumen.SceneModule{Config: cfg},
			lumen.ExitModule{},
		).
		Build()

	app.UseRenderer(renderer).Run()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "lumen:", err)
	os.Exit(1)
}
