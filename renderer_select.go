package lumen

import (
	app_ds "github.com/gekko3d/lumen/deferred/ds/app"
)

// RendererName identifies a renderer strategy. Keep names aligned with ensureSingleRenderer tags.
type RendererName string

const (
	RendererDeferred RendererName = "deferred"
	RendererForward  RendererName = "forward"
)

func rendererNameFor(kind app_ds.PipelineKind) RendererName {
	if kind == app_ds.PipelineForward {
		return RendererForward
	}
	return RendererDeferred
}

// Renderer builds the renderer module selected by the config's pipeline.
func (c Config) Renderer() (RendererModule, error) {
	opts, err := c.RendererOptions()
	if err != nil {
		return RendererModule{}, err
	}
	return RendererModule{Name: rendererNameFor(opts.Pipeline), Options: opts}, nil
}

// UseRenderer installs mod as the app's only renderer. The shared window is created
// with defaults if no module provided one.
func (app *App) UseRenderer(mod RendererModule) *App {
	return app.UseModules(mod)
}
