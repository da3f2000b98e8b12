package lumen

import (
	"testing"

	app_ds "github.com/gekko3d/lumen/deferred/ds/app"
	"github.com/stretchr/testify/assert"
)

func TestEnsureSingleRenderer(t *testing.T) {
	app := NewAppBuilder().Build()

	ensureSingleRenderer(app, string(RendererDeferred))
	assert.Equal(t, "deferred", Resource[RendererTag](app).Name)

	assert.NotPanics(t, func() { ensureSingleRenderer(app, string(RendererDeferred)) })
	assert.PanicsWithValue(t, "Multiple renderers installed: deferred and forward", func() {
		ensureSingleRenderer(app, string(RendererForward))
	})
	assert.Panics(t, func() { ensureSingleRenderer(nil, "deferred") })
}

func TestRendererNameFor(t *testing.T) {
	assert.Equal(t, RendererDeferred, rendererNameFor(app_ds.PipelineDeferred))
	assert.Equal(t, RendererForward, rendererNameFor(app_ds.PipelineForward))
	assert.Equal(t, RendererDeferred, rendererNameFor(""))
}
