package lumen

import (
	"fmt"
)

// RendererTag records which renderer owns the window.
type RendererTag struct {
	Name string
}

// ensureSingleRenderer tags the app with name and panics if another renderer is already
// installed. Tagging again with the same name is a no-op.
func ensureSingleRenderer(app *App, name string) {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	if tag := Resource[RendererTag](app); tag != nil {
		if tag.Name != name {
			app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
		}
		return
	}
	app.addResources(&RendererTag{Name: name})
}
