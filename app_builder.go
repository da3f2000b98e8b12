package lumen

type Module interface {
	Install(app *App, cmd *Commands)
}

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: newApp()}
}

func (b *AppBuilder) UseStates(initialState State, finalState State) *AppBuilder {
	if finalState < initialState {
		panic("final state precedes initial state")
	}
	b.app.stateful = true
	b.app.initialState = initialState
	b.app.finalState = finalState

	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build prepares the stages and installs the modules in the order they were given.
func (b *AppBuilder) Build() *App {
	app := b.app
	for _, stage := range app.stages {
		app.initStage(stage)
	}
	app.UseModules(b.modules...)
	return app
}
