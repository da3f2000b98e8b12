package lumen

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

type frameLog struct {
	calls []string
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	app.changeState(2)
	assert.Equal(t, State(2), app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(2)
	assert.Equal(t, State(2), app.state)
}

func TestApp_addResources(t *testing.T) {
	app := newApp()

	resource1 := &MockResource1{name: "Resource1"}
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem())

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := &MockResource2{name: "Resource2"}
	app.addResources(resource2)
	assert.Same(t, resource2, Resource[MockResource2](app))
	assert.Nil(t, Resource[frameLog](app))

	assert.Panics(t, func() { app.addResources(MockResource1{}) }, "resources must be pointers")
}

func TestApp_RunsStagesInOrderUntilExit(t *testing.T) {
	log := &frameLog{}
	record := func(name string) func(*frameLog) {
		return func(l *frameLog) { l.calls = append(l.calls, name) }
	}

	app := NewAppBuilder().UseStates(StateRunning, StateExit).Build()
	app.addResources(log)
	// Registered out of stage order on purpose.
	app.UseSystem(System(record("finale")).InStage(Finale).RunAlways())
	app.UseSystem(System(record("prelude")).InStage(Prelude).RunAlways())
	app.UseSystem(System(record("render")).InStage(Render).RunAlways())
	app.UseSystem(System(func(l *frameLog, cmd *Commands) {
		l.calls = append(l.calls, "update")
		if cmd.app.Frame() == 1 {
			cmd.ChangeState(StateExit)
		}
	}).InStage(Update).InState(OnExecute(StateRunning)))
	app.UseSystem(System(record("enter-exit")).InStage(Render).InState(OnEnter(StateExit)))
	app.UseSystem(System(record("exit-running")).InStage(Prelude).InState(OnExit(StateRunning)))

	app.Run()

	assert.Equal(t, []string{
		"prelude", "update", "render", "finale",
		"prelude", "update", "render", "finale",
		"exit-running", "enter-exit",
	}, log.calls)
	assert.Equal(t, StateExit, app.State())
	assert.Equal(t, uint64(2), app.Frame())
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(*MockResource1) {}).RunAlways())
	assert.Panics(t, func() { app.Step() })
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())

	app := NewAppBuilder().Build()
	assert.False(t, app.Logger().DebugEnabled())

	app = NewAppBuilder().UseModule(LoggingModule{Prefix: "t", Debug: true}).Build()
	assert.True(t, app.Logger().DebugEnabled())
}
