package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_Stateless(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.False(t, app.stateful)
	assert.Equal(t, State(0), app.initialState)
	assert.Equal(t, State(0), app.finalState)
	assert.True(t, app.Step(), "a stateless app never finishes on its own")
}

func TestAppBuilder_UseStates(t *testing.T) {
	app := NewAppBuilder().UseStates(1, 10).Build()

	assert.True(t, app.stateful)
	assert.Equal(t, State(1), app.initialState)
	assert.Equal(t, State(10), app.finalState)
	assert.Len(t, app.systems[Update.Name], 10)

	assert.Panics(t, func() { NewAppBuilder().UseStates(3, 2) })
}

func TestAppBuilder_Build_InstallsModulesInOrder(t *testing.T) {
	var order []string
	m1 := &MockModule{order: &order, name: "first"}
	m2 := &MockModule{order: &order, name: "second"}

	builder := NewAppBuilder()
	builder.UseModule(m1)
	builder.UseModule(m2)
	assert.Len(t, builder.modules, 2)

	builder.Build()

	assert.True(t, m1.installed)
	assert.True(t, m2.installed)
	assert.Equal(t, []string{"first", "second"}, order)
}
