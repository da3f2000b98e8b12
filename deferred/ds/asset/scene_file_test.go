package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
band: [0, 10]
attenuation: {constant: 1, linear: 0.35, quadratic: 0.44}
objects:
  - name: crate
    primitive: cube
    size: 2
    position: [0, 0, 0]
    scale: 0.1
    count: 3
    stride: [0, 0, -1]
  - primitive: plane
    size: 20
    position: [0, -0.5, 0]
lights:
  - position: [-2, 2, 0]
    color: [1, 0, 0]
    speed: 5
    direction: down
  - position: [2, 2, 0]
    color: [0, 0, 1]
    static: true
random_lights:
  count: 4
  seed: 7
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSceneLoader_LoadFile(t *testing.T) {
	scene, err := NewSceneLoader(nil, nil).LoadFile(writeScene(t, sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, core.VerticalBand{Min: 0, Max: 10}, scene.Band)
	assert.Equal(t, core.Attenuation{Constant: 1, Linear: 0.35, Quadratic: 0.44}, scene.Attenuation)

	require.Len(t, scene.Objects, 4)
	assert.Equal(t, "crate.0", scene.Objects[0].Name)
	assert.Equal(t, "crate.2", scene.Objects[2].Name)
	assert.Equal(t, mgl32.Vec3{0, 0, -2}, scene.Objects[2].Transform.Position)
	assert.Same(t, scene.Objects[0].Model, scene.Objects[1].Model)
	assert.Equal(t, "plane", scene.Objects[3].Name)
	assert.Len(t, scene.Models(), 2)

	require.Len(t, scene.PointLights, 6)
	first := scene.PointLights[0]
	assert.Equal(t, core.DirectionDown, first.Direction)
	assert.Equal(t, float32(5), first.Speed)
	assert.True(t, first.Oscillate)
	assert.False(t, scene.PointLights[1].Oscillate)
}

func TestSceneLoader_RandomLightsAreSeeded(t *testing.T) {
	body := "random_lights: {count: 3, seed: 42}\n"
	a, err := NewSceneLoader(nil, nil).LoadFile(writeScene(t, body))
	require.NoError(t, err)
	b, err := NewSceneLoader(nil, nil).LoadFile(writeScene(t, body))
	require.NoError(t, err)

	require.Len(t, a.PointLights, 3)
	for i := range a.PointLights {
		assert.Equal(t, a.PointLights[i].Position, b.PointLights[i].Position)
		assert.Equal(t, a.PointLights[i].Color, b.PointLights[i].Color)
	}
}

func TestSceneLoader_Capacity(t *testing.T) {
	sf := &SceneFile{Random: &RandomLightsSpec{Count: core.MaxPointLights + 5, Seed: 1}}

	_, err := NewSceneLoader(nil, nil).Build(sf, "")
	assert.ErrorIs(t, err, core.ErrTooManyLights)

	sf.TruncateLights = true
	scene, err := NewSceneLoader(nil, nil).Build(sf, "")
	require.NoError(t, err)
	assert.Len(t, scene.PointLights, core.MaxPointLights)
}

func TestSceneLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		sf   SceneFile
	}{
		{"inverted band", SceneFile{Band: &[2]float32{5, 1}}},
		{"unknown primitive", SceneFile{Objects: []ObjectSpec{{Primitive: "torus"}}}},
		{"missing model", SceneFile{Objects: []ObjectSpec{{Model: "nope.obj"}}}},
		{"bad direction", SceneFile{Lights: []LightSpec{{Direction: "sideways"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSceneLoader(nil, nil).Build(&tt.sf, t.TempDir())
			assert.Error(t, err)
		})
	}

	_, err := ReadSceneFile(writeScene(t, "objects: {not: a list}"))
	assert.Error(t, err)
}

func TestDefaultScene(t *testing.T) {
	scene := DefaultScene(nil)

	require.Len(t, scene.Objects, 4)
	for i, o := range scene.Objects {
		assert.Equal(t, float32(-i), o.Transform.Position.Z())
		assert.Equal(t, float32(0.1), o.Transform.Scale)
	}

	require.Len(t, scene.PointLights, 5)
	for i, l := range scene.PointLights {
		fi := float32(i)
		assert.Equal(t, mgl32.Vec3{-2, 2, -fi}, l.Position)
		assert.Equal(t, mgl32.Vec3{0.25 * fi, 1, 1 - 0.25*fi}, l.Color)
	}
}
