package core

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointLightStep_ClampInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	band := VerticalBand{Min: -1.5, Max: 3}
	lights := RandomLights(rng, 20, LightBounds{
		Min:      mgl32.Vec3{-5, -10, -5},
		Max:      mgl32.Vec3{5, 10, 5},
		ColorMin: 0, ColorMax: 1,
		SpeedMin: 0.1, SpeedMax: 40,
	})

	for tick := 0; tick < 500; tick++ {
		dt := rng.Float32() * 0.5
		for _, l := range lights {
			l.Step(dt, band)
			if dt > 0 {
				require.True(t, band.Contains(l.Position.Y()), "tick %d: y=%f outside band", tick, l.Position.Y())
			}
		}
	}
}

func TestPointLightStep_FlipsAtBounds(t *testing.T) {
	band := VerticalBand{Min: 0, Max: 1}

	up := NewPointLight(mgl32.Vec3{0, 0.9, 0}, mgl32.Vec3{1, 1, 1})
	up.Speed = 1
	up.Step(0.5, band)
	assert.Equal(t, float32(1), up.Position.Y())
	assert.Equal(t, DirectionDown, up.Direction)

	down := NewPointLight(mgl32.Vec3{0, 0.1, 0}, mgl32.Vec3{1, 1, 1})
	down.Direction = DirectionDown
	down.Speed = 1
	down.Step(0.5, band)
	assert.Equal(t, float32(0), down.Position.Y())
	assert.Equal(t, DirectionUp, down.Direction)

	// and travels away from the bound on the next tick
	down.Step(0.25, band)
	assert.InDelta(t, 0.25, down.Position.Y(), 1e-6)
	assert.Equal(t, DirectionUp, down.Direction)
}

func TestPointLightStep_NoOp(t *testing.T) {
	band := VerticalBand{Min: 0, Max: 10}
	l := NewPointLight(mgl32.Vec3{1, 5, 2}, mgl32.Vec3{1, 1, 1})
	l.Speed = 3

	l.Step(0, band)
	l.Step(-1, band)
	assert.Equal(t, mgl32.Vec3{1, 5, 2}, l.Position)

	l.Oscillate = false
	l.Step(1, band)
	assert.Equal(t, mgl32.Vec3{1, 5, 2}, l.Position)
}

func TestPointLightStep_StartsOutsideBand(t *testing.T) {
	band := VerticalBand{Min: 0, Max: 10}
	l := NewPointLight(mgl32.Vec3{0, 50, 0}, mgl32.Vec3{1, 1, 1})
	l.Step(0.01, band)
	assert.Equal(t, float32(10), l.Position.Y())
	assert.Equal(t, DirectionDown, l.Direction)
}

func TestScene_OscillationScenario(t *testing.T) {
	scene := NewScene()
	scene.Band = VerticalBand{Min: 0, Max: 10}
	scene.AddObject(NewObject("origin", &Model{}, mgl32.Vec3{}, 1))

	top := NewPointLight(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{1, 1, 1})
	bottom := NewPointLight(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	for _, l := range []*PointLight{top, bottom} {
		l.Speed = 5
		l.Direction = DirectionUp
		require.NoError(t, scene.AddPointLight(l))
	}

	scene.Update(1)
	assert.Equal(t, float32(10), top.Position.Y())
	assert.Equal(t, DirectionDown, top.Direction)
	assert.Equal(t, float32(5), bottom.Position.Y())
	assert.Equal(t, DirectionUp, bottom.Direction)

	scene.Update(1)
	assert.Equal(t, float32(5), top.Position.Y())
	assert.Equal(t, float32(10), bottom.Position.Y())
	assert.Equal(t, DirectionDown, bottom.Direction)
}

func TestPointLight_PeakChannel(t *testing.T) {
	l := NewPointLight(mgl32.Vec3{}, mgl32.Vec3{0.2, 3.5, 1})
	assert.Equal(t, float32(3.5), l.PeakChannel())
}

func TestRandomLights_WithinBounds(t *testing.T) {
	b := DefaultLightBounds()
	lights := RandomLights(rand.New(rand.NewSource(1)), 64, b)
	require.Len(t, lights, 64)
	for _, l := range lights {
		for i := 0; i < 3; i++ {
			assert.GreaterOrEqual(t, l.Position[i], b.Min[i])
			assert.LessOrEqual(t, l.Position[i], b.Max[i])
			assert.GreaterOrEqual(t, l.Color[i], b.ColorMin)
			assert.LessOrEqual(t, l.Color[i], b.ColorMax)
		}
		assert.GreaterOrEqual(t, l.Speed, b.SpeedMin)
		assert.LessOrEqual(t, l.Speed, b.SpeedMax)
	}
}
