package core

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// LightBounds describes the box and ranges random lights are drawn from.
type LightBounds struct {
	Min      mgl32.Vec3
	Max      mgl32.Vec3
	ColorMin float32
	ColorMax float32
	SpeedMin float32
	SpeedMax float32
}

func DefaultLightBounds() LightBounds {
	return LightBounds{
		Min:      mgl32.Vec3{-3, 0, -4},
		Max:      mgl32.Vec3{3, 4, 1},
		ColorMin: 0.5,
		ColorMax: 1.0,
		SpeedMin: 0.5,
		SpeedMax: 1.5,
	}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// RandomLights draws n oscillating lights from b. Direction is random as well.
func RandomLights(rng *rand.Rand, n int, b LightBounds) []*PointLight {
	lights := make([]*PointLight, 0, n)
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{
			lerp(b.Min.X(), b.Max.X(), rng.Float32()),
			lerp(b.Min.Y(), b.Max.Y(), rng.Float32()),
			lerp(b.Min.Z(), b.Max.Z(), rng.Float32()),
		}
		color := mgl32.Vec3{
			lerp(b.ColorMin, b.ColorMax, rng.Float32()),
			lerp(b.ColorMin, b.ColorMax, rng.Float32()),
			lerp(b.ColorMin, b.ColorMax, rng.Float32()),
		}
		l := NewPointLight(pos, color)
		l.Speed = lerp(b.SpeedMin, b.SpeedMax, rng.Float32())
		if rng.Intn(2) == 1 {
			l.Direction = DirectionDown
		}
		lights = append(lights, l)
	}
	return lights
}
