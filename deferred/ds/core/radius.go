package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultCutoff is the brightness divisor below which a light is treated as dark (256/5).
	DefaultCutoff float32 = 256.0 / 5.0

	MinLightRadius float32 = 0
	MaxLightRadius float32 = 1000
)

// Attenuation holds the coefficients of 1/(Constant + Linear*d + Quadratic*d^2).
type Attenuation struct {
	Constant  float32 `yaml:"constant"`
	Linear    float32 `yaml:"linear"`
	Quadratic float32 `yaml:"quadratic"`
}

var DefaultAttenuation = Attenuation{Constant: 1.0, Linear: 0.7, Quadratic: 1.8}

// At evaluates the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	denom := a.Constant + a.Linear*d + a.Quadratic*d*d
	if denom <= 0 {
		return 0
	}
	return 1.0 / denom
}

// LightRadius returns the distance past which a light of the given color is darker than
// 1/threshold of its peak channel. The result is always finite and inside
// [MinLightRadius, MaxLightRadius]; lights that never reach the cutoff get MinLightRadius.
func LightRadius(color mgl32.Vec3, att Attenuation, threshold float32) float32 {
	peak := max(color.X(), color.Y(), color.Z())
	c := float64(att.Constant) - float64(threshold)*float64(peak)
	l := float64(att.Linear)
	q := float64(att.Quadratic)

	var r float64
	switch {
	case q > 0:
		disc := l*l - 4*q*c
		if disc < 0 {
			return MinLightRadius
		}
		r = (-l + math.Sqrt(disc)) / (2 * q)
	case l > 0:
		r = -c / l
	default:
		return MaxLightRadius
	}

	if math.IsNaN(r) || r < float64(MinLightRadius) {
		return MinLightRadius
	}
	if r > float64(MaxLightRadius) {
		return MaxLightRadius
	}
	return float32(r)
}
