package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLightRadius_KnownValue(t *testing.T) {
	// white light, constant 1, linear 0.7, quadratic 1.8, cutoff 256/5
	r := LightRadius(mgl32.Vec3{1, 1, 1}, DefaultAttenuation, DefaultCutoff)
	want := (-0.7 + math.Sqrt(0.49-4*1.8*(1-256.0/5.0))) / (2 * 1.8)
	assert.InDelta(t, want, r, 1e-4)

	// attenuation at the radius equals 1/(cutoff*peak)
	assert.InDelta(t, 1.0/DefaultCutoff, DefaultAttenuation.At(r), 1e-4)
}

func TestLightRadius_MonotonicInBrightness(t *testing.T) {
	prev := float32(-1)
	for b := float32(0.05); b <= 20; b += 0.05 {
		r := LightRadius(mgl32.Vec3{b * 0.3, b, b * 0.5}, DefaultAttenuation, DefaultCutoff)
		assert.GreaterOrEqual(t, r, prev, "brightness %f", b)
		prev = r
	}

	// strictly increasing once the light is bright enough to reach the cutoff
	lo := LightRadius(mgl32.Vec3{1, 1, 1}, DefaultAttenuation, DefaultCutoff)
	hi := LightRadius(mgl32.Vec3{2, 2, 2}, DefaultAttenuation, DefaultCutoff)
	assert.Greater(t, hi, lo)
}

func TestLightRadius_NeverNaN(t *testing.T) {
	values := []float32{0, 1e-6, 0.01, 0.5, 1, 3, 100, 1e6}
	for _, c := range values {
		for _, l := range values {
			for _, q := range values[1:] {
				for _, peak := range []float32{0, 1e-3, 0.5, 1, 50} {
					r := LightRadius(mgl32.Vec3{peak, 0, 0}, Attenuation{Constant: c, Linear: l, Quadratic: q}, DefaultCutoff)
					assert.False(t, math.IsNaN(float64(r)), "c=%f l=%f q=%f peak=%f", c, l, q, peak)
					assert.GreaterOrEqual(t, r, MinLightRadius)
					assert.LessOrEqual(t, r, MaxLightRadius)
				}
			}
		}
	}
}

func TestLightRadius_NegativeDiscriminant(t *testing.T) {
	// dim light with a large constant term: l^2 - 4q(c - t*peak) < 0
	r := LightRadius(mgl32.Vec3{0.001, 0, 0}, Attenuation{Constant: 10, Linear: 0.1, Quadratic: 2}, DefaultCutoff)
	assert.Equal(t, MinLightRadius, r)
}

func TestLightRadius_DegenerateCoefficients(t *testing.T) {
	linearOnly := LightRadius(mgl32.Vec3{1, 1, 1}, Attenuation{Constant: 1, Linear: 1}, 10)
	assert.InDelta(t, 9, linearOnly, 1e-5)

	none := LightRadius(mgl32.Vec3{1, 1, 1}, Attenuation{Constant: 1}, 10)
	assert.Equal(t, MaxLightRadius, none)
}

func TestAttenuation_At(t *testing.T) {
	a := Attenuation{Constant: 1, Linear: 0.5, Quadratic: 0.25}
	assert.InDelta(t, 1.0, a.At(0), 1e-6)
	assert.InDelta(t, 1.0/3.0, a.At(2), 1e-6)
	assert.Equal(t, float32(0), Attenuation{}.At(0))
}
