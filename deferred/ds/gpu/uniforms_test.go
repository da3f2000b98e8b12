package gpu

import (
	"testing"

	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackLighting_ZeroLights(t *testing.T) {
	buf := PackLighting(LightingFrame{
		ViewPos:     mgl32.Vec3{0, 1, 3},
		Ambient:     mgl32.Vec3{0.1, 0.1, 0.1},
		Shininess:   16,
		Attenuation: core.DefaultAttenuation,
	})
	require.Len(t, buf, LightingUniformSize)

	assert.Equal(t, float32(3), float32At(buf, 8))
	assert.Equal(t, float32(16), float32At(buf, 28))
	assert.Equal(t, uint32(0), uint32At(buf, 32), "light count")

	for i := lightingHeaderSize; i < len(buf); i++ {
		require.Zero(t, buf[i], "byte %d of the light array", i)
	}
}

func TestPackLighting_FillsSlotsInOrder(t *testing.T) {
	a := core.NewPointLight(mgl32.Vec3{-2, 2, 0}, mgl32.Vec3{0, 1, 1})
	b := core.NewPointLight(mgl32.Vec3{-2, 2, -1}, mgl32.Vec3{0.25, 1, 0.75})
	att := core.Attenuation{Constant: 1, Linear: 0.7, Quadratic: 1.8}

	buf := PackLighting(LightingFrame{
		Attenuation: att,
		Lights:      []core.CulledLight{{Light: a, Radius: 4}, {Light: b, Radius: 5}},
		Mode:        ViewNormal,
	})
	assert.Equal(t, uint32(2), uint32At(buf, 32))
	assert.Equal(t, uint32(ViewNormal), uint32At(buf, 36))

	slot := func(i, field int) int { return lightingHeaderSize + i*LightRecordSize + field*4 }
	assert.Equal(t, float32(-2), float32At(buf, slot(0, 0)))
	assert.Equal(t, float32(4), float32At(buf, slot(0, 3)))
	assert.Equal(t, float32(-1), float32At(buf, slot(1, 2)))
	assert.Equal(t, float32(5), float32At(buf, slot(1, 3)))
	assert.Equal(t, float32(0.25), float32At(buf, slot(1, 4)))
	assert.Equal(t, float32(0.7), float32At(buf, slot(1, 9)))
	assert.Equal(t, float32(1.8), float32At(buf, slot(1, 10)))

	// third slot onwards stays inert
	assert.Zero(t, float32At(buf, slot(2, 3)))
	assert.Zero(t, float32At(buf, slot(2, 4)))
}

func TestPackLighting_IgnoresOverflow(t *testing.T) {
	lights := make([]core.CulledLight, core.MaxPointLights+3)
	for i := range lights {
		lights[i] = core.CulledLight{Light: core.NewPointLight(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}), Radius: 1}
	}
	buf := PackLighting(LightingFrame{Lights: lights})
	assert.Len(t, buf, LightingUniformSize)
	assert.Equal(t, uint32(core.MaxPointLights), uint32At(buf, 32))
}

func TestPackCamera(t *testing.T) {
	cam := core.NewCamera()
	buf := PackCamera(cam, 1280, 720)
	require.Len(t, buf, CameraUniformSize)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(1280.0 / 720.0)
	vp := proj.Mul4(view)
	for i := 0; i < 16; i++ {
		assert.Equal(t, vp[i], float32At(buf, i*4))
		assert.Equal(t, view[i], float32At(buf, 64+i*4))
		assert.Equal(t, proj[i], float32At(buf, 128+i*4))
	}
	assert.Equal(t, cam.Position.Y(), float32At(buf, 196))
	assert.Equal(t, float32(1280), float32At(buf, 208))
	assert.Equal(t, float32(720), float32At(buf, 212))

	// a minimised window must not produce a zero aspect
	assert.Len(t, PackCamera(cam, 0, 0), CameraUniformSize)
}

func TestPackObjectAndMaterial(t *testing.T) {
	tr := core.NewTransform(mgl32.Vec3{1, 2, 3}, 0.1)
	buf := PackObject(tr)
	require.Len(t, buf, ObjectUniformSize)
	assert.Equal(t, float32(1), float32At(buf, 48))
	assert.InDelta(t, 0.1, float64(float32At(buf, 0)), 1e-6)
	assert.InDelta(t, 10, float64(float32At(buf, 64)), 1e-4)

	mat := core.DefaultMaterial()
	mat.SpecularStrength = 0.25
	m := PackMaterial(mat)
	require.Len(t, m, MaterialUniformSize)
	assert.Equal(t, float32(0.25), float32At(m, 12))

	c := PackComposite(2, true)
	assert.Equal(t, float32(2), float32At(c, 0))
	assert.Equal(t, float32(1), float32At(c, 4))
}

func TestViewMode_Cycle(t *testing.T) {
	m := ViewLit
	seen := map[string]bool{}
	for i := 0; i < int(viewModeCount); i++ {
		seen[m.String()] = true
		m = m.Next()
	}
	assert.Equal(t, ViewLit, m)
	assert.Len(t, seen, int(viewModeCount))
}
