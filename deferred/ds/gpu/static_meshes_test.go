package gpu

import (
	"testing"

	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullscreenQuad(t *testing.T) {
	q := FullscreenQuad()
	require.Len(t, q, QuadVertexCount*4)
	for i := 0; i < QuadVertexCount; i++ {
		x, y, u, v := q[i*4], q[i*4+1], q[i*4+2], q[i*4+3]
		assert.Contains(t, []float32{-1, 1}, x)
		assert.Contains(t, []float32{-1, 1}, y)
		assert.Equal(t, (x+1)/2, u)
		assert.Equal(t, (1-y)/2, v)
	}

	// two counter-clockwise triangles
	for tri := 0; tri < 2; tri++ {
		var p [3]mgl32.Vec2
		for k := 0; k < 3; k++ {
			i := (tri*3 + k) * 4
			p[k] = mgl32.Vec2{q[i], q[i+1]}
		}
		e1, e2 := p[1].Sub(p[0]), p[2].Sub(p[0])
		assert.Greater(t, e1.X()*e2.Y()-e1.Y()*e2.X(), float32(0))
	}
}

func TestMarkerCube(t *testing.T) {
	c := MarkerCube()
	require.Len(t, c, CubeVertexCount*6)
	for i := 0; i < CubeVertexCount; i++ {
		p := mgl32.Vec3{c[i*6], c[i*6+1], c[i*6+2]}
		n := mgl32.Vec3{c[i*6+3], c[i*6+4], c[i*6+5]}
		assert.InDelta(t, 1, float64(n.Len()), 1e-6)
		// every vertex lies on the face its normal points out of
		assert.InDelta(t, 1, float64(p.Dot(n)), 1e-6)
	}
}

func TestStaticMeshes_AreCopies(t *testing.T) {
	q := FullscreenQuad()
	q[0] = 42
	assert.NotEqual(t, float32(42), FullscreenQuad()[0])

	c := MarkerCube()
	c[0] = 42
	assert.NotEqual(t, float32(42), MarkerCube()[0])
}

func TestMarkerInstances(t *testing.T) {
	l := core.NewPointLight(mgl32.Vec3{-2, 2, -1}, mgl32.Vec3{0.25, 1, 0.75})
	inst := MarkerInstances([]*core.PointLight{l}, 0.1)
	require.Len(t, inst, 1)
	assert.Equal(t, [4]float32{0.25, 1, 0.75, 1}, inst[0].Color)
	assert.Equal(t, float32(-2), inst[0].Model.At(0, 3))
	assert.InDelta(t, 0.1, float64(inst[0].Model.At(0, 0)), 1e-6)
	assert.Empty(t, MarkerInstances(nil, 0.1))
}
