package asset

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# quad with one material
mtllib quad.mtl
v -1 0 1
v 1 0 1
v 1 0 -1
v -1 0 -1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
o floor
usemtl tiles
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const quadMTL = `newmtl tiles
Kd 0.5 0.5 0.5
Ks 0.25 0.25 0.25
map_Kd tiles.png
map_Ks missing_spec.png
`

func TestOBJLoader_LoadWithMaterial(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(quadOBJ), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte(quadMTL), 0o644))
	writePNG(t, filepath.Join(dir, "tiles.png"), 2, 2, color.RGBA{10, 20, 30, 255})

	textures := NewTextureLoader(nil)
	model, err := NewOBJLoader(textures, nil).Load(filepath.Join(dir, "quad.obj"))
	require.NoError(t, err)

	assert.Equal(t, "quad", model.Name)
	require.Len(t, model.Meshes, 1)
	mesh := model.Meshes[0]
	assert.Equal(t, "floor", mesh.Name)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Equal(t, [2]float32{0, 1}, mesh.Vertices[0].UV)
	assert.Equal(t, [3]float32{0, 1, 0}, mesh.Vertices[0].Normal)

	mat := mesh.Material
	assert.Equal(t, "tiles", mat.Name)
	require.NotNil(t, mat.Diffuse)
	assert.Equal(t, uint32(2), mat.Diffuse.Width)
	assert.Same(t, Placeholder(), mat.Specular)
	assert.Equal(t, 1, textures.Failures())
}

func TestOBJLoader_FlatNormalsAndNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	model, err := NewOBJLoader(nil, nil).Parse(strings.NewReader(src), t.TempDir())
	require.NoError(t, err)
	require.Len(t, model.Meshes, 1)

	mesh := model.Meshes[0]
	require.Len(t, mesh.Vertices, 3)
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1.0, float64(mgl32.Vec3(v.Normal).Z()), 1e-6)
	}
	assert.Equal(t, 1, model.TriangleCount())
}

func TestOBJLoader_SplitsMeshesPerMaterial(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
usemtl a
f 1//1 2//1 3//1
usemtl b
f 3//1 2//1 1//1
`
	model, err := NewOBJLoader(nil, nil).Parse(strings.NewReader(src), t.TempDir())
	require.NoError(t, err)
	require.Len(t, model.Meshes, 2)
	assert.Equal(t, "a", model.Meshes[0].Name)
	assert.Equal(t, "b", model.Meshes[1].Name)
}

func TestOBJLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no faces", "v 0 0 0\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad vertex", "v 0 zero 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOBJLoader(nil, nil).Parse(strings.NewReader(tt.src), t.TempDir())
			assert.Error(t, err)
		})
	}

	_, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}

func TestProceduralModels(t *testing.T) {
	cube := CubeModel(2, core.DefaultMaterial())
	assert.Equal(t, 12, cube.TriangleCount())
	lo, hi := cube.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, hi)

	plane := PlaneModel(4, 2, core.DefaultMaterial())
	assert.Equal(t, 2, plane.TriangleCount())

	sphere := SphereModel(1, 4, 8, core.DefaultMaterial())
	assert.Len(t, sphere.Meshes[0].Vertices, 5*9)
	assert.Equal(t, 4*8*2, sphere.TriangleCount())
	for _, v := range sphere.Meshes[0].Vertices {
		assert.InDelta(t, 1.0, float64(mgl32.Vec3(v.Position).Len()), 1e-5)
	}
}
