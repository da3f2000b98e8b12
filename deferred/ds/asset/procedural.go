package asset

import (
	"math"

	"github.com/gekko3d/lumen/deferred/ds/core"
)

// CubeModel returns a unit cube centered on the origin with per-face normals.
func CubeModel(size float32, mat core.Material) *core.Model {
	h := size / 2
	faces := []struct {
		n    [3]float32
		u, v [3]float32
	}{
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
	}

	mesh := &core.Mesh{Name: "cube", Material: mat}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = (f.n[i] + c[0]*f.u[i] + c[1]*f.v[i]) * h
			}
			mesh.Vertices = append(mesh.Vertices, core.Vertex{
				Position: p,
				Normal:   f.n,
				UV:       [2]float32{(c[0] + 1) / 2, 1 - (c[1]+1)/2},
			})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return &core.Model{Name: "cube", Meshes: []*core.Mesh{mesh}}
}

// PlaneModel returns a square in the XZ plane facing +Y, with UVs repeated tiles times.
func PlaneModel(size, tiles float32, mat core.Material) *core.Model {
	h := size / 2
	if tiles <= 0 {
		tiles = 1
	}
	up := [3]float32{0, 1, 0}
	mesh := &core.Mesh{
		Name: "plane",
		Vertices: []core.Vertex{
			{Position: [3]float32{-h, 0, h}, Normal: up, UV: [2]float32{0, tiles}},
			{Position: [3]float32{h, 0, h}, Normal: up, UV: [2]float32{tiles, tiles}},
			{Position: [3]float32{h, 0, -h}, Normal: up, UV: [2]float32{tiles, 0}},
			{Position: [3]float32{-h, 0, -h}, Normal: up, UV: [2]float32{0, 0}},
		},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
		Material: mat,
	}
	return &core.Model{Name: "plane", Meshes: []*core.Mesh{mesh}}
}

// SphereModel returns a UV sphere with the given ring and segment counts.
func SphereModel(radius float32, rings, segments int, mat core.Material) *core.Model {
	rings = max(rings, 2)
	segments = max(segments, 3)

	mesh := &core.Mesh{Name: "sphere", Material: mat}
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			n := [3]float32{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			mesh.Vertices = append(mesh.Vertices, core.Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				UV:       [2]float32{float32(s) / float32(segments), float32(r) / float32(rings)},
			})
		}
	}

	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*stride + s
			b := a + stride
			mesh.Indices = append(mesh.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return &core.Model{Name: "sphere", Meshes: []*core.Mesh{mesh}}
}
