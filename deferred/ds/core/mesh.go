package core

import "github.com/go-gl/mathgl/mgl32"

// Vertex matches the vertex layout consumed by the geometry and forward passes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Texture is decoded RGBA8 pixel data.
type Texture struct {
	Name   string
	Width  uint32
	Height uint32
	Pixels []byte
}

type Material struct {
	Name        string
	Diffuse     *Texture // nil means DiffuseTint only
	Specular    *Texture // nil means SpecularStrength only
	DiffuseTint mgl32.Vec3
	// SpecularStrength scales the specular map, or stands in for it.
	SpecularStrength float32
}

func DefaultMaterial() Material {
	return Material{
		Name:             "default",
		DiffuseTint:      mgl32.Vec3{1, 1, 1},
		SpecularStrength: 0.5,
	}
}

type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material Material
}

// Model is a set of meshes shared by every object that references it.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// Bounds returns the model-space bounding box. An empty model yields zero bounds.
func (m *Model) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	var lo, hi mgl32.Vec3
	first := true
	for _, mesh := range m.Meshes {
		for _, v := range mesh.Vertices {
			p := mgl32.Vec3(v.Position)
			if first {
				lo, hi = p, p
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				lo[i] = min(lo[i], p[i])
				hi[i] = max(hi[i], p[i])
			}
		}
	}
	return lo, hi
}

func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += len(mesh.Indices) / 3
	}
	return n
}
