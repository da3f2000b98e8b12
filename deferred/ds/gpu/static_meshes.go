package gpu

const (
	QuadVertexCount = 6
	// quad vertices are x, y, u, v
	QuadVertexStride = 4 * 4

	CubeVertexCount = 36
	// cube vertices are position then normal
	CubeVertexStride = 6 * 4
)

// fullscreenQuad covers clip space with two triangles. v runs downwards to match
// texture rows.
var fullscreenQuad = [QuadVertexCount * 4]float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	1, 1, 1, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	-1, 1, 0, 0,
}

// markerCube is a 2x2x2 cube with per-face normals, drawn once per light.
var markerCube = [CubeVertexCount * 6]float32{
	// back
	-1, -1, -1, 0, 0, -1,
	1, 1, -1, 0, 0, -1,
	1, -1, -1, 0, 0, -1,
	1, 1, -1, 0, 0, -1,
	-1, -1, -1, 0, 0, -1,
	-1, 1, -1, 0, 0, -1,
	// front
	-1, -1, 1, 0, 0, 1,
	1, -1, 1, 0, 0, 1,
	1, 1, 1, 0, 0, 1,
	1, 1, 1, 0, 0, 1,
	-1, 1, 1, 0, 0, 1,
	-1, -1, 1, 0, 0, 1,
	// left
	-1, 1, 1, -1, 0, 0,
	-1, 1, -1, -1, 0, 0,
	-1, -1, -1, -1, 0, 0,
	-1, -1, -1, -1, 0, 0,
	-1, -1, 1, -1, 0, 0,
	-1, 1, 1, -1, 0, 0,
	// right
	1, 1, 1, 1, 0, 0,
	1, -1, -1, 1, 0, 0,
	1, 1, -1, 1, 0, 0,
	1, -1, -1, 1, 0, 0,
	1, 1, 1, 1, 0, 0,
	1, -1, 1, 1, 0, 0,
	// bottom
	-1, -1, -1, 0, -1, 0,
	1, -1, -1, 0, -1, 0,
	1, -1, 1, 0, -1, 0,
	1, -1, 1, 0, -1, 0,
	-1, -1, 1, 0, -1, 0,
	-1, -1, -1, 0, -1, 0,
	// top
	-1, 1, -1, 0, 1, 0,
	1, 1, 1, 0, 1, 0,
	1, 1, -1, 0, 1, 0,
	1, 1, 1, 0, 1, 0,
	-1, 1, -1, 0, 1, 0,
	-1, 1, 1, 0, 1, 0,
}

// FullscreenQuad returns a copy of the quad vertex data.
func FullscreenQuad() [QuadVertexCount * 4]float32 {
	return fullscreenQuad
}

// MarkerCube returns a copy of the marker cube vertex data.
func MarkerCube() [CubeVertexCount * 6]float32 {
	return markerCube
}
