package gpu

import (
	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// CameraUniformSize covers view_proj, view, proj, position and viewport, padded to 256.
	CameraUniformSize = 256
	// ObjectUniformSize holds the model and normal matrices.
	ObjectUniformSize = 128
	// MaterialUniformSize holds the diffuse tint and specular strength.
	MaterialUniformSize = 16
	// CompositeUniformSize holds exposure and the gamma flag.
	CompositeUniformSize = 16

	LightRecordSize     = 48
	lightingHeaderSize  = 48
	LightingUniformSize = lightingHeaderSize + core.MaxPointLights*LightRecordSize
)

// ViewMode selects what the lighting stage writes: the lit image or one G-buffer channel.
type ViewMode uint32

const (
	ViewLit ViewMode = iota
	ViewPosition
	ViewNormal
	ViewAlbedo
	ViewSpecular
	viewModeCount
)

func (m ViewMode) String() string {
	switch m {
	case ViewPosition:
		return "position"
	case ViewNormal:
		return "normal"
	case ViewAlbedo:
		return "albedo"
	case ViewSpecular:
		return "specular"
	default:
		return "lit"
	}
}

// Next cycles through the view modes.
func (m ViewMode) Next() ViewMode {
	return (m + 1) % viewModeCount
}

// PackCamera lays out the camera uniform for a viewport of width x height pixels.
func PackCamera(cam *core.Camera, width, height uint32) []byte {
	w, h := float32(max(width, 1)), float32(max(height, 1))
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(w / h)

	buf := make([]byte, 0, CameraUniformSize)
	buf = append(buf, mat4ToBytes(proj.Mul4(view))...)
	buf = append(buf, mat4ToBytes(view)...)
	buf = append(buf, mat4ToBytes(proj)...)
	buf = append(buf, vec3ToBytesPadded(cam.Position, 1)...)
	buf = append(buf, vec4ToBytes([4]float32{w, h, 1 / w, 1 / h})...)
	return buf[:CameraUniformSize]
}

// PackObject lays out the model and normal matrices of t.
func PackObject(t core.Transform) []byte {
	buf := make([]byte, 0, ObjectUniformSize)
	buf = append(buf, mat4ToBytes(t.ObjectToWorld())...)
	buf = append(buf, mat4ToBytes(t.NormalMatrix())...)
	return buf
}

func PackMaterial(m core.Material) []byte {
	return vec3ToBytesPadded(m.DiffuseTint, m.SpecularStrength)
}

func PackComposite(exposure float32, encodeGamma bool) []byte {
	gamma := float32(0)
	if encodeGamma {
		gamma = 1
	}
	return vec4ToBytes([4]float32{exposure, gamma, 0, 0})
}

// LightingFrame is everything the lighting stage needs for one frame.
type LightingFrame struct {
	ViewPos     mgl32.Vec3
	Ambient     mgl32.Vec3
	Shininess   float32
	Attenuation core.Attenuation
	Lights      []core.CulledLight
	Mode        ViewMode
}

// PackLighting lays out the lighting uniform. Every slot past len(f.Lights) is zero,
// so its radius is zero and the shader's d < radius gate rejects it.
// Lights beyond MaxPointLights are ignored.
func PackLighting(f LightingFrame) []byte {
	count := min(len(f.Lights), core.MaxPointLights)

	buf := make([]byte, LightingUniformSize)
	copy(buf[0:], vec3ToBytesPadded(f.ViewPos, 1))
	copy(buf[16:], vec3ToBytesPadded(f.Ambient, f.Shininess))
	copy(buf[32:], uint4ToBytes([4]uint32{uint32(count), uint32(f.Mode), 0, 0}))

	att := f.Attenuation
	for i := 0; i < count; i++ {
		cl := f.Lights[i]
		off := lightingHeaderSize + i*LightRecordSize
		copy(buf[off:], vec3ToBytesPadded(cl.Light.Position, cl.Radius))
		copy(buf[off+16:], vec3ToBytesPadded(cl.Light.Color, 0))
		copy(buf[off+32:], vec4ToBytes([4]float32{att.Constant, att.Linear, att.Quadratic, 0}))
	}
	return buf
}
