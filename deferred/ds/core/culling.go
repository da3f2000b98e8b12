package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frustum planes in Ax+By+Cz+D=0 form with normals pointing inside.
// Order: left, right, bottom, top, near, far.
type Frustum [6]mgl32.Vec4

// ExtractFrustum derives the normalized frustum planes of a view-projection matrix.
// The near plane uses the WebGPU 0..1 depth range.
func ExtractFrustum(vp mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(i, 0), vp.At(i, 1), vp.At(i, 2), vp.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	f := Frustum{
		r3.Add(r0),
		r3.Sub(r0),
		r3.Add(r1),
		r3.Sub(r1),
		r2,
		r3.Sub(r2),
	}
	for i := range f {
		n := float32(math.Sqrt(float64(f[i][0]*f[i][0] + f[i][1]*f[i][1] + f[i][2]*f[i][2])))
		if n > 0 {
			f[i] = f[i].Mul(1.0 / n)
		}
	}
	return f
}

// SphereInFrustum reports whether a sphere touches the inside of the frustum.
func SphereInFrustum(center mgl32.Vec3, radius float32, f Frustum) bool {
	for _, p := range f {
		if p[0]*center[0]+p[1]*center[1]+p[2]*center[2]+p[3] < -radius {
			return false
		}
	}
	return true
}

// CulledLight is a light that survived culling, with its influence radius.
type CulledLight struct {
	Light  *PointLight
	Radius float32
}

// CullLights keeps, in scene order, the lights whose influence sphere intersects f.
// Lights with a zero radius never light anything and are dropped. At most limit lights are
// returned; the second result counts visible lights dropped by the limit.
func CullLights(lights []*PointLight, att Attenuation, cutoff float32, f Frustum, limit int) ([]CulledLight, int) {
	out := make([]CulledLight, 0, min(len(lights), limit))
	dropped := 0
	for _, l := range lights {
		r := LightRadius(l.Color, att, cutoff)
		if r <= MinLightRadius || !SphereInFrustum(l.Position, r, f) {
			continue
		}
		if len(out) >= limit {
			dropped++
			continue
		}
		out = append(out, CulledLight{Light: l, Radius: r})
	}
	return out, dropped
}
