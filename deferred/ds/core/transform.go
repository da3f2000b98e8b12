package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places an object with a translation and a uniform scale.
type Transform struct {
	Position mgl32.Vec3
	Scale    float32
}

func NewTransform(position mgl32.Vec3, scale float32) Transform {
	if scale == 0 {
		scale = 1
	}
	return Transform{Position: position, Scale: scale}
}

// ObjectToWorld is translate(Position) * scale(Scale).
func (t Transform) ObjectToWorld() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
}

// NormalMatrix is the inverse transpose of ObjectToWorld.
func (t Transform) NormalMatrix() mgl32.Mat4 {
	return t.ObjectToWorld().Inv().Transpose()
}
