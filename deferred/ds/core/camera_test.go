package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 1, 3}, c.Position)
	assert.InDelta(t, 0, c.Front.X(), 1e-6)
	assert.InDelta(t, 0, c.Front.Y(), 1e-6)
	assert.InDelta(t, -1, c.Front.Z(), 1e-6)
	assert.Equal(t, FOVMax, c.FOV)
}

func TestCamera_RotateClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Rotate(0, -100000)
	assert.Equal(t, PitchLimit, c.Pitch)
	c.Rotate(0, 100000)
	assert.Equal(t, -PitchLimit, c.Pitch)
	assert.InDelta(t, 1.0, c.Front.Len(), 1e-5)
}

func TestCamera_RotateYaw(t *testing.T) {
	c := NewCamera()
	c.Rotate(float64(90/c.Sensitivity), 0)
	assert.InDelta(t, 0, c.Yaw, 1e-3)
	assert.InDelta(t, 1, c.Front.X(), 1e-5)
}

func TestCamera_ZoomClamps(t *testing.T) {
	c := NewCamera()
	c.Zoom(10)
	assert.Equal(t, float32(35), c.FOV)
	c.Zoom(1000)
	assert.Equal(t, FOVMin, c.FOV)
	c.Zoom(-1000)
	assert.Equal(t, FOVMax, c.FOV)
}

func TestCamera_Move(t *testing.T) {
	c := NewCamera()
	c.Speed = 2
	c.Move(1, 0, 0.5)
	assert.InDelta(t, 2, c.Position.Z(), 1e-5)

	c.Move(0, 1, 1)
	assert.InDelta(t, 2, c.Position.X(), 1e-5)
}

func TestCamera_ProjectionDepthRange(t *testing.T) {
	c := NewCamera()
	c.Position = mgl32.Vec3{}
	c.SetOrientation(-90, 0)
	vp := c.ViewProjection(16.0 / 9.0)

	near := vp.Mul4x1(mgl32.Vec4{0, 0, -c.Near, 1})
	far := vp.Mul4x1(mgl32.Vec4{0, 0, -c.Far, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), 1e-4)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
}
