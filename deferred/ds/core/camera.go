package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FOVMin     float32 = 1.0
	FOVMax     float32 = 45.0
	PitchLimit float32 = 89.0
)

var WorldUp = mgl32.Vec3{0, 1, 0}

// depthRangeFix maps OpenGL clip depth [-w, w] onto the WebGPU range [0, w].
var depthRangeFix = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type Camera struct {
	Position    mgl32.Vec3
	Front       mgl32.Vec3
	Yaw         float32 // degrees
	Pitch       float32 // degrees
	FOV         float32 // degrees
	Near        float32
	Far         float32
	Speed       float32 // world units per second
	Sensitivity float32 // degrees per pixel
}

func NewCamera() *Camera {
	c := &Camera{
		Position:    mgl32.Vec3{0, 1, 3},
		Yaw:         -90,
		Pitch:       0,
		FOV:         FOVMax,
		Near:        0.1,
		Far:         100,
		Speed:       2.5,
		Sensitivity: 0.05,
	}
	c.updateFront()
	return c
}

func (c *Camera) updateFront() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	c.Front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// Right is the horizontal axis orthogonal to the view direction.
func (c *Camera) Right() mgl32.Vec3 {
	r := c.Front.Cross(WorldUp)
	if r.Len() < 1e-6 {
		return mgl32.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// Rotate applies a pointer delta in pixels. dy grows downward, as reported by the window.
func (c *Camera) Rotate(dx, dy float64) {
	c.Yaw += float32(dx) * c.Sensitivity
	c.Pitch -= float32(dy) * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -PitchLimit, PitchLimit)
	c.updateFront()
}

// Zoom narrows the field of view by a scroll offset.
func (c *Camera) Zoom(offset float64) {
	c.FOV = mgl32.Clamp(c.FOV-float32(offset), FOVMin, FOVMax)
}

// Move translates the camera along its forward and right axes.
// forward and right are in [-1, 1]; the step is Speed*dt.
func (c *Camera) Move(forward, right, dt float32) {
	step := c.Speed * dt
	if forward != 0 {
		c.Position = c.Position.Add(c.Front.Mul(forward * step))
	}
	if right != 0 {
		c.Position = c.Position.Add(c.Right().Mul(right * step))
	}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), WorldUp)
}

// ProjectionMatrix returns a perspective projection with WebGPU depth range.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return depthRangeFix.Mul4(mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far))
}

func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

// SetOrientation sets yaw and pitch in degrees, clamping pitch.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = mgl32.Clamp(pitch, -PitchLimit, PitchLimit)
	c.updateFront()
}
