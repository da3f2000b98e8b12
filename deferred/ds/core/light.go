package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Direction is the vertical travel direction of an oscillating light.
type Direction int8

const (
	DirectionUp   Direction = 1
	DirectionDown Direction = -1
)

func (d Direction) String() string {
	if d == DirectionDown {
		return "down"
	}
	return "up"
}

// VerticalBand bounds the y coordinate of oscillating lights.
type VerticalBand struct {
	Min float32
	Max float32
}

func (b VerticalBand) Valid() bool {
	return b.Min <= b.Max
}

func (b VerticalBand) Contains(y float32) bool {
	return y >= b.Min && y <= b.Max
}

type PointLight struct {
	ID        uuid.UUID
	Position  mgl32.Vec3
	Color     mgl32.Vec3 // linear, may exceed 1
	Direction Direction
	Speed     float32
	Oscillate bool
}

func NewPointLight(position, color mgl32.Vec3) *PointLight {
	return &PointLight{
		ID:        uuid.New(),
		Position:  position,
		Color:     color,
		Direction: DirectionUp,
		Speed:     1.0,
		Oscillate: true,
	}
}

// Step advances the light by one tick of dt seconds inside band.
// Reaching or crossing a bound clamps y to that bound and reverses direction in the same tick.
func (l *PointLight) Step(dt float32, band VerticalBand) {
	if !l.Oscillate || dt <= 0 {
		return
	}
	if l.Direction != DirectionDown {
		l.Direction = DirectionUp
	}

	y := l.Position.Y() + float32(l.Direction)*l.Speed*dt
	switch {
	case y >= band.Max:
		y = band.Max
		l.Direction = DirectionDown
	case y <= band.Min:
		y = band.Min
		l.Direction = DirectionUp
	}
	l.Position[1] = y
}

// PeakChannel returns the brightest color channel.
func (l *PointLight) PeakChannel() float32 {
	return max(l.Color.X(), l.Color.Y(), l.Color.Z())
}
