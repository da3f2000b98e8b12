package core

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// MaxPointLights is the light-array capacity compiled into the lighting shaders.
const MaxPointLights = 32

var ErrTooManyLights = errors.New("scene: point light capacity exceeded")

type Object struct {
	ID        uuid.UUID
	Name      string
	Transform Transform
	Model     *Model
}

func NewObject(name string, model *Model, position mgl32.Vec3, scale float32) *Object {
	return &Object{
		ID:        uuid.New(),
		Name:      name,
		Transform: NewTransform(position, scale),
		Model:     model,
	}
}

type Scene struct {
	Objects     []*Object
	PointLights []*PointLight
	Band        VerticalBand
	Attenuation Attenuation
	Cutoff      float32
	// Capacity bounds len(PointLights); zero means MaxPointLights.
	Capacity int
}

func NewScene() *Scene {
	return &Scene{
		Objects:     []*Object{},
		PointLights: []*PointLight{},
		Band:        VerticalBand{Min: 0, Max: 4},
		Attenuation: DefaultAttenuation,
		Cutoff:      DefaultCutoff,
		Capacity:    MaxPointLights,
	}
}

func (s *Scene) capacity() int {
	if s.Capacity <= 0 || s.Capacity > MaxPointLights {
		return MaxPointLights
	}
	return s.Capacity
}

func (s *Scene) AddObject(obj *Object) {
	s.Objects = append(s.Objects, obj)
}

func (s *Scene) RemoveObject(id uuid.UUID) bool {
	for i, o := range s.Objects {
		if o.ID == id {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			return true
		}
	}
	return false
}

// AddPointLight appends a light, rejecting it once the scene holds Capacity lights.
func (s *Scene) AddPointLight(l *PointLight) error {
	if len(s.PointLights) >= s.capacity() {
		return fmt.Errorf("%w: %d lights allowed", ErrTooManyLights, s.capacity())
	}
	s.PointLights = append(s.PointLights, l)
	return nil
}

// TruncateLights appends as many lights as fit and returns how many were dropped.
func (s *Scene) TruncateLights(lights ...*PointLight) int {
	room := s.capacity() - len(s.PointLights)
	if room < 0 {
		room = 0
	}
	if len(lights) <= room {
		s.PointLights = append(s.PointLights, lights...)
		return 0
	}
	s.PointLights = append(s.PointLights, lights[:room]...)
	return len(lights) - room
}

func (s *Scene) Light(id uuid.UUID) *PointLight {
	for _, l := range s.PointLights {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Update advances every light's oscillation by dt seconds.
func (s *Scene) Update(dt float32) {
	for _, l := range s.PointLights {
		l.Step(dt, s.Band)
	}
}

// LightRadius is the influence radius of l under the scene's attenuation.
func (s *Scene) LightRadius(l *PointLight) float32 {
	return LightRadius(l.Color, s.Attenuation, s.Cutoff)
}

// Models returns every distinct model referenced by the scene, in first-use order.
func (s *Scene) Models() []*Model {
	seen := make(map[*Model]bool, len(s.Objects))
	var out []*Model
	for _, o := range s.Objects {
		if o.Model == nil || seen[o.Model] {
			continue
		}
		seen[o.Model] = true
		out = append(out, o.Model)
	}
	return out
}
