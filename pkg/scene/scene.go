// Package scene holds the primitives, lights and background a frame is
// rendered from, and loads them from JSON and glTF files.
package scene

import (
	"errors"

	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/models"
)

// ErrInvalid is wrapped by every scene validation error.
var ErrInvalid = errors.New("invalid scene")

// Light is a point light.
type Light struct {
	Position  math3d.Vec3f
	Intensity float32 // Unitless scale on the light's contribution
}

// Scene is everything a ray can see.
//
// Renderers only read a Scene. Callers that animate it (moving lights
// between frames) must finish mutating before the next frame starts.
type Scene struct {
	Objects    []models.Primitive
	Lights     []Light
	Background math3d.Vec3f
}

// New creates an empty scene with the given background color.
func New(background math3d.Vec3f) *Scene {
	return &Scene{
		Background: background,
	}
}

// Add appends primitives to the scene.
func (s *Scene) Add(objects ...models.Primitive) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight appends lights to the scene.
func (s *Scene) AddLight(lights ...Light) {
	s.Lights = append(s.Lights, lights...)
}

// Clone returns a copy whose light slice can be mutated independently.
// Primitives are immutable and shared.
func (s *Scene) Clone() *Scene {
	clone := &Scene{
		Objects:    make([]models.Primitive, len(s.Objects)),
		Lights:     make([]Light, len(s.Lights)),
		Background: s.Background,
	}
	copy(clone.Objects, s.Objects)
	copy(clone.Lights, s.Lights)
	return clone
}
