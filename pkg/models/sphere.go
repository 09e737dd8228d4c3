package models

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/mirrorball/pkg/math3d"
)

// Sphere is a solid ball.
type Sphere struct {
	Origin math3d.Vec3f
	Radius float32
	Mat    Material
}

// NewSphere creates a sphere.
func NewSphere(center math3d.Vec3f, radius float32, mat Material) *Sphere {
	return &Sphere{
		Origin: center,
		Radius: radius,
		Mat:    mat,
	}
}

// Intersect implements the geometric ray-sphere test. A ray starting inside
// the sphere reports the exit point.
func (s *Sphere) Intersect(origin, dir math3d.Vec3f) Intersection {
	l := s.Origin.Sub(origin)
	tca := l.Dot(dir)
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius

	// Ray passes outside the sphere
	if d2 > r2 {
		return Intersection{}
	}

	thc := math32.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t0 < 0 {
		t0 = t1
	}

	hit := origin.Add(dir.Scale(t0))
	return Intersection{
		Distance: t0,
		Point:    hit,
		Normal:   hit.Sub(s.Origin).Normalize(),
		Hit:      !(t0 < 0),
	}
}

// Material returns the sphere's material.
func (s *Sphere) Material() Material {
	return s.Mat
}

// Center returns the sphere's center.
func (s *Sphere) Center() math3d.Vec3f {
	return s.Origin
}

func (*Sphere) primitive() {}
