// Package models provides the geometric primitives a scene is built from.
package models

import "github.com/taigrr/mirrorball/pkg/math3d"

// Material describes how a surface responds to light.
type Material struct {
	DiffuseColor  math3d.Vec3f // Lambertian albedo, nominally [0,1] per channel
	SpecularColor math3d.Vec3f // Tint of Phong highlights
	SpecularExp   float32      // Highlight tightness, > 0
	Reflective    bool         // Blend a mirror bounce into the shaded color
}

// Intersection is the result of testing one ray against one primitive.
// Distance, Point and Normal are only meaningful when Hit is true.
type Intersection struct {
	Distance float32      // Ray parameter t of the hit
	Point    math3d.Vec3f // World-space hit point
	Normal   math3d.Vec3f // Unit surface normal at Point
	Hit      bool
}

// Primitive is a piece of scene geometry that can be hit by rays.
// The set of primitives is closed: only types in this package implement it.
type Primitive interface {
	// Intersect tests the ray origin + t*dir for t >= 0.
	// dir must be unit length.
	Intersect(origin, dir math3d.Vec3f) Intersection
	// Material returns a copy of the surface material.
	Material() Material
	// Center returns the primitive's reference point.
	Center() math3d.Vec3f

	primitive()
}
