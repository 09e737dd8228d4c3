package models

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/mirrorball/pkg/math3d"
)

// ParallelEpsilon is the smallest |normal·dir| for which a ray is considered
// to cross a plane. Below it the ray runs parallel and misses.
const ParallelEpsilon = 1e-9

// Plane is an infinite plane through Point with unit normal Normal.
type Plane struct {
	Point  math3d.Vec3f
	Normal math3d.Vec3f
	Mat    Material
}

// NewPlane creates a plane. The normal must already be unit length.
func NewPlane(point, normal math3d.Vec3f, mat Material) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal,
		Mat:    mat,
	}
}

// Intersect tests the ray against the plane. Hits behind the origin are
// rejected. The reported normal is the stored normal, whichever side the ray
// came from.
func (p *Plane) Intersect(origin, dir math3d.Vec3f) Intersection {
	denom := p.Normal.Dot(dir)
	if math32.Abs(denom) < ParallelEpsilon {
		return Intersection{Normal: p.Normal}
	}

	t := p.Point.Sub(origin).Dot(p.Normal) / denom
	return Intersection{
		Distance: t,
		Point:    origin.Add(dir.Scale(t)),
		Normal:   p.Normal,
		Hit:      t >= 0,
	}
}

// Material returns the plane's material.
func (p *Plane) Material() Material {
	return p.Mat
}

// Center returns the plane's reference point.
func (p *Plane) Center() math3d.Vec3f {
	return p.Point
}

func (*Plane) primitive() {}
