package models

import (
	"testing"

	"github.com/taigrr/mirrorball/pkg/math3d"
)

func TestSphereIntersect(t *testing.T) {
	s := NewSphere(math3d.V3(0, 0, -5), 1, testMaterial)

	tests := []struct {
		name     string
		origin   math3d.Vec3f
		dir      math3d.Vec3f
		hit      bool
		distance float32
		normal   math3d.Vec3f
	}{
		{
			name:     "head on",
			origin:   math3d.Zero3(),
			dir:      math3d.V3(0, 0, -1),
			hit:      true,
			distance: 4,
			normal:   math3d.V3(0, 0, 1),
		},
		{
			name:   "miss to the side",
			origin: math3d.Zero3(),
			dir:    math3d.V3(1, 0, 0),
			hit:    false,
		},
		{
			name:     "from inside reports exit",
			origin:   math3d.V3(0, 0, -5),
			dir:      math3d.V3(0, 1, 0),
			hit:      true,
			distance: 1,
			normal:   math3d.V3(0, 1, 0),
		},
		{
			name:   "sphere behind origin",
			origin: math3d.V3(0, 0, -10),
			dir:    math3d.V3(0, 0, -1),
			hit:    false,
		},
		{
			name:     "grazing top",
			origin:   math3d.V3(0, 1, 0),
			dir:      math3d.V3(0, 0, -1),
			hit:      true,
			distance: 5,
			normal:   math3d.V3(0, 1, 0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Intersect(tc.origin, tc.dir)
			if got.Hit != tc.hit {
				t.Fatalf("Hit = %v, want %v", got.Hit, tc.hit)
			}
			if !tc.hit {
				return
			}
			if !almostEqual(got.Distance, tc.distance) {
				t.Errorf("Distance = %f, want %f", got.Distance, tc.distance)
			}
			if !vecEqual(got.Normal, tc.normal) {
				t.Errorf("Normal = %v, want %v", got.Normal, tc.normal)
			}
		})
	}
}

func TestSphereHitLiesOnSurface(t *testing.T) {
	s := NewSphere(math3d.V3(1, -2, -8), 2.5, testMaterial)
	origin := math3d.V3(0.5, 0.5, 0)

	for _, target := range []math3d.Vec3f{
		math3d.V3(1, -2, -8),
		math3d.V3(2, -1, -7),
		math3d.V3(-0.5, -3, -9),
		math3d.V3(3, -2, -6.5),
	} {
		dir := target.Sub(origin).Normalize()
		hit := s.Intersect(origin, dir)
		if !hit.Hit || hit.Distance <= 0 {
			t.Fatalf("expected hit toward %v, got %+v", target, hit)
		}
		p := origin.Add(dir.Scale(hit.Distance))
		if d := p.Distance(s.Center()); !almostEqual(d, s.Radius) {
			t.Errorf("hit point %v is %f from center, want %f", p, d, s.Radius)
		}
		if !vecEqual(p, hit.Point) {
			t.Errorf("Point = %v, recomputed %v", hit.Point, p)
		}
		if !almostEqual(hit.Normal.Len(), 1) {
			t.Errorf("normal not unit: %v", hit.Normal)
		}
		if hit.Normal.Dot(dir) >= 0 {
			t.Errorf("outside hit normal %v should face the ray", hit.Normal)
		}
	}
}

func TestSphereAccessors(t *testing.T) {
	s := NewSphere(math3d.V3(1, 2, 3), 4, testMaterial)
	if s.Center() != math3d.V3(1, 2, 3) {
		t.Errorf("Center() = %v", s.Center())
	}
	if s.Material() != testMaterial {
		t.Errorf("Material() = %+v", s.Material())
	}
}

func BenchmarkSphereIntersect(b *testing.B) {
	s := NewSphere(math3d.V3(0, 0, -5), 1, testMaterial)
	dir := math3d.V3(0.1, 0.05, -1).Normalize()

	for b.Loop() {
		_ = s.Intersect(math3d.Zero3(), dir)
	}
}
