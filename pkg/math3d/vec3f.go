// Package math3d provides the float32 vector and matrix types used by the tracer.
package math3d

import "github.com/chewxy/math32"

// Vec3f is a 3-component float32 vector. It doubles as an RGB color, with
// X, Y and Z holding the red, green and blue channels.
type Vec3f struct {
	X, Y, Z float32
}

// V3 creates a new Vec3f.
func V3(x, y, z float32) Vec3f {
	return Vec3f{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3f {
	return Vec3f{}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3f {
	return Vec3f{0, 1, 0}
}

// Forward returns the camera forward vector (0, 0, -1).
func Forward() Vec3f {
	return Vec3f{0, 0, -1}
}

// Add returns the vector sum a + b.
func (a Vec3f) Add(b Vec3f) Vec3f {
	return Vec3f{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3f) Sub(b Vec3f) Vec3f {
	return Vec3f{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product a * b.
func (a Vec3f) Mul(b Vec3f) Vec3f {
	return Vec3f{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3f) Scale(s float32) Vec3f {
	return Vec3f{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product a · b.
func (a Vec3f) Dot(b Vec3f) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Len returns the Euclidean length of the vector.
func (a Vec3f) Len() float32 {
	return math32.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// Norm is an alias for Len.
func (a Vec3f) Norm() float32 {
	return a.Len()
}

// LenSq returns the squared length (no sqrt).
func (a Vec3f) LenSq() float32 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns the unit vector in the same direction.
// The zero vector has no direction; normalizing it yields NaN components.
func (a Vec3f) Normalize() Vec3f {
	l := a.Len()
	return Vec3f{a.X / l, a.Y / l, a.Z / l}
}

// Negate returns the negated vector.
func (a Vec3f) Negate() Vec3f {
	return Vec3f{-a.X, -a.Y, -a.Z}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3f) Lerp(b Vec3f, t float32) Vec3f {
	return Vec3f{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Distance returns the distance between two points.
func (a Vec3f) Distance(b Vec3f) float32 {
	return a.Sub(b).Len()
}

// Reflect returns the reflection of a about the unit normal n:
// a - 2(a·n)n.
func (a Vec3f) Reflect(n Vec3f) Vec3f {
	return a.Sub(n.Scale(2 * a.Dot(n)))
}

// MaxComponent returns the largest of the three components.
func (a Vec3f) MaxComponent() float32 {
	return math32.Max(a.X, math32.Max(a.Y, a.Z))
}

// Abs returns the component-wise absolute value.
func (a Vec3f) Abs() Vec3f {
	return Vec3f{
		math32.Abs(a.X),
		math32.Abs(a.Y),
		math32.Abs(a.Z),
	}
}

// IsFinite reports whether no component is NaN or infinite.
func (a Vec3f) IsFinite() bool {
	for _, c := range [3]float32{a.X, a.Y, a.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
