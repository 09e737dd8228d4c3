package math3d

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored in column-major order, the layout glTF uses
// for node matrices.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3f) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3f) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// FromQuaternion creates a rotation matrix from a unit quaternion (x, y, z, w).
func FromQuaternion(x, y, z, w float32) Mat4 {
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// FromColumnMajor converts a float64 column-major matrix, as stored in glTF
// documents, to a Mat4.
func FromColumnMajor(m [16]float64) Mat4 {
	var out Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulPoint transforms v as a point (w=1).
func (m Mat4) MulPoint(v Vec3f) Vec3f {
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3f{
		(m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]) / w,
		(m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]) / w,
		(m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]) / w,
	}
}

// MulDir transforms v as a direction (w=0, no translation).
func (m Mat4) MulDir(v Vec3f) Vec3f {
	return Vec3f{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3f {
	return Vec3f{m[12], m[13], m[14]}
}

// MaxScale returns the length of the longest basis vector, i.e. the largest
// scale factor the matrix applies along any local axis.
func (m Mat4) MaxScale() float32 {
	sx := Vec3f{m[0], m[1], m[2]}.Len()
	sy := Vec3f{m[4], m[5], m[6]}.Len()
	sz := Vec3f{m[8], m[9], m[10]}.Len()
	return math32.Max(sx, math32.Max(sy, sz))
}
