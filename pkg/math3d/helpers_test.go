package math3d

import "github.com/chewxy/math32"

const tolerance = 1e-5

func almostEqual(a, b float32) bool {
	return math32.Abs(a-b) < tolerance
}

func vecEqual(a, b Vec3f) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}
