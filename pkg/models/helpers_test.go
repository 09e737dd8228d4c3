package models

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/mirrorball/pkg/math3d"
)

const tolerance = 1e-4

func almostEqual(a, b float32) bool {
	return math32.Abs(a-b) < tolerance
}

func vecEqual(a, b math3d.Vec3f) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

var testMaterial = Material{
	DiffuseColor:  math3d.V3(1, 0, 0),
	SpecularColor: math3d.V3(1, 1, 1),
	SpecularExp:   10,
}
