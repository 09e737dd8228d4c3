package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/models"
)

const tolerance = 1e-4

func almostEqual(a, b float32) bool {
	return math32.Abs(a-b) < tolerance
}

func vecEqual(a, b math3d.Vec3f) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

var (
	matte = models.Material{
		DiffuseColor:  math3d.V3(1, 1, 1),
		SpecularColor: math3d.V3(0, 0, 0),
		SpecularExp:   10,
	}
	mirror = models.Material{
		DiffuseColor:  math3d.V3(1, 1, 1),
		SpecularColor: math3d.V3(1, 1, 1),
		SpecularExp:   50,
		Reflective:    true,
	}
)
