package scene

import (
	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/models"
)

// Room builds the demo scene: a closed box of six coloured walls holding a
// matte blue ball and two mirror balls, lit by two point lights.
func Room() *Scene {
	s := New(math3d.V3(0.6, 0.6, 0.8))

	white := math3d.V3(1, 1, 1)
	wall := func(diffuse math3d.Vec3f) models.Material {
		return models.Material{
			DiffuseColor:  diffuse,
			SpecularColor: white,
			SpecularExp:   10,
		}
	}

	s.Add(
		models.NewPlane(math3d.V3(0, -10, 0), math3d.V3(0, 1, 0), wall(math3d.V3(1, 0, 0))),    // floor
		models.NewPlane(math3d.V3(0, 10, 0), math3d.V3(0, -1, 0), wall(math3d.V3(0, 1, 0))),    // ceiling
		models.NewPlane(math3d.V3(0, 0, -20), math3d.V3(0, 0, 1), wall(math3d.V3(1, 1, 0))),    // back
		models.NewPlane(math3d.V3(0, 0, 10), math3d.V3(0, 0, -1), wall(math3d.V3(1, 0.5, 0.5))), // front
		models.NewPlane(math3d.V3(10, 0, 0), math3d.V3(-1, 0, 0), wall(math3d.V3(1, 0, 1))),    // right
		models.NewPlane(math3d.V3(-10, 0, 0), math3d.V3(1, 0, 0), wall(math3d.V3(0, 1, 1))),    // left
	)

	s.Add(
		models.NewSphere(math3d.V3(-5, -7, -16), 3, models.Material{
			DiffuseColor:  math3d.V3(0, 0, 1),
			SpecularColor: white,
			SpecularExp:   50,
		}),
		models.NewSphere(math3d.V3(-2, -8.5, -12), 2.5, models.Material{
			DiffuseColor:  white,
			SpecularColor: white,
			SpecularExp:   50,
			Reflective:    true,
		}),
		models.NewSphere(math3d.V3(5, -5, -15), 4, models.Material{
			DiffuseColor:  white,
			SpecularColor: white,
			SpecularExp:   50,
			Reflective:    true,
		}),
	)

	s.AddLight(
		Light{Position: math3d.V3(-9, 9, -19), Intensity: 0.5},
		Light{Position: math3d.Zero3(), Intensity: 0.25},
	)

	return s
}
