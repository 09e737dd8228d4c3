// Package render traces rays through a scene and turns the results into
// frames for files and terminals.
package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/models"
	"github.com/taigrr/mirrorball/pkg/scene"
)

// Nearest finds the closest primitive hit along the ray and returns it with
// that primitive's material. Hits at MaxVisibleDistance or farther, and rays
// that hit nothing, report Hit == false and a zero material.
func Nearest(s *scene.Scene, origin, dir math3d.Vec3f) (models.Intersection, models.Material) {
	closest := models.Intersection{Distance: math32.MaxFloat32}
	var material models.Material

	for _, obj := range s.Objects {
		hit := obj.Intersect(origin, dir)
		if hit.Hit && hit.Distance < closest.Distance {
			closest = hit
			material = obj.Material()
		}
	}

	closest.Hit = closest.Distance < MaxVisibleDistance
	if !closest.Hit {
		material = models.Material{}
	}
	return closest, material
}

// Shade computes direct lighting at a hit: Lambertian diffuse plus Phong
// specular from every light that is not occluded. There is no ambient term.
// view is the direction of the ray that produced the hit.
func Shade(s *scene.Scene, hit models.Intersection, mat models.Material, view math3d.Vec3f) math3d.Vec3f {
	var diffuse, specular float32

	for _, light := range s.Lights {
		toLight := light.Position.Sub(hit.Point)
		lightDir := toLight.Normalize()
		lightDist := toLight.Len()

		// Phong uses the incoming view direction as-is
		phong := math32.Pow(math32.Max(0, lightDir.Reflect(hit.Normal).Dot(view)), mat.SpecularExp)

		// Hard shadow: anything between the surface and the light blocks it entirely
		shadowOrigin := offset(hit.Point, hit.Normal, lightDir, ShadowBias)
		if blocker, _ := Nearest(s, shadowOrigin, lightDir); blocker.Hit && blocker.Distance < lightDist {
			continue
		}

		diffuse += light.Intensity * math32.Max(0, lightDir.Dot(hit.Normal))
		specular += phong * light.Intensity
	}

	return mat.DiffuseColor.Scale(diffuse).Add(mat.SpecularColor.Scale(specular))
}

// CalcPixel returns the color seen along a ray, in [0,1] nominal range.
// Reflective surfaces recurse along the mirror direction until depth reaches
// MaxDepth, where the background is returned.
func CalcPixel(s *scene.Scene, origin, dir math3d.Vec3f, depth int) math3d.Vec3f {
	hit, mat := Nearest(s, origin, dir)
	if depth >= MaxDepth || !hit.Hit {
		return s.Background
	}

	color := Shade(s, hit, mat, dir)
	if !mat.Reflective {
		return color
	}

	reflectDir := dir.Reflect(hit.Normal)
	reflectOrigin := offset(hit.Point, hit.Normal, reflectDir, ReflectionBias)
	reflected := CalcPixel(s, reflectOrigin, reflectDir, depth+1)

	return color.Scale(DirectWeight).Add(reflected.Scale(ReflectedWeight))
}

// offset nudges p off the surface along n, toward the side dir leaves from.
func offset(p, n, dir math3d.Vec3f, bias float32) math3d.Vec3f {
	if dir.Dot(n) < 0 {
		return p.Sub(n.Scale(bias))
	}
	return p.Add(n.Scale(bias))
}
