package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/models"
)

// File is the on-disk JSON layout of a scene.
type File struct {
	Background [3]float32   `json:"background"`
	Spheres    []SphereSpec `json:"spheres,omitempty"`
	Planes     []PlaneSpec  `json:"planes,omitempty"`
	Lights     []LightSpec  `json:"lights,omitempty"`
}

// MaterialSpec is the JSON form of models.Material.
type MaterialSpec struct {
	Diffuse          [3]float32 `json:"diffuse"`
	Specular         [3]float32 `json:"specular"`
	SpecularExponent float32    `json:"specularExponent"`
	Reflective       bool       `json:"reflective,omitempty"`
}

// SphereSpec is the JSON form of a sphere.
type SphereSpec struct {
	Center   [3]float32   `json:"center"`
	Radius   float32      `json:"radius"`
	Material MaterialSpec `json:"material"`
}

// PlaneSpec is the JSON form of a plane. The normal need not be unit length.
type PlaneSpec struct {
	Center   [3]float32   `json:"center"`
	Normal   [3]float32   `json:"normal"`
	Material MaterialSpec `json:"material"`
}

// LightSpec is the JSON form of a point light.
type LightSpec struct {
	Position  [3]float32 `json:"position"`
	Intensity float32    `json:"intensity"`
}

// Load reads a scene from a JSON file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a JSON scene from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return file.Build()
}

// Save writes a scene to a JSON file.
func Save(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	return Encode(f, s)
}

// Encode writes s to w as indented JSON.
func Encode(w io.Writer, s *Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToFile(s)); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Build validates the file and converts it to a Scene.
func (f *File) Build() (*Scene, error) {
	s := New(vec(f.Background))

	for i, sp := range f.Spheres {
		if sp.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere %d: radius must be positive, got %g", ErrInvalid, i, sp.Radius)
		}
		mat, err := sp.Material.build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Add(models.NewSphere(vec(sp.Center), sp.Radius, mat))
	}

	for i, pl := range f.Planes {
		normal := vec(pl.Normal)
		if normal.LenSq() == 0 {
			return nil, fmt.Errorf("%w: plane %d: zero normal", ErrInvalid, i)
		}
		mat, err := pl.Material.build()
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		s.Add(models.NewPlane(vec(pl.Center), normal.Normalize(), mat))
	}

	for _, l := range f.Lights {
		s.AddLight(Light{Position: vec(l.Position), Intensity: l.Intensity})
	}

	return s, nil
}

// ToFile converts a scene to its JSON layout.
func ToFile(s *Scene) *File {
	f := &File{Background: arr(s.Background)}

	for _, obj := range s.Objects {
		switch p := obj.(type) {
		case *models.Sphere:
			f.Spheres = append(f.Spheres, SphereSpec{
				Center:   arr(p.Origin),
				Radius:   p.Radius,
				Material: materialSpec(p.Mat),
			})
		case *models.Plane:
			f.Planes = append(f.Planes, PlaneSpec{
				Center:   arr(p.Point),
				Normal:   arr(p.Normal),
				Material: materialSpec(p.Mat),
			})
		}
	}

	for _, l := range s.Lights {
		f.Lights = append(f.Lights, LightSpec{Position: arr(l.Position), Intensity: l.Intensity})
	}

	return f
}

func (m MaterialSpec) build() (models.Material, error) {
	if m.SpecularExponent <= 0 {
		return models.Material{}, fmt.Errorf("%w: specular exponent must be positive, got %g", ErrInvalid, m.SpecularExponent)
	}
	return models.Material{
		DiffuseColor:  vec(m.Diffuse),
		SpecularColor: vec(m.Specular),
		SpecularExp:   m.SpecularExponent,
		Reflective:    m.Reflective,
	}, nil
}

func materialSpec(m models.Material) MaterialSpec {
	return MaterialSpec{
		Diffuse:          arr(m.DiffuseColor),
		Specular:         arr(m.SpecularColor),
		SpecularExponent: m.SpecularExp,
		Reflective:       m.Reflective,
	}
}

func vec(a [3]float32) math3d.Vec3f {
	return math3d.V3(a[0], a[1], a[2])
}

func arr(v math3d.Vec3f) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
