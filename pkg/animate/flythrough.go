// Package animate moves lights and the camera between frames.
package animate

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/scene"
)

// Flythrough swings the camera back and forth along Z while the two room
// lights orbit. Light 0 sweeps across the back wall and light 1 rides with
// the camera.
type Flythrough struct{}

// Step moves the lights of s to their positions for frame and returns the
// eye position. Lights that s does not have are skipped. Call it between
// renders, never while one is in flight.
func (Flythrough) Step(s *scene.Scene, frame int) math3d.Vec3f {
	f := float32(frame)
	shift := 15*(math32.Sin(3*f*math32.Pi/180)+1) + 60
	z := (shift/90)*-20 + 20
	eye := math3d.V3(0, 0, z)

	if len(s.Lights) > 0 {
		s.Lights[0].Position = math3d.V3(math32.Sin(0.05*f)*10, 9, -19)
	}
	if len(s.Lights) > 1 {
		s.Lights[1].Position = eye
	}
	return eye
}
