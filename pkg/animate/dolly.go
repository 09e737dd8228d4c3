package animate

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/mirrorball/pkg/math3d"
)

// Spring tuning: moderate speed, critically damped (no overshoot).
const (
	springFrequency = 6.0
	springDamping   = 1.0
)

// Axis eases one coordinate toward its target with a harmonica spring.
type Axis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

// NewAxis creates an axis resting at pos.
func NewAxis(fps int, pos float64) Axis {
	return Axis{
		Position: pos,
		Target:   pos,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
	}
}

// Update advances the spring by one frame.
func (a *Axis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

// Dolly is a camera rig whose eye follows a target point smoothly. Keyboard
// input nudges the target; Update is called once per rendered frame.
type Dolly struct {
	X, Y, Z Axis
	home    math3d.Vec3f
	fps     int
}

// NewDolly creates a dolly resting at eye.
func NewDolly(fps int, eye math3d.Vec3f) *Dolly {
	d := &Dolly{home: eye, fps: fps}
	d.Reset()
	return d
}

// Nudge moves the target by the given offset.
func (d *Dolly) Nudge(dx, dy, dz float32) {
	d.X.Target += float64(dx)
	d.Y.Target += float64(dy)
	d.Z.Target += float64(dz)
}

// SetTarget replaces the target without moving the eye.
func (d *Dolly) SetTarget(p math3d.Vec3f) {
	d.X.Target = float64(p.X)
	d.Y.Target = float64(p.Y)
	d.Z.Target = float64(p.Z)
}

// Jump places eye and target at p with no motion.
func (d *Dolly) Jump(p math3d.Vec3f) {
	d.X = NewAxis(d.fps, float64(p.X))
	d.Y = NewAxis(d.fps, float64(p.Y))
	d.Z = NewAxis(d.fps, float64(p.Z))
}

// Reset returns the dolly to where it was created.
func (d *Dolly) Reset() {
	d.Jump(d.home)
}

// Update advances every axis one frame and returns the smoothed eye.
func (d *Dolly) Update() math3d.Vec3f {
	d.X.Update()
	d.Y.Update()
	d.Z.Update()
	return d.Eye()
}

// Eye returns the current eye position.
func (d *Dolly) Eye() math3d.Vec3f {
	return math3d.V3(float32(d.X.Position), float32(d.Y.Position), float32(d.Z.Position))
}

// Target returns the point the eye is moving toward.
func (d *Dolly) Target() math3d.Vec3f {
	return math3d.V3(float32(d.X.Target), float32(d.Y.Target), float32(d.Z.Target))
}
