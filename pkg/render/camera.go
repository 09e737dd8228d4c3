package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/scene"
)

// Camera is a pinhole camera at Eye looking down -Z.
type Camera struct {
	Width  int          // Image width in pixels
	Height int          // Image height in pixels
	FOV    float32      // Vertical field of view in degrees
	Eye    math3d.Vec3f // Position in world space
}

// NewCamera creates a camera for a width x height image.
func NewCamera(width, height int, fovDeg float32, eye math3d.Vec3f) *Camera {
	return &Camera{
		Width:  width,
		Height: height,
		FOV:    fovDeg,
		Eye:    eye,
	}
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(eye math3d.Vec3f) {
	c.Eye = eye
}

// SetSize changes the image dimensions.
func (c *Camera) SetSize(width, height int) {
	c.Width = width
	c.Height = height
}

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float32 {
	return float32(c.Width) / float32(c.Height)
}

// Direction returns the unit ray direction through the center of pixel
// (i, j). Row 0 is the top of the image.
func (c *Camera) Direction(i, j int) math3d.Vec3f {
	halfFOV := math32.Tan(c.FOV * math32.Pi / 180 / 2)
	w, h := float32(c.Width), float32(c.Height)

	x := (2*(float32(i)+0.5)/w - 1) * halfFOV * (w / h)
	y := -(2*(float32(j)+0.5)/h - 1) * halfFOV

	return math3d.V3(x, y, -1).Normalize()
}

// RenderPixel traces pixel (i, j) and returns its color scaled to [0,255].
// Channels above 255 are not clamped.
func (c *Camera) RenderPixel(s *scene.Scene, i, j int) math3d.Vec3f {
	return CalcPixel(s, c.Eye, c.Direction(i, j), 0).Scale(OutputScale)
}

// Render traces one pixel of a width x height image seen from eye with the
// given vertical field of view in degrees.
func Render(s *scene.Scene, i, j, width, height int, fovDeg float32, eye math3d.Vec3f) math3d.Vec3f {
	cam := Camera{Width: width, Height: height, FOV: fovDeg, Eye: eye}
	return cam.RenderPixel(s, i, j)
}
