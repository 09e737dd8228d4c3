package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/mirrorball/pkg/math3d"
)

// Framebuffer is a row-major grid of 8-bit pixels that a frame is rendered
// into before it is written to a file or the terminal.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels (2x terminal rows when drawn)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Resize changes the dimensions, reusing the pixel slice when it is large
// enough. Contents are undefined afterwards.
func (fb *Framebuffer) Resize(width, height int) {
	n := width * height
	if cap(fb.Pixels) < n {
		fb.Pixels = make([]color.RGBA, n)
	}
	fb.Pixels = fb.Pixels[:n]
	fb.Width = width
	fb.Height = height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// SetColor stores a traced color given in the [0,255] range. Channels are
// clamped, so over-bright highlights saturate instead of wrapping.
func (fb *Framebuffer) SetColor(x, y int, c math3d.Vec3f) {
	fb.SetPixel(x, y, ToRGBA(c))
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ToRGBA quantises a [0,255]-range color to an opaque 8-bit pixel.
func ToRGBA(c math3d.Vec3f) color.RGBA {
	cc := colorful.Color{
		R: channel(c.X),
		G: channel(c.Y),
		B: channel(c.Z),
	}
	r, g, b := cc.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// channel maps one [0,255] component to [0,1]. NaN becomes black.
func channel(v float32) float64 {
	if v != v {
		return 0
	}
	return float64(v) / OutputScale
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// WritePPM writes the framebuffer as a binary (P6) PPM image.
func (fb *Framebuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	for _, p := range fb.Pixels {
		if _, err := bw.Write([]byte{p.R, p.G, p.B}); err != nil {
			return fmt.Errorf("write ppm pixels: %w", err)
		}
	}
	return bw.Flush()
}

// SavePPM saves the framebuffer as a binary PPM file.
func (fb *Framebuffer) SavePPM(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fb.WritePPM(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
