package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/taigrr/mirrorball/pkg/math3d"
)

func TestFramebufferCreation(t *testing.T) {
	fb := NewFramebuffer(80, 48)

	if fb.Width != 80 || fb.Height != 48 {
		t.Errorf("size = %dx%d, want 80x48", fb.Width, fb.Height)
	}
	if len(fb.Pixels) != 80*48 {
		t.Errorf("len(Pixels) = %d, want %d", len(fb.Pixels), 80*48)
	}
}

func TestFramebufferSetGet(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	c := color.RGBA{10, 20, 30, 255}
	fb.SetPixel(2, 1, c)

	if got := fb.GetPixel(2, 1); got != c {
		t.Errorf("GetPixel(2,1) = %v, want %v", got, c)
	}
	if got := fb.Pixels[1*4+2]; got != c {
		t.Errorf("Pixels not row-major: %v", got)
	}

	// out of bounds writes are ignored, reads return transparent black
	fb.SetPixel(-1, 0, c)
	fb.SetPixel(4, 0, c)
	fb.SetPixel(0, 3, c)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, 3}} {
		if got := fb.GetPixel(p[0], p[1]); got != (color.RGBA{}) {
			t.Errorf("GetPixel(%d,%d) = %v, want zero", p[0], p[1], got)
		}
	}
}

func TestToRGBAClamps(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3f
		want color.RGBA
	}{
		{"in range", math3d.V3(0, 127.5, 255), color.RGBA{0, 128, 255, 255}},
		{"over bright", math3d.V3(300, 1000, 256), color.RGBA{255, 255, 255, 255}},
		{"negative", math3d.V3(-5, -0.1, 0), color.RGBA{0, 0, 0, 255}},
		{"infinite", math3d.V3(math32.Inf(1), 0, 0), color.RGBA{255, 0, 0, 255}},
		{"nan", math3d.V3(math32.NaN(), 255, 0), color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGBA(tt.in); got != tt.want {
				t.Errorf("ToRGBA(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetColor(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetColor(1, 1, math3d.V3(400, 0, 51))

	if got := fb.GetPixel(1, 1); got != (color.RGBA{255, 0, 51, 255}) {
		t.Errorf("GetPixel(1,1) = %v", got)
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Resize(4, 5)
	if fb.Width != 4 || fb.Height != 5 || len(fb.Pixels) != 20 {
		t.Errorf("after shrink: %dx%d len %d", fb.Width, fb.Height, len(fb.Pixels))
	}
	fb.Resize(20, 20)
	if len(fb.Pixels) != 400 {
		t.Errorf("after grow: len %d, want 400", len(fb.Pixels))
	}
}

func TestWritePPM(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(0, 0, color.RGBA{1, 2, 3, 255})
	fb.SetPixel(1, 0, color.RGBA{4, 5, 6, 255})

	var buf bytes.Buffer
	if err := fb.WritePPM(&buf); err != nil {
		t.Fatalf("WritePPM() error = %v", err)
	}

	want := append([]byte("P6\n2 1\n255\n"), 1, 2, 3, 4, 5, 6)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("WritePPM() = %q, want %q", buf.Bytes(), want)
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	fb := NewFramebuffer(3, 2)
	fb.Clear(color.RGBA{9, 9, 9, 255})

	ppm := filepath.Join(dir, "out.ppm")
	if err := fb.SavePPM(ppm); err != nil {
		t.Fatalf("SavePPM() error = %v", err)
	}
	info, err := os.Stat(ppm)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(len("P6\n3 2\n255\n") + 3*2*3); info.Size() != want {
		t.Errorf("ppm size = %d, want %d", info.Size(), want)
	}

	if err := fb.SavePNG(filepath.Join(dir, "out.png")); err != nil {
		t.Errorf("SavePNG() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("out.png has no PNG signature: %q", data[:min(len(data), 8)])
	}
	if err := fb.SavePNG(filepath.Join(dir, "missing", "out.png")); err == nil {
		t.Error("SavePNG() into a missing directory should fail")
	}
}

func TestToImage(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(2, 1, color.RGBA{7, 8, 9, 255})

	img := fb.ToImage()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{7, 8, 9, 255}) {
		t.Errorf("RGBAAt(2,1) = %v", got)
	}
}
