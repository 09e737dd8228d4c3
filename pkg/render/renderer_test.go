package render

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/scene"
)

type recordLogger struct {
	lines []string
}

func (l *recordLogger) Printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestRendererMatchesSequential(t *testing.T) {
	s := scene.Room()
	fb := NewFramebuffer(24, 17)
	r := &Renderer{
		Camera:   NewCamera(1, 1, 65, math3d.Zero3()),
		Workers:  3,
		TileRows: 5,
	}

	if err := r.Render(context.Background(), s, fb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	cam := NewCamera(24, 17, 65, math3d.Zero3())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			want := ToRGBA(cam.RenderPixel(s, x, y))
			if got := fb.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	stats := r.Stats()
	if stats.Pixels != 24*17 {
		t.Errorf("Stats().Pixels = %d, want %d", stats.Pixels, 24*17)
	}
	if stats.Bands != 4 {
		t.Errorf("Stats().Bands = %d, want 4", stats.Bands)
	}
}

func TestRendererCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer(NewCamera(1, 1, 65, math3d.Zero3()))
	err := r.Render(ctx, scene.Room(), NewFramebuffer(16, 16))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if r.Stats().Pixels != 0 {
		t.Errorf("Stats().Pixels = %d, want 0", r.Stats().Pixels)
	}
}

func TestRendererBadSize(t *testing.T) {
	r := NewRenderer(nil)
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		fb := &Framebuffer{Width: size[0], Height: size[1]}
		if err := r.Render(context.Background(), scene.Room(), fb); !errors.Is(err, ErrBadSize) {
			t.Errorf("Render(%dx%d) error = %v, want ErrBadSize", size[0], size[1], err)
		}
	}
}

func TestRendererDefaultsAndLogging(t *testing.T) {
	log := &recordLogger{}
	r := &Renderer{Logger: log, Verbose: true}
	fb := NewFramebuffer(6, 4)

	if err := r.Render(context.Background(), scene.New(math3d.V3(1, 0, 0)), fb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if r.Camera == nil || r.Camera.Width != 6 || r.Camera.Height != 4 {
		t.Errorf("camera not sized to framebuffer: %+v", r.Camera)
	}
	for i, p := range fb.Pixels {
		if p.R != 255 || p.G != 0 || p.B != 0 {
			t.Fatalf("pixel %d = %v, want background red", i, p)
		}
	}
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "24 pixels") {
		t.Errorf("log = %q", log.lines)
	}

	r.Verbose = false
	_ = r.Render(context.Background(), scene.New(math3d.Zero3()), fb)
	if len(log.lines) != 1 {
		t.Errorf("quiet render logged: %q", log.lines)
	}
}

func TestDefaultWorkers(t *testing.T) {
	t.Setenv(WorkersEnv, "3")
	if got := DefaultWorkers(); got != 3 {
		t.Errorf("DefaultWorkers() = %d, want 3", got)
	}

	for _, bad := range []string{"", "zero", "0", "-2"} {
		t.Setenv(WorkersEnv, bad)
		if got := DefaultWorkers(); got != runtime.NumCPU() {
			t.Errorf("DefaultWorkers() with %q = %d, want %d", bad, got, runtime.NumCPU())
		}
	}
}

func BenchmarkRendererRoom(b *testing.B) {
	s := scene.Room()
	fb := NewFramebuffer(90, 60)
	r := NewRenderer(NewCamera(90, 60, 65, math3d.Zero3()))
	for b.Loop() {
		_ = r.Render(context.Background(), s, fb)
	}
}
