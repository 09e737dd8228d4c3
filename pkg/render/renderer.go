package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/scene"
	"golang.org/x/sync/errgroup"
)

// WorkersEnv overrides the default worker count when set to a positive
// integer.
const WorkersEnv = "MIRRORBALL_WORKERS"

// DefaultTileRows is the band height handed to each worker.
const DefaultTileRows = 8

// ErrBadSize is returned when a framebuffer has a non-positive dimension.
var ErrBadSize = errors.New("invalid frame size")

// Logger receives per-frame summaries.
type Logger interface {
	Printf(format string, args ...any)
}

// Stats describes the last rendered frame.
type Stats struct {
	Pixels  int64
	Bands   int
	Elapsed time.Duration
}

// Renderer evaluates every pixel of a frame in parallel. Work is split into
// horizontal bands so each pixel is written by exactly one goroutine.
type Renderer struct {
	Camera   *Camera
	Workers  int // Goroutine limit, DefaultWorkers() when <= 0
	TileRows int // Rows per band, DefaultTileRows when <= 0
	Logger   Logger
	Verbose  bool

	stats Stats
}

// NewRenderer creates a renderer for the given camera with default
// parallelism.
func NewRenderer(cam *Camera) *Renderer {
	return &Renderer{
		Camera:   cam,
		Workers:  DefaultWorkers(),
		TileRows: DefaultTileRows,
	}
}

// DefaultWorkers returns runtime.NumCPU(), or the value of WorkersEnv when it
// holds a positive integer.
func DefaultWorkers() int {
	if env := os.Getenv(WorkersEnv); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return n
		}
	}
	return max(runtime.NumCPU(), 1)
}

// Stats returns statistics for the most recent Render call.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render traces s into fb. The camera is resized to the framebuffer first.
// Cancellation is checked between bands; a cancelled frame returns ctx.Err()
// and leaves fb partially written. s must not be mutated until Render
// returns.
func (r *Renderer) Render(ctx context.Context, s *scene.Scene, fb *Framebuffer) error {
	if fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, fb.Width, fb.Height)
	}

	cam := r.Camera
	if cam == nil {
		cam = NewCamera(fb.Width, fb.Height, 65, math3d.Zero3())
		r.Camera = cam
	}
	cam.SetSize(fb.Width, fb.Height)
	// workers read a copy so the caller may move the camera afterwards
	view := *cam

	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	rows := r.TileRows
	if rows <= 0 {
		rows = DefaultTileRows
	}

	start := time.Now()
	var pixels atomic.Int64
	bands := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y0 := 0; y0 < fb.Height; y0 += rows {
		if err := gctx.Err(); err != nil {
			break
		}
		y1 := min(y0+rows, fb.Height)
		bands++

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for y := y0; y < y1; y++ {
				for x := 0; x < fb.Width; x++ {
					fb.SetColor(x, y, view.RenderPixel(s, x, y))
				}
			}
			pixels.Add(int64((y1 - y0) * fb.Width))
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	r.stats = Stats{
		Pixels:  pixels.Load(),
		Bands:   bands,
		Elapsed: time.Since(start),
	}

	if r.Verbose && r.Logger != nil {
		r.Logger.Printf("rendered %dx%d: %d pixels in %d bands, %d workers, %v",
			fb.Width, fb.Height, r.stats.Pixels, r.stats.Bands, workers, r.stats.Elapsed)
	}

	return err
}
