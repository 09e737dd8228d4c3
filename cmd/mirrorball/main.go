// mirrorball - Terminal Ray Tracer
// Render a mirrored room of spheres and planes in your terminal or to a file.
//
// Controls (view):
//
//	W/S         - Dolly forward/back
//	A/D         - Strafe left/right
//	R/F         - Rise/fall
//	0           - Reset camera
//	Space       - Toggle the flythrough animation
//	?           - Toggle HUD overlay (FPS, scene, eye, frame time)
//	Esc/Ctrl-C  - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/render"
	"github.com/taigrr/mirrorball/pkg/scene"
)

var version = "dev"

// options shared by every subcommand
type options struct {
	scenePath string
	fov       float32
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "mirrorball",
		Short: "Terminal ray tracer for mirrored rooms",
		Long: "mirrorball traces spheres and planes with Phong shading, hard shadows and\n" +
			"mirror reflections. Scenes come from JSON or glTF files, or the built-in room.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.scenePath, "scene", "", "scene file (.json, .gltf, .glb); empty for the built-in room")
	root.PersistentFlags().Float32Var(&opts.fov, "fov", 65, "vertical field of view in degrees")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log per-frame render statistics")

	root.AddCommand(newViewCmd(opts), newRenderCmd(opts))
	return root
}

// logger returns a stderr logger when verbose, nil otherwise.
func (o *options) logger(w io.Writer) render.Logger {
	if !o.verbose {
		return nil
	}
	return log.New(w, "mirrorball: ", 0)
}

// loadScene picks a loader by file extension. An empty path is the room.
func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Room(), nil
	}

	var (
		s   *scene.Scene
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		s, err = scene.Load(path)
	case ".gltf", ".glb":
		s, err = scene.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported scene format: %q (use .json, .gltf or .glb)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return s, nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math3d.Vec3f, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Vec3f{}, fmt.Errorf("parse vector %q: want x,y,z", s)
	}

	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math3d.Vec3f{}, fmt.Errorf("parse vector %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

// parseBackground parses a #rrggbb color into [0,1] channels.
func parseBackground(s string) (math3d.Vec3f, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return math3d.Vec3f{}, fmt.Errorf("parse background %q: %w", s, err)
	}
	return math3d.V3(float32(c.R), float32(c.G), float32(c.B)), nil
}
