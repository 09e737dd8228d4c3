package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/mirrorball/pkg/animate"
	"github.com/taigrr/mirrorball/pkg/render"
)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		width, height int
		eyeFlag       string
		workers       int
		frame         int
		out           string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single frame to a PNG or PPM file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("%w: %dx%d", render.ErrBadSize, width, height)
			}

			s, err := loadScene(opts.scenePath)
			if err != nil {
				return err
			}

			eye, err := parseVec3(eyeFlag)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("frame") {
				flyEye := animate.Flythrough{}.Step(s, frame)
				if !cmd.Flags().Changed("eye") {
					eye = flyEye
				}
			}

			save, err := writerFor(out)
			if err != nil {
				return err
			}

			fb := render.NewFramebuffer(width, height)
			r := render.NewRenderer(render.NewCamera(width, height, opts.fov, eye))
			if workers > 0 {
				r.Workers = workers
			}
			r.Logger = opts.logger(cmd.ErrOrStderr())
			r.Verbose = opts.verbose

			if err := r.Render(cmd.Context(), s, fb); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if err := save(fb, out); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%dx%d, %v)\n", out, width, height, r.Stats().Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 360, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 240, "image height in pixels")
	cmd.Flags().StringVar(&eyeFlag, "eye", "0,0,0", "camera position x,y,z")
	cmd.Flags().IntVar(&workers, "workers", 0, "render goroutines (default NumCPU or $"+render.WorkersEnv+")")
	cmd.Flags().IntVar(&frame, "frame", 0, "pose lights and camera at this flythrough frame")
	cmd.Flags().StringVarP(&out, "out", "o", "out.png", "output file (.png or .ppm)")

	return cmd
}

// writerFor picks an encoder by output extension.
func writerFor(path string) (func(*render.Framebuffer, string) error, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return (*render.Framebuffer).SavePNG, nil
	case ".ppm":
		return (*render.Framebuffer).SavePPM, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q (use .png or .ppm)", ext)
	}
}
