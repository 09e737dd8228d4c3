package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/mirrorball/pkg/animate"
	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/render"
	"github.com/taigrr/mirrorball/pkg/scene"
)

// Distance the dolly target moves per key press.
const moveStep = 0.5

// viewState holds UI state owned by the frame loop.
type viewState struct {
	animating bool
	showHUD   bool
	frame     int
}

func newViewCmd(opts *options) *cobra.Command {
	var (
		fps         int
		animateFlag bool
		bg          string
		eyeFlag     string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the scene live in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fps <= 0 {
				return fmt.Errorf("fps must be positive, got %d", fps)
			}

			s, err := loadScene(opts.scenePath)
			if err != nil {
				return err
			}
			if bg != "" {
				if s.Background, err = parseBackground(bg); err != nil {
					return err
				}
			}
			eye, err := parseVec3(eyeFlag)
			if err != nil {
				return err
			}

			title := "room"
			if opts.scenePath != "" {
				title = filepath.Base(opts.scenePath)
			}

			return runView(cmd.Context(), s, viewConfig{
				title:   title,
				fps:     fps,
				fov:     opts.fov,
				eye:     eye,
				animate: animateFlag,
				logger:  opts.logger(cmd.ErrOrStderr()),
			})
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 30, "target FPS")
	cmd.Flags().BoolVar(&animateFlag, "animate", false, "start with the flythrough running")
	cmd.Flags().StringVar(&bg, "bg", "", "override the background color (#rrggbb)")
	cmd.Flags().StringVar(&eyeFlag, "eye", "0,0,0", "initial camera position x,y,z")

	return cmd
}

type viewConfig struct {
	title   string
	fps     int
	fov     float32
	eye     math3d.Vec3f
	animate bool
	logger  render.Logger
}

func runView(ctx context.Context, s *scene.Scene, cfg viewConfig) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()

	renderer := render.NewRenderer(render.NewCamera(fbWidth, fbHeight, cfg.fov, cfg.eye))
	renderer.Logger = cfg.logger
	renderer.Verbose = cfg.logger != nil

	dolly := animate.NewDolly(cfg.fps, cfg.eye)
	hud := NewHUD(cfg.title)
	state := &viewState{animating: cfg.animate}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := term.Events()
	targetDuration := time.Second / time.Duration(cfg.fps)

	for {
		// Input is applied between frames so the scene never changes mid-render
	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					termRenderer.Resize(width, height)
				case uv.KeyPressEvent:
					if handleKey(ev, state, dolly) {
						cancel()
					}
				}
			default:
				break drain
			}
		}

		now := time.Now()

		if state.animating {
			dolly.SetTarget(animate.Flythrough{}.Step(s, state.frame))
			state.frame++
		}
		renderer.Camera.SetPosition(dolly.Update())

		if err := renderer.Render(ctx, s, termRenderer.Framebuffer()); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("render frame: %w", err)
		}

		termRenderer.Render()
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		// HUD overlay (always update FPS, render clears lines when HUD off)
		hud.UpdateFPS()
		hud.Render(width, height, state.showHUD, HUDState{
			Eye:       renderer.Camera.Eye,
			FrameTime: renderer.Stats().Elapsed,
			Animating: state.animating,
			Frame:     state.frame,
		})

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// handleKey applies a key press and reports whether the viewer should quit.
func handleKey(ev uv.KeyPressEvent, state *viewState, dolly *animate.Dolly) bool {
	switch {
	case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
		return true
	case ev.MatchString("w", "up"):
		dolly.Nudge(0, 0, -moveStep)
	case ev.MatchString("s", "down"):
		dolly.Nudge(0, 0, moveStep)
	case ev.MatchString("a", "left"):
		dolly.Nudge(-moveStep, 0, 0)
	case ev.MatchString("d", "right"):
		dolly.Nudge(moveStep, 0, 0)
	case ev.MatchString("r"):
		dolly.Nudge(0, moveStep, 0)
	case ev.MatchString("f"):
		dolly.Nudge(0, -moveStep, 0)
	case ev.MatchString("0"):
		state.animating = false
		dolly.Reset()
	case ev.MatchString("space"):
		state.animating = !state.animating
	case ev.MatchString("?"), ev.MatchString("shift+/"):
		// Toggle HUD
		state.showHUD = !state.showHUD
	}
	return false
}
