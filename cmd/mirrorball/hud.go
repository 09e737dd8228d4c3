package main

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/taigrr/mirrorball/pkg/math3d"
)

var (
	hudBase  = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Padding(0, 1)
	hudFPS   = hudBase.Foreground(lipgloss.Color("#5fff87"))
	hudTitle = hudBase.Foreground(lipgloss.Color("#ffffff")).Bold(true)
	hudInfo  = hudBase.Foreground(lipgloss.Color("#5fd7ff"))
	hudHint  = hudBase.Foreground(lipgloss.Color("#ffd75f")).Faint(true)
)

// HUDState is what the overlay reports for one frame.
type HUDState struct {
	Eye       math3d.Vec3f
	FrameTime time.Duration
	Animating bool
	Frame     int
}

// HUD renders an overlay with scene info and controls
type HUD struct {
	title     string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(title string) *HUD {
	return &HUD{
		title:   title,
		fpsTime: time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Top returns the styled top line: FPS, title and eye position.
func (h *HUD) Top(width int, st HUDState) string {
	left := hudFPS.Render(fmt.Sprintf("%.0f FPS", h.fps))
	mid := hudTitle.Render(h.title)
	right := hudInfo.Render(fmt.Sprintf("eye %.1f,%.1f,%.1f", st.Eye.X, st.Eye.Y, st.Eye.Z))
	return spread(width, left, mid, right)
}

// Bottom returns the styled bottom line: mode and key hints.
func (h *HUD) Bottom(width int, st HUDState) string {
	check := "[ ]"
	if st.Animating {
		check = "[✓]"
	}
	left := hudTitle.Render(fmt.Sprintf("%s Flythrough  frame %d  %v", check, st.Frame, st.FrameTime.Round(time.Millisecond)))
	right := hudHint.Render("WASD/RF move  space animate  ? hud")
	return spread(width, left, right)
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, show bool, st HUDState) {
	const clearLine = "\x1b[2K"

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !show {
		return
	}

	fmt.Print(moveTo(1, 1) + h.Top(width, st))
	fmt.Print(moveTo(height, 1) + h.Bottom(width, st))
}

// spread lays the segments out across width, first flush left, last flush
// right. Segments that do not fit are dropped from the end.
func spread(width int, segs ...string) string {
	for len(segs) > 1 && totalWidth(segs) > width {
		segs = segs[:len(segs)-1]
	}
	if len(segs) < 2 {
		return strings.Join(segs, "")
	}

	gaps := len(segs) - 1
	free := max(width-totalWidth(segs), 0)

	var b strings.Builder
	for i, s := range segs {
		b.WriteString(s)
		if i < gaps {
			n := free / gaps
			if i < free%gaps {
				n++
			}
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	return b.String()
}

func totalWidth(segs []string) int {
	n := 0
	for _, s := range segs {
		n += lipgloss.Width(s)
	}
	return n
}
