package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each terminal row shows two framebuffer rows.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// TerminalRenderer owns the framebuffer shown on a terminal and presents it
// as half-block cells. The framebuffer is twice as tall as the terminal.
type TerminalRenderer struct {
	term *uv.Terminal
	fb   *Framebuffer
	cols int
	rows int
}

// NewTerminalRenderer creates a renderer for a cols x rows terminal.
func NewTerminalRenderer(term *uv.Terminal, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{
		term: term,
		fb:   NewFramebuffer(cols, rows*2),
		cols: cols,
		rows: rows,
	}
}

// Framebuffer returns the buffer frames should be rendered into.
func (t *TerminalRenderer) Framebuffer() *Framebuffer {
	return t.fb
}

// FramebufferSize returns the framebuffer dimensions in pixels.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.fb.Width, t.fb.Height
}

// Resize adapts the framebuffer to a new terminal size.
func (t *TerminalRenderer) Resize(cols, rows int) {
	t.cols = cols
	t.rows = rows
	t.fb.Resize(cols, rows*2)
}

// Render copies the framebuffer onto the terminal screen.
func (t *TerminalRenderer) Render() {
	t.fb.Draw(t.term, uv.Rectangle(image.Rect(0, 0, t.cols, t.rows)))
}

// Flush writes pending cell changes to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}
