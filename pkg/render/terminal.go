package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Display is a screen that can push its cells to the terminal.
// *uv.Terminal satisfies it.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalRenderer draws a framebuffer into a terminal, two pixel rows per
// cell row.
type TerminalRenderer struct {
	out           Display
	cols, rows    int
	statusLines   []string
	statusColor   color.RGBA
	statusBgColor color.RGBA
}

// NewTerminalRenderer creates a renderer for a cols x rows terminal.
func NewTerminalRenderer(out Display, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{
		out:           out,
		cols:          cols,
		rows:          rows,
		statusColor:   ColorWhite,
		statusBgColor: ColorBlack,
	}
}

// FramebufferSize returns the pixel size that fills the terminal.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.cols, t.rows * 2
}

// SetStatus replaces the text lines drawn over the bottom of the frame.
func (t *TerminalRenderer) SetStatus(lines ...string) {
	t.statusLines = lines
}

// Render draws fb and the status lines to the screen.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	area := uv.Rect(0, 0, t.cols, t.rows)
	fb.Draw(t.out, area)

	first := t.rows - len(t.statusLines)
	for i, line := range t.statusLines {
		DrawText(t.out, 0, first+i, line, t.statusColor, t.statusBgColor)
	}
}

// Flush pushes the drawn frame to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.out.Display()
}

// Draw writes the framebuffer into area of scr. Each cell is an upper half
// block with the top pixel as foreground and the bottom pixel as background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.At(col, topY)),
					Bg: rgbaToColor(fb.At(col, topY+1)),
				},
			})
		}
	}
}

// DrawText writes text one cell per rune starting at (x, y).
func DrawText(scr uv.Screen, x, y int, text string, fg, bg color.RGBA) {
	if y < 0 {
		return
	}
	for _, r := range text {
		scr.SetCell(x, y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: rgbaToColor(fg), Bg: rgbaToColor(bg)},
		})
		x++
	}
}

// rgbaToColor maps fully transparent pixels to the terminal default.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Color is an alias for color.RGBA.
type Color = color.RGBA

var (
	ColorBlack  = color.RGBA{0, 0, 0, 255}
	ColorWhite  = color.RGBA{255, 255, 255, 255}
	ColorRed    = color.RGBA{255, 0, 0, 255}
	ColorGreen  = color.RGBA{0, 255, 0, 255}
	ColorBlue   = color.RGBA{0, 0, 255, 255}
	ColorYellow = color.RGBA{255, 255, 0, 255}
	ColorCyan   = color.RGBA{0, 255, 255, 255}
	ColorGray   = color.RGBA{128, 128, 128, 255}
	ColorDark   = color.RGBA{30, 30, 40, 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
