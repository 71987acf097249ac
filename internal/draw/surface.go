// Package draw renders the play field onto terminals.
//
// Game code draws in logical coordinates onto a Surface. The Canvas
// implementation rasterizes at 2x vertical resolution with half-block
// characters, and a Display (ANSI or tcell) puts the result on screen.
package draw

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Common colors.
var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// Surface is a drawing target in logical coordinates.
type Surface interface {
	// Clear erases all shapes and text.
	Clear()
	// FillCircle draws a filled circle centered at (cx, cy).
	FillCircle(cx, cy, r float64, c RGB)
	// FillRect draws a filled axis-aligned rectangle with top-left (x, y).
	FillRect(x, y, w, h float64, c RGB)
	// Text writes s starting at (x, y). Text is drawn above shapes.
	Text(x, y float64, s string, c RGB)
	LogicalWidth() float64
	LogicalHeight() float64
}

// Display puts a rasterized canvas on a terminal.
type Display interface {
	Present(c *Canvas) error
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)
