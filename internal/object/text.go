package object

import "github.com/tomz197/colorcatch/internal/draw"

// Text is a static label in logical coordinates.
type Text struct {
	X, Y  float64
	Value string
	Color draw.RGB
}

// Draw queues the text on the surface. Empty text draws nothing.
func (t Text) Draw(ctx DrawContext) {
	if t.Value == "" {
		return
	}
	ctx.Surface.Text(max(t.X, 0), max(t.Y, 0), t.Value, t.Color)
}

// Swatch is a filled square used to show a color sample.
type Swatch struct {
	X, Y, Size float64
	Color      Color
}

// Draw fills the swatch.
func (s Swatch) Draw(ctx DrawContext) {
	ctx.Surface.FillRect(s.X, s.Y, s.Size, s.Size, s.Color.RGB())
}

var (
	_ Drawable = Text{}
	_ Drawable = Swatch{}
	_ Drawable = (*Paddle)(nil)
	_ Drawable = (*FallingObject)(nil)
)
