package object

// FallingObject is a colored circle moving straight down at a constant speed.
type FallingObject struct {
	X, Y   float64
	Radius float64
	Speed  float64 // Units per tick
	Color  Color
}

// Fall advances the object by one tick.
func (o *FallingObject) Fall() {
	o.Y += o.Speed
}

// Below reports whether the object's center passed the bottom edge.
func (o *FallingObject) Below(height float64) bool {
	return o.Y > height
}

// Matches reports whether the object has the target color.
func (o *FallingObject) Matches(target Color) bool {
	return o.Color == target
}

func (o *FallingObject) Center() (float64, float64) {
	return o.X, o.Y
}

func (o *FallingObject) Size() float64 {
	return o.Radius
}

// Draw paints the object as a filled circle.
func (o *FallingObject) Draw(ctx DrawContext) {
	ctx.Surface.FillCircle(o.X, o.Y, o.Radius, o.Color.RGB())
}
