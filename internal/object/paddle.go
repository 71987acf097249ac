package object

import (
	"github.com/tomz197/colorcatch/internal/draw"
	"github.com/tomz197/colorcatch/internal/physics"
)

// Paddle is the player's catcher: a circle that moves along a fixed row.
type Paddle struct {
	X, Y   float64
	Radius float64
	Step   float64 // Units moved per tick while a key is held
	Color  draw.RGB
}

// NewPaddle creates a white paddle centered horizontally, offset above the bottom edge.
func NewPaddle(width, height, radius, offset, step float64) *Paddle {
	return &Paddle{
		X:      width / 2,
		Y:      height - offset,
		Radius: radius,
		Step:   step,
		Color:  draw.White,
	}
}

// Steer moves the paddle for one tick and keeps it inside [Radius, width-Radius].
// Once a pointer position is known it overrides the keys.
func (p *Paddle) Steer(ctrl Control, width float64) {
	if ctrl.Left && p.X > p.Radius {
		p.X -= p.Step
	}
	if ctrl.Right && p.X < width-p.Radius {
		p.X += p.Step
	}
	if ctrl.Pointer {
		p.X = ctrl.PointerX
	}
	p.X = physics.Clamp(p.X, p.Radius, width-p.Radius)
}

func (p *Paddle) Center() (float64, float64) {
	return p.X, p.Y
}

func (p *Paddle) Size() float64 {
	return p.Radius
}

// Draw paints the paddle as a filled circle.
func (p *Paddle) Draw(ctx DrawContext) {
	ctx.Surface.FillCircle(p.X, p.Y, p.Radius, p.Color)
}
