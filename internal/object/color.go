package object

import (
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/colorcatch/internal/draw"
)

// Color is an HSL color. H is in degrees [0, 360), S and L in percent.
// Two colors match only when all three components are equal.
type Color struct {
	H, S, L float64
}

// String renders the color in CSS notation, e.g. "hsl(120, 100%, 50%)".
func (c Color) String() string {
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.H, c.S, c.L)
}

// RGB converts the color for drawing.
func (c Color) RGB() draw.RGB {
	r, g, b := colorful.Hsl(c.H, c.S/100, c.L/100).Clamped().RGB255()
	return draw.RGB{R: r, G: g, B: b}
}

// Palette picks random colors with fixed saturation and lightness.
type Palette struct {
	steps      int
	saturation float64
	lightness  float64
	rng        *rand.Rand
}

// NewPalette creates a palette. With steps == 0 any hue in [0, 360) can be
// picked; otherwise hues are limited to steps evenly spaced values.
func NewPalette(steps int, saturation, lightness float64, rng *rand.Rand) *Palette {
	return &Palette{
		steps:      max(steps, 0),
		saturation: saturation,
		lightness:  lightness,
		rng:        rng,
	}
}

// Random returns a random palette color.
func (p *Palette) Random() Color {
	var h float64
	if p.steps == 0 {
		h = p.rng.Float64() * 360
	} else {
		h = float64(p.rng.Intn(p.steps)) * 360 / float64(p.steps)
	}
	return Color{H: h, S: p.saturation, L: p.lightness}
}
