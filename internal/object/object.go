// Package object holds the game entities: falling objects, the paddle and
// the pieces that create and draw them.
package object

import (
	"github.com/tomz197/colorcatch/internal/draw"
	"github.com/tomz197/colorcatch/internal/input"
)

// Control is an alias for the input package's Control type.
type Control = input.Control

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
}

// Drawable is anything that can paint itself on a surface.
type Drawable interface {
	Draw(ctx DrawContext)
}

// Circle is a positioned circle. Collision checks work on circles.
type Circle interface {
	Center() (x, y float64)
	Size() float64
}
