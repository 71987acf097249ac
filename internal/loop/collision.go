package loop

import (
	"github.com/tomz197/colorcatch/internal/object"
	"github.com/tomz197/colorcatch/internal/physics"
)

// Collides reports whether two circles overlap. Touching circles do not collide.
func Collides(a, b object.Circle) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	return physics.CirclesOverlap(ax, ay, a.Size(), bx, by, b.Size())
}
