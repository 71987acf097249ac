package loop

import (
	"testing"

	"github.com/tomz197/colorcatch/internal/object"
)

func TestCollides(t *testing.T) {
	paddle := &object.Paddle{X: 100, Y: 100, Radius: 30}

	tests := []struct {
		name string
		o    *object.FallingObject
		want bool
	}{
		{"same center", &object.FallingObject{X: 100, Y: 100, Radius: 20}, true},
		{"overlapping", &object.FallingObject{X: 140, Y: 100, Radius: 20}, true},
		{"tangent", &object.FallingObject{X: 150, Y: 100, Radius: 20}, false},
		{"tangent diagonal", &object.FallingObject{X: 130, Y: 140, Radius: 20}, false},
		{"apart", &object.FallingObject{X: 200, Y: 100, Radius: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(paddle, tt.o); got != tt.want {
				t.Errorf("Collides(paddle, o) = %v, want %v", got, tt.want)
			}
			if got := Collides(tt.o, paddle); got != tt.want {
				t.Errorf("Collides(o, paddle) = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCollidesMonotone verifies growing either radius never ends a collision
func TestCollidesMonotone(t *testing.T) {
	paddle := &object.Paddle{X: 0, Y: 0, Radius: 10}
	o := &object.FallingObject{X: 45, Y: 0, Radius: 10}

	hit := false
	for r := 10.0; r <= 60; r += 0.5 {
		o.Radius = r
		got := Collides(paddle, o)
		if hit && !got {
			t.Fatalf("collision lost when radius grew to %v", r)
		}
		hit = got
	}
	if !hit {
		t.Error("expected a collision at the largest radius")
	}
}
