package object

import (
	"math/rand"
	"testing"

	"github.com/tomz197/colorcatch/internal/draw"
)

// recordingSurface counts draw calls.
type recordingSurface struct {
	circles int
	rects   int
	texts   []string
	last    draw.RGB
}

func (s *recordingSurface) Clear() {}
func (s *recordingSurface) FillCircle(_, _, _ float64, c draw.RGB) {
	s.circles++
	s.last = c
}
func (s *recordingSurface) FillRect(_, _, _, _ float64, c draw.RGB) {
	s.rects++
	s.last = c
}
func (s *recordingSurface) Text(_, _ float64, str string, _ draw.RGB) {
	s.texts = append(s.texts, str)
}
func (s *recordingSurface) LogicalWidth() float64  { return 800 }
func (s *recordingSurface) LogicalHeight() float64 { return 600 }

// TestFallIsLinear verifies y after N ticks is y0 + N*speed
func TestFallIsLinear(t *testing.T) {
	speeds := []float64{1, 1.5, 2.75, 5}
	for _, speed := range speeds {
		o := &FallingObject{Y: 10, Speed: speed}
		for n := 1; n <= 50; n++ {
			o.Fall()
			if want := 10 + float64(n)*speed; o.Y != want {
				t.Fatalf("speed %v after %d ticks: Y = %v, want %v", speed, n, o.Y, want)
			}
		}
	}
}

func TestFallingObjectBelow(t *testing.T) {
	o := &FallingObject{Y: 600}
	if o.Below(600) {
		t.Error("object on the bottom edge is still on screen")
	}
	o.Y = 600.5
	if !o.Below(600) {
		t.Error("object past the bottom edge should be below")
	}
}

func TestFallingObjectMatches(t *testing.T) {
	o := &FallingObject{Color: Color{H: 60, S: 100, L: 50}}
	if !o.Matches(Color{H: 60, S: 100, L: 50}) {
		t.Error("expected match")
	}
	if o.Matches(Color{H: 120, S: 100, L: 50}) {
		t.Error("expected mismatch")
	}
}

func TestDrawables(t *testing.T) {
	s := &recordingSurface{}
	ctx := DrawContext{Surface: s}

	(&FallingObject{Radius: 20, Color: Color{H: 0, S: 100, L: 50}}).Draw(ctx)
	if s.circles != 1 || s.last != (draw.RGB{R: 255}) {
		t.Errorf("falling object: circles=%d color=%+v", s.circles, s.last)
	}

	NewPaddle(800, 600, 30, 50, 5).Draw(ctx)
	if s.circles != 2 || s.last != draw.White {
		t.Errorf("paddle: circles=%d color=%+v", s.circles, s.last)
	}

	Swatch{X: 650, Y: 10, Size: 20, Color: Color{H: 240, S: 100, L: 50}}.Draw(ctx)
	if s.rects != 1 || s.last != (draw.RGB{B: 255}) {
		t.Errorf("swatch: rects=%d color=%+v", s.rects, s.last)
	}

	Text{Value: ""}.Draw(ctx)
	Text{X: 10, Y: 10, Value: "Score: 3"}.Draw(ctx)
	if len(s.texts) != 1 || s.texts[0] != "Score: 3" {
		t.Errorf("texts = %q", s.texts)
	}
}

func TestSpawnerRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cfg := SpawnerConfig{Radius: 20, SpeedMin: 1, SpeedMax: 3}
	s := NewSpawner(cfg, NewPalette(0, 100, 50, rng), rng)

	for i := 0; i < 1000; i++ {
		o := s.Spawn(800)
		if o.Y != 0 {
			t.Fatalf("Y = %v, want 0", o.Y)
		}
		if o.X < 0 || o.X >= 800 {
			t.Fatalf("X = %v outside [0, 800)", o.X)
		}
		if o.Speed < 1 || o.Speed >= 3 {
			t.Fatalf("Speed = %v outside [1, 3)", o.Speed)
		}
		if o.Radius != 20 {
			t.Fatalf("Radius = %v, want 20", o.Radius)
		}
		if o.Color.S != 100 || o.Color.L != 50 {
			t.Fatalf("Color = %v", o.Color)
		}
	}
}

func TestNewPaddle(t *testing.T) {
	p := NewPaddle(800, 600, 30, 50, 5)
	if p.X != 400 || p.Y != 550 || p.Radius != 30 || p.Color != draw.White {
		t.Errorf("unexpected paddle: %+v", p)
	}
}

func TestPaddleSteer(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		ctrl  Control
		want  float64
	}{
		{"idle", 400, Control{}, 400},
		{"left", 400, Control{Left: true}, 395},
		{"right", 400, Control{Right: true}, 405},
		{"both", 400, Control{Left: true, Right: true}, 400},
		{"left at edge", 30, Control{Left: true}, 30},
		{"left near edge clamps", 32, Control{Left: true}, 30},
		{"right at edge", 770, Control{Right: true}, 770},
		{"right near edge clamps", 768, Control{Right: true}, 770},
		{"pointer overrides keys", 400, Control{Left: true, Pointer: true, PointerX: 600}, 600},
		{"pointer clamped left", 400, Control{Pointer: true, PointerX: -50}, 30},
		{"pointer clamped right", 400, Control{Pointer: true, PointerX: 1000}, 770},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaddle(800, 600, 30, 50, 5)
			p.X = tt.start
			p.Steer(tt.ctrl, 800)
			if p.X != tt.want {
				t.Errorf("X = %v, want %v", p.X, tt.want)
			}
		})
	}
}

// TestPaddleStaysInBounds drives the paddle with random input
func TestPaddleStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	p := NewPaddle(800, 600, 30, 50, 5)

	for i := 0; i < 10000; i++ {
		ctrl := Control{
			Left:     rng.Intn(2) == 0,
			Right:    rng.Intn(3) == 0,
			Pointer:  rng.Intn(10) == 0,
			PointerX: rng.Float64()*1200 - 200,
		}
		p.Steer(ctrl, 800)
		if p.X < 30 || p.X > 770 {
			t.Fatalf("step %d: X = %v outside [30, 770]", i, p.X)
		}
	}
}
