package loop

import "github.com/tomz197/colorcatch/internal/object"

// Session is the state of one round of play, from Start to Stop.
// A stopped session keeps its score and objects until the next Start.
type Session struct {
	Score   int
	Target  object.Color
	Running bool
	Objects []*object.FallingObject
	Paddle  *object.Paddle
}

// TickReport counts how objects left the active set during one tick.
type TickReport struct {
	Caught  int // Collided with the paddle and matched the target
	Missed  int // Collided with the paddle and did not match
	Dropped int // Fell past the bottom edge
}

// Removed returns the number of objects that left the active set.
func (r TickReport) Removed() int {
	return r.Caught + r.Missed + r.Dropped
}

// ScoreDelta returns the score change caused by the tick.
func (r TickReport) ScoreDelta() int {
	return r.Caught - r.Missed
}
