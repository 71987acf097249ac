// Package audio plays the game's sound cues.
//
// Playback is fire-and-forget: players never report failures to the game,
// they fall back to silence instead.
package audio

import "io"

// Cue identifies one of the game's sounds.
type Cue int

const (
	CueBackground Cue = iota // Looping music while a session runs
	CueCatch                 // Caught an object of the target color
	CueMiss                  // Caught an object of any other color
)

// String returns the cue name for logs.
func (c Cue) String() string {
	switch c {
	case CueBackground:
		return "background"
	case CueCatch:
		return "catch"
	case CueMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Player starts and stops cues. Play restarts a cue from its beginning.
type Player interface {
	Play(c Cue)
	Stop(c Cue)
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Stop(Cue) {}

// Bell rings the terminal bell for catch and miss cues.
// Used where no audio device is reachable, such as SSH sessions.
type Bell struct {
	W io.Writer
}

// Play writes BEL for one-shot cues. Write errors are ignored.
func (b Bell) Play(c Cue) {
	if c == CueCatch || c == CueMiss {
		_, _ = io.WriteString(b.W, "\a")
	}
}

// Stop is a no-op; a bell cannot be stopped.
func (Bell) Stop(Cue) {}

var (
	_ Player = Nop{}
	_ Player = Bell{}
)
