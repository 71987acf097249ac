// Package input turns terminal key and mouse activity into per-frame input snapshots.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key releases, only auto-repeated presses.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Start bool
	Stop  bool

	// Pointer is true once any pointer position has been reported.
	// PointerCol is the last reported 1-based terminal column.
	Pointer    bool
	PointerCol int

	// Active reports that a key or pointer event arrived since the last read.
	Active bool
}

// Control is the paddle steering derived from an Input, in logical coordinates.
type Control struct {
	Left     bool
	Right    bool
	Pointer  bool
	PointerX float64
}

// Control converts the snapshot into paddle steering.
// toLogical maps a 1-based terminal column onto the play field.
func (in Input) Control(toLogical func(col int) float64) Control {
	c := Control{Left: in.Left, Right: in.Right}
	if in.Pointer {
		c.Pointer = true
		c.PointerX = toLogical(in.PointerCol)
	}
	return c
}

// Source yields one input snapshot per frame without blocking.
// ResetKeys forgets held keys, so a key that started a game is not replayed.
type Source interface {
	Read() Input
	ResetKeys()
}

// keyState tracks the last time each key was pressed and the last pointer position.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	start time.Time
	stop  time.Time

	pointer    bool
	pointerCol int
	closed     bool
}

func (s *keyState) snapshot(now time.Time, active bool) Input {
	return Input{
		Quit:       s.closed || now.Sub(s.quit) < keyHoldDuration,
		Left:       now.Sub(s.left) < keyHoldDuration,
		Right:      now.Sub(s.right) < keyHoldDuration,
		Start:      now.Sub(s.start) < keyHoldDuration,
		Stop:       now.Sub(s.stop) < keyHoldDuration,
		Pointer:    s.pointer,
		PointerCol: s.pointerCol,
		Active:     active,
	}
}

// resetKeys forgets held keys but keeps the pointer position.
func (s *keyState) resetKeys() {
	s.quit = time.Time{}
	s.left = time.Time{}
	s.right = time.Time{}
	s.start = time.Time{}
	s.stop = time.Time{}
}

func (s *keyState) point(col int) {
	s.pointer = true
	s.pointerCol = col
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl-C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', '\n', '\r':
		state.start = now
	case '\x1b':
		state.stop = now
	}
}

// Stream delivers input bytes via a channel and tracks key state.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried to the next frame
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The stream reports Quit once r is exhausted.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains all available bytes (non-blocking) and returns the snapshot.
// Handles escape sequences for arrow keys and SGR mouse reports.
func (s *Stream) Read() Input {
	now := time.Now()
	buf := s.pending
	carried := len(buf)
	s.pending = nil

drain:
	for !s.state.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.state.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	// A carried-over lone ESC with nothing new behind it is the Escape key.
	s.parse(buf, now, len(buf) == carried || s.state.closed)
	return s.state.snapshot(now, len(buf) > carried)
}

// ResetKeys clears held keys so a key used to start a game is not replayed.
func (s *Stream) ResetKeys() {
	s.state.resetKeys()
}

// parse updates key state from raw bytes. An escape sequence cut off at the
// end of buf is kept in s.pending. A trailing lone ESC is kept as well unless
// flush is set, since it may be the first byte of a split sequence.
func (s *Stream) parse(buf []byte, now time.Time, flush bool) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+1 == len(buf) && !flush {
			s.pending = append(s.pending[:0], b)
			return
		}
		if b != '\x1b' || i+1 >= len(buf) || buf[i+1] != '[' {
			applyByteToState(&s.state, b, now)
			continue
		}

		n, complete := s.parseCSI(buf[i+2:], now)
		if !complete {
			s.pending = append(s.pending[:0], buf[i:]...)
			return
		}
		i += 1 + n
	}
}

// parseCSI handles the bytes after "ESC [". It returns how many bytes it
// consumed and false if the sequence is not finished yet.
func (s *Stream) parseCSI(seq []byte, now time.Time) (int, bool) {
	if len(seq) == 0 {
		return 0, false
	}

	switch seq[0] {
	case 'C': // Right arrow
		s.state.right = now
		return 1, true
	case 'D': // Left arrow
		s.state.left = now
		return 1, true
	case '<':
		return s.parseSGRMouse(seq)
	}

	// Unknown sequence: skip parameters up to the final byte.
	for j, c := range seq {
		if c >= 0x40 && c <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// parseSGRMouse parses "<b;x;yM" (or trailing 'm') and records the column.
func (s *Stream) parseSGRMouse(seq []byte) (int, bool) {
	var fields [3]int
	field := 0
	for j := 1; j < len(seq); j++ {
		c := seq[j]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
		case c == ';':
			if field < len(fields)-1 {
				field++
			}
		case c == 'M' || c == 'm':
			if field == 2 && fields[1] > 0 {
				s.state.point(fields[1])
			}
			return j + 1, true
		default:
			// Malformed report: drop it.
			return j + 1, true
		}
	}
	return 0, false
}
