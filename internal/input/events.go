package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Events tracks key state from tcell events.
type Events struct {
	ch    chan tcell.Event
	state keyState
}

// eventPoller is the part of tcell.Screen that Events needs.
type eventPoller interface {
	PollEvent() tcell.Event
}

// StartEvents spawns a goroutine that polls screen events into a channel.
// Polling ends when the screen is finalized.
func StartEvents(screen eventPoller) *Events {
	e := &Events{ch: make(chan tcell.Event, 128)}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(e.ch)
				return
			}
			e.ch <- ev
		}
	}()
	return e
}

// Read drains pending events (non-blocking) and returns the snapshot.
func (e *Events) Read() Input {
	now := time.Now()
	active := false

drain:
	for !e.state.closed {
		select {
		case ev, ok := <-e.ch:
			if !ok {
				e.state.closed = true
				break drain
			}
			active = e.apply(ev, now) || active
		default:
			break drain
		}
	}

	return e.state.snapshot(now, active)
}

// ResetKeys clears held keys.
func (e *Events) ResetKeys() {
	e.state.resetKeys()
}

// apply updates key state from ev and reports whether ev came from the player.
// Resize and other screen events do not count as activity.
func (e *Events) apply(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			e.state.left = now
		case tcell.KeyRight:
			e.state.right = now
		case tcell.KeyEnter:
			e.state.start = now
		case tcell.KeyEscape:
			e.state.stop = now
		case tcell.KeyCtrlC:
			e.state.quit = now
		case tcell.KeyRune:
			if r := ev.Rune(); r < 0x80 {
				applyByteToState(&e.state, byte(r), now)
			}
		}
	case *tcell.EventMouse:
		x, _ := ev.Position()
		e.state.point(x + 1)
	default:
		return false
	}
	return true
}

var (
	_ Source = (*Events)(nil)
	_ Source = (*Stream)(nil)
)
