package loop

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/colorcatch/internal/draw"
	"github.com/tomz197/colorcatch/internal/input"
)

// shutdownDisplay is how long the shutdown notice stays up before the session ends.
const shutdownDisplay = 5 * time.Second

// Terminal is where a Runner reads input and presents frames.
type Terminal struct {
	Input   input.Source
	Size    draw.TermSizeFunc
	Display draw.Display
}

// Runner drives a Game at the configured frame rate: Input → Update → Draw.
type Runner struct {
	game   *Game
	term   Terminal
	canvas *draw.Canvas
	logger *log.Logger
	hub    *Hub

	idleTimeout time.Duration
	lastInput   time.Time
	shutdownAt  time.Time // Zero until the hub asks the session to end
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithIdleTimeout ends the run after d without any input. Zero disables it.
func WithIdleTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.idleTimeout = d }
}

// WithHub registers the run with h so a server shutdown reaches it.
func WithHub(h *Hub) RunnerOption {
	return func(r *Runner) { r.hub = h }
}

// WithRunnerLogger sets the logger.
func WithRunnerLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner for game on term. Ticks come from the game's clock.
func NewRunner(game *Game, term Terminal, opts ...RunnerOption) *Runner {
	if term.Size == nil {
		term.Size = draw.DefaultTermSizeFunc
	}

	s := game.Settings()
	r := &Runner{
		game:   game,
		term:   term,
		canvas: draw.NewScaledCanvas(1, 1, s.Width, s.Height),
		logger: game.logger,
	}
	r.lastInput = game.clock.Now()
	for _, opt := range opts {
		opt(r)
	}
	r.resize()
	return r
}

// Canvas returns the canvas frames are drawn on.
func (r *Runner) Canvas() *draw.Canvas {
	return r.canvas
}

// Run loops until ctx is done, the player quits, the session idles out or
// the hub shuts it down. A running game is stopped on return.
// Presenter errors end the loop and are returned.
func (r *Runner) Run(ctx context.Context) error {
	var shutdown <-chan struct{}
	if r.hub != nil {
		id, notice := r.hub.register()
		defer r.hub.unregister(id)
		shutdown = notice
	}

	frames := r.game.clock.NewTicker(r.game.settings.FrameTime())
	defer frames.Stop()
	defer r.game.Stop()

	r.lastInput = r.game.clock.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-shutdown:
			shutdown = nil
			r.beginShutdown()
		case <-r.game.SpawnC():
			r.game.Spawn()
		case <-frames.C():
			done, err := r.Frame()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Frame runs one frame. It reports done when the run should end.
func (r *Runner) Frame() (done bool, err error) {
	now := r.game.clock.Now()
	in := r.term.Input.Read()

	if in.Quit {
		return true, nil
	}
	if in.Active {
		r.lastInput = now
	}

	r.resize()

	if !r.shutdownAt.IsZero() {
		remaining := r.shutdownAt.Sub(now)
		if remaining <= 0 {
			return true, nil
		}
		drawShutdownScreen(r.canvas, r.game, int(math.Ceil(remaining.Seconds())))
		return false, r.term.Display.Present(r.canvas)
	}

	if r.idleTimeout > 0 && now.Sub(r.lastInput) > r.idleTimeout {
		r.logger.Info("Closing idle session", "idle", now.Sub(r.lastInput).Round(time.Second), "score", r.game.Score())
		return true, nil
	}

	switch {
	case in.Start && !r.game.Running():
		r.game.Start()
		r.term.Input.ResetKeys()
	case in.Stop && r.game.Running():
		r.game.Stop()
	}

	r.game.SetControl(in.Control(r.canvas.ColumnToLogical))
	if r.game.Running() {
		r.game.Tick(r.canvas)
	} else {
		drawIdleScreen(r.canvas, r.game)
	}

	return false, r.term.Display.Present(r.canvas)
}

// beginShutdown stops play and starts the shutdown countdown.
func (r *Runner) beginShutdown() {
	r.game.Stop()
	r.shutdownAt = r.game.clock.Now().Add(shutdownDisplay)
}

// resize fits the canvas into the terminal, keeping the field's aspect ratio.
// A failed size query keeps the previous size.
func (r *Runner) resize() {
	w, h, err := r.term.Size()
	if err != nil || w <= 0 || h <= 0 {
		return
	}
	s := r.game.settings
	rw, rh, offCol, offRow := draw.FitAspect(w, h, s.Width, s.Height)
	r.canvas.Resize(rw, rh)
	r.canvas.SetOffset(offCol, offRow)
}
