package loop

import (
	"io"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/colorcatch/internal/audio"
	"github.com/tomz197/colorcatch/internal/config"
	"github.com/tomz197/colorcatch/internal/draw"
	"github.com/tomz197/colorcatch/internal/input"
)

// fakeClock hands out tickers that only fire when a test sends on them.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{period: d, ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

// live returns the unstopped tickers with the given period.
func (c *fakeClock) live(period time.Duration) []*fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTicker
	for _, t := range c.tickers {
		if t.period == period && !t.isStopped() {
			out = append(out, t)
		}
	}
	return out
}

// created returns how many tickers with the given period were made.
func (c *fakeClock) created(period time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if t.period == period {
			n++
		}
	}
	return n
}

type fakeTicker struct {
	period  time.Duration
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// recordingPlayer records cue calls.
type recordingPlayer struct {
	played  []audio.Cue
	stopped []audio.Cue
}

func (p *recordingPlayer) Play(c audio.Cue) { p.played = append(p.played, c) }
func (p *recordingPlayer) Stop(c audio.Cue) { p.stopped = append(p.stopped, c) }

func (p *recordingPlayer) count(c audio.Cue) int {
	n := 0
	for _, got := range p.played {
		if got == c {
			n++
		}
	}
	return n
}

// countingSurface counts draw calls.
type countingSurface struct {
	clears  int
	circles int
	rects   int
	texts   []string
}

func (s *countingSurface) Clear() {
	s.clears++
}

func (s *countingSurface) FillCircle(_, _, _ float64, _ draw.RGB) {
	s.circles++
}

func (s *countingSurface) FillRect(_, _, _, _ float64, _ draw.RGB) {
	s.rects++
}

func (s *countingSurface) Text(_, _ float64, str string, _ draw.RGB) {
	s.texts = append(s.texts, str)
}

func (s *countingSurface) LogicalWidth() float64  { return 800 }
func (s *countingSurface) LogicalHeight() float64 { return 600 }

func (s *countingSurface) work() int {
	return s.clears + s.circles + s.rects + len(s.texts)
}

// scriptedSource returns queued snapshots, then empty ones.
type scriptedSource struct {
	queue  []input.Input
	resets int
}

func (s *scriptedSource) Read() input.Input {
	if len(s.queue) == 0 {
		return input.Input{}
	}
	in := s.queue[0]
	s.queue = s.queue[1:]
	return in
}

func (s *scriptedSource) ResetKeys() { s.resets++ }

// recordingDisplay keeps the last presented cells.
type recordingDisplay struct {
	frames int
	last   []draw.Cell
	width  int
	err    error
	shown  chan struct{}
}

func (d *recordingDisplay) Present(c *draw.Canvas) error {
	d.frames++
	d.last = append(d.last[:0], c.Cells()...)
	d.width = c.TerminalWidth()
	if d.shown != nil {
		d.shown <- struct{}{}
	}
	return d.err
}

// row returns a presented row as a string.
func (d *recordingDisplay) row(r int) string {
	runes := make([]rune, d.width)
	for i := range runes {
		runes[i] = d.last[r*d.width+i].Ch
	}
	return string(runes)
}

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestGame builds a game with a fake clock and a recording player.
func newTestGame(t *testing.T, modify func(*config.Settings)) (*Game, *fakeClock, *recordingPlayer) {
	t.Helper()
	settings := config.Default()
	if modify != nil {
		modify(&settings)
	}
	clock := newFakeClock()
	player := &recordingPlayer{}
	g, err := NewGame(settings,
		WithClock(clock),
		WithPlayer(player),
		WithRand(rand.New(rand.NewSource(1))),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return g, clock, player
}
