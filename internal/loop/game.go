// Package loop runs the game: the session state machine, the per-tick
// simulation and the frame loop that feeds it input and presents frames.
package loop

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/colorcatch/internal/audio"
	"github.com/tomz197/colorcatch/internal/config"
	"github.com/tomz197/colorcatch/internal/draw"
	"github.com/tomz197/colorcatch/internal/input"
	"github.com/tomz197/colorcatch/internal/object"
)

// Game owns the session and everything that changes it.
// It is not safe for concurrent use; the Runner drives it from one goroutine.
type Game struct {
	settings config.Settings
	removal  RemovalPolicy
	clock    Clock
	player   audio.Player
	logger   *log.Logger
	rng      *rand.Rand

	palette *object.Palette
	spawner *object.Spawner

	session *Session
	spawn   Ticker // Non-nil exactly while the session runs
	control input.Control
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source for positions, speeds and colors.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithClock sets the clock that creates the spawn ticker.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithPlayer sets the audio player for game cues.
func WithPlayer(p audio.Player) Option {
	return func(g *Game) { g.player = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// NewGame creates an idle game. Settings are validated.
func NewGame(settings config.Settings, opts ...Option) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	removal, err := ParseRemovalPolicy(settings.Removal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	g := &Game{
		settings: settings,
		removal:  removal,
		clock:    RealClock{},
		player:   audio.Nop{},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g.palette = object.NewPalette(settings.HueSteps, settings.Saturation, settings.Lightness, g.rng)
	g.spawner = object.NewSpawner(object.SpawnerConfig{
		Radius:   settings.ObjectRadius,
		SpeedMin: settings.SpeedMin,
		SpeedMax: settings.SpeedMax,
	}, g.palette, g.rng)

	return g, nil
}

// Settings returns the settings the game was created with.
func (g *Game) Settings() config.Settings {
	return g.settings
}

// Session returns the current or last session, nil before the first Start.
func (g *Game) Session() *Session {
	return g.session
}

// Running reports whether a session is in progress.
func (g *Game) Running() bool {
	return g.session != nil && g.session.Running
}

// Score returns the current or last session's score.
func (g *Game) Score() int {
	if g.session == nil {
		return 0
	}
	return g.session.Score
}

// Start begins a new session: score 0, no objects, a new target color and
// a centered paddle. The spawn ticker starts with it. Start while running does nothing.
func (g *Game) Start() {
	if g.Running() {
		return
	}

	s := g.settings
	g.session = &Session{
		Target:  g.palette.Random(),
		Running: true,
		Paddle:  object.NewPaddle(s.Width, s.Height, s.PaddleRadius, s.PaddleOffset, s.KeyStep),
	}
	g.spawn = g.clock.NewTicker(s.SpawnInterval)
	g.player.Play(audio.CueBackground)

	g.logger.Info("Game started", "target", g.session.Target, "removal", g.removal)
}

// Stop ends the session and its spawn ticker. Score and objects stay as
// they were. Stop while idle does nothing.
func (g *Game) Stop() {
	if !g.Running() {
		return
	}

	g.session.Running = false
	g.spawn.Stop()
	g.spawn = nil
	g.player.Stop(audio.CueBackground)

	g.logger.Info("Game stopped", "score", g.session.Score, "objects", len(g.session.Objects))
}

// SpawnC delivers spawn ticks while running. It returns nil while idle,
// so a select on it blocks.
func (g *Game) SpawnC() <-chan time.Time {
	if g.spawn == nil {
		return nil
	}
	return g.spawn.C()
}

// Spawn adds one object at the top edge. It returns nil while idle.
func (g *Game) Spawn() *object.FallingObject {
	if !g.Running() {
		return nil
	}
	o := g.spawner.Spawn(g.settings.Width)
	g.session.Objects = append(g.session.Objects, o)
	return o
}

// SetTarget changes the color that scores. Objects already falling are
// matched against the new target when they reach the paddle.
func (g *Game) SetTarget(c object.Color) {
	if g.session != nil {
		g.session.Target = c
	}
}

// SetControl records the steering applied at the end of the next tick.
func (g *Game) SetControl(c input.Control) {
	g.control = c
}

// outcome is what happened to one object during a tick.
type outcome int

const (
	outcomeKeep outcome = iota
	outcomeCaught
	outcomeMissed
	outcomeDropped
)

func (r *TickReport) add(o outcome) {
	switch o {
	case outcomeCaught:
		r.Caught++
	case outcomeMissed:
		r.Missed++
	case outcomeDropped:
		r.Dropped++
	}
}

// Tick advances a running session by one frame and draws it on surf.
// While idle it does nothing, not even clear the surface.
func (g *Game) Tick(surf draw.Surface) TickReport {
	var report TickReport
	if !g.Running() {
		return report
	}

	ctx := object.DrawContext{Surface: surf}
	surf.Clear()
	g.session.Paddle.Draw(ctx)

	switch g.removal {
	case RemovalSpliceForward:
		g.updateSpliceForward(ctx, &report)
	default:
		g.updateCompact(ctx, &report)
	}

	g.session.Paddle.Steer(g.control, g.settings.Width)
	g.drawHUD(ctx)

	return report
}

// updateCompact steps every object once and keeps the survivors.
func (g *Game) updateCompact(ctx object.DrawContext, report *TickReport) {
	objects := g.session.Objects
	kept := objects[:0] // reuse backing array
	for _, o := range objects {
		out := g.step(ctx, o)
		if out == outcomeKeep {
			kept = append(kept, o)
			continue
		}
		report.add(out)
	}
	clear(objects[len(kept):])
	g.session.Objects = kept
}

// updateSpliceForward deletes removed objects in place without revisiting
// their index, so the next object is skipped for this tick.
func (g *Game) updateSpliceForward(ctx object.DrawContext, report *TickReport) {
	objects := g.session.Objects
	for i := 0; i < len(objects); i++ {
		out := g.step(ctx, objects[i])
		if out == outcomeKeep {
			continue
		}
		report.add(out)
		objects = slices.Delete(objects, i, i+1)
	}
	g.session.Objects = objects
}

// step moves and draws one object, then resolves collision before the
// off-screen check so no object is removed twice.
func (g *Game) step(ctx object.DrawContext, o *object.FallingObject) outcome {
	o.Fall()
	o.Draw(ctx)

	if Collides(g.session.Paddle, o) {
		if o.Matches(g.session.Target) {
			g.session.Score++
			g.player.Play(audio.CueCatch)
			return outcomeCaught
		}
		g.session.Score--
		g.player.Play(audio.CueMiss)
		return outcomeMissed
	}
	if o.Below(g.settings.Height) {
		return outcomeDropped
	}
	return outcomeKeep
}

// Draw paints the session as it stands without advancing it.
// Used for the frozen frame behind the idle screen.
func (g *Game) Draw(surf draw.Surface) {
	surf.Clear()
	if g.session == nil {
		return
	}
	ctx := object.DrawContext{Surface: surf}
	g.session.Paddle.Draw(ctx)
	for _, o := range g.session.Objects {
		o.Draw(ctx)
	}
	g.drawHUD(ctx)
}
