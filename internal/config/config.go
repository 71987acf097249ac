package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalid is returned (wrapped) when settings cannot produce a playable game.
var ErrInvalid = errors.New("invalid settings")

// DefaultPath is the settings file read when COLORCATCH_CONFIG is unset.
const DefaultPath = "colorcatch.toml"

// Renderers understood by the local front end.
const (
	RendererTcell = "tcell"
	RendererANSI  = "ansi"
)

// Removal policy names.
const (
	RemovalCompact       = "compact"
	RemovalSpliceForward = "splice-forward"
)

// Loop limits. Faster ticks round FrameTime down to zero.
const (
	MaxFrameRate     = 1000
	MinSpawnInterval = time.Millisecond
)

// Settings holds every tunable game parameter.
// Zero values are never used directly; start from Default.
type Settings struct {
	// Logical play field. The canvas scales it onto the terminal.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	ObjectRadius float64 `toml:"object_radius"`
	PaddleRadius float64 `toml:"paddle_radius"`
	PaddleOffset float64 `toml:"paddle_offset"` // distance of the paddle center from the bottom edge

	SpeedMin float64 `toml:"speed_min"` // units per tick, inclusive
	SpeedMax float64 `toml:"speed_max"` // units per tick, exclusive
	KeyStep  float64 `toml:"key_step"`  // paddle units per tick while a key is held

	SpawnInterval time.Duration `toml:"spawn_interval"`
	FrameRate     int           `toml:"frame_rate"`
	IdleTimeout   time.Duration `toml:"idle_timeout"` // SSH sessions without input are closed after this; 0 disables

	HueSteps   int     `toml:"hue_steps"` // 0 = continuous hue
	Saturation float64 `toml:"saturation"`
	Lightness  float64 `toml:"lightness"`

	Removal  string `toml:"removal"`
	Renderer string `toml:"renderer"`
	Audio    bool   `toml:"audio"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		Width:         800,
		Height:        600,
		ObjectRadius:  20,
		PaddleRadius:  30,
		PaddleOffset:  50,
		SpeedMin:      1,
		SpeedMax:      3,
		KeyStep:       5,
		SpawnInterval: 500 * time.Millisecond,
		FrameRate:     60,
		IdleTimeout:   2 * time.Minute,
		HueSteps:      6,
		Saturation:    100,
		Lightness:     50,
		Removal:       RemovalCompact,
		Renderer:      RendererTcell,
		Audio:         true,
		LogLevel:      "info",
	}
}

// FrameTime returns the duration of one tick at the configured frame rate.
func (s Settings) FrameTime() time.Duration {
	return time.Second / time.Duration(s.FrameRate)
}

// Load builds settings from defaults, an optional .env file, an optional TOML
// file at path and COLORCATCH_* environment overrides, in that order.
// A missing .env or settings file is not an error.
func Load(path string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("load .env: %w", err)
	}

	s := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &s)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Settings{}, fmt.Errorf("decode %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Settings{}, fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalid, path, undecoded)
			}
		}
	}

	s.applyEnv()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) applyEnv() {
	s.Renderer = GetEnv("COLORCATCH_RENDERER", s.Renderer)
	s.Removal = GetEnv("COLORCATCH_REMOVAL", s.Removal)
	s.LogLevel = GetEnv("COLORCATCH_LOG_LEVEL", s.LogLevel)
	s.LogFile = GetEnv("COLORCATCH_LOG_FILE", s.LogFile)
	s.Audio = GetEnvBool("COLORCATCH_AUDIO", s.Audio)
}

// Validate rejects settings that cannot produce a playable field.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: field must be positive, got %vx%v", ErrInvalid, s.Width, s.Height)
	case s.ObjectRadius <= 0 || s.PaddleRadius <= 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalid)
	case 2*s.PaddleRadius > s.Width:
		return fmt.Errorf("%w: paddle diameter %v exceeds width %v", ErrInvalid, 2*s.PaddleRadius, s.Width)
	case s.PaddleOffset < 0 || s.PaddleOffset > s.Height:
		return fmt.Errorf("%w: paddle offset %v outside field height %v", ErrInvalid, s.PaddleOffset, s.Height)
	case s.SpeedMin <= 0 || s.SpeedMax <= s.SpeedMin:
		return fmt.Errorf("%w: speed range [%v, %v) is empty", ErrInvalid, s.SpeedMin, s.SpeedMax)
	case s.KeyStep < 0:
		return fmt.Errorf("%w: key step must not be negative", ErrInvalid)
	case s.SpawnInterval < MinSpawnInterval:
		return fmt.Errorf("%w: spawn interval %v below %v (use a unit, e.g. \"500ms\")", ErrInvalid, s.SpawnInterval, MinSpawnInterval)
	case s.FrameRate <= 0 || s.FrameRate > MaxFrameRate:
		return fmt.Errorf("%w: frame rate %d outside 1..%d", ErrInvalid, s.FrameRate, MaxFrameRate)
	case s.IdleTimeout < 0:
		return fmt.Errorf("%w: idle timeout must not be negative", ErrInvalid)
	case s.HueSteps < 0:
		return fmt.Errorf("%w: hue steps must not be negative", ErrInvalid)
	case s.Removal != "" && s.Removal != RemovalCompact && s.Removal != RemovalSpliceForward:
		return fmt.Errorf("%w: unknown removal policy %q", ErrInvalid, s.Removal)
	case s.Renderer != RendererTcell && s.Renderer != RendererANSI:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalid, s.Renderer)
	}
	return nil
}
