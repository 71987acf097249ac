package object

import "math/rand"

// SpawnerConfig sets the shape of spawned objects.
type SpawnerConfig struct {
	Radius   float64
	SpeedMin float64 // Inclusive
	SpeedMax float64 // Exclusive
}

// Spawner creates falling objects at random positions along the top edge.
type Spawner struct {
	cfg     SpawnerConfig
	palette *Palette
	rng     *rand.Rand
}

// NewSpawner creates a spawner drawing colors from palette.
func NewSpawner(cfg SpawnerConfig, palette *Palette, rng *rand.Rand) *Spawner {
	return &Spawner{cfg: cfg, palette: palette, rng: rng}
}

// Spawn creates one object at Y = 0 with X in [0, width).
func (s *Spawner) Spawn(width float64) *FallingObject {
	return &FallingObject{
		X:      s.rng.Float64() * width,
		Y:      0,
		Radius: s.cfg.Radius,
		Speed:  s.cfg.SpeedMin + s.rng.Float64()*(s.cfg.SpeedMax-s.cfg.SpeedMin),
		Color:  s.palette.Random(),
	}
}
