package synth

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// voice builds a fresh streamer for one playback.
type voice interface {
	streamer(sr beep.SampleRate) (beep.Streamer, error)
}

// Sine is a plain sine at Freq Hz.
type Sine struct {
	Freq float64
}

func (s Sine) streamer(sr beep.SampleRate) (beep.Streamer, error) {
	return generators.SineTone(sr, s.Freq)
}

// Tone is a fundamental at Freq Hz plus overtones. Partials[i] is the
// relative level of harmonic i+1. Output peaks at Gain.
type Tone struct {
	Freq     float64
	Partials []float64
	Attack   time.Duration
	Gain     float64
}

func (t Tone) streamer(sr beep.SampleRate) (beep.Streamer, error) {
	total := 0.0
	for _, p := range t.Partials {
		total += math.Abs(p)
	}
	if total == 0 {
		total = 1
	}
	return &toneStreamer{
		tone:   t,
		step:   2 * math.Pi * t.Freq / float64(sr),
		attack: sr.N(t.Attack),
		norm:   t.Gain / total,
	}, nil
}

type toneStreamer struct {
	tone   Tone
	step   float64 // fundamental phase advance per sample
	attack int
	norm   float64
	phase  float64
	pos    int
}

func (s *toneStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := 0.0
		for h, level := range s.tone.Partials {
			v += level * math.Sin(float64(h+1)*s.phase)
		}
		v *= s.norm * ramp(s.pos, s.attack)

		samples[i][0], samples[i][1] = v, v
		s.phase = math.Mod(s.phase+s.step, 2*math.Pi)
		s.pos++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return nil }

// Pulse is an endless loop of a pitch-dropping kick on every beat over a
// steady bass note.
type Pulse struct {
	BPM      float64
	Kick     time.Duration // kick length within each beat
	KickFreq float64       // kick pitch at its tail; the attack starts Sweep times higher
	Sweep    float64
	BassFreq float64
	Gain     float64
}

func (p Pulse) streamer(sr beep.SampleRate) (beep.Streamer, error) {
	beat := int(float64(sr) * 60 / p.BPM)
	return &pulseStreamer{
		pulse: p,
		rate:  float64(sr),
		beat:  max(beat, 1),
		kick:  min(sr.N(p.Kick), beat),
	}, nil
}

type pulseStreamer struct {
	pulse      Pulse
	rate       float64
	beat, kick int
	pos        int
	kickPhase  float64
	bassPhase  float64
}

func (s *pulseStreamer) Stream(samples [][2]float64) (int, bool) {
	p := s.pulse
	for i := range samples {
		at := s.pos % s.beat
		if at == 0 {
			s.kickPhase = 0
		}

		kick := 0.0
		if at < s.kick {
			env := 1 - float64(at)/float64(s.kick)
			s.kickPhase += 2 * math.Pi * p.KickFreq * (1 + p.Sweep*env) / s.rate
			kick = env * math.Sin(s.kickPhase)
		}
		s.bassPhase = math.Mod(s.bassPhase+2*math.Pi*p.BassFreq/s.rate, 2*math.Pi)

		v := p.Gain * (kick + math.Sin(s.bassPhase)) / 2
		samples[i][0], samples[i][1] = v, v
		s.pos = (s.pos + 1) % s.beat
	}
	return len(samples), true
}

func (s *pulseStreamer) Err() error { return nil }

// ramp is a linear fade-in over n samples.
func ramp(pos, n int) float64 {
	if n <= 0 || pos >= n {
		return 1
	}
	return float64(pos) / float64(n)
}
