package synth

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/tomz197/colorcatch/internal/audio"
)

// TestSoundManagerWithoutInit verifies calls are safe when no device was opened
func TestSoundManagerWithoutInit(t *testing.T) {
	sm := NewSoundManager(log.New(&bytes.Buffer{}))

	sm.Play(audio.CueBackground)
	sm.Play(audio.CueCatch)
	sm.Stop(audio.CueBackground)
	sm.Stop(audio.CueMiss)
	sm.Cleanup()

	if len(sm.playing) != 0 {
		t.Errorf("expected nothing playing, got %d cues", len(sm.playing))
	}
}

func TestNewSoundManagerNilLogger(t *testing.T) {
	if sm := NewSoundManager(nil); sm.logger == nil {
		t.Error("expected default logger")
	}
}

// TestOneShotCuesEnd verifies catch and miss streamers stop after their length
func TestOneShotCuesEnd(t *testing.T) {
	for _, c := range []audio.Cue{audio.CueCatch, audio.CueMiss} {
		t.Run(c.String(), func(t *testing.T) {
			want := sampleRate.N(cueSounds[c].Length)
			if want == 0 {
				t.Fatal("one-shot cue has no length")
			}
			s, err := newCueStreamer(c)
			if err != nil {
				t.Fatal(err)
			}
			if got := drain(s, want*2); got != want {
				t.Errorf("streamed %d samples, want %d", got, want)
			}
		})
	}
}

func TestBackgroundCueIsEndless(t *testing.T) {
	s, err := newCueStreamer(audio.CueBackground)
	if err != nil {
		t.Fatal(err)
	}
	want := sampleRate.N(3 * time.Second)
	if got := drain(s, want); got != want {
		t.Errorf("background stopped after %d samples, want at least %d", got, want)
	}
}

func TestUnknownCueHasNoStreamer(t *testing.T) {
	if _, err := newCueStreamer(audio.Cue(42)); err == nil {
		t.Error("expected an error for an unknown cue")
	}
}

// TestVoicesPeakAtGain verifies samples stay within each voice's gain
func TestVoicesPeakAtGain(t *testing.T) {
	tests := []struct {
		name  string
		voice voice
		peak  float64
	}{
		{"sine", Sine{Freq: 440}, 1},
		{"tone", Tone{Freq: 120, Partials: []float64{1, 0.5, 0.25}, Attack: 20 * time.Millisecond, Gain: 0.15}, 0.15},
		{"tone without partials", Tone{Freq: 200, Gain: 0.5}, 0.5},
		{"pulse", Pulse{BPM: 140, Kick: 80 * time.Millisecond, KickFreq: 50, Sweep: 3, BassFreq: 55, Gain: 0.4}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.voice.streamer(sampleRate)
			if err != nil {
				t.Fatal(err)
			}
			samples := make([][2]float64, sampleRate.N(time.Second))
			n, ok := s.Stream(samples)
			if !ok || n != len(samples) {
				t.Fatalf("Stream() = %d, %v", n, ok)
			}
			for i := 0; i < n; i++ {
				for ch := 0; ch < 2; ch++ {
					if v := samples[i][ch]; v < -tt.peak-1e-9 || v > tt.peak+1e-9 {
						t.Fatalf("sample %d channel %d = %f exceeds %f", i, ch, v, tt.peak)
					}
				}
			}
			if s.Err() != nil {
				t.Errorf("unexpected error: %v", s.Err())
			}
		})
	}
}

func TestToneAttackRamps(t *testing.T) {
	s, _ := Tone{Freq: 100, Partials: []float64{1}, Attack: 10 * time.Millisecond, Gain: 1}.streamer(sampleRate)
	samples := make([][2]float64, 2)
	s.Stream(samples)
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, want silence at the start of the attack", samples[0][0])
	}
}

// TestPulseTempo verifies the kick restarts once per beat
func TestPulseTempo(t *testing.T) {
	p := Pulse{BPM: 120, Kick: 50 * time.Millisecond, KickFreq: 60, Sweep: 2, Gain: 1}
	s, _ := p.streamer(sampleRate)
	ps := s.(*pulseStreamer)
	if want := sampleRate.N(500 * time.Millisecond); ps.beat != want {
		t.Fatalf("beat = %d samples, want %d", ps.beat, want)
	}

	// With no bass, everything after the kick inside a beat is silence.
	samples := make([][2]float64, ps.beat*2)
	s.Stream(samples)
	for _, i := range []int{ps.kick + 1, ps.beat - 1, ps.beat + ps.kick + 1} {
		if samples[i][0] != 0 {
			t.Errorf("sample %d = %f, want silence between kicks", i, samples[i][0])
		}
	}
	if samples[ps.beat+ps.kick/4][0] == 0 {
		t.Error("second beat has no kick")
	}
}

// drain streams up to limit samples and returns how many were produced.
func drain(s beep.Streamer, limit int) int {
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf[:min(len(buf), limit-total)])
		total += n
		if !ok {
			break
		}
	}
	return total
}
