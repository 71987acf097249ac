// Package synth plays the game's cues on the local audio device with beep.
//
// It needs a speaker backend, so only the local front end imports it.
package synth

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/colorcatch/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// cueSound describes how a cue sounds. A zero Length plays until stopped.
type cueSound struct {
	Voice  voice
	Length time.Duration
}

var cueSounds = map[audio.Cue]cueSound{
	audio.CueBackground: {
		Voice: Pulse{BPM: 100, Kick: 100 * time.Millisecond, KickFreq: 60, Sweep: 2, BassFreq: 110, Gain: 0.25},
	},
	audio.CueCatch: {
		Voice:  Sine{Freq: 880},
		Length: 80 * time.Millisecond,
	},
	audio.CueMiss: {
		Voice:  Tone{Freq: 120, Partials: []float64{1, 0.5, 0.25}, Attack: 20 * time.Millisecond, Gain: 0.15},
		Length: 150 * time.Millisecond,
	},
}

// SoundManager mixes cues onto the speaker.
// Each cue owns one control; playing a cue again cuts the previous instance.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	playing     map[audio.Cue]*beep.Ctrl
	initialized bool
	logger      *log.Logger
}

// NewSoundManager creates a sound manager. Call Initialize before playing.
func NewSoundManager(logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		mixer:   &beep.Mixer{},
		playing: make(map[audio.Cue]*beep.Ctrl),
		logger:  logger,
	}
}

// Initialize opens the speaker. On failure the manager stays silent;
// the error is returned only so callers can log it.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play starts c from the beginning.
func (sm *SoundManager) Play(c audio.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer, err := newCueStreamer(c)
	if err != nil {
		sm.logger.Debug("Cannot play cue", "cue", c, "err", err)
		return
	}

	ctrl := &beep.Ctrl{Streamer: streamer}
	speaker.Lock()
	if prev := sm.playing[c]; prev != nil {
		prev.Paused = true
		prev.Streamer = nil
	}
	sm.mixer.Add(ctrl)
	speaker.Unlock()
	sm.playing[c] = ctrl
}

// Stop silences c and rewinds it, so the next Play starts over.
func (sm *SoundManager) Stop(c audio.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctrl := sm.playing[c]
	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Paused = true
	ctrl.Streamer = nil
	speaker.Unlock()
	delete(sm.playing, c)
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	clear(sm.playing)
	speaker.Close()
	sm.initialized = false
}

var _ audio.Player = (*SoundManager)(nil)

// newCueStreamer builds a fresh streamer positioned at the start of c.
func newCueStreamer(c audio.Cue) (beep.Streamer, error) {
	sound, ok := cueSounds[c]
	if !ok {
		return nil, fmt.Errorf("no sound for cue %v", c)
	}
	s, err := sound.Voice.streamer(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%v voice: %w", c, err)
	}
	if sound.Length > 0 {
		s = beep.Take(sampleRate.N(sound.Length), s)
	}
	return s, nil
}
