// Package audio plays sound cues for game events and background music.
// Audio is optional: every failure degrades to silence and a single
// warning, and nothing here ever blocks a simulation step.
package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrNotInitialized is returned when playing before Init succeeded.
var ErrNotInitialized = errors.New("audio output not initialized")

// Sink is an audio output.
type Sink interface {
	// Init opens the output at the given sample rate.
	Init(sr beep.SampleRate) error
	// Play starts s; it is mixed with anything already playing.
	Play(s beep.Streamer) error
	// Do runs f while the output is not reading any streamer.
	Do(f func())
}

// SpeakerSink plays through the default audio device.
type SpeakerSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerSink creates an uninitialized speaker output.
func NewSpeakerSink() *SpeakerSink {
	return &SpeakerSink{mixer: &beep.Mixer{}}
}

// Init sets up the speaker with a 100ms buffer.
func (s *SpeakerSink) Init(sr beep.SampleRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play implements Sink.
func (s *SpeakerSink) Play(st beep.Streamer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
	return nil
}

// Do implements Sink.
func (s *SpeakerSink) Do(f func()) {
	speaker.Lock()
	defer speaker.Unlock()
	f()
}

// Close stops all sound and releases the device.
func (s *SpeakerSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}
