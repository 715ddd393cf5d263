package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"

	"github.com/opd-ai/go-slingshot/pkg/logging"
)

const resampleQuality = 4

// opener decodes a track file.
type opener func(path string) (beep.StreamSeekCloser, beep.Format, error)

func openMP3(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	s, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, format, nil
}

// Music plays the playlist in the background. A finished track moves on
// to the next one. Tracks that fail to open are skipped with a warning.
type Music struct {
	mu       sync.Mutex
	dir      string
	playlist *Playlist
	sr       beep.SampleRate
	volume   float64
	out      *guardedSink
	open     opener
	logger   *logging.Logger

	stream beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	paused bool
	gen    int
}

func newMusic(dir string, playlist *Playlist, sr beep.SampleRate, volume float64, out *guardedSink, open opener, logger *logging.Logger) *Music {
	return &Music{
		dir:      dir,
		playlist: playlist,
		sr:       sr,
		volume:   volume,
		out:      out,
		open:     open,
		logger:   logger,
	}
}

// Start plays the current track.
func (m *Music) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playLocked(m.playlist.Current())
}

// Next skips to a different track and returns its name.
func (m *Music) Next() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	track := m.playlist.Next()
	m.playLocked(track)
	return track
}

// Toggle pauses or resumes the music and reports whether it now plays.
func (m *Music) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paused = !m.paused
	if m.ctrl != nil {
		ctrl, paused := m.ctrl, m.paused
		m.out.Do(func() { ctrl.Paused = paused })
	}
	return !m.paused
}

// Playing reports whether music is audible.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctrl != nil && !m.paused
}

// Track returns the current track name.
func (m *Music) Track() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playlist.Current()
}

// Stop halts and closes the current track.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Music) stopLocked() {
	if m.ctrl != nil {
		ctrl := m.ctrl
		m.out.Do(func() { ctrl.Streamer = nil })
		m.ctrl = nil
	}
	if m.stream != nil {
		m.stream.Close()
		m.stream = nil
	}
}

func (m *Music) playLocked(track string) {
	m.stopLocked()
	m.gen++
	if track == "" {
		return
	}

	path := filepath.Join(m.dir, track)
	stream, format, err := m.open(path)
	if err != nil {
		m.logger.Warn(context.Background(), "music track unavailable",
			"track", track,
			"error", logging.WrapError(err, "open music track").Error(),
		)
		return
	}

	var s beep.Streamer = stream
	if format.SampleRate != m.sr {
		s = beep.Resample(resampleQuality, format.SampleRate, m.sr, s)
	}
	gen := m.gen
	ctrl := &beep.Ctrl{
		Streamer: beep.Seq(withVolume(s, m.volume), beep.Callback(func() {
			// Runs on the output goroutine with the output locked.
			go m.advance(gen)
		})),
		Paused: m.paused,
	}
	if !m.out.Play(ctrl) {
		stream.Close()
		return
	}
	m.stream = stream
	m.ctrl = ctrl
}

// advance moves on after track gen ended, unless the user already skipped.
func (m *Music) advance(gen int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.playLocked(m.playlist.Next())
}
