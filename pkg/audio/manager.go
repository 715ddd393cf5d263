package audio

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/gopxl/beep"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// cueQueueSize bounds pending cues; extra cues are dropped.
const cueQueueSize = 32

// Manager turns game events into sound. Handle never blocks: cues are
// queued for a worker goroutine and dropped when the queue is full.
type Manager struct {
	cfg    config.AudioConfig
	sr     beep.SampleRate
	out    *guardedSink
	music  *Music
	cues   chan Cue
	logger *logging.Logger

	mu      sync.Mutex
	started bool
	ready   bool
	wg      sync.WaitGroup
}

// NewManager wires an output sink to a playlist from cfg.
func NewManager(cfg config.AudioConfig, sink Sink, rng *rand.Rand, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	logger = logger.Component("audio")
	sr := beep.SampleRate(cfg.SampleRate)
	out := newGuardedSink(sink, logger)
	return &Manager{
		cfg:    cfg,
		sr:     sr,
		out:    out,
		music:  newMusic(cfg.MusicDir, NewPlaylist(cfg.Tracks, rng), sr, cfg.Volume, out, openMP3, logger),
		cues:   make(chan Cue, cueQueueSize),
		logger: logger,
	}
}

// Start opens the output and runs the cue worker until ctx is done. It
// returns false when audio is disabled or the output could not be opened.
func (m *Manager) Start(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.Enabled || m.started {
		return m.ready
	}
	m.started = true
	if !m.out.Init(m.sr) {
		return false
	}
	m.ready = true

	m.wg.Add(1)
	go m.run(ctx)
	m.music.Start()

	m.logger.Info(ctx, "audio started",
		"sampleRate", int(m.sr),
		"track", m.music.Track(),
	)
	return true
}

// Wait blocks until the cue worker has exited.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()
	defer m.music.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-m.cues:
			m.play(c)
		}
	}
}

func (m *Manager) play(c Cue) {
	s := c.Streamer(m.sr)
	if s == nil {
		return
	}
	m.out.Play(withVolume(s, m.cfg.Volume))
}

// Attach subscribes to the events that have cues.
func (m *Manager) Attach(bus *event.Bus) func() {
	return bus.SubscribeAll(m.Handle,
		event.PlanetLaunched,
		event.PlanetRemoved,
		event.OrbitCompleted,
		event.ScoreChanged,
	)
}

// Handle queues the cue for e, if any.
func (m *Manager) Handle(e event.Event) {
	c := CueFor(e)
	if c == CueNone || !m.isReady() {
		return
	}
	select {
	case m.cues <- c:
	default:
		m.logger.Debug(context.Background(), "cue dropped", "cue", c.String())
	}
}

func (m *Manager) isReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// ToggleMusic pauses or resumes music and reports whether it now plays.
func (m *Manager) ToggleMusic() bool {
	if !m.isReady() {
		return false
	}
	return m.music.Toggle()
}

// NextTrack skips to another track and returns its name.
func (m *Manager) NextTrack() string {
	if !m.isReady() {
		return ""
	}
	return m.music.Next()
}

// TrackName returns the current track, or "" when audio is off.
func (m *Manager) TrackName() string {
	if !m.isReady() {
		return ""
	}
	return m.music.Track()
}

// MusicPlaying reports whether background music is audible.
func (m *Manager) MusicPlaying() bool {
	return m.isReady() && m.music.Playing()
}
