package audio

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

const testRate = beep.SampleRate(44100)

type fakeSink struct {
	mu      sync.Mutex
	initErr error
	playErr error
	inits   int
	calls   int
	streams []beep.Streamer
}

func (f *fakeSink) Init(sr beep.SampleRate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits++
	return f.initErr
}

func (f *fakeSink) Play(s beep.Streamer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.playErr != nil {
		return f.playErr
	}
	f.streams = append(f.streams, s)
	return nil
}

func (f *fakeSink) Do(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func (f *fakeSink) played() []beep.Streamer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]beep.Streamer(nil), f.streams...)
}

type fakeTrack struct {
	beep.StreamSeeker
	closed bool
}

func (t *fakeTrack) Close() error {
	t.closed = true
	return nil
}

// trackOpener serves silent tracks of n samples and remembers them by path.
type trackOpener struct {
	mu      sync.Mutex
	n       int
	opened  map[string][]*fakeTrack
	missing map[string]bool
}

func newTrackOpener(n int) *trackOpener {
	return &trackOpener{n: n, opened: make(map[string][]*fakeTrack), missing: make(map[string]bool)}
}

func (o *trackOpener) open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.missing[path] {
		return nil, beep.Format{}, errors.New("no such file")
	}
	format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Silence(o.n))
	t := &fakeTrack{StreamSeeker: buf.Streamer(0, buf.Len())}
	o.opened[path] = append(o.opened[path], t)
	return t, format, nil
}

func testAudioConfig() config.AudioConfig {
	cfg := config.DefaultConfig().Audio
	cfg.MusicDir = "music"
	return cfg
}

func newTestManager(t *testing.T, sink Sink, opener *trackOpener, w *bytes.Buffer) *Manager {
	t.Helper()
	var logger *logging.Logger
	if w != nil {
		logger = logging.NewLoggerWithWriter(w)
	}
	m := NewManager(testAudioConfig(), sink, rand.New(rand.NewPCG(1, 2)), logger)
	if opener != nil {
		m.music.open = opener.open
	}
	return m
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		for _, smp := range buf[:n] {
			if smp[0] < -2 || smp[0] > 2 {
				t.Fatalf("sample out of range: %f", smp[0])
			}
		}
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never ended")
	return 0
}

func TestCueFor(t *testing.T) {
	pos := physics.Vector2D{X: 1, Y: 2}
	tests := []struct {
		name string
		ev   event.Event
		want Cue
	}{
		{"launch", event.NewPlanetLaunched(nil, 1, pos), CueLaunch},
		{"sun", event.NewPlanetRemoved(nil, 1, pos, event.CauseSun), CueSunCrash},
		{"planet", event.NewPlanetRemoved(nil, 1, pos, event.CausePlanet), CueCrash},
		{"asteroid", event.NewPlanetRemoved(nil, 1, pos, event.CauseAsteroid), CueCrash},
		{"orbit", event.NewOrbitCompleted(nil, 1, 500, 3), CueOrbit},
		{"threading", event.NewScoreDelta(nil, 1200, event.ReasonThreading), CueThreading},
		{"penalty", event.NewScoreDelta(nil, -250, event.ReasonAsteroidCollision), CueNone},
		{"reset", event.NewGameReset(nil), CueNone},
		{"popup", event.NewPopupRequest(nil, pos, "x", 1), CueNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CueFor(tt.ev); got != tt.want {
				t.Errorf("CueFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCueStreamerLength(t *testing.T) {
	ms := func(d int) int { return testRate.N(time.Duration(d) * time.Millisecond) }
	tests := []struct {
		cue  Cue
		want int
	}{
		{CueLaunch, ms(40) + ms(40) + ms(60)},
		{CueOrbit, ms(90) + ms(90) + ms(180)},
		{CueThreading, ms(60) + ms(90)},
		{CueCrash, ms(300)},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			if got := drain(t, tt.cue.Streamer(testRate)); got != tt.want {
				t.Errorf("streamed %d samples, want %d", got, tt.want)
			}
		})
	}

	t.Run("sun_crash", func(t *testing.T) {
		if got := drain(t, CueSunCrash.Streamer(testRate)); got < ms(500) {
			t.Errorf("streamed %d samples, want at least %d", got, ms(500))
		}
	})

	if CueNone.Streamer(testRate) != nil {
		t.Error("CueNone should not produce a streamer")
	}
}

func TestEnvelopeFades(t *testing.T) {
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	env := newEnvelope(src, 100, 10)
	buf := make([][2]float64, 200)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d samples, want 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", buf[0][0])
	}
	if buf[10][0] != 1 {
		t.Errorf("sample after attack = %f, want 1", buf[10][0])
	}
	if buf[99][0] >= buf[50][0] {
		t.Errorf("release should fade: %f >= %f", buf[99][0], buf[50][0])
	}
	if _, ok := env.Stream(buf); ok {
		t.Error("envelope should end after its length")
	}
}

func TestPlaylistNeverRepeats(t *testing.T) {
	p := NewPlaylist([]string{"a.mp3", "b.mp3", "c.mp3"}, rand.New(rand.NewPCG(3, 4)))
	prev := p.Current()
	seen := map[string]bool{prev: true}
	for i := 0; i < 100; i++ {
		next := p.Next()
		if next == prev {
			t.Fatalf("Next() repeated %q", next)
		}
		seen[next] = true
		prev = next
	}
	if len(seen) != 3 {
		t.Errorf("visited %d tracks, want 3", len(seen))
	}
}

func TestPlaylistEdgeCases(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	single := NewPlaylist([]string{"only.mp3"}, rng)
	if got := single.Next(); got != "only.mp3" {
		t.Errorf("single Next() = %q", got)
	}

	empty := NewPlaylist(nil, rng)
	if empty.Current() != "" || empty.Next() != "" || empty.Len() != 0 {
		t.Error("empty playlist should yield no tracks")
	}
}

func TestGuardedSinkTripsAndWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	sink := &fakeSink{playErr: errors.New("device gone")}
	g := newGuardedSink(sink, logging.NewLoggerWithWriter(&buf))

	for i := 0; i < 10; i++ {
		if g.Play(beep.Silence(1)) {
			t.Fatal("Play should fail")
		}
	}

	if sink.calls != breakerTripFailures {
		t.Errorf("sink called %d times, want %d", sink.calls, breakerTripFailures)
	}
	if g.State() != gobreaker.StateOpen {
		t.Errorf("breaker state = %v, want open", g.State())
	}
	if n := strings.Count(buf.String(), "audio playback failed"); n != 1 {
		t.Errorf("warning logged %d times, want 1", n)
	}
}

func TestManagerDisabled(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(t, sink, newTrackOpener(10), nil)
	m.cfg.Enabled = false

	if m.Start(context.Background()) {
		t.Fatal("Start should report disabled audio")
	}
	m.Handle(event.NewOrbitCompleted(nil, 1, 100, 1))
	if sink.inits != 0 || len(sink.played()) != 0 {
		t.Error("disabled audio must not touch the sink")
	}
	if m.TrackName() != "" || m.NextTrack() != "" || m.ToggleMusic() {
		t.Error("music controls should be inert when disabled")
	}
}

func TestManagerInitFailure(t *testing.T) {
	var buf bytes.Buffer
	sink := &fakeSink{initErr: errors.New("no device")}
	m := newTestManager(t, sink, newTrackOpener(10), &buf)

	if m.Start(context.Background()) {
		t.Fatal("Start should fail without a device")
	}
	m.Handle(event.NewPlanetLaunched(nil, 1, physics.Vector2D{}))
	if len(sink.played()) != 0 {
		t.Error("cues should be ignored after a failed init")
	}
	if !strings.Contains(buf.String(), "audio init failed") {
		t.Errorf("expected init warning, got %q", buf.String())
	}
}

func TestManagerPlaysCues(t *testing.T) {
	sink := &fakeSink{}
	opener := newTrackOpener(testRate.N(time.Second))
	m := newTestManager(t, sink, opener, nil)
	bus := event.NewEventBus()
	detach := m.Attach(bus)
	defer detach()

	ctx, cancel := context.WithCancel(context.Background())
	if !m.Start(ctx) {
		t.Fatal("Start failed")
	}

	// music is the first stream
	waitFor(t, "music", func() bool { return len(sink.played()) == 1 })

	bus.Publish(event.NewOrbitCompleted(nil, 1, 500, 2))
	bus.Publish(event.NewScoreDelta(nil, -500, event.ReasonPlanetCollision))
	waitFor(t, "orbit cue", func() bool { return len(sink.played()) == 2 })

	cancel()
	m.Wait()

	opener.mu.Lock()
	defer opener.mu.Unlock()
	for _, tracks := range opener.opened {
		for _, tr := range tracks {
			if !tr.closed {
				t.Error("music track should be closed on shutdown")
			}
		}
	}
}

func TestManagerMusicControls(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(t, sink, newTrackOpener(testRate.N(time.Second)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		m.Wait()
	}()
	if !m.Start(ctx) {
		t.Fatal("Start failed")
	}

	first := m.TrackName()
	if first == "" {
		t.Fatal("expected a current track")
	}
	if !m.MusicPlaying() {
		t.Fatal("music should be playing after Start")
	}

	ctrl, ok := sink.played()[0].(*beep.Ctrl)
	if !ok {
		t.Fatalf("music stream is %T, want *beep.Ctrl", sink.played()[0])
	}
	if m.ToggleMusic() {
		t.Error("first toggle should pause")
	}
	sink.Do(func() {
		if !ctrl.Paused {
			t.Error("ctrl should be paused")
		}
	})
	if !m.ToggleMusic() {
		t.Error("second toggle should resume")
	}

	next := m.NextTrack()
	if next == first {
		t.Errorf("NextTrack repeated %q", next)
	}
	if m.TrackName() != next {
		t.Errorf("TrackName() = %q, want %q", m.TrackName(), next)
	}
	if len(sink.played()) != 2 {
		t.Errorf("expected the next track to start, got %d streams", len(sink.played()))
	}
	sink.Do(func() {
		if ctrl.Streamer != nil {
			t.Error("previous track should be detached")
		}
	})
}

func TestMusicMissingTrack(t *testing.T) {
	var buf bytes.Buffer
	sink := &fakeSink{}
	opener := newTrackOpener(10)
	logger := logging.NewLoggerWithWriter(&buf)
	out := newGuardedSink(sink, logger)
	playlist := NewPlaylist([]string{"gone.mp3"}, rand.New(rand.NewPCG(1, 1)))
	opener.missing["music/gone.mp3"] = true

	music := newMusic("music", playlist, testRate, 0, out, opener.open, logger)
	music.Start()

	if music.Playing() {
		t.Error("a missing track should not play")
	}
	if len(sink.played()) != 0 {
		t.Error("nothing should reach the sink")
	}
	if !strings.Contains(buf.String(), "music track unavailable") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestMusicAdvancesAtTrackEnd(t *testing.T) {
	sink := &fakeSink{}
	opener := newTrackOpener(100)
	out := newGuardedSink(sink, logging.NewDiscardLogger())
	playlist := NewPlaylist([]string{"a.mp3", "b.mp3"}, rand.New(rand.NewPCG(5, 6)))
	music := newMusic("music", playlist, testRate, 0, out, opener.open, logging.NewDiscardLogger())

	music.Start()
	first := music.Track()
	s := sink.played()[0]

	// play the whole track the way the output would
	sink.Do(func() {
		buf := make([][2]float64, 512)
		for i := 0; i < 10; i++ {
			if _, ok := s.Stream(buf); !ok {
				break
			}
		}
	})

	waitFor(t, "next track", func() bool { return len(sink.played()) == 2 })
	if music.Track() == first {
		t.Errorf("track did not advance from %q", first)
	}
	music.Stop()
}
