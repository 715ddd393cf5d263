package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// Breaker settings for the audio output.
const (
	breakerName         = "audio-output"
	breakerTripFailures = 3
	breakerTimeout      = 30 * time.Second
)

// guardedSink runs every call to the output through a circuit breaker.
// After a few consecutive failures it stops touching the device until the
// breaker times out. Only the first failure is logged.
type guardedSink struct {
	sink     Sink
	breaker  *gobreaker.CircuitBreaker
	logger   *logging.Logger
	warnOnce sync.Once
}

func newGuardedSink(sink Sink, logger *logging.Logger) *guardedSink {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &guardedSink{
		sink:    sink,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Init opens the output. A failure is reported once and leaves the
// breaker counting it.
func (g *guardedSink) Init(sr beep.SampleRate) bool {
	return g.execute("audio init failed, continuing without sound", func() error {
		return g.sink.Init(sr)
	})
}

// Play starts s and reports whether it reached the output.
func (g *guardedSink) Play(s beep.Streamer) bool {
	return g.execute("audio playback failed, continuing without sound", func() error {
		return g.sink.Play(s)
	})
}

// Do runs f with the output locked.
func (g *guardedSink) Do(f func()) {
	g.sink.Do(f)
}

// State returns the breaker state.
func (g *guardedSink) State() gobreaker.State {
	return g.breaker.State()
}

func (g *guardedSink) execute(msg string, op func() error) bool {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, op()
	})
	if err != nil {
		g.warnOnce.Do(func() {
			g.logger.Warn(context.Background(), msg,
				"error", logging.WrapError(err, "audio output").Error(),
				"state", g.breaker.State().String(),
			)
		})
		return false
	}
	return true
}
