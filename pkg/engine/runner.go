// pkg/engine/runner.go
package engine

import (
	"context"
	"time"

	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// FrameFunc is called after every step with the events it produced.
type FrameFunc func(state *GameState, events []event.Event)

// Runner drives a Game at a fixed frame rate. Each frame advances the
// simulation by exactly one step of the configured time step, whatever the
// real time between frames.
type Runner struct {
	game     *Game
	interval time.Duration
	onFrame  FrameFunc
	logger   *logging.Logger
}

// NewRunner creates a runner stepping game frameRate times per second.
// onFrame may be nil.
func NewRunner(game *Game, frameRate int, onFrame FrameFunc, logger *logging.Logger) *Runner {
	if frameRate <= 0 {
		frameRate = 60
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Runner{
		game:     game,
		interval: time.Second / time.Duration(frameRate),
		onFrame:  onFrame,
		logger:   logger.Component("runner"),
	}
}

// Run steps the game until ctx is cancelled and returns ctx's error.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info(ctx, "simulation started", "interval", r.interval.String())
	for {
		select {
		case <-ctx.Done():
			r.logger.Info(ctx, "simulation stopped",
				"tick", r.game.GetGameState().Tick,
				"reason", ctx.Err().Error(),
			)
			return ctx.Err()
		case <-ticker.C:
			events := r.game.Step()
			if r.onFrame != nil {
				r.onFrame(r.game.GetGameState(), events)
			}
		}
	}
}
