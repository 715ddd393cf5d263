// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// NullRenderer is an entity.Renderer that only logs what it is asked to
// draw. It backs headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a new NullRenderer with structured logging. A
// nil logger discards everything.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NullRenderer{
		logger: logger.Component("null_renderer"),
	}
}

// Frames returns how many frames have been presented.
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderStar implements entity.Renderer.
func (d *NullRenderer) RenderStar(star *entity.Star) {
	ctx := context.Background()
	if star == nil {
		d.logger.Debug(ctx, "RenderStar called with nil star")
		return
	}
	d.logger.Debug(ctx, "RenderStar called",
		"star_id", star.ID,
		"star_class", star.Type.Class,
	)
}

// RenderPlanet implements entity.Renderer.
func (d *NullRenderer) RenderPlanet(planet *entity.Planet) {
	ctx := context.Background()
	if planet == nil {
		d.logger.Debug(ctx, "RenderPlanet called with nil planet")
		return
	}
	d.logger.Debug(ctx, "RenderPlanet called",
		"planet_id", planet.ID,
		"x", planet.Position.X,
		"y", planet.Position.Y,
	)
}

// RenderAsteroid implements entity.Renderer.
func (d *NullRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	ctx := context.Background()
	if asteroid == nil {
		d.logger.Debug(ctx, "RenderAsteroid called with nil asteroid")
		return
	}
	d.logger.Debug(ctx, "RenderAsteroid called", "asteroid_id", asteroid.ID)
}
