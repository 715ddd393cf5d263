// pkg/engine/state.go
package engine

import (
	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/entity"
)

// GameState represents a snapshot of the game state. Entities are copied,
// so the snapshot stays valid while the simulation keeps running.
type GameState struct {
	Tick            uint64
	Score           int
	OrbitsCompleted int
	Field           config.FieldConfig
	Star            entity.Star
	Planets         []entity.Planet
	Asteroids       []entity.Asteroid
	Preview         entity.PlanetTemplate
}

// GetGameState returns a snapshot of the current game state
func (g *Game) GetGameState() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds and returns the complete game state.
func (g *Game) createGameStateSnapshot() *GameState {
	return &GameState{
		Tick:            g.CurrentTick,
		Score:           g.Score,
		OrbitsCompleted: g.OrbitsCompleted,
		Field:           g.Config.Field,
		Star:            *g.Star,
		Planets:         g.getPlanetStates(),
		Asteroids:       g.getAsteroidStates(),
		Preview:         g.preview,
	}
}

// getPlanetStates copies the live planets.
func (g *Game) getPlanetStates() []entity.Planet {
	states := make([]entity.Planet, len(g.Planets))
	for i, p := range g.Planets {
		states[i] = *p
	}
	return states
}

// getAsteroidStates copies the belt. Outlines never change after spawn and
// are shared with the live asteroids.
func (g *Game) getAsteroidStates() []entity.Asteroid {
	states := make([]entity.Asteroid, len(g.Asteroids))
	for i, a := range g.Asteroids {
		states[i] = *a
	}
	return states
}

// Render draws the snapshot with r, back to front.
func (s *GameState) Render(r entity.Renderer) {
	r.Clear()
	s.Star.Render(r)
	for i := range s.Asteroids {
		s.Asteroids[i].Render(r)
	}
	for i := range s.Planets {
		s.Planets[i].Render(r)
	}
	r.Present()
}
