// pkg/engine/game.go
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/opd-ai/go-slingshot/pkg/belt"
	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/orbit"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/threading"
	"github.com/opd-ai/go-slingshot/pkg/validation"
)

// ErrInvalidLaunch is returned when a launch command cannot be simulated.
var ErrInvalidLaunch = errors.New("invalid launch")

// Popup placement relative to the body it describes.
const popupLift = 20

// Game owns the whole simulation state of one session.
type Game struct {
	Config          *config.GameConfig
	Star            *entity.Star
	Planets         []*entity.Planet
	Asteroids       []*entity.Asteroid
	Score           int
	OrbitsCompleted int
	CurrentTick     uint64
	EntityLock      sync.RWMutex
	EventBus        *event.Bus

	orbitRules orbit.Rules
	detector   *threading.Detector
	belt       *belt.Controller
	rng        *rand.Rand
	preview    entity.PlanetTemplate
}

// LaunchCommand is a completed drag-and-release gesture. A nil Template
// launches the current preview.
type LaunchCommand struct {
	Origin   physics.Vector2D
	Velocity physics.Vector2D
	Template *entity.PlanetTemplate
}

// NewGame creates a session: a star at the field center, a full belt and
// a first planet preview. The config is expected to be valid.
func NewGame(cfg *config.GameConfig) *Game {
	seed := cfg.Runtime.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))

	game := &Game{
		Config:     cfg,
		EventBus:   event.NewEventBus(),
		orbitRules: cfg.Scoring.OrbitRules(),
		detector:   threading.NewDetector(cfg.Scoring.ThreadingRules()),
		belt:       belt.NewController(cfg.Belt.Settings(), cfg.Field.Width, cfg.Field.Height, rng),
		rng:        rng,
	}

	game.initStar()
	game.Asteroids = game.belt.Refill(nil)
	game.preview = entity.GenerateTemplate(rng)

	return game
}

// initStar places the session's star, honoring a configured class.
func (g *Game) initStar() {
	starType, ok := entity.StarTypeByClass(g.Config.Runtime.StarClass)
	if !ok {
		starType = entity.RandomStarType(g.rng)
	}
	g.Star = entity.NewStar(entity.GenerateID(), g.Config.Field.Center(), starType)
}

// Preview returns the template the next default launch will use.
func (g *Game) Preview() entity.PlanetTemplate {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.preview
}

// DragVelocity converts a drag gesture into a release velocity.
func DragVelocity(start, end physics.Vector2D, scale float64) physics.Vector2D {
	return end.Sub(start).Scale(scale)
}

// LaunchFromDrag launches the preview planet from start with the velocity
// implied by dragging to end.
func (g *Game) LaunchFromDrag(start, end physics.Vector2D) (entity.ID, error) {
	return g.Launch(LaunchCommand{
		Origin:   start,
		Velocity: DragVelocity(start, end, g.Config.Physics.LaunchScale),
	})
}

// Launch adds a planet to the simulation.
func (g *Game) Launch(cmd LaunchCommand) (entity.ID, error) {
	if err := validation.ValidateLaunch(cmd.Origin, cmd.Velocity); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidLaunch, err)
	}
	if cmd.Template != nil {
		if err := validation.ValidateTemplate(*cmd.Template); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidLaunch, err)
		}
	}

	g.EntityLock.Lock()
	template := g.preview
	if cmd.Template != nil {
		template = *cmd.Template
	} else {
		g.preview = entity.GenerateTemplate(g.rng)
	}
	planet := entity.NewPlanet(entity.GenerateID(), template, cmd.Origin, cmd.Velocity, g.Star.Position)
	g.Planets = append(g.Planets, planet)
	g.EntityLock.Unlock()

	g.EventBus.Publish(event.NewPlanetLaunched(g, uint64(planet.ID), planet.Position))
	return planet.ID, nil
}

// Reset clears every planet and zeroes the score. The star and the belt
// are left as they are.
func (g *Game) Reset() {
	g.EntityLock.Lock()
	g.Planets = nil
	g.Score = 0
	g.OrbitsCompleted = 0
	g.EntityLock.Unlock()

	g.EventBus.Publish(event.NewGameReset(g))
}

// Step advances the simulation by one tick and returns the events it
// produced, in order. The same events are published on the EventBus after
// the state lock is released, so handlers may query the game.
func (g *Game) Step() []event.Event {
	g.EntityLock.Lock()
	t := tick{game: g}
	t.applyGravity()
	t.trackOrbits()
	t.detectThreading()
	t.resolveStarCollisions()
	t.resolveAsteroidCollisions()
	t.resolvePlanetCollisions()
	t.advanceBelt()
	g.CurrentTick++
	g.EntityLock.Unlock()

	for _, e := range t.events {
		g.EventBus.Publish(e)
	}
	return t.events
}

// popupAbove returns where a popup about planet should appear.
func popupAbove(p *entity.Planet) physics.Vector2D {
	return physics.Vector2D{X: p.Position.X, Y: p.Position.Y - p.Radius - popupLift}
}
