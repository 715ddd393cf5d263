// pkg/engine/step.go
package engine

import (
	"fmt"

	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Popup captions.
const (
	textSunCollision    = "Sun Collision!"
	textPlanetCollision = "Planet Collision!"
	textAsteroidHit     = "Asteroid Hit!"
	textThreading       = "Asteroid Threading!"
	textOrbitBonus      = "Orbit Bonus"
)

// tick carries the work of a single Step. Its methods run in order with
// the game's lock held.
type tick struct {
	game   *Game
	events []event.Event
}

func (t *tick) emit(events ...event.Event) {
	t.events = append(t.events, events...)
}

func (t *tick) addScore(amount int, reason event.Reason) {
	t.game.Score += amount
	t.emit(event.NewScoreDelta(t.game, amount, reason))
}

// applyGravity computes every planet's net force from the positions at the
// start of the tick, then integrates all planets. The star is pulled but
// never moves, and asteroids neither attract nor are attracted.
func (t *tick) applyGravity() {
	g := t.game
	phys := g.Config.Physics

	sources := make([]physics.PointMass, 0, len(g.Planets)+1)
	sources = append(sources, g.Star.PointMass())
	for _, p := range g.Planets {
		sources = append(sources, p.PointMass())
	}

	forces := make([]physics.Vector2D, len(g.Planets))
	for i, p := range g.Planets {
		forces[i] = physics.NetGravity(p.PointMass(), sources, i+1, phys.Gravity, phys.MinDistance)
	}
	for i, p := range g.Planets {
		p.Integrate(forces[i], phys.TimeStep)
	}
}

// trackOrbits feeds every planet's new position to its orbit tracker and
// pays out completed revolutions.
func (t *tick) trackOrbits() {
	g := t.game
	for _, p := range g.Planets {
		c, done := p.Orbit.Observe(p.Position, p.Velocity, g.Star.Position, g.orbitRules)
		if !done {
			continue
		}
		g.OrbitsCompleted++
		text := textOrbitBonus
		if c.Multiplier > 1 {
			text = fmt.Sprintf("%s (%dx stable orbit)", textOrbitBonus, c.Multiplier)
		}
		t.addScore(c.Bonus, event.ReasonOrbit)
		t.emit(
			event.NewOrbitCompleted(g, uint64(p.ID), c.Bonus, c.Multiplier),
			event.NewPopupRequest(g, popupAbove(p), text, c.Bonus),
		)
	}
}

// detectThreading indexes the belt once and checks every planet against it.
func (t *tick) detectThreading() {
	g := t.game
	if len(g.Planets) == 0 {
		return
	}

	positions := make([]physics.Vector2D, len(g.Asteroids))
	for i, a := range g.Asteroids {
		positions[i] = a.Position
	}
	g.detector.Index(positions)

	for _, p := range g.Planets {
		award, ok := g.detector.Scan(p.Position, &p.Threading)
		if !ok {
			continue
		}
		t.addScore(award.Bonus, event.ReasonThreading)
		t.emit(event.NewPopupRequest(g, popupAbove(p), textThreading, award.Bonus))
	}
}

// resolveStarCollisions removes planets that touched the star.
func (t *tick) resolveStarCollisions() {
	g := t.game
	penalty := g.Config.Scoring.Penalties.Sun
	hit := make(indexSet)

	star := g.Star.GetCollider()
	for i, p := range g.Planets {
		if !p.GetCollider().Collides(star) {
			continue
		}
		hit.add(i)
		t.addScore(penalty, event.ReasonSunCollision)
		t.emit(event.NewPopupRequest(g, popupAbove(p), textSunCollision, penalty))
	}

	t.removePlanets(hit, event.CauseSun)
}

// resolveAsteroidCollisions charges a penalty for every planet-asteroid
// contact and removes each body involved once.
func (t *tick) resolveAsteroidCollisions() {
	g := t.game
	penalty := g.Config.Scoring.Penalties.Asteroid
	planets := make(indexSet)
	asteroids := make(indexSet)

	for i, p := range g.Planets {
		pc := p.GetCollider()
		for j, a := range g.Asteroids {
			if !pc.Collides(a.GetCollider()) {
				continue
			}
			planets.add(i)
			asteroids.add(j)
			t.addScore(penalty, event.ReasonAsteroidCollision)
			t.emit(event.NewPopupRequest(g, popupAbove(p), textAsteroidHit, penalty))
		}
	}

	t.removePlanets(planets, event.CauseAsteroid)
	for _, j := range asteroids.descending() {
		a := g.Asteroids[j]
		t.emit(event.NewAsteroidDestroyed(g, uint64(a.ID), a.Position))
	}
	g.Asteroids = removeIndices(g.Asteroids, asteroids)
}

// resolvePlanetCollisions charges a penalty for every colliding pair. A
// planet hitting several others is removed once but each pair is charged.
func (t *tick) resolvePlanetCollisions() {
	g := t.game
	penalty := g.Config.Scoring.Penalties.Planet
	hit := make(indexSet)

	for i := 0; i < len(g.Planets); i++ {
		for j := i + 1; j < len(g.Planets); j++ {
			p1, p2 := g.Planets[i], g.Planets[j]
			if !p1.GetCollider().Collides(p2.GetCollider()) {
				continue
			}
			hit.add(i)
			hit.add(j)
			mid := p1.Position.Midpoint(p2.Position)
			mid.Y -= popupLift
			t.addScore(penalty, event.ReasonPlanetCollision)
			t.emit(event.NewPopupRequest(g, mid, textPlanetCollision, penalty))
		}
	}

	t.removePlanets(hit, event.CausePlanet)
}

func (t *tick) removePlanets(indices indexSet, cause event.Cause) {
	g := t.game
	for _, i := range indices.descending() {
		p := g.Planets[i]
		t.emit(event.NewPlanetRemoved(g, uint64(p.ID), p.Position, cause))
	}
	g.Planets = removeIndices(g.Planets, indices)
}

// advanceBelt moves the belt one step and replaces destroyed asteroids.
func (t *tick) advanceBelt() {
	g := t.game
	g.belt.Advance(g.Asteroids, g.Star.Position)
	g.Asteroids = g.belt.Refill(g.Asteroids)
}
