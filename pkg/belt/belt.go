// pkg/belt/belt.go
package belt

import (
	"math/rand/v2"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Settings controls the shape of the belt.
type Settings struct {
	Count       int     // asteroids kept alive
	Radius      float64 // ring radius around the star
	Speed       float64 // tangential distance covered per tick
	SpawnMargin float64 // how far outside the field new asteroids enter
}

// DefaultSettings returns the stock belt.
func DefaultSettings() Settings {
	return Settings{
		Count:       20,
		Radius:      300,
		Speed:       1,
		SpawnMargin: entity.MaxAsteroidRadius,
	}
}

// Side is a field edge new asteroids enter from.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Controller keeps a fixed-size ring of asteroids circling the star.
type Controller struct {
	settings Settings
	width    float64
	height   float64
	rng      *rand.Rand
}

// NewController creates a belt for a field of the given size.
func NewController(settings Settings, width, height float64, rng *rand.Rand) *Controller {
	return &Controller{
		settings: settings,
		width:    width,
		height:   height,
		rng:      rng,
	}
}

// Settings returns the belt's configuration.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Advance pins every asteroid back onto the ring around center, gives it
// the circular velocity for its current angle and moves it one step along
// the ring. Asteroids are not affected by gravity.
func (c *Controller) Advance(asteroids []*entity.Asteroid, center physics.Vector2D) {
	for _, a := range asteroids {
		angle := a.Position.Sub(center).Angle()
		a.Position = center.Add(physics.FromAngle(angle, c.settings.Radius))
		a.Velocity = physics.FromAngle(angle, c.settings.Speed).Perpendicular()
		a.Position = a.Position.Add(a.Velocity)
		a.Rotation += a.Spin
	}
}

// Refill tops asteroids up to the configured count with fresh edge spawns.
func (c *Controller) Refill(asteroids []*entity.Asteroid) []*entity.Asteroid {
	for len(asteroids) < c.settings.Count {
		asteroids = append(asteroids, c.Spawn())
	}
	return asteroids
}

// Spawn creates an asteroid just outside a random edge of the field,
// drifting inward.
func (c *Controller) Spawn() *entity.Asteroid {
	return c.SpawnAt(Side(c.rng.IntN(4)))
}

// SpawnAt creates an asteroid entering from side. Drift along the inward
// normal is in [0, Speed); drift along the edge is in [-Speed/2, Speed/2).
func (c *Controller) SpawnAt(side Side) *entity.Asteroid {
	inward := c.rng.Float64() * c.settings.Speed
	along := (c.rng.Float64() - 0.5) * c.settings.Speed
	m := c.settings.SpawnMargin

	var pos, vel physics.Vector2D
	switch side {
	case Top:
		pos = physics.Vector2D{X: c.rng.Float64() * c.width, Y: -m}
		vel = physics.Vector2D{X: along, Y: inward}
	case Right:
		pos = physics.Vector2D{X: c.width + m, Y: c.rng.Float64() * c.height}
		vel = physics.Vector2D{X: -inward, Y: along}
	case Bottom:
		pos = physics.Vector2D{X: c.rng.Float64() * c.width, Y: c.height + m}
		vel = physics.Vector2D{X: along, Y: -inward}
	default:
		pos = physics.Vector2D{X: -m, Y: c.rng.Float64() * c.height}
		vel = physics.Vector2D{X: inward, Y: along}
	}

	return entity.NewAsteroid(entity.GenerateID(), pos, vel, c.rng)
}
