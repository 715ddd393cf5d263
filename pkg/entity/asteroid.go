// pkg/entity/asteroid.go
package entity

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Asteroid generation ranges.
const (
	MinAsteroidRadius = 5.0
	MaxAsteroidRadius = 10.0
	AsteroidMass      = 50.0
	AsteroidColor     = "#808080"
	minVertices       = 6
	maxVertices       = 9
	maxSpinRate       = 0.01
)

// Asteroid is a belt rock. Its outline and spin are cosmetic; collisions
// use the bounding radius.
type Asteroid struct {
	BaseEntity
	Rotation float64
	Spin     float64
	// Outline holds the polygon vertices relative to the center, before
	// rotation.
	Outline []physics.Vector2D
}

// NewAsteroid creates an asteroid with a random size and outline.
func NewAsteroid(id ID, position, velocity physics.Vector2D, rng *rand.Rand) *Asteroid {
	radius := MinAsteroidRadius + rng.Float64()*(MaxAsteroidRadius-MinAsteroidRadius)
	return &Asteroid{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Velocity: velocity,
			Mass:     AsteroidMass,
			Radius:   radius,
			Color:    AsteroidColor,
		},
		Rotation: rng.Float64() * 2 * math.Pi,
		Spin:     (rng.Float64()*2 - 1) * maxSpinRate,
		Outline:  RandomOutline(radius, rng),
	}
}

// RandomOutline builds an irregular polygon of 6 to 9 vertices spaced
// evenly by angle, each pulled in to between half and all of radius.
func RandomOutline(radius float64, rng *rand.Rand) []physics.Vector2D {
	n := minVertices + rng.IntN(maxVertices-minVertices+1)
	vertices := make([]physics.Vector2D, n)
	for i := range vertices {
		angle := float64(i) / float64(n) * 2 * math.Pi
		vertices[i] = physics.FromAngle(angle, radius*(0.5+rng.Float64()*0.5))
	}
	return vertices
}

// WorldOutline returns the outline rotated and translated into world space.
func (a *Asteroid) WorldOutline() []physics.Vector2D {
	out := make([]physics.Vector2D, len(a.Outline))
	for i, v := range a.Outline {
		out[i] = a.Position.Add(v.Rotate(a.Rotation))
	}
	return out
}
