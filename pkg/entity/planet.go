// pkg/entity/planet.go
package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/opd-ai/go-slingshot/pkg/orbit"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/threading"
)

// Template generation ranges.
const (
	MinPlanetRadius   = 8.0
	MaxPlanetRadius   = 15.0
	RingChance        = 0.3
	SurfacePatterns   = 3
	RingAlpha         = 0.3
	ringMassFactor    = 1.5
	patternMassFactor = 0.2
)

// PlanetColors is the palette new planets are painted from.
var PlanetColors = []string{
	"#4169E1", // royal blue
	"#8A2BE2", // blue violet
	"#20B2AA", // light sea green
	"#CD5C5C", // indian red
	"#DAA520", // goldenrod
	"#FF6347", // tomato
}

// PlanetTemplate describes a planet before it is launched.
type PlanetTemplate struct {
	Radius         float64
	Color          string
	HasRings       bool
	RingColor      string // drawn at RingAlpha opacity
	SurfacePattern int
	Mass           float64
}

// MassFor derives a planet's mass from its appearance: twice the radius,
// half as heavy again with rings, and 20% heavier per surface pattern step.
func MassFor(radius float64, hasRings bool, pattern int) float64 {
	mass := radius * 2
	if hasRings {
		mass *= ringMassFactor
	}
	return mass * (1 + float64(pattern)*patternMassFactor)
}

// GenerateTemplate rolls a random planet template.
func GenerateTemplate(rng *rand.Rand) PlanetTemplate {
	t := PlanetTemplate{
		Radius:         MinPlanetRadius + rng.Float64()*(MaxPlanetRadius-MinPlanetRadius),
		HasRings:       rng.Float64() < RingChance,
		SurfacePattern: rng.IntN(SurfacePatterns),
		Color:          PlanetColors[rng.IntN(len(PlanetColors))],
		RingColor:      fmt.Sprintf("#%02X%02X%02X", rng.IntN(256), rng.IntN(256), rng.IntN(256)),
	}
	t.Mass = MassFor(t.Radius, t.HasRings, t.SurfacePattern)
	return t
}

// Planet is a launched body moving under gravity.
type Planet struct {
	BaseEntity
	Template  PlanetTemplate
	Orbit     orbit.Tracker
	Threading threading.Gate
}

// NewPlanet launches a planet built from template at origin. center is
// the star the orbit is tracked around.
func NewPlanet(id ID, template PlanetTemplate, origin, velocity, center physics.Vector2D) *Planet {
	return &Planet{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: origin,
			Velocity: velocity,
			Mass:     template.Mass,
			Radius:   template.Radius,
			Color:    template.Color,
		},
		Template: template,
		Orbit:    orbit.NewTracker(origin, center),
	}
}
