// pkg/orbit/tracker.go
package orbit

import (
	"math"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// completionEpsilon absorbs rounding in the accumulated rotation so a
// revolution assembled from many small steps still counts as complete.
const completionEpsilon = 1e-9

// Rules holds the tunable constants of the orbit bonus.
type Rules struct {
	BaseBonus          int     // flat points for any completed revolution
	RadiusDivisor      float64 // avg² / RadiusDivisor gives the radius score
	StabilityNumerator float64
	StabilityOffset    float64 // added to the radius range before dividing
	StabilityBias      float64 // subtracted after dividing
	MinMultiplier      int
	MaxMultiplier      int
}

// DefaultRules returns the stock scoring constants.
func DefaultRules() Rules {
	return Rules{
		BaseBonus:          100,
		RadiusDivisor:      50,
		StabilityNumerator: 2500,
		StabilityOffset:    100,
		StabilityBias:      10,
		MinMultiplier:      1,
		MaxMultiplier:      10,
	}
}

// StabilityMultiplier maps the spread between the closest and farthest
// approach of one revolution to a score multiplier. Rounder orbits score
// higher. The offset keeps the denominator positive for any non-negative
// range.
func (r Rules) StabilityMultiplier(radiusRange float64) int {
	if radiusRange < 0 {
		radiusRange = 0
	}
	m := int(math.Floor(r.StabilityNumerator/(radiusRange+r.StabilityOffset) - r.StabilityBias))
	if m < r.MinMultiplier {
		return r.MinMultiplier
	}
	if m > r.MaxMultiplier {
		return r.MaxMultiplier
	}
	return m
}

// RadiusScore rewards wide orbits quadratically.
func (r Rules) RadiusScore(avgRadius float64) int {
	return int(math.Floor(avgRadius * avgRadius / r.RadiusDivisor))
}

// Completion describes one finished revolution.
type Completion struct {
	AvgRadius   float64
	RadiusRange float64
	RadiusScore int
	Multiplier  int
	Bonus       int
}

// Tracker accumulates the angular travel of one body around a center.
type Tracker struct {
	LastAngle     float64
	TotalRotation float64

	MinRadius float64
	MaxRadius float64
	TopSpeed  float64
	MinSpeed  float64

	// sampled is false until the first observation after a reset; the
	// extrema above are meaningless while it is false.
	sampled bool
}

// NewTracker starts tracking a body first seen at position.
func NewTracker(position, center physics.Vector2D) Tracker {
	return Tracker{LastAngle: position.Sub(center).Angle()}
}

// Observe records the body's latest state. When the accumulated rotation
// reaches a full turn in either direction it returns the completed
// revolution and resets; any excess rotation is discarded.
func (t *Tracker) Observe(position, velocity, center physics.Vector2D, rules Rules) (Completion, bool) {
	offset := position.Sub(center)
	distance := offset.Length()
	speed := velocity.Length()

	if !t.sampled {
		t.MinRadius, t.MaxRadius = distance, distance
		t.TopSpeed, t.MinSpeed = speed, speed
		t.sampled = true
	} else {
		t.MinRadius = math.Min(t.MinRadius, distance)
		t.MaxRadius = math.Max(t.MaxRadius, distance)
		t.TopSpeed = math.Max(t.TopSpeed, speed)
		t.MinSpeed = math.Min(t.MinSpeed, speed)
	}

	angle := offset.Angle()
	t.TotalRotation += physics.WrapAngle(angle - t.LastAngle)
	t.LastAngle = angle

	if math.Abs(t.TotalRotation) < 2*math.Pi-completionEpsilon {
		return Completion{}, false
	}

	c := Completion{
		AvgRadius:   (t.MinRadius + t.MaxRadius) / 2,
		RadiusRange: t.MaxRadius - t.MinRadius,
	}
	c.RadiusScore = rules.RadiusScore(c.AvgRadius)
	c.Multiplier = rules.StabilityMultiplier(c.RadiusRange)
	c.Bonus = (rules.BaseBonus + c.RadiusScore) * c.Multiplier

	t.Reset()
	return c, true
}

// Reset clears the accumulated rotation and extrema. LastAngle is kept so
// the next observation continues from the current heading.
func (t *Tracker) Reset() {
	t.TotalRotation = 0
	t.MinRadius, t.MaxRadius = 0, 0
	t.TopSpeed, t.MinSpeed = 0, 0
	t.sampled = false
}

// Sampled reports whether any observation was made since the last reset.
func (t *Tracker) Sampled() bool {
	return t.sampled
}
