// pkg/physics/gravity.go
package physics

import "math"

// Default gravitational tuning used by the simulation.
const (
	// G is the gravitational constant of the play field.
	G = 0.2
	// MinDistance clamps the separation used in the force law so that
	// bodies passing through each other cannot produce unbounded forces.
	MinDistance = 5.0
)

// PointMass is anything that attracts or is attracted gravitationally.
type PointMass struct {
	Position Vector2D
	Mass     float64
}

// Gravity returns the force exerted on a by b.
//
// The magnitude is g*m1*m2 / max(d², minDistance²) and the direction points
// from a toward b. Coincident bodies have no defined direction, so the zero
// vector is returned for them.
func Gravity(a, b PointMass, g, minDistance float64) Vector2D {
	delta := b.Position.Sub(a.Position)
	distSq := delta.LengthSquared()
	if distSq == 0 {
		return Vector2D{}
	}

	force := g * a.Mass * b.Mass / math.Max(distSq, minDistance*minDistance)
	return FromAngle(delta.Angle(), force)
}

// NetGravity sums the force exerted on target by every body in sources.
// Sources at index skip are ignored; pass -1 to include all of them.
func NetGravity(target PointMass, sources []PointMass, skip int, g, minDistance float64) Vector2D {
	var total Vector2D
	for i, src := range sources {
		if i == skip {
			continue
		}
		total = total.Add(Gravity(target, src, g, minDistance))
	}
	return total
}
