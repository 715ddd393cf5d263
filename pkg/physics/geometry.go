// pkg/physics/geometry.go
package physics

import "math"

// WrapAngle folds an angular difference into (-π, π]. Differences produced
// by subtracting two atan2 results never need more than one correction.
func WrapAngle(delta float64) float64 {
	if delta > math.Pi {
		delta -= 2 * math.Pi
	} else if delta <= -math.Pi {
		delta += 2 * math.Pi
	}
	return delta
}

// OnSegment reports whether p lies on the segment ab within tolerance, using
// the triangle near-equality |pa + pb - ab| < tolerance.
func OnSegment(p, a, b Vector2D, tolerance float64) bool {
	return math.Abs(p.Distance(a)+p.Distance(b)-a.Distance(b)) < tolerance
}
