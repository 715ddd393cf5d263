// pkg/threading/detector.go
package threading

import (
	"math"
	"sort"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Rules holds the geometric thresholds and scoring of a threading pass.
type Rules struct {
	// Distance is the proximity both asteroids must be within.
	Distance float64
	// SafeDistance is the clearance required from each asteroid.
	SafeDistance float64
	// Tolerance bounds |d1 + d2 - gap| for the planet to count as lying
	// between the two asteroids.
	Tolerance float64
	// GateDistance is how far a planet must travel from its last award
	// before it can be awarded again.
	GateDistance   float64
	BonusNumerator float64
	// MinEffectiveDistance floors the closest approach fed to the bonus
	// curve.
	MinEffectiveDistance float64
}

// DefaultRules returns the stock threading constants.
func DefaultRules() Rules {
	return Rules{
		Distance:             75,
		SafeDistance:         20,
		Tolerance:            1,
		GateDistance:         150,
		BonusNumerator:       2500,
		MinEffectiveDistance: 1,
	}
}

// Bonus returns the points for a pass whose closest approach to either
// asteroid was closest. Closer passes are worth more. Non-positive
// distances are not eligible.
func (r Rules) Bonus(closest float64) (int, bool) {
	if closest <= 0 || math.IsNaN(closest) {
		return 0, false
	}
	closest = math.Max(closest, r.MinEffectiveDistance)
	denom := math.Log(closest/r.Distance + 1)
	if denom <= 0 {
		return 0, false
	}
	return int(math.Floor(r.BonusNumerator / denom)), true
}

// Gate remembers where a planet was last awarded a threading bonus.
type Gate struct {
	Last physics.Vector2D
	Set  bool
}

// Allows reports whether position is far enough from the last award.
func (g *Gate) Allows(position physics.Vector2D, distance float64) bool {
	return !g.Set || position.Distance(g.Last) >= distance
}

// Record marks position as the latest award point.
func (g *Gate) Record(position physics.Vector2D) {
	g.Last = position
	g.Set = true
}

// Clear forgets the last award.
func (g *Gate) Clear() {
	*g = Gate{}
}

// Award describes a successful threading pass.
type Award struct {
	First    int // index of the lower asteroid of the pair
	Second   int
	Position physics.Vector2D
	D1       float64
	D2       float64
	Bonus    int
}

// Detector finds planets passing between pairs of asteroids. Call Index
// once per tick with the asteroid positions, then Scan for each planet.
type Detector struct {
	rules     Rules
	asteroids []physics.Vector2D
	tree      *physics.QuadTree
}

// NewDetector creates a detector using rules.
func NewDetector(rules Rules) *Detector {
	return &Detector{rules: rules}
}

// Rules returns the detector's thresholds.
func (d *Detector) Rules() Rules {
	return d.rules
}

// Index rebuilds the spatial index over the asteroid positions. The slice
// is retained until the next call.
func (d *Detector) Index(asteroids []physics.Vector2D) {
	d.asteroids = asteroids
	d.tree = physics.NewQuadTree(physics.BoundsOf(asteroids, 1), 4)
	for i, p := range asteroids {
		d.tree.Insert(p, i)
	}
}

// nearby returns the asteroids strictly within the threading distance of
// position, in ascending index order.
func (d *Detector) nearby(position physics.Vector2D) []int {
	if d.tree == nil {
		return nil
	}
	candidates := d.tree.Query(physics.SquareAround(position, d.rules.Distance))
	kept := candidates[:0]
	for _, i := range candidates {
		if position.Distance(d.asteroids[i]) < d.rules.Distance {
			kept = append(kept, i)
		}
	}
	sort.Ints(kept)
	return kept
}

// Scan checks position against every indexed asteroid pair in ascending
// (i, j) order and returns the first qualifying pass. On success the gate
// is moved to position, so at most one award is made per call.
func (d *Detector) Scan(position physics.Vector2D, gate *Gate) (Award, bool) {
	if !gate.Allows(position, d.rules.GateDistance) {
		return Award{}, false
	}

	near := d.nearby(position)
	for a := 0; a < len(near); a++ {
		for b := a + 1; b < len(near); b++ {
			i, j := near[a], near[b]
			d1 := position.Distance(d.asteroids[i])
			d2 := position.Distance(d.asteroids[j])
			if d1 <= d.rules.SafeDistance || d2 <= d.rules.SafeDistance {
				continue
			}
			if !physics.OnSegment(position, d.asteroids[i], d.asteroids[j], d.rules.Tolerance) {
				continue
			}
			bonus, ok := d.rules.Bonus(math.Min(d1, d2))
			if !ok {
				continue
			}
			gate.Record(position)
			return Award{
				First:    i,
				Second:   j,
				Position: position,
				D1:       d1,
				D2:       d2,
				Bonus:    bonus,
			}, true
		}
	}
	return Award{}, false
}
