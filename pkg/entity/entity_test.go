// pkg/entity/entity_test.go
package entity

import (
	"sync"
	"testing"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

func TestGenerateID_UniqueAcrossGoroutines(t *testing.T) {
	const workers, perWorker = 8, 200

	var mu sync.Mutex
	seen := make(map[ID]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := GenerateID()
				mu.Lock()
				if id == 0 || seen[id] {
					t.Errorf("GenerateID() returned duplicate or zero id %d", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("got %d unique ids, want %d", len(seen), workers*perWorker)
	}
}

func TestBaseEntity_GetCollider(t *testing.T) {
	tests := []struct {
		name     string
		position physics.Vector2D
		radius   float64
	}{
		{"origin", physics.Vector2D{}, 10},
		{"offset", physics.Vector2D{X: -100, Y: 200}, 2.5},
		{"zero_radius", physics.Vector2D{X: 1, Y: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEntity{Position: tt.position, Radius: tt.radius}
			c := e.GetCollider()
			if c.Center != tt.position || c.Radius != tt.radius {
				t.Errorf("GetCollider() = %+v, want center %v radius %v", c, tt.position, tt.radius)
			}
		})
	}
}

func TestBaseEntity_Integrate(t *testing.T) {
	e := &BaseEntity{
		Position: physics.Vector2D{X: 10, Y: 10},
		Velocity: physics.Vector2D{X: 1, Y: 0},
		Mass:     4,
	}

	e.Integrate(physics.Vector2D{X: 0, Y: 40}, 0.1)

	if e.Velocity != (physics.Vector2D{X: 1, Y: 1}) {
		t.Errorf("Velocity = %v, want (1, 1)", e.Velocity)
	}
	want := physics.Vector2D{X: 10.1, Y: 10.1}
	if e.Position.Distance(want) > 1e-9 {
		t.Errorf("Position = %v, want %v", e.Position, want)
	}
}

func TestBaseEntity_PointMass(t *testing.T) {
	e := &BaseEntity{Position: physics.Vector2D{X: 3, Y: 4}, Mass: 12}
	pm := e.PointMass()
	if pm.Position != e.Position || pm.Mass != 12 {
		t.Errorf("PointMass() = %+v", pm)
	}
}
