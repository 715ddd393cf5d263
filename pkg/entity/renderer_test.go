package entity

import (
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// MockRenderer records which Renderer methods were called.
type MockRenderer struct {
	Stars        []*Star
	Planets      []*Planet
	Asteroids    []*Asteroid
	ClearCount   int
	PresentCount int
}

func (m *MockRenderer) RenderStar(star *Star)             { m.Stars = append(m.Stars, star) }
func (m *MockRenderer) RenderPlanet(planet *Planet)       { m.Planets = append(m.Planets, planet) }
func (m *MockRenderer) RenderAsteroid(asteroid *Asteroid) { m.Asteroids = append(m.Asteroids, asteroid) }
func (m *MockRenderer) Clear()                            { m.ClearCount++ }
func (m *MockRenderer) Present()                          { m.PresentCount++ }

func TestEntity_RenderDispatch(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	star := NewStar(GenerateID(), physics.Vector2D{}, StarTypes[0])
	planet := NewPlanet(GenerateID(), GenerateTemplate(rng), physics.Vector2D{X: 100}, physics.Vector2D{}, star.Position)
	asteroid := NewAsteroid(GenerateID(), physics.Vector2D{X: 300}, physics.Vector2D{}, rng)

	m := &MockRenderer{}
	m.Clear()
	for _, e := range []Entity{star, planet, asteroid} {
		e.Render(m)
	}
	m.Present()

	if len(m.Stars) != 1 || m.Stars[0] != star {
		t.Errorf("RenderStar calls = %v", m.Stars)
	}
	if len(m.Planets) != 1 || m.Planets[0] != planet {
		t.Errorf("RenderPlanet calls = %v", m.Planets)
	}
	if len(m.Asteroids) != 1 || m.Asteroids[0] != asteroid {
		t.Errorf("RenderAsteroid calls = %v", m.Asteroids)
	}
	if m.ClearCount != 1 || m.PresentCount != 1 {
		t.Errorf("Clear/Present counts = %d/%d, want 1/1", m.ClearCount, m.PresentCount)
	}
}
