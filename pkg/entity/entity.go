// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var lastID atomic.Uint64

// GenerateID returns a process-wide unique, non-zero entity ID.
func GenerateID() ID {
	return ID(lastID.Add(1))
}

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Mass     float64
	Radius   float64
	Color    string
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's collision shape
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Radius}
}

// PointMass returns the entity as a gravitational source.
func (e *BaseEntity) PointMass() physics.PointMass {
	return physics.PointMass{Position: e.Position, Mass: e.Mass}
}

// Integrate applies force for deltaTime using semi-implicit Euler.
func (e *BaseEntity) Integrate(force physics.Vector2D, deltaTime float64) {
	state := physics.MovementState{Position: e.Position, Velocity: e.Velocity, Mass: e.Mass}
	physics.Integrate(&state, force, deltaTime)
	e.Position, e.Velocity = state.Position, state.Velocity
}

// Render dispatches to the renderer method for the concrete type.
func (s *Star) Render(r Renderer) {
	r.RenderStar(s)
}

func (p *Planet) Render(r Renderer) {
	r.RenderPlanet(p)
}

func (a *Asteroid) Render(r Renderer) {
	r.RenderAsteroid(a)
}
