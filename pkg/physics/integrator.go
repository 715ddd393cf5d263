// pkg/physics/integrator.go
package physics

// MovementState tracks the kinematic state of a body under integration
type MovementState struct {
	Position Vector2D
	Velocity Vector2D
	Mass     float64
}

// Integrate advances state by one semi-implicit Euler step: velocity is
// updated from the applied force first, then position from the new velocity.
func Integrate(state *MovementState, force Vector2D, deltaTime float64) {
	if state.Mass > 0 {
		state.Velocity = state.Velocity.Add(force.Scale(deltaTime / state.Mass))
	}
	state.Position = state.Position.Add(state.Velocity.Scale(deltaTime))
}
