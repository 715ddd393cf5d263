package render

import (
	"fmt"

	"github.com/opd-ai/go-slingshot/pkg/engine"
)

// KeyHelp lists the keyboard controls.
const KeyHelp = "[r]eset [m]usic [n]ext [q]uit"

// Status is the HUD content not carried by a GameState.
type Status struct {
	Player string
	Music  string
}

// StatsLine formats score, orbit count, star and the next planet.
func StatsLine(state *engine.GameState) string {
	line := fmt.Sprintf("Score: %d  Orbits: %d  Star: %s (%s)  Next: r%.0f m%.0f",
		state.Score, state.OrbitsCompleted, state.Star.Type.Name, state.Star.Type.Class,
		state.Preview.Radius, state.Preview.Mass)
	if state.Preview.HasRings {
		line += " ringed"
	}
	return line
}

// StatusLine formats the key help, the aiming speed while dragging
// (launch < 0 hides it) and the session status.
func StatusLine(status Status, launch float64) string {
	line := KeyHelp
	if launch >= 0 {
		line += fmt.Sprintf("  Launch: %.1f", launch)
	}
	if status.Player != "" {
		line += "  Player: " + status.Player
	}
	if status.Music != "" {
		line += "  Music: " + status.Music
	}
	return line
}
