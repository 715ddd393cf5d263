package render

import (
	"testing"

	"github.com/opd-ai/go-slingshot/pkg/entity"
)

func TestStatsLine(t *testing.T) {
	state := testState()
	state.Score = 1234
	state.OrbitsCompleted = 2

	want := "Score: 1234  Orbits: 2  Star: Yellow Star (G)  Next: r10 m20"
	if got := StatsLine(state); got != want {
		t.Errorf("StatsLine() = %q, want %q", got, want)
	}

	state.Preview = entity.PlanetTemplate{Radius: 12.4, Mass: 37.2, HasRings: true}
	if got := StatsLine(state); got != "Score: 1234  Orbits: 2  Star: Yellow Star (G)  Next: r12 m37 ringed" {
		t.Errorf("StatsLine() ringed = %q", got)
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		launch float64
		want   string
	}{
		{"idle", Status{}, -1, KeyHelp},
		{"aiming", Status{}, 4.26, KeyHelp + "  Launch: 4.3"},
		{"full", Status{Player: "Ada", Music: "track1.mp3"}, 0, KeyHelp + "  Launch: 0.0  Player: Ada  Music: track1.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusLine(tt.status, tt.launch); got != tt.want {
				t.Errorf("StatusLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
