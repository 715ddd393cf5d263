// Package engine provides unit tests for game.go
package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Runtime.Seed = 1
	cfg.Runtime.StarClass = "G"
	return cfg
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	game := NewGame(testConfig())
	if game == nil {
		t.Fatal("NewGame returned nil")
	}
	return game
}

// addPlanet places a planet directly, bypassing Launch.
func addPlanet(g *Game, pos, vel physics.Vector2D, radius float64) *entity.Planet {
	tmpl := entity.PlanetTemplate{Radius: radius, Color: entity.PlanetColors[0], Mass: entity.MassFor(radius, false, 0)}
	p := entity.NewPlanet(entity.GenerateID(), tmpl, pos, vel, g.Star.Position)
	g.Planets = append(g.Planets, p)
	return p
}

func countType(events []event.Event, typ event.Type) int {
	n := 0
	for _, e := range events {
		if e.GetType() == typ {
			n++
		}
	}
	return n
}

func TestNewGame_InitializesState(t *testing.T) {
	game := newTestGame(t)

	if game.Star.Type.Class != "G" {
		t.Errorf("star class = %q, want G", game.Star.Type.Class)
	}
	if game.Star.Position != game.Config.Field.Center() {
		t.Errorf("star at %v, want field center", game.Star.Position)
	}
	if len(game.Asteroids) != 20 {
		t.Errorf("expected 20 asteroids, got %d", len(game.Asteroids))
	}
	if len(game.Planets) != 0 || game.Score != 0 {
		t.Error("new game should have no planets and zero score")
	}
	if game.Preview().Mass <= 0 {
		t.Error("preview template not generated")
	}
}

func TestNewGame_RandomStarWhenUnset(t *testing.T) {
	cfg := testConfig()
	cfg.Runtime.StarClass = ""
	game := NewGame(cfg)
	if _, ok := entity.StarTypeByClass(game.Star.Type.Class); !ok {
		t.Errorf("unknown star class %q", game.Star.Type.Class)
	}
}

func TestStep_SunCollisionWithinOneTick(t *testing.T) {
	game := newTestGame(t)
	start := game.Star.Position.Add(physics.Vector2D{X: game.Star.Radius})
	planet := addPlanet(game, start, physics.Vector2D{}, 10)

	events := game.Step()

	if game.Score != -1000 {
		t.Errorf("Score = %d, want -1000", game.Score)
	}
	if len(game.Planets) != 0 {
		t.Errorf("%d planets left, want 0", len(game.Planets))
	}

	var sawDelta, sawRemoved, sawPopup bool
	for _, e := range events {
		switch ev := e.(type) {
		case *event.ScoreDelta:
			sawDelta = ev.Amount == -1000 && ev.Reason == event.ReasonSunCollision
		case *event.PlanetEvent:
			sawRemoved = ev.PlanetID == uint64(planet.ID) && ev.Cause == event.CauseSun
		case *event.PopupRequest:
			sawPopup = ev.Text == "Sun Collision!" && ev.Amount == -1000
		}
	}
	if !sawDelta || !sawRemoved || !sawPopup {
		t.Errorf("missing events: delta=%v removed=%v popup=%v", sawDelta, sawRemoved, sawPopup)
	}
}

func TestStep_PlanetCollisionPenaltyPerPair(t *testing.T) {
	game := newTestGame(t)
	spot := game.Star.Position.Add(physics.Vector2D{X: 150})
	for i := 0; i < 3; i++ {
		addPlanet(game, spot, physics.Vector2D{}, 10)
	}

	events := game.Step()

	if game.Score != -1500 {
		t.Errorf("Score = %d, want -1500 (three colliding pairs)", game.Score)
	}
	if n := countType(events, event.PlanetRemoved); n != 3 {
		t.Errorf("PlanetRemoved events = %d, want 3", n)
	}
	if len(game.Planets) != 0 {
		t.Errorf("%d planets left", len(game.Planets))
	}
}

func TestStep_AsteroidCollisionRefillsBelt(t *testing.T) {
	game := newTestGame(t)
	target := game.Asteroids[3]
	addPlanet(game, target.Position, physics.Vector2D{}, 10)

	events := game.Step()

	if len(game.Asteroids) != 20 {
		t.Errorf("belt has %d asteroids after refill, want 20", len(game.Asteroids))
	}
	for _, a := range game.Asteroids {
		if a.ID == target.ID {
			t.Error("hit asteroid is still in the belt")
		}
	}
	hits := countType(events, event.AsteroidDestroyed)
	if hits == 0 || game.Score != -250*hits {
		t.Errorf("Score = %d with %d asteroid hits, want -250 per hit", game.Score, hits)
	}
	if len(game.Planets) != 0 {
		t.Error("planet should be removed after hitting an asteroid")
	}
}

func TestStep_ThreadingBonus(t *testing.T) {
	game := newTestGame(t)
	pos := game.Star.Position.Add(physics.Vector2D{X: 200})
	addPlanet(game, pos, physics.Vector2D{}, 8)

	rng := game.rng
	game.Asteroids = []*entity.Asteroid{
		entity.NewAsteroid(entity.GenerateID(), pos.Add(physics.Vector2D{X: -40}), physics.Vector2D{}, rng),
		entity.NewAsteroid(entity.GenerateID(), pos.Add(physics.Vector2D{X: 50}), physics.Vector2D{}, rng),
	}

	events := game.Step()

	var bonus int
	for _, e := range events {
		if d, ok := e.(*event.ScoreDelta); ok && d.Reason == event.ReasonThreading {
			bonus = d.Amount
		}
	}
	if bonus <= 0 {
		t.Fatalf("expected a threading bonus, events: %d", len(events))
	}
	if game.Score != bonus {
		t.Errorf("Score = %d, want %d", game.Score, bonus)
	}
	if len(game.Planets) != 1 || !game.Planets[0].Threading.Set {
		t.Error("planet should survive with its threading gate set")
	}
	if len(game.Asteroids) != 20 {
		t.Errorf("belt not refilled: %d", len(game.Asteroids))
	}
}

func TestStep_CircularOrbitCompletesOnce(t *testing.T) {
	game := newTestGame(t)
	const r = 200.0
	speed := math.Sqrt(game.Config.Physics.Gravity * game.Star.Mass / r)
	addPlanet(game, game.Star.Position.Add(physics.Vector2D{X: r}), physics.Vector2D{Y: speed}, 8)

	var orbits []*event.OrbitEvent
	for i := 0; i < 1000; i++ {
		for _, e := range game.Step() {
			if o, ok := e.(*event.OrbitEvent); ok {
				orbits = append(orbits, o)
			}
		}
	}

	if len(orbits) != 1 {
		t.Fatalf("orbit events = %d, want 1", len(orbits))
	}
	if orbits[0].Multiplier < 5 {
		t.Errorf("Multiplier = %d, want a near-circular orbit to score at least 5", orbits[0].Multiplier)
	}
	if game.OrbitsCompleted != 1 || game.Score != orbits[0].Bonus {
		t.Errorf("OrbitsCompleted=%d Score=%d, want 1 and %d", game.OrbitsCompleted, game.Score, orbits[0].Bonus)
	}
}

func TestStep_ForcesUseStartOfTickPositions(t *testing.T) {
	game := newTestGame(t)
	game.Asteroids = nil
	a := addPlanet(game, game.Star.Position.Add(physics.Vector2D{X: 100}), physics.Vector2D{}, 8)
	b := addPlanet(game, game.Star.Position.Add(physics.Vector2D{X: -100}), physics.Vector2D{}, 8)

	game.Step()

	// Symmetric setup must stay symmetric regardless of update order.
	da := a.Position.Sub(game.Star.Position)
	db := b.Position.Sub(game.Star.Position)
	if math.Abs(da.X+db.X) > 1e-9 || math.Abs(da.Y+db.Y) > 1e-9 {
		t.Errorf("asymmetric result: %v vs %v", da, db)
	}
}

func TestGame_LaunchUsesPreview(t *testing.T) {
	game := newTestGame(t)
	preview := game.Preview()

	launched := 0
	game.EventBus.Subscribe(event.PlanetLaunched, func(event.Event) { launched++ })

	id, err := game.Launch(LaunchCommand{Origin: physics.Vector2D{X: 100, Y: 100}, Velocity: physics.Vector2D{X: 1}})
	if err != nil {
		t.Fatalf("Launch() failed: %v", err)
	}
	if id == 0 || len(game.Planets) != 1 {
		t.Fatalf("Launch() id=%d planets=%d", id, len(game.Planets))
	}
	if game.Planets[0].Template != preview {
		t.Error("launched planet should use the previewed template")
	}
	if launched != 1 {
		t.Errorf("PlanetLaunched published %d times", launched)
	}

	custom := entity.PlanetTemplate{Radius: 12, Mass: 24, Color: "#FFFFFF"}
	if _, err := game.Launch(LaunchCommand{Template: &custom}); err != nil {
		t.Fatalf("Launch(custom) failed: %v", err)
	}
	if game.Planets[1].Template != custom {
		t.Error("explicit template ignored")
	}
}

func TestGame_LaunchRejectsInvalidInput(t *testing.T) {
	game := newTestGame(t)
	tests := []struct {
		name string
		cmd  LaunchCommand
	}{
		{"nan_origin", LaunchCommand{Origin: physics.Vector2D{X: math.NaN()}}},
		{"infinite_velocity", LaunchCommand{Velocity: physics.Vector2D{Y: math.Inf(-1)}}},
		{"zero_mass_template", LaunchCommand{Template: &entity.PlanetTemplate{Radius: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := game.Launch(tt.cmd); !errors.Is(err, ErrInvalidLaunch) {
				t.Errorf("Launch() error = %v, want ErrInvalidLaunch", err)
			}
		})
	}
	if len(game.Planets) != 0 {
		t.Error("rejected launches must not add planets")
	}
}

func TestGame_LaunchFromDrag(t *testing.T) {
	game := newTestGame(t)
	start := physics.Vector2D{X: 100, Y: 100}
	if _, err := game.LaunchFromDrag(start, physics.Vector2D{X: 200, Y: 60}); err != nil {
		t.Fatal(err)
	}
	p := game.Planets[0]
	if p.Position != start {
		t.Errorf("origin = %v, want %v", p.Position, start)
	}
	want := physics.Vector2D{X: 5, Y: -2}
	if p.Velocity.Distance(want) > 1e-9 {
		t.Errorf("velocity = %v, want %v", p.Velocity, want)
	}
}

func TestGame_Reset(t *testing.T) {
	game := newTestGame(t)
	star := game.Star
	belt := append([]*entity.Asteroid(nil), game.Asteroids...)
	addPlanet(game, physics.Vector2D{X: 10, Y: 10}, physics.Vector2D{}, 10)
	game.Score = 4321
	game.OrbitsCompleted = 2

	resets := 0
	game.EventBus.Subscribe(event.GameReset, func(event.Event) { resets++ })
	game.Reset()

	if len(game.Planets) != 0 || game.Score != 0 || game.OrbitsCompleted != 0 {
		t.Errorf("Reset left planets=%d score=%d orbits=%d", len(game.Planets), game.Score, game.OrbitsCompleted)
	}
	if game.Star != star {
		t.Error("Reset replaced the star")
	}
	for i := range belt {
		if game.Asteroids[i] != belt[i] {
			t.Fatal("Reset touched the asteroid belt")
		}
	}
	if resets != 1 {
		t.Errorf("GameReset published %d times", resets)
	}
}

func TestStep_PublishesEventsAfterUnlock(t *testing.T) {
	game := newTestGame(t)
	addPlanet(game, game.Star.Position, physics.Vector2D{}, 10)

	var seenScore int
	game.EventBus.Subscribe(event.ScoreChanged, func(event.Event) {
		// Would deadlock if Step still held the lock.
		seenScore = game.GetGameState().Score
	})

	game.Step()
	if seenScore != -1000 {
		t.Errorf("handler saw score %d, want -1000", seenScore)
	}
}

func TestGetGameState_IsACopy(t *testing.T) {
	game := newTestGame(t)
	addPlanet(game, physics.Vector2D{X: 900, Y: 360}, physics.Vector2D{Y: 5}, 10)

	state := game.GetGameState()
	game.Step()

	if state.Planets[0].Position == game.Planets[0].Position {
		t.Error("snapshot moved with the live planet")
	}
	if state.Tick != 0 || game.GetGameState().Tick != 1 {
		t.Errorf("ticks: snapshot %d, live %d", state.Tick, game.GetGameState().Tick)
	}
}

func TestDragVelocity(t *testing.T) {
	tests := []struct {
		name       string
		start, end physics.Vector2D
		scale      float64
		want       physics.Vector2D
	}{
		{"no_drag", physics.Vector2D{X: 5, Y: 5}, physics.Vector2D{X: 5, Y: 5}, 0.05, physics.Vector2D{}},
		{"right", physics.Vector2D{}, physics.Vector2D{X: 100}, 0.05, physics.Vector2D{X: 5}},
		{"up_left", physics.Vector2D{X: 10, Y: 10}, physics.Vector2D{X: -10, Y: -30}, 0.5, physics.Vector2D{X: -10, Y: -20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DragVelocity(tt.start, tt.end, tt.scale); got.Distance(tt.want) > 1e-12 {
				t.Errorf("DragVelocity() = %v, want %v", got, tt.want)
			}
		})
	}
}
