// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

func newTestScene(t *testing.T, onFrame engine.FrameFunc) (*GameScene, *fakeSink) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Runtime.Seed = 7
	game := engine.NewGame(cfg)

	scene := NewGameScene(game, Controls{}, func() render.Status { return render.Status{Player: "Ada"} }, onFrame, nil)

	// Wire the systems the way Setup does, minus the GL-bound parts.
	sink := newFakeSink()
	scene.camera = NewCameraSystem(cfg.Field.Width, cfg.Field.Height)
	scene.input = NewInputSystem(scene.camera, game, scene.controls, nil)
	scene.renderer = NewEngoRenderer(sink, scene.camera, newAssetManager(stubTexture))
	scene.hud = NewHUDSystem(sink, scene.camera, scene.input, scene.popups, nil, cfg.Physics.LaunchScale)
	scene.detach = scene.popups.Attach(game.EventBus)
	return scene, sink
}

func TestNewGameScene(t *testing.T) {
	scene, _ := newTestScene(t, nil)
	if scene.Type() != sceneType {
		t.Errorf("Type() = %q, want %q", scene.Type(), sceneType)
	}
	if scene.status().Player != "Ada" {
		t.Error("status callback not kept")
	}
	scene.Exit()
}

func TestSimulationSystem_Update(t *testing.T) {
	frames := 0
	scene, sink := newTestScene(t, func(state *engine.GameState, events []event.Event) { frames++ })
	sim := &SimulationSystem{scene: scene}

	sim.Update(1 / 60.0)

	if frames != 1 || scene.game.GetGameState().Tick != 1 {
		t.Errorf("frames=%d tick=%d, want 1 and 1", frames, scene.game.GetGameState().Tick)
	}
	// star + belt + the HUD aim line
	if want := 1 + 20 + 1; len(sink.added) != want {
		t.Errorf("sink holds %d entities, want %d", len(sink.added), want)
	}
	if scene.hud.state == nil || scene.hud.status.Player != "Ada" {
		t.Error("HUD not updated")
	}
}

func TestSimulationSystem_PopupsFromGame(t *testing.T) {
	scene, _ := newTestScene(t, nil)
	defer scene.Exit()

	star := scene.game.Star
	if _, err := scene.game.Launch(engine.LaunchCommand{Origin: star.Position.Add(physics.Vector2D{X: star.Radius})}); err != nil {
		t.Fatal(err)
	}
	(&SimulationSystem{scene: scene}).Update(1 / 60.0)

	popups := scene.popups.Active()
	if len(popups) != 1 || popups[0].Text != "Sun Collision!" {
		t.Errorf("popups = %+v, want one sun collision", popups)
	}
}

func TestGameScene_DragLaunchesIntoGame(t *testing.T) {
	scene, _ := newTestScene(t, nil)
	defer scene.Exit()

	scene.input.handleMouse(engo.Press, engo.MouseButtonLeft, physics.Vector2D{X: 100, Y: 100})
	scene.input.handleMouse(engo.Release, engo.MouseButtonLeft, physics.Vector2D{X: 200, Y: 100})

	state := scene.game.GetGameState()
	if len(state.Planets) != 1 {
		t.Fatalf("planets = %d, want 1", len(state.Planets))
	}
	if v := state.Planets[0].Velocity; v != (physics.Vector2D{X: 5}) {
		t.Errorf("velocity = %v, want (5,0)", v)
	}
}
