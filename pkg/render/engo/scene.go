// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

const (
	sceneType = "SlingshotScene"
	fontURL   = "gomono.ttf"
	fontSize  = 16
)

// Options configures the window.
type Options struct {
	Title    string
	Width    int
	Height   int
	FPSLimit int
}

// GameScene is the engo scene for one game session.
type GameScene struct {
	game     *engine.Game
	controls Controls
	logger   *logging.Logger
	popups   *render.PopupTracker
	status   func() render.Status
	onFrame  engine.FrameFunc

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem

	detach func()
}

// NewGameScene creates a new game scene. status may be nil; onFrame, if
// set, runs after every step.
func NewGameScene(game *engine.Game, controls Controls, status func() render.Status, onFrame engine.FrameFunc, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if status == nil {
		status = func() render.Status { return render.Status{} }
	}
	return &GameScene{
		game:     game,
		controls: controls,
		status:   status,
		onFrame:  onFrame,
		popups:   render.NewPopupTracker(),
		logger:   logger.Component("engo"),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return sceneType
}

// Preload registers the HUD font (required by Engo)
func (scene *GameScene) Preload() {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(gomono.TTF)); err != nil {
		scene.logger.Error(context.Background(), "failed to load HUD font", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	field := scene.game.Config.Field
	scene.camera = NewCameraSystem(field.Width, field.Height)
	scene.camera.SetTarget(field.Center())
	world.AddSystem(scene.camera)

	scene.input = NewInputSystem(scene.camera, scene.game, scene.controls, scene.logger)
	world.AddSystem(scene.input)

	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, NewAssetManager())
	world.AddSystem(&SimulationSystem{scene: scene})

	scene.hud = NewHUDSystem(renderSystem, scene.camera, scene.input, scene.popups,
		scene.loadFont(), scene.game.Config.Physics.LaunchScale)
	world.AddSystem(scene.hud)

	scene.detach = scene.popups.Attach(scene.game.EventBus)
	scene.logger.Info(context.Background(), "scene ready", "star", scene.game.Star.Type.Name)
}

func (scene *GameScene) loadFont() *common.Font {
	font := &common.Font{URL: fontURL, FG: color.White, Size: fontSize}
	if err := font.CreatePreloaded(); err != nil {
		scene.logger.Error(context.Background(), "HUD font unavailable, text disabled", err)
		return nil
	}
	return font
}

// Exit detaches the scene from the game's events.
func (scene *GameScene) Exit() {
	if scene.detach != nil {
		scene.detach()
	}
}

// SimulationSystem advances the game once per engo frame and hands the
// resulting snapshot to the renderer and HUD.
type SimulationSystem struct {
	scene *GameScene
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update steps the simulation.
func (s *SimulationSystem) Update(dt float32) {
	scene := s.scene
	events := scene.game.Step()
	state := scene.game.GetGameState()

	state.Render(scene.renderer)
	scene.hud.SetState(state)
	scene.hud.SetStatus(scene.status())

	if scene.onFrame != nil {
		scene.onFrame(state, events)
	}
}

// Run opens the window and blocks until it is closed.
func Run(scene *GameScene, opts Options) {
	engo.Run(engo.RunOptions{
		Title:          opts.Title,
		Width:          opts.Width,
		Height:         opts.Height,
		FPSLimit:       opts.FPSLimit,
		StandardInputs: true,
	}, scene)
}
