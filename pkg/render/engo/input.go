// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Button names registered by SetupInputBindings.
const (
	buttonReset     = "reset"
	buttonMusic     = "music"
	buttonNextTrack = "nextTrack"
	buttonQuit      = "quit"
	buttonResetZoom = "resetZoom"
)

// Launcher starts a planet from a drag gesture. *engine.Game is one.
type Launcher interface {
	LaunchFromDrag(start, end physics.Vector2D) (entity.ID, error)
}

// Controls are the actions bound to keys. Nil entries are ignored.
type Controls struct {
	Reset       func()
	ToggleMusic func()
	NextTrack   func()
	Quit        func()
}

// DragTracker follows a single press-drag-release pointer gesture in
// world coordinates.
type DragTracker struct {
	start   physics.Vector2D
	current physics.Vector2D
	active  bool
}

// Press starts a gesture at pos.
func (d *DragTracker) Press(pos physics.Vector2D) {
	d.start, d.current, d.active = pos, pos, true
}

// Move updates the current end of an active gesture.
func (d *DragTracker) Move(pos physics.Vector2D) {
	if d.active {
		d.current = pos
	}
}

// Release ends the gesture at pos. ok is false if no gesture was active.
func (d *DragTracker) Release(pos physics.Vector2D) (start, end physics.Vector2D, ok bool) {
	if !d.active {
		return physics.Vector2D{}, physics.Vector2D{}, false
	}
	d.active = false
	return d.start, pos, true
}

// Active reports the gesture in progress, if any.
func (d *DragTracker) Active() (start, current physics.Vector2D, ok bool) {
	return d.start, d.current, d.active
}

// InputSystem turns mouse drags into launches and keys into controls.
type InputSystem struct {
	camera   *CameraSystem
	launcher Launcher
	controls Controls
	drag     DragTracker
	logger   *logging.Logger
}

// NewInputSystem creates a new input system
func NewInputSystem(camera *CameraSystem, launcher Launcher, controls Controls, logger *logging.Logger) *InputSystem {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &InputSystem{
		camera:   camera,
		launcher: launcher,
		controls: controls,
		logger:   logger.Component("input"),
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update processes input
func (is *InputSystem) Update(dt float32) {
	mouse := engo.Input.Mouse
	pos := is.camera.ScreenToWorld(physics.Vector2D{X: float64(mouse.X), Y: float64(mouse.Y)})
	is.handleMouse(mouse.Action, mouse.Button, pos)

	is.handleKeys(func(name string) bool {
		return engo.Input.Button(name).JustPressed()
	})
}

// handleMouse feeds one mouse event, in world coordinates, to the drag
// tracker and launches on release.
func (is *InputSystem) handleMouse(action engo.Action, button engo.MouseButton, pos physics.Vector2D) {
	switch action {
	case engo.Press:
		if button == engo.MouseButtonLeft {
			is.drag.Press(pos)
		}
	case engo.Move:
		is.drag.Move(pos)
	case engo.Release:
		start, end, ok := is.drag.Release(pos)
		if !ok {
			return
		}
		if _, err := is.launcher.LaunchFromDrag(start, end); err != nil {
			is.logger.Warn(context.Background(), "launch rejected", "error", err.Error())
		}
	}
}

// handleKeys runs the control for every button pressed reports.
func (is *InputSystem) handleKeys(pressed func(name string) bool) {
	bindings := []struct {
		button string
		action func()
	}{
		{buttonReset, is.controls.Reset},
		{buttonMusic, is.controls.ToggleMusic},
		{buttonNextTrack, is.controls.NextTrack},
		{buttonQuit, is.controls.Quit},
	}
	for _, b := range bindings {
		if b.action != nil && pressed(b.button) {
			b.action()
		}
	}
}

// Aim returns the drag in progress, if any.
func (is *InputSystem) Aim() (start, current physics.Vector2D, ok bool) {
	return is.drag.Active()
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonReset, engo.KeyR)
	engo.Input.RegisterButton(buttonMusic, engo.KeyM)
	engo.Input.RegisterButton(buttonNextTrack, engo.KeyN)
	engo.Input.RegisterButton(buttonQuit, engo.KeyQ, engo.KeyEscape)
	engo.Input.RegisterButton(buttonResetZoom, engo.KeyZ)
}
