// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// CameraSystem maps the world field onto the window. It fits the field to
// the window, lets the player zoom toward the star with the scroll wheel,
// and eases the view center toward its target.
type CameraSystem struct {
	// Target to follow
	target    physics.Vector2D
	targetSet bool

	// Camera properties
	zoom    float32
	minZoom float32
	maxZoom float32

	// Smooth following
	followSpeed float32
	smoothing   bool

	// Current camera state
	currentPos physics.Vector2D

	// World field and window sizes
	fieldW, fieldH   float64
	screenW, screenH float64
}

// NewCameraSystem creates a camera showing a fieldW x fieldH world in a
// window of the same size.
func NewCameraSystem(fieldW, fieldH float64) *CameraSystem {
	return &CameraSystem{
		zoom:        1.0,
		minZoom:     0.5,
		maxZoom:     3.0,
		followSpeed: 2.0,
		smoothing:   true,
		fieldW:      fieldW,
		fieldH:      fieldH,
		screenW:     fieldW,
		screenH:     fieldH,
		currentPos:  physics.Vector2D{X: fieldW / 2, Y: fieldH / 2},
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update follows the window size, handles zoom input and eases toward the
// target.
func (cs *CameraSystem) Update(dt float32) {
	if w, h := engo.GameWidth(), engo.GameHeight(); w > 0 && h > 0 {
		cs.SetScreenSize(float64(w), float64(h))
	}

	cs.handleZoomInput()

	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	scrollY := engo.Input.Mouse.ScrollY
	if scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}

	if engo.Input.Button(buttonResetZoom).JustPressed() {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition smoothly moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	step := min(float64(cs.followSpeed)*float64(dt), 1)
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Scale(step))
}

// SetScreenSize sets the window size in game pixels.
func (cs *CameraSystem) SetScreenSize(w, h float64) {
	cs.screenW, cs.screenH = w, h
}

// SetTarget sets the position the view centers on.
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	cs.target = target
	cs.targetSet = true
	if !cs.smoothing {
		cs.currentPos = target
	}
}

// ClearTarget clears the camera target
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

// clampZoom ensures zoom is within valid bounds
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	return max(cs.minZoom, min(zoom, cs.maxZoom))
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() physics.Vector2D {
	return cs.currentPos
}

// Scale returns how many window pixels one world unit covers.
func (cs *CameraSystem) Scale() float64 {
	fit := min(cs.screenW/cs.fieldW, cs.screenH/cs.fieldH)
	return fit * float64(cs.zoom)
}

// WorldToScreen converts world coordinates to screen coordinates
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) physics.Vector2D {
	rel := worldPos.Sub(cs.currentPos).Scale(cs.Scale())
	return physics.Vector2D{X: rel.X + cs.screenW/2, Y: rel.Y + cs.screenH/2}
}

// ScreenToWorld converts screen coordinates to world coordinates
func (cs *CameraSystem) ScreenToWorld(screenPos physics.Vector2D) physics.Vector2D {
	rel := physics.Vector2D{X: screenPos.X - cs.screenW/2, Y: screenPos.Y - cs.screenH/2}
	return rel.Scale(1 / cs.Scale()).Add(cs.currentPos)
}
