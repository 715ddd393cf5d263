// pkg/render/engo/hud.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

// HUD layout in window pixels.
const (
	hudMargin     = 10
	hudLineHeight = 22
	popupCharW    = 8
)

// HUDSystem draws the stats and status lines, floating score popups and
// the aiming line while the player drags.
type HUDSystem struct {
	sink   SpriteSink
	camera *CameraSystem
	input  *InputSystem
	popups *render.PopupTracker
	font   *common.Font

	state       *engine.GameState
	status      render.Status
	launchScale float64

	stats, info *sprite
	popupTexts  []*sprite
	aim         *sprite
}

// NewHUDSystem creates a new HUD system. Without a font only the aiming
// line is drawn.
func NewHUDSystem(sink SpriteSink, camera *CameraSystem, input *InputSystem, popups *render.PopupTracker, font *common.Font, launchScale float64) *HUDSystem {
	hud := &HUDSystem{
		sink:        sink,
		camera:      camera,
		input:       input,
		popups:      popups,
		font:        font,
		launchScale: launchScale,
	}

	hud.aim = hud.newSprite(common.Rectangle{})
	hud.aim.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 160}
	hud.aim.Hidden = true

	if font != nil {
		hud.stats = hud.newSprite(common.Text{Font: font})
		hud.info = hud.newSprite(common.Text{Font: font})
		hud.stats.SetShader(common.TextHUDShader)
		hud.info.SetShader(common.TextHUDShader)
	}
	return hud
}

func (hud *HUDSystem) newSprite(d common.Drawable) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.Drawable = d
	s.Color = color.White
	s.SetZIndex(layerHUD)
	hud.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// SetState sets the snapshot shown on the next update.
func (hud *HUDSystem) SetState(state *engine.GameState) {
	hud.state = state
}

// SetStatus sets the session status line.
func (hud *HUDSystem) SetStatus(status render.Status) {
	hud.status = status
}

// Update ages popups and refreshes every HUD element.
func (hud *HUDSystem) Update(dt float32) {
	hud.popups.Update(float64(dt))
	launch := hud.updateAim()

	if hud.font == nil || hud.state == nil {
		return
	}

	hud.setText(hud.stats, render.StatsLine(hud.state), engo.Point{X: hudMargin, Y: hudMargin})
	hud.setText(hud.info, render.StatusLine(hud.status, launch),
		engo.Point{X: hudMargin, Y: hudMargin + hudLineHeight})
	hud.updatePopups()
}

// updateAim positions the aiming line and returns the launch speed it
// implies, or -1 when the player is not dragging.
func (hud *HUDSystem) updateAim() float64 {
	start, current, ok := hud.input.Aim()
	hud.aim.Hidden = !ok
	if !ok {
		return -1
	}

	from := hud.camera.WorldToScreen(start)
	delta := hud.camera.WorldToScreen(current).Sub(from)
	hud.aim.Position = engo.Point{X: float32(from.X), Y: float32(from.Y)}
	hud.aim.Width = float32(delta.Length())
	hud.aim.Height = 2
	hud.aim.Rotation = float32(math.Atan2(delta.Y, delta.X) * 180 / math.Pi)

	return engine.DragVelocity(start, current, hud.launchScale).Length()
}

func (hud *HUDSystem) updatePopups() {
	active := hud.popups.Active()
	for len(hud.popupTexts) < len(active) {
		hud.popupTexts = append(hud.popupTexts, hud.newSprite(common.Text{Font: hud.font}))
	}

	for i, s := range hud.popupTexts {
		if i >= len(active) {
			s.Hidden = true
			continue
		}
		p := active[i]
		label := p.Label()
		at := hud.camera.WorldToScreen(p.Position.Sub(physics.Vector2D{X: float64(len(label) * popupCharW / 2)}))
		hud.setText(s, label, engo.Point{X: float32(at.X), Y: float32(at.Y)})
		s.Color = popupColor(p)
		s.Hidden = false
	}
}

func (hud *HUDSystem) setText(s *sprite, text string, at engo.Point) {
	s.Drawable = common.Text{Font: hud.font, Text: text}
	s.Position = at
}

// popupColor applies the popup's fade as alpha.
func popupColor(p render.Popup) color.NRGBA {
	return toNRGBA(p.Color(), p.Opacity())
}
