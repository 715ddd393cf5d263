package render

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// hudRows is the number of screen rows below the playfield: game stats
// on the first, session status on the second.
const hudRows = 2

// Glyphs used on the playfield.
const (
	glyphStar     = '*'
	glyphPlanet   = 'o'
	glyphRing     = '-'
	glyphAsteroid = '#'
	glyphDrag     = '.'
)

// TerminalRenderer draws the game into a tcell screen, scaling the world
// field onto whatever cell grid the terminal offers.
type TerminalRenderer struct {
	screen      tcell.Screen
	field       config.FieldConfig
	launchScale float64
	popups      *PopupTracker
	background  colorful.Color

	mu        sync.Mutex
	state     *engine.GameState
	status    Status
	dragStart physics.Vector2D
	dragEnd   physics.Vector2D
	dragging  bool
}

// NewTerminalRenderer creates a renderer on an initialized screen. popups
// may be nil.
func NewTerminalRenderer(screen tcell.Screen, cfg *config.GameConfig, popups *PopupTracker) *TerminalRenderer {
	if popups == nil {
		popups = NewPopupTracker()
	}
	return &TerminalRenderer{
		screen:      screen,
		field:       cfg.Field,
		launchScale: cfg.Physics.LaunchScale,
		popups:      popups,
		background:  Black,
	}
}

// Popups returns the tracker the renderer draws from.
func (r *TerminalRenderer) Popups() *PopupTracker {
	return r.popups
}

// SetStatus replaces the extra HUD fields.
func (r *TerminalRenderer) SetStatus(s Status) {
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
}

// SetDrag shows an aiming line from start to end, both in world units.
func (r *TerminalRenderer) SetDrag(start, end physics.Vector2D) {
	r.mu.Lock()
	r.dragStart, r.dragEnd, r.dragging = start, end, true
	r.mu.Unlock()
}

// ClearDrag hides the aiming line.
func (r *TerminalRenderer) ClearDrag() {
	r.mu.Lock()
	r.dragging = false
	r.mu.Unlock()
}

// Draw renders a full frame for state.
func (r *TerminalRenderer) Draw(state *engine.GameState) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
	state.Render(r)
}

// playfield returns the cell grid used for the world.
func (r *TerminalRenderer) playfield() (cols, rows int) {
	cols, rows = r.screen.Size()
	return cols, max(rows-hudRows, 1)
}

// WorldToScreen maps a world position to a cell.
func (r *TerminalRenderer) WorldToScreen(pos physics.Vector2D) (int, int) {
	cols, rows := r.playfield()
	x := int(math.Floor(pos.X / r.field.Width * float64(cols)))
	y := int(math.Floor(pos.Y / r.field.Height * float64(rows)))
	return x, y
}

// ScreenToWorld maps a cell to the world position of its center.
func (r *TerminalRenderer) ScreenToWorld(x, y int) physics.Vector2D {
	cols, rows := r.playfield()
	return physics.Vector2D{
		X: (float64(x) + 0.5) * r.field.Width / float64(cols),
		Y: (float64(y) + 0.5) * r.field.Height / float64(rows),
	}
}

func (r *TerminalRenderer) inPlayfield(x, y int) bool {
	cols, rows := r.playfield()
	return x >= 0 && x < cols && y >= 0 && y < rows
}

func (r *TerminalRenderer) style(c colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(TcellColor(c)).Background(TcellColor(r.background))
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if r.inPlayfield(x, y) {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// fillCircle paints every cell whose center lies inside the circle, and at
// least the cell holding the center.
func (r *TerminalRenderer) fillCircle(c physics.Circle, ch rune, style tcell.Style) {
	x0, y0 := r.WorldToScreen(c.Center.Sub(physics.Vector2D{X: c.Radius, Y: c.Radius}))
	x1, y1 := r.WorldToScreen(c.Center.Add(physics.Vector2D{X: c.Radius, Y: c.Radius}))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if r.ScreenToWorld(x, y).Distance(c.Center) <= c.Radius {
				r.set(x, y, ch, style)
			}
		}
	}
	cx, cy := r.WorldToScreen(c.Center)
	r.set(cx, cy, ch, style)
}

// Clear implements entity.Renderer.
func (r *TerminalRenderer) Clear() {
	r.screen.SetStyle(r.style(White))
	r.screen.Clear()
}

// RenderStar implements entity.Renderer.
func (r *TerminalRenderer) RenderStar(star *entity.Star) {
	r.fillCircle(star.GetCollider(), glyphStar, r.style(ParseColor(star.Color)))
}

// RenderPlanet implements entity.Renderer. Rings are drawn either side of
// the disc, faded toward the background.
func (r *TerminalRenderer) RenderPlanet(planet *entity.Planet) {
	if planet.Template.HasRings {
		ring := Fade(ParseColor(planet.Template.RingColor), r.background, entity.RingAlpha*2)
		x, y := r.WorldToScreen(planet.Position)
		cols, _ := r.playfield()
		span := max(1, int(math.Ceil(planet.Radius*2/r.field.Width*float64(cols))))
		for dx := 1; dx <= span; dx++ {
			r.set(x-dx, y, glyphRing, r.style(ring))
			r.set(x+dx, y, glyphRing, r.style(ring))
		}
	}
	r.fillCircle(planet.GetCollider(), glyphPlanet, r.style(ParseColor(planet.Color)))
}

// RenderAsteroid implements entity.Renderer.
func (r *TerminalRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	r.fillCircle(asteroid.GetCollider(), glyphAsteroid, r.style(ParseColor(asteroid.Color)))
}

// Present implements entity.Renderer. It overlays the aiming line, popups
// and the HUD before showing the frame.
func (r *TerminalRenderer) Present() {
	r.mu.Lock()
	state, status := r.state, r.status
	dragging, start, end := r.dragging, r.dragStart, r.dragEnd
	r.mu.Unlock()

	if dragging {
		r.drawLine(start, end, r.style(Fade(White, r.background, 0.6)))
	}
	r.drawPopups()
	r.drawHUD(state, status, dragging, start, end)
	r.screen.Show()
}

// drawLine steps along the segment one cell at a time.
func (r *TerminalRenderer) drawLine(from, to physics.Vector2D, style tcell.Style) {
	x0, y0 := r.WorldToScreen(from)
	x1, y1 := r.WorldToScreen(to)
	steps := max(abs(x1-x0), abs(y1-y0))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		r.set(x, y, glyphDrag, style)
	}
}

func (r *TerminalRenderer) drawPopups() {
	for _, p := range r.popups.Active() {
		label := p.Label()
		x, y := r.WorldToScreen(p.Position)
		style := r.style(Fade(p.Color(), r.background, p.Opacity())).Bold(true)
		r.drawText(x-len(label)/2, y, label, style, true)
	}
}

func (r *TerminalRenderer) drawHUD(state *engine.GameState, status Status, dragging bool, start, end physics.Vector2D) {
	cols, rows := r.screen.Size()
	style := r.style(White).Reverse(true)
	for y := rows - hudRows; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if state == nil {
		return
	}

	r.drawText(0, rows-2, " "+StatsLine(state), style, false)

	launch := -1.0
	if dragging {
		launch = engine.DragVelocity(start, end, r.launchScale).Length()
	}
	r.drawText(0, rows-1, " "+StatusLine(status, launch), style, false)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style, clip bool) {
	cols, _ := r.screen.Size()
	for _, ch := range text {
		if x >= cols {
			return
		}
		if clip {
			r.set(x, y, ch, style)
		} else if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
