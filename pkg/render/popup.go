package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Popup lifecycle.
const (
	PopupLife      = 2.0  // seconds
	PopupRiseSpeed = 30.0 // world units per second
)

// Popup is a floating score label.
type Popup struct {
	Position physics.Vector2D
	Text     string
	Amount   int
	Life     float64
}

// Label returns the text shown on screen, e.g. "Asteroid Hit! -250".
func (p Popup) Label() string {
	if p.Amount < 0 {
		return fmt.Sprintf("%s %d", p.Text, p.Amount)
	}
	return fmt.Sprintf("%s +%d", p.Text, p.Amount)
}

// Opacity fades the popup out over its second half of life.
func (p Popup) Opacity() float64 {
	return min(max(p.Life/2, 0), 1)
}

// Color is red for penalties, green for stable orbit bonuses and white
// for everything else.
func (p Popup) Color() colorful.Color {
	switch {
	case p.Amount < 0:
		return PenaltyRed
	case strings.Contains(p.Text, "stable orbit"):
		return StableGrn
	default:
		return White
	}
}

// PopupTracker keeps the live popups of a view. It is fed from the event
// bus and aged by the render loop, which run on different goroutines.
type PopupTracker struct {
	mu     sync.Mutex
	popups []Popup
}

// NewPopupTracker creates an empty tracker.
func NewPopupTracker() *PopupTracker {
	return &PopupTracker{}
}

// Attach subscribes the tracker to popup requests on bus and returns a
// function that detaches it.
func (t *PopupTracker) Attach(bus *event.Bus) func() {
	return bus.SubscribeAll(t.Handle, event.PopupRequested)
}

// Handle adds a popup for a PopupRequest event and ignores anything else.
func (t *PopupTracker) Handle(e event.Event) {
	req, ok := e.(*event.PopupRequest)
	if !ok {
		return
	}
	t.Add(req.Position, req.Text, req.Amount)
}

// Add starts a new popup at pos.
func (t *PopupTracker) Add(pos physics.Vector2D, text string, amount int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.popups = append(t.popups, Popup{Position: pos, Text: text, Amount: amount, Life: PopupLife})
}

// Update ages every popup by dt seconds, moving it up and dropping the
// expired ones.
func (t *PopupTracker) Update(dt float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	live := t.popups[:0]
	for _, p := range t.popups {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Position.Y -= PopupRiseSpeed * dt
		live = append(live, p)
	}
	t.popups = live
}

// Active returns a copy of the live popups, oldest first.
func (t *PopupTracker) Active() []Popup {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Popup(nil), t.popups...)
}

// Clear drops every popup.
func (t *PopupTracker) Clear() {
	t.mu.Lock()
	t.popups = nil
	t.mu.Unlock()
}
