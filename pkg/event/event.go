// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	ScoreChanged      Type = "score_delta"
	PopupRequested    Type = "popup_request"
	PlanetLaunched    Type = "planet_launched"
	PlanetRemoved     Type = "planet_removed"
	OrbitCompleted    Type = "orbit_completed"
	AsteroidDestroyed Type = "asteroid_destroyed"
	GameReset         Type = "game_reset"
)

// Reason explains why the score changed.
type Reason string

const (
	ReasonOrbit             Reason = "orbit"
	ReasonThreading         Reason = "threading"
	ReasonSunCollision      Reason = "sun_collision"
	ReasonPlanetCollision   Reason = "planet_collision"
	ReasonAsteroidCollision Reason = "asteroid_collision"
)

// Cause names what destroyed a planet.
type Cause string

const (
	CauseSun      Cause = "sun"
	CausePlanet   Cause = "planet"
	CauseAsteroid Cause = "asteroid"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler.
type SubscriptionID uint64

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     SubscriptionID
	Type   Type
	Cancel func()
}

type subscriber struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// SubscribeAll registers handler for every listed type. The returned
// function cancels all of the subscriptions.
func (b *Bus) SubscribeAll(handler Handler, types ...Type) func() {
	subs := make([]*Subscription, 0, len(types))
	for _, t := range types {
		subs = append(subs, b.Subscribe(t, handler))
	}
	return func() {
		for _, s := range subs {
			s.Cancel()
		}
	}
}

// Unsubscribe removes a handler for a specific event type
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// Copy so a Publish iterating the old slice is unaffected.
		kept := make([]subscriber, 0, len(subs)-1)
		kept = append(kept, subs[:i]...)
		kept = append(kept, subs[i+1:]...)
		if len(kept) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = kept
		}
		return
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// ScoreDelta reports a change to the player's score.
type ScoreDelta struct {
	BaseEvent
	Amount int
	Reason Reason
}

// NewScoreDelta creates a new score event
func NewScoreDelta(source interface{}, amount int, reason Reason) *ScoreDelta {
	return &ScoreDelta{
		BaseEvent: BaseEvent{EventType: ScoreChanged, Source: source},
		Amount:    amount,
		Reason:    reason,
	}
}

// PopupRequest asks the presentation layer to float text over the field.
type PopupRequest struct {
	BaseEvent
	Position physics.Vector2D
	Text     string
	Amount   int
}

// NewPopupRequest creates a new popup event
func NewPopupRequest(source interface{}, position physics.Vector2D, text string, amount int) *PopupRequest {
	return &PopupRequest{
		BaseEvent: BaseEvent{EventType: PopupRequested, Source: source},
		Position:  position,
		Text:      text,
		Amount:    amount,
	}
}

// PlanetEvent contains information about planet lifecycle events
type PlanetEvent struct {
	BaseEvent
	PlanetID uint64
	Position physics.Vector2D
	Cause    Cause // empty for launches
}

// NewPlanetLaunched creates a launch event
func NewPlanetLaunched(source interface{}, planetID uint64, position physics.Vector2D) *PlanetEvent {
	return &PlanetEvent{
		BaseEvent: BaseEvent{EventType: PlanetLaunched, Source: source},
		PlanetID:  planetID,
		Position:  position,
	}
}

// NewPlanetRemoved creates a removal event
func NewPlanetRemoved(source interface{}, planetID uint64, position physics.Vector2D, cause Cause) *PlanetEvent {
	return &PlanetEvent{
		BaseEvent: BaseEvent{EventType: PlanetRemoved, Source: source},
		PlanetID:  planetID,
		Position:  position,
		Cause:     cause,
	}
}

// OrbitEvent reports a completed revolution.
type OrbitEvent struct {
	BaseEvent
	PlanetID   uint64
	Bonus      int
	Multiplier int
}

// NewOrbitCompleted creates an orbit event
func NewOrbitCompleted(source interface{}, planetID uint64, bonus, multiplier int) *OrbitEvent {
	return &OrbitEvent{
		BaseEvent:  BaseEvent{EventType: OrbitCompleted, Source: source},
		PlanetID:   planetID,
		Bonus:      bonus,
		Multiplier: multiplier,
	}
}

// AsteroidEvent reports an asteroid leaving the belt.
type AsteroidEvent struct {
	BaseEvent
	AsteroidID uint64
	Position   physics.Vector2D
}

// NewAsteroidDestroyed creates an asteroid event
func NewAsteroidDestroyed(source interface{}, asteroidID uint64, position physics.Vector2D) *AsteroidEvent {
	return &AsteroidEvent{
		BaseEvent:  BaseEvent{EventType: AsteroidDestroyed, Source: source},
		AsteroidID: asteroidID,
		Position:   position,
	}
}

// NewGameReset creates a reset event
func NewGameReset(source interface{}) *BaseEvent {
	return &BaseEvent{EventType: GameReset, Source: source}
}
