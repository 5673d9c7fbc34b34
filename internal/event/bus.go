// Package event provides a small synchronous observer bus used to wire
// game components together (health, progression, spawning, HUD) without
// direct references between them.
//
// Dispatch is ordered and synchronous: Publish invokes every handler
// subscribed to the event's type, in registration order, before returning.
// The bus is explicitly constructed and passed to the components that need
// it; there is no package-level instance.
package event

// Type identifies a kind of event (e.g. "health.changed").
type Type string

// Event types published by the core game components.
const (
	DamageTaken    Type = "health.damage_taken"
	HealthChanged  Type = "health.changed"
	Died           Type = "health.died"
	LevelCompleted Type = "level.completed"
	LevelChanged   Type = "level.changed"
	LevelStarted   Type = "level.started"
	EnemySpawned   Type = "spawn.enemy"
)

// Event is a published notification. Payload contents are defined by the
// publishing package.
type Event struct {
	Type    Type
	Payload any
}

// Handler receives published events.
type Handler func(Event)

// Subscription identifies a single registered handler and can cancel it.
type Subscription struct {
	bus *Bus
	typ Type
	id  int
}

// Cancel removes the handler from the bus. Cancelling twice is a no-op.
// Cancelling during dispatch takes effect for subsequent publishes; the
// in-flight dispatch still delivers to the handler set captured at
// Publish time.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.remove(s.typ, s.id)
}

type registration struct {
	id int
	fn Handler
}

// Bus dispatches events to subscribed handlers.
// It is not safe for concurrent use; all game state lives on the single
// simulation goroutine, matching the platform's tick-driven model.
type Bus struct {
	handlers map[Type][]registration
	nextID   int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
	}
}

// Subscribe registers a handler for the given event type.
func (b *Bus) Subscribe(t Type, fn Handler) Subscription {
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], registration{id: id, fn: fn})
	return Subscription{bus: b, typ: t, id: id}
}

// Publish delivers the event synchronously to all handlers subscribed to
// its type, in registration order. Publishing with no subscribers is a
// no-op.
func (b *Bus) Publish(e Event) {
	regs := b.handlers[e.Type]
	if len(regs) == 0 {
		return
	}
	// Copy so handlers may subscribe/cancel without disturbing this dispatch.
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)
	for _, r := range snapshot {
		r.fn(e)
	}
}

// remove deletes the registration with the given id, preserving order.
func (b *Bus) remove(t Type, id int) {
	regs := b.handlers[t]
	for i, r := range regs {
		if r.id == id {
			b.handlers[t] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}
