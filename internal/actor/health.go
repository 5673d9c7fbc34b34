// Package actor holds per-entity gameplay state shared by all games.
// An actor is anything with a health pool: the player's ship, a patrol
// drone, an asteroid hulk.
package actor

import (
	"github.com/soleneko/starfall/internal/core"
	"github.com/soleneko/starfall/internal/event"
)

// HealthEvent is the payload for event.HealthChanged.
type HealthEvent struct {
	Actor   string
	Current int
	Max     int
}

// DamageEvent is the payload for event.DamageTaken.
type DamageEvent struct {
	Actor  string
	Amount int
}

// DeathEvent is the payload for event.Died. It fires exactly once per
// actor, on the transition to zero health.
type DeathEvent struct {
	Actor string
}

// Health tracks a bounded health pool for one actor.
//
// The pool has two states: alive (current > 0) and dead (current == 0).
// The transition is one-way; once dead, damage and healing are ignored.
// All inputs are clamped rather than rejected, so no operation fails.
//
// Mutations publish notifications on the injected bus, synchronously and
// in a fixed order (damage-taken, then health-changed, then died). A nil
// bus disables notifications.
type Health struct {
	id      string
	bus     *event.Bus
	max     int
	current int
}

// NewHealth creates a full health pool for the named actor and announces
// the initial value. max is clamped to at least 1.
func NewHealth(id string, max int, bus *event.Bus) *Health {
	h := &Health{
		id:  id,
		bus: bus,
		max: core.Max(1, max),
	}
	h.current = h.max
	h.publishChanged()
	return h
}

// ID returns the owning actor's identifier.
func (h *Health) ID() string {
	return h.id
}

// Current returns the current health value.
func (h *Health) Current() int {
	return h.current
}

// Max returns the maximum health value.
func (h *Health) Max() int {
	return h.max
}

// Dead reports whether the pool has reached zero.
func (h *Health) Dead() bool {
	return h.current == 0
}

// Fraction returns current/max in [0, 1], for proportional HUD bars.
func (h *Health) Fraction() float64 {
	return float64(h.current) / float64(h.max)
}

// Damage reduces health by amount, never below zero. A no-op when
// already dead. Crossing to zero publishes a death notification after
// the damage and change notifications.
func (h *Health) Damage(amount int) {
	if h.Dead() {
		return
	}
	amount = core.Max(0, amount)
	h.current = core.Max(0, h.current-amount)

	if h.bus != nil {
		h.bus.Publish(event.Event{
			Type:    event.DamageTaken,
			Payload: DamageEvent{Actor: h.id, Amount: amount},
		})
	}
	h.publishChanged()

	if h.current == 0 && h.bus != nil {
		h.bus.Publish(event.Event{
			Type:    event.Died,
			Payload: DeathEvent{Actor: h.id},
		})
	}
}

// Heal raises health by amount, capped at max. A no-op when dead; death
// is terminal by design, not a recoverable condition.
func (h *Health) Heal(amount int) {
	if h.Dead() {
		return
	}
	amount = core.Max(0, amount)
	h.current = core.Min(h.max, h.current+amount)
	h.publishChanged()
}

// SetMax changes the maximum, clamping current down if it now exceeds
// the new cap. newMax is clamped to at least 1.
func (h *Health) SetMax(newMax int) {
	h.max = core.Max(1, newMax)
	if h.current > h.max {
		h.current = h.max
	}
	h.publishChanged()
}

// RestoreFull refills health to max.
func (h *Health) RestoreFull() {
	h.current = h.max
	h.publishChanged()
}

func (h *Health) publishChanged() {
	if h.bus == nil {
		return
	}
	h.bus.Publish(event.Event{
		Type:    event.HealthChanged,
		Payload: HealthEvent{Actor: h.id, Current: h.current, Max: h.max},
	})
}
