// Package spawn keeps a population of enemies topped up on a timer.
//
// A Spawner owns nothing about what an enemy *is*; it hands out actor
// ids and lets the game's spawn function build the entity. Death events
// on the bus shrink the live count so the population refills.
package spawn

import (
	"fmt"
	"strings"

	"github.com/soleneko/starfall/internal/actor"
	"github.com/soleneko/starfall/internal/core"
	"github.com/soleneko/starfall/internal/event"
	"github.com/soleneko/starfall/internal/timer"
)

// SpawnedEvent is the payload for event.EnemySpawned.
type SpawnedEvent struct {
	Actor string
}

// Config is the externally supplied spawn surface.
type Config struct {
	// Kind prefixes spawned actor ids ("drone" -> "drone-1", "drone-2").
	Kind string

	// MaxAlive caps the live population; the timer keeps firing at the
	// cap but spawns nothing until a death makes room.
	MaxAlive int

	// EveryTicks is the interval between spawn attempts.
	EveryTicks int
}

// Spawner schedules spawns through the shared tick scheduler and tracks
// the live population via death events.
type Spawner struct {
	cfg     Config
	sched   *timer.Scheduler
	bus     *event.Bus
	spawnFn func(id string)
	deadSub event.Subscription
	alive   int
	seq     int
	armed   bool
}

// New creates a Spawner. The spawn function is called with a fresh actor
// id each time the population has room. Call Arm to start the timer.
func New(cfg Config, sched *timer.Scheduler, bus *event.Bus, spawnFn func(id string)) *Spawner {
	cfg.MaxAlive = core.Max(1, cfg.MaxAlive)
	cfg.EveryTicks = core.Max(1, cfg.EveryTicks)

	s := &Spawner{
		cfg:     cfg,
		sched:   sched,
		bus:     bus,
		spawnFn: spawnFn,
	}
	if bus != nil {
		s.deadSub = bus.Subscribe(event.Died, s.onDeath)
	}
	return s
}

// Arm starts (or restarts) the spawn timer.
func (s *Spawner) Arm() {
	s.armed = true
	s.sched.After(s.key(), s.cfg.EveryTicks, s.onTimer)
}

// Stop cancels the pending spawn. Death tracking stays active.
func (s *Spawner) Stop() {
	s.armed = false
	s.sched.Cancel(s.key())
}

// Close releases the death subscription and stops the timer.
func (s *Spawner) Close() {
	s.Stop()
	s.deadSub.Cancel()
}

// SetInterval changes the spawn interval. The pending spawn is cancelled
// and rescheduled on the new interval.
func (s *Spawner) SetInterval(ticks int) {
	s.cfg.EveryTicks = core.Max(1, ticks)
	if s.armed {
		// After on the same key replaces the pending callback
		s.sched.After(s.key(), s.cfg.EveryTicks, s.onTimer)
	}
}

// Interval returns the current spawn interval in ticks.
func (s *Spawner) Interval() int {
	return s.cfg.EveryTicks
}

// Alive returns the current live population.
func (s *Spawner) Alive() int {
	return s.alive
}

// Spawned returns the total number of spawns so far.
func (s *Spawner) Spawned() int {
	return s.seq
}

// Owns reports whether the given actor id was issued by this spawner.
func (s *Spawner) Owns(id string) bool {
	return strings.HasPrefix(id, s.cfg.Kind+"-")
}

func (s *Spawner) key() string {
	return "spawn." + s.cfg.Kind
}

func (s *Spawner) onTimer() {
	if s.alive < s.cfg.MaxAlive {
		s.seq++
		id := fmt.Sprintf("%s-%d", s.cfg.Kind, s.seq)
		s.alive++
		if s.spawnFn != nil {
			s.spawnFn(id)
		}
		if s.bus != nil {
			s.bus.Publish(event.Event{
				Type:    event.EnemySpawned,
				Payload: SpawnedEvent{Actor: id},
			})
		}
	}
	if s.armed {
		s.sched.After(s.key(), s.cfg.EveryTicks, s.onTimer)
	}
}

func (s *Spawner) onDeath(e event.Event) {
	death, ok := e.Payload.(actor.DeathEvent)
	if !ok || !s.Owns(death.Actor) {
		return
	}
	if s.alive > 0 {
		s.alive--
	}
}
