package spawn

import (
	"testing"

	"github.com/soleneko/starfall/internal/actor"
	"github.com/soleneko/starfall/internal/event"
	"github.com/soleneko/starfall/internal/timer"
)

func runTicks(s *timer.Scheduler, n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

func TestSpawnerSpawnsOnInterval(t *testing.T) {
	sched := timer.NewScheduler()
	bus := event.NewBus()

	var ids []string
	sp := New(Config{Kind: "drone", MaxAlive: 10, EveryTicks: 3}, sched, bus, func(id string) {
		ids = append(ids, id)
	})
	sp.Arm()

	runTicks(sched, 2)
	if len(ids) != 0 {
		t.Fatalf("Spawned early: %v", ids)
	}

	runTicks(sched, 1)
	if len(ids) != 1 || ids[0] != "drone-1" {
		t.Fatalf("Expected [drone-1], got %v", ids)
	}

	runTicks(sched, 6)
	if len(ids) != 3 {
		t.Errorf("Expected 3 spawns after 9 ticks, got %d", len(ids))
	}
	if sp.Alive() != 3 {
		t.Errorf("Alive = %d, expected 3", sp.Alive())
	}
}

func TestSpawnerRespectsCap(t *testing.T) {
	sched := timer.NewScheduler()
	bus := event.NewBus()

	spawned := 0
	sp := New(Config{Kind: "drone", MaxAlive: 2, EveryTicks: 1}, sched, bus, func(string) {
		spawned++
	})
	sp.Arm()

	runTicks(sched, 10)
	if spawned != 2 {
		t.Errorf("Cap of 2 should limit spawns, got %d", spawned)
	}
	if sp.Alive() != 2 {
		t.Errorf("Alive = %d, expected 2", sp.Alive())
	}
}

func TestSpawnerDeathMakesRoom(t *testing.T) {
	sched := timer.NewScheduler()
	bus := event.NewBus()

	spawned := 0
	sp := New(Config{Kind: "drone", MaxAlive: 1, EveryTicks: 1}, sched, bus, func(string) {
		spawned++
	})
	sp.Arm()

	runTicks(sched, 3)
	if spawned != 1 {
		t.Fatalf("Expected 1 spawn at cap, got %d", spawned)
	}

	// A matching death decrements the live count; the next tick refills
	bus.Publish(event.Event{Type: event.Died, Payload: actor.DeathEvent{Actor: "drone-1"}})
	if sp.Alive() != 0 {
		t.Errorf("Alive after death = %d, expected 0", sp.Alive())
	}

	runTicks(sched, 1)
	if spawned != 2 {
		t.Errorf("Expected refill spawn, got %d total", spawned)
	}
}

func TestSpawnerIgnoresForeignDeaths(t *testing.T) {
	sched := timer.NewScheduler()
	bus := event.NewBus()

	sp := New(Config{Kind: "drone", MaxAlive: 5, EveryTicks: 1}, sched, bus, func(string) {})
	sp.Arm()
	runTicks(sched, 2)

	before := sp.Alive()
	bus.Publish(event.Event{Type: event.Died, Payload: actor.DeathEvent{Actor: "ship"}})
	if sp.Alive() != before {
		t.Errorf("Foreign death changed live count: %d -> %d", before, sp.Alive())
	}
}

func TestSpawnerSetIntervalReplacesPending(t *testing.T) {
	sched := timer.NewScheduler()
	bus := event.NewBus()

	spawned := 0
	sp := New(Config{Kind: "drone", MaxAlive: 10, EveryTicks: 10}, sched, bus, func(string) {
		spawned++
	})
	sp.Arm()
	runTicks(sched, 5)

	// Changing the interval cancels the pending spawn and restarts the
	// countdown from now.
	sp.SetInterval(2)
	runTicks(sched, 1)
	if spawned != 0 {
		t.Fatalf("Replaced spawn fired early, got %d", spawned)
	}
	runTicks(sched, 1)
	if spawned != 1 {
		t.Errorf("Expected spawn 2 ticks after SetInterval, got %d", spawned)
	}
}

func TestSpawnerStop(t *testing.T) {
	sched := timer.NewScheduler()
	bus := event.NewBus()

	spawned := 0
	sp := New(Config{Kind: "drone", MaxAlive: 10, EveryTicks: 1}, sched, bus, func(string) {
		spawned++
	})
	sp.Arm()
	runTicks(sched, 2)
	sp.Stop()
	runTicks(sched, 5)

	if spawned != 2 {
		t.Errorf("Stop should halt spawning, got %d", spawned)
	}
}
