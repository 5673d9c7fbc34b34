package progress

import (
	"testing"

	"github.com/soleneko/starfall/internal/event"
	"github.com/soleneko/starfall/internal/scene"
)

type eventLog struct {
	entries []LevelEvent
	types   []event.Type
}

func watch(bus *event.Bus) *eventLog {
	l := &eventLog{}
	for _, typ := range []event.Type{event.LevelCompleted, event.LevelChanged, event.LevelStarted} {
		bus.Subscribe(typ, func(e event.Event) {
			l.types = append(l.types, e.Type)
			l.entries = append(l.entries, e.Payload.(LevelEvent))
		})
	}
	return l
}

func newTracker(bus *event.Bus) *Tracker {
	cfg := Config{
		StartLevel:       1,
		ScorePerLevel:    1000,
		ScoreProgression: true,
	}
	return New(cfg, nil, nil, bus, nil)
}

func TestTrackerStart(t *testing.T) {
	bus := event.NewBus()
	tr := newTracker(bus)
	l := watch(bus)

	tr.Start(1)

	if tr.Level() != 1 || tr.Threshold() != 0 {
		t.Errorf("Start(1): level=%d threshold=%d", tr.Level(), tr.Threshold())
	}
	if len(l.types) != 2 || l.types[0] != event.LevelChanged || l.types[1] != event.LevelStarted {
		t.Errorf("Expected [changed started], got %v", l.types)
	}
}

func TestTrackerStartClampsLevel(t *testing.T) {
	tr := newTracker(nil)

	tr.Start(-3)
	if tr.Level() != 1 {
		t.Errorf("Start(-3) should clamp to 1, got %d", tr.Level())
	}
}

func TestTrackerScoreBelowThreshold(t *testing.T) {
	bus := event.NewBus()
	tr := newTracker(bus)
	tr.Start(1)
	l := watch(bus)

	tr.ReportScore(999)

	if tr.Level() != 1 {
		t.Errorf("999 points should not level up, got level %d", tr.Level())
	}
	if len(l.types) != 0 {
		t.Errorf("No events expected, got %v", l.types)
	}
}

func TestTrackerScoreCrossesThreshold(t *testing.T) {
	bus := event.NewBus()
	tr := newTracker(bus)
	tr.Start(1)
	l := watch(bus)

	tr.ReportScore(1000)

	if tr.Level() != 2 || tr.Threshold() != 1000 {
		t.Errorf("Expected level=2 threshold=1000, got level=%d threshold=%d", tr.Level(), tr.Threshold())
	}
	want := []event.Type{event.LevelCompleted, event.LevelChanged, event.LevelStarted}
	if len(l.types) != len(want) {
		t.Fatalf("Expected %v, got %v", want, l.types)
	}
	for i, typ := range want {
		if l.types[i] != typ {
			t.Errorf("Event %d = %v, expected %v", i, l.types[i], typ)
		}
	}
	if l.entries[0].Level != 1 {
		t.Errorf("Completed event should carry the finished level, got %d", l.entries[0].Level)
	}
	if l.entries[1].Level != 2 {
		t.Errorf("Changed event should carry the new level, got %d", l.entries[1].Level)
	}
}

func TestTrackerMultiLevelJump(t *testing.T) {
	bus := event.NewBus()
	tr := newTracker(bus)
	tr.Start(1)
	l := watch(bus)

	// One large delta spans three thresholds; each level gets its own
	// full notification sequence.
	tr.ReportScore(3500)

	if tr.Level() != 4 || tr.Threshold() != 3000 {
		t.Errorf("Expected level=4 threshold=3000, got level=%d threshold=%d", tr.Level(), tr.Threshold())
	}
	completed := 0
	for _, typ := range l.types {
		if typ == event.LevelCompleted {
			completed++
		}
	}
	if completed != 3 {
		t.Errorf("Expected 3 completions, got %d", completed)
	}
}

func TestTrackerScoreProgressionDisabled(t *testing.T) {
	cfg := Config{StartLevel: 1, ScorePerLevel: 100}
	tr := New(cfg, nil, nil, nil, nil)
	tr.Start(1)

	tr.ReportScore(100000)

	if tr.Level() != 1 {
		t.Errorf("Disabled progression should ignore scores, got level %d", tr.Level())
	}
}

func TestTrackerGoToLevel(t *testing.T) {
	bus := event.NewBus()
	tr := newTracker(bus)
	tr.Start(1)
	l := watch(bus)

	tr.GoToLevel(5)

	if tr.Level() != 5 || tr.Threshold() != 4000 {
		t.Errorf("Expected level=5 threshold=4000, got level=%d threshold=%d", tr.Level(), tr.Threshold())
	}
	for _, typ := range l.types {
		if typ == event.LevelCompleted {
			t.Error("GoToLevel is a jump, not a completion")
		}
	}

	tr.GoToLevel(0)
	if tr.Level() != 1 {
		t.Errorf("GoToLevel(0) should clamp to 1, got %d", tr.Level())
	}
}

func TestTrackerResetIdempotent(t *testing.T) {
	tr := newTracker(nil)
	tr.Start(1)
	tr.ReportScore(5000)

	tr.Reset()
	level1, threshold1 := tr.Level(), tr.Threshold()
	tr.Reset()
	level2, threshold2 := tr.Level(), tr.Threshold()

	if level1 != 1 || threshold1 != 0 {
		t.Errorf("Reset: level=%d threshold=%d", level1, threshold1)
	}
	if level1 != level2 || threshold1 != threshold2 {
		t.Error("Repeated Reset should yield identical state")
	}
}

func TestTrackerInvariant(t *testing.T) {
	tr := newTracker(nil)
	tr.Start(1)

	ops := []func(){
		func() { tr.ReportScore(2500) },
		func() { tr.LevelUp() },
		func() { tr.GoToLevel(7) },
		func() { tr.Reset() },
		func() { tr.Start(3) },
	}
	for i, op := range ops {
		op()
		want := (tr.Level() - 1) * tr.ScorePerLevel()
		if tr.Threshold() != want {
			t.Errorf("Op %d broke invariant: level=%d threshold=%d", i, tr.Level(), tr.Threshold())
		}
	}
}

// fakeLoader records load requests and completes them on demand.
type fakeLoader struct {
	tracker *Tracker
	loaded  []scene.Ref
	auto    bool // Complete the load immediately
}

func (f *fakeLoader) LoadScene(ref scene.Ref) {
	f.loaded = append(f.loaded, ref)
	if f.auto {
		f.tracker.SceneReady()
	}
}

func TestTrackerAutoAdvance(t *testing.T) {
	bus := event.NewBus()
	catalog := scene.NewCatalog("nursery", "belt", "deep-void")
	loader := &fakeLoader{auto: true}
	cfg := Config{StartLevel: 1, ScorePerLevel: 100, ScoreProgression: true, AutoAdvance: true}
	tr := New(cfg, catalog, loader, bus, nil)
	loader.tracker = tr

	started := 0
	bus.Subscribe(event.LevelStarted, func(event.Event) { started++ })

	tr.Start(1)
	if len(loader.loaded) != 1 || loader.loaded[0].Name != "nursery" {
		t.Fatalf("Expected nursery load, got %v", loader.loaded)
	}
	if started != 1 {
		t.Errorf("SceneReady should announce level-started, got %d", started)
	}

	// Level 4 wraps back around to the first scene
	tr.GoToLevel(4)
	last := loader.loaded[len(loader.loaded)-1]
	if last.Name != "nursery" || last.Index != 0 {
		t.Errorf("Level 4 should wrap to nursery, got %+v", last)
	}
}

func TestTrackerAutoAdvanceWithoutCatalog(t *testing.T) {
	bus := event.NewBus()
	loader := &fakeLoader{}
	cfg := Config{StartLevel: 1, ScorePerLevel: 100, AutoAdvance: true}
	tr := New(cfg, nil, loader, bus, nil)
	loader.tracker = tr

	started := 0
	bus.Subscribe(event.LevelStarted, func(event.Event) { started++ })

	// Missing catalog: warn, skip the load, fall back to direct start
	tr.Start(1)

	if len(loader.loaded) != 0 {
		t.Errorf("No load expected without a catalog, got %v", loader.loaded)
	}
	if started != 1 {
		t.Errorf("Expected direct level-started fallback, got %d", started)
	}
}
