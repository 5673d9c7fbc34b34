// Package progress implements score-threshold level progression.
//
// A Tracker owns the current level and the score threshold bookkeeping
// for one game session. It is constructed explicitly and handed to the
// components that need it; nothing in this package is global state.
package progress

import (
	"github.com/charmbracelet/log"

	"github.com/soleneko/starfall/internal/core"
	"github.com/soleneko/starfall/internal/event"
	"github.com/soleneko/starfall/internal/scene"
)

// LevelEvent is the payload for the level.* event types.
type LevelEvent struct {
	Level int
	Scene scene.Ref // Zero value when no scene is associated
}

// Config is the externally supplied progression surface.
type Config struct {
	// StartLevel is the level entered by Start; clamped to at least 1.
	StartLevel int

	// ScorePerLevel is the score delta between thresholds; clamped to
	// at least 1.
	ScorePerLevel int

	// ScoreProgression enables threshold evaluation in ReportScore.
	// When false, levels only change via LevelUp/GoToLevel.
	ScoreProgression bool

	// AutoAdvance routes level entry through the scene loader instead
	// of announcing level-started directly.
	AutoAdvance bool
}

// Tracker is the level progression state machine.
//
// Invariant: threshold == (level-1) * scorePerLevel whenever no
// transition is in progress.
//
// Every operation publishes its notifications synchronously and in a
// fixed order before returning; see each method. No operation fails:
// out-of-range inputs are clamped and missing collaborators (loader,
// catalog, bus) disable the corresponding side effect.
type Tracker struct {
	cfg       Config
	catalog   *scene.Catalog
	loader    scene.Loader
	bus       *event.Bus
	logger    *log.Logger
	level     int
	threshold int
}

// New creates a Tracker. catalog, loader, and bus may each be nil;
// logger falls back to the package default.
func New(cfg Config, catalog *scene.Catalog, loader scene.Loader, bus *event.Bus, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	cfg.StartLevel = core.Max(1, cfg.StartLevel)
	cfg.ScorePerLevel = core.Max(1, cfg.ScorePerLevel)
	return &Tracker{
		cfg:     cfg,
		catalog: catalog,
		loader:  loader,
		bus:     bus,
		logger:  logger,
		level:   1,
	}
}

// Level returns the current level (always >= 1).
func (t *Tracker) Level() int {
	return t.level
}

// Threshold returns the score at which the current level was entered.
func (t *Tracker) Threshold() int {
	return t.threshold
}

// ScorePerLevel returns the configured threshold spacing.
func (t *Tracker) ScorePerLevel() int {
	return t.cfg.ScorePerLevel
}

// Start enters the given level (clamped to >= 1), recomputes the
// threshold, and announces level-changed followed by scene entry.
func (t *Tracker) Start(startLevel int) {
	t.level = core.Max(1, startLevel)
	t.threshold = (t.level - 1) * t.cfg.ScorePerLevel
	t.publish(event.LevelChanged)
	t.enterLevel()
}

// Reset returns to level one. Calling it repeatedly is idempotent.
func (t *Tracker) Reset() {
	t.Start(1)
}

// ReportScore evaluates the cumulative score against the next threshold.
// The check loops, so a single large delta can advance several levels in
// one call, each with its own full notification sequence. A no-op when
// score progression is disabled.
func (t *Tracker) ReportScore(total int) {
	if !t.cfg.ScoreProgression {
		return
	}
	for total >= t.threshold+t.cfg.ScorePerLevel {
		t.LevelUp()
	}
}

// LevelUp completes the current level and enters the next one.
// Order: level-completed(old), level-changed(new), then scene entry.
func (t *Tracker) LevelUp() {
	t.publish(event.LevelCompleted)
	t.level++
	t.threshold += t.cfg.ScorePerLevel
	t.publish(event.LevelChanged)
	t.enterLevel()
}

// GoToLevel jumps directly to the target level (clamped to >= 1).
// No level-completed notification fires; a jump is not a completion.
func (t *Tracker) GoToLevel(target int) {
	t.level = core.Max(1, target)
	t.threshold = (t.level - 1) * t.cfg.ScorePerLevel
	t.publish(event.LevelChanged)
	t.enterLevel()
}

// SceneReady is called by the scene loader once an auto-advanced scene
// is in place; it announces level-started for the current level.
func (t *Tracker) SceneReady() {
	t.publish(event.LevelStarted)
}

// CurrentScene resolves the scene for the current level, if any.
func (t *Tracker) CurrentScene() (scene.Ref, bool) {
	return t.catalog.ForLevel(t.level)
}

// enterLevel routes through the scene loader when auto-advance is on,
// otherwise announces level-started directly. A missing catalog or
// loader downgrades to the direct announcement with a warning.
func (t *Tracker) enterLevel() {
	if t.cfg.AutoAdvance && t.loader != nil {
		ref, ok := t.catalog.ForLevel(t.level)
		if !ok {
			t.logger.Warn("no scenes configured, skipping scene load", "level", t.level)
			t.publish(event.LevelStarted)
			return
		}
		t.loader.LoadScene(ref)
		return
	}
	t.publish(event.LevelStarted)
}

func (t *Tracker) publish(typ event.Type) {
	if t.bus == nil {
		return
	}
	ref, _ := t.catalog.ForLevel(t.level)
	t.bus.Publish(event.Event{
		Type:    typ,
		Payload: LevelEvent{Level: t.level, Scene: ref},
	})
}
