package drift

import (
	"math"
	"strings"
	"testing"

	"github.com/soleneko/starfall/internal/actor"
	"github.com/soleneko/starfall/internal/core"
	"github.com/soleneko/starfall/internal/event"
	"github.com/soleneko/starfall/internal/progress"
	"github.com/soleneko/starfall/internal/scene"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{
		Seed:    seed,
		ScreenW: 80,
		ScreenH: 24,
	})
	return g
}

func addAsteroid(g *Game, id string, pos, vel core.Vec2) {
	g.asteroids[id] = &asteroid{
		pos:    pos,
		vel:    vel,
		health: actor.NewHealth(id, 1, g.bus),
	}
}

func TestDeterminism(t *testing.T) {
	cfg := core.RuntimeConfig{Seed: 9001, ScreenW: 80, ScreenH: 24}

	g1 := New()
	g1.Reset(cfg)
	g2 := New()
	g2.Reset(cfg)

	input := core.NewInputFrame()
	for i := 0; i < 500; i++ {
		input.Clear()
		if i%5 == 0 {
			input.Set(core.ActionThrust)
		}
		if i%11 == 0 {
			input.Set(core.ActionLeft)
		}
		if i%17 == 0 {
			input.Set(core.ActionFire)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if g1.shipPos != g2.shipPos {
		t.Errorf("Ship position mismatch: %+v vs %+v", g1.shipPos, g2.shipPos)
	}
	if g1.score != g2.score {
		t.Errorf("Score mismatch: %d vs %d", g1.score, g2.score)
	}
	if len(g1.asteroids) != len(g2.asteroids) {
		t.Errorf("Asteroid count mismatch: %d vs %d", len(g1.asteroids), len(g2.asteroids))
	}
	if len(g1.bullets) != len(g2.bullets) {
		t.Errorf("Bullet count mismatch: %d vs %d", len(g1.bullets), len(g2.bullets))
	}
}

func TestThrustAcceleratesAlongHeading(t *testing.T) {
	g := newTestGame(t, 1)
	g.heading = 0 // Nose right

	input := core.NewInputFrame()
	input.Set(core.ActionThrust)
	startX := g.shipPos.X
	g.Step(input)

	if g.shipVel.X <= 0 {
		t.Errorf("Thrust should accelerate rightward, vel.X = %v", g.shipVel.X)
	}
	if math.Abs(g.shipVel.Y) > 1e-9 {
		t.Errorf("No vertical velocity expected, vel.Y = %v", g.shipVel.Y)
	}
	if g.shipPos.X <= startX {
		t.Error("Ship should have moved right")
	}
}

func TestSpeedIsCapped(t *testing.T) {
	g := newTestGame(t, 1)
	g.heading = 0

	input := core.NewInputFrame()
	input.Set(core.ActionThrust)
	for i := 0; i < 500; i++ {
		g.Step(input)
	}

	if speed := g.shipVel.Len(); speed > g.cfg.Physics.MaxSpeed+1e-9 {
		t.Errorf("Speed %v exceeds cap %v", speed, g.cfg.Physics.MaxSpeed)
	}
}

func TestDragSlowsCoasting(t *testing.T) {
	g := newTestGame(t, 1)
	g.shipVel = core.Vec2{X: 0.5}

	input := core.NewInputFrame()
	g.Step(input)

	if g.shipVel.X >= 0.5 {
		t.Errorf("Drag should bleed off speed, vel.X = %v", g.shipVel.X)
	}
}

func TestTurning(t *testing.T) {
	g := newTestGame(t, 1)
	start := g.heading

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if math.Abs((start-g.heading)-g.cfg.Physics.TurnRate) > 1e-9 {
		t.Errorf("Left turn should subtract TurnRate, heading went %v -> %v", start, g.heading)
	}

	input.Clear()
	input.Set(core.ActionRight)
	g.Step(input)
	g.Step(input)

	if math.Abs((g.heading-start)-g.cfg.Physics.TurnRate) > 1e-9 {
		t.Errorf("Two right turns should net +TurnRate, heading is %v", g.heading)
	}
}

func TestFireCooldown(t *testing.T) {
	g := newTestGame(t, 1)

	input := core.NewInputFrame()
	input.Set(core.ActionFire)
	g.Step(input)
	g.Step(input)

	if len(g.bullets) != 1 {
		t.Fatalf("Cooldown should allow one bullet, got %d", len(g.bullets))
	}

	for i := 0; i < g.cfg.Physics.FireCooldownTicks; i++ {
		g.Step(input)
	}

	if len(g.bullets) != 2 {
		t.Errorf("Second shot expected after cooldown, got %d bullets", len(g.bullets))
	}
}

func TestBulletsExpire(t *testing.T) {
	g := newTestGame(t, 1)

	input := core.NewInputFrame()
	input.Set(core.ActionFire)
	g.Step(input)
	if len(g.bullets) != 1 {
		t.Fatal("Expected one bullet in flight")
	}

	input.Clear()
	for i := 0; i < g.cfg.Physics.BulletTTLTicks+1; i++ {
		g.Step(input)
	}

	if len(g.bullets) != 0 {
		t.Errorf("Bullets should expire after TTL, %d left", len(g.bullets))
	}
}

func TestBulletDestroysAsteroid(t *testing.T) {
	g := newTestGame(t, 1)
	g.heading = 0
	g.shipVel = core.Vec2{}

	// Rock parked dead ahead
	addAsteroid(g, "asteroid-50", g.shipPos.Add(core.Vec2{X: 4}), core.Vec2{})

	input := core.NewInputFrame()
	input.Set(core.ActionFire)
	g.Step(input)

	input.Clear()
	for i := 0; i < 6; i++ {
		g.Step(input)
	}

	if _, alive := g.asteroids["asteroid-50"]; alive {
		t.Error("Asteroid should be destroyed by the bullet")
	}
	if g.score != g.cfg.Asteroids.Points {
		t.Errorf("Expected %d points for the kill, got %d", g.cfg.Asteroids.Points, g.score)
	}
	if len(g.bullets) != 0 {
		t.Error("Bullet should be spent on impact")
	}
}

func TestAsteroidImpactDamagesHull(t *testing.T) {
	g := newTestGame(t, 1)

	addAsteroid(g, "asteroid-60", g.shipPos, core.Vec2{})

	input := core.NewInputFrame()
	g.Step(input)

	if g.hull.Current() != g.cfg.Ship.Hull-g.cfg.Asteroids.HitDamage {
		t.Errorf("Expected hull %d, got %d", g.cfg.Ship.Hull-g.cfg.Asteroids.HitDamage, g.hull.Current())
	}
	if !g.invuln {
		t.Error("Impact should open the invulnerability window")
	}
	if _, alive := g.asteroids["asteroid-60"]; alive {
		t.Error("Asteroid should shatter on the hull")
	}
	if g.score != 0 {
		t.Error("Ramming is not a scored kill")
	}
}

func TestInvulnWindowAbsorbsSecondImpact(t *testing.T) {
	g := newTestGame(t, 1)

	addAsteroid(g, "asteroid-60", g.shipPos, core.Vec2{})
	input := core.NewInputFrame()
	g.Step(input)

	hull := g.hull.Current()
	addAsteroid(g, "asteroid-61", g.shipPos, core.Vec2{})
	g.Step(input)

	if g.hull.Current() != hull {
		t.Errorf("Second impact inside the window should not hurt, hull %d -> %d", hull, g.hull.Current())
	}
}

func TestHullDepletionEndsGame(t *testing.T) {
	g := newTestGame(t, 1)

	g.hull.Damage(g.hull.Max())

	if !g.gameOver {
		t.Error("Game should be over after hull depletion")
	}
	if !g.State().GameOver {
		t.Error("State should report game over")
	}
}

func TestScoreAdvancesLevelAndRampsSpawns(t *testing.T) {
	g := newTestGame(t, 1)
	baseInterval := g.spawner.Interval()

	// One kill away from the first threshold
	g.score = g.cfg.Progression.ScorePerLevel - g.cfg.Asteroids.Points
	addAsteroid(g, "asteroid-70", core.Vec2{X: 5, Y: 5}, core.Vec2{})
	g.destroyAsteroid("asteroid-70", true)

	if got := g.tracker.Level(); got != 2 {
		t.Fatalf("Expected level 2, got %d", got)
	}
	if !g.banner.Visible() {
		t.Error("Level banner should be showing")
	}
	if g.spawner.Interval() >= baseInterval {
		t.Errorf("Spawn interval should shrink with level, %d -> %d", baseInterval, g.spawner.Interval())
	}
}

func TestEdgeWraparound(t *testing.T) {
	g := newTestGame(t, 1)

	g.shipPos = core.Vec2{X: g.playW - 0.1, Y: 5}
	g.shipVel = core.Vec2{X: 0.5}

	input := core.NewInputFrame()
	g.Step(input)

	if g.shipPos.X > 1 {
		t.Errorf("Ship should wrap to the left edge, X = %v", g.shipPos.X)
	}
}

func TestSpawnerPopulatesAsteroids(t *testing.T) {
	g := newTestGame(t, 99)

	input := core.NewInputFrame()
	for i := 0; i < g.cfg.Asteroids.SpawnEveryTicks+5 && !g.gameOver; i++ {
		g.Step(input)
	}

	if g.spawner.Spawned() == 0 {
		t.Error("Expected at least one asteroid spawn")
	}
	if len(g.asteroids) > g.cfg.Asteroids.MaxAlive {
		t.Errorf("Asteroid population %d exceeds cap %d", len(g.asteroids), g.cfg.Asteroids.MaxAlive)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t, 1)

	g.score = 300
	g.hull.Damage(g.hull.Max())

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)

	if g.gameOver {
		t.Error("Restart should clear game over")
	}
	if g.score != 0 {
		t.Errorf("Restart should reset score, got %d", g.score)
	}
	if g.hull.Current() != g.hull.Max() {
		t.Error("Restart should restore the hull")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 444)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Star Drift") {
		t.Error("HUD should contain the game title")
	}
	if !strings.Contains(content, "HULL") {
		t.Error("HUD should contain the hull bar")
	}
}

func TestLevelEventsCarryZoneIndex(t *testing.T) {
	g := newTestGame(t, 1)

	var refs []scene.Ref
	g.bus.Subscribe(event.LevelChanged, func(e event.Event) {
		if lv, ok := e.Payload.(progress.LevelEvent); ok {
			refs = append(refs, lv.Scene)
		}
	})

	g.tracker.GoToLevel(2)
	g.tracker.GoToLevel(4) // Past the last zone, wraps to the first

	if len(refs) != 2 {
		t.Fatalf("Expected 2 level-changed events, got %d", len(refs))
	}
	if refs[0].Index != 1 || refs[0].Name != "zone-2" {
		t.Errorf("Level 2 should map to zone-2 (index 1), got %+v", refs[0])
	}
	if refs[1].Index != 0 || refs[1].Name != "zone-1" {
		t.Errorf("Level 4 should wrap to zone-1 (index 0), got %+v", refs[1])
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "[zone-1]") {
		t.Error("HUD should show the current zone")
	}
}

func TestStartLevelOverridePersistsAcrossResets(t *testing.T) {
	SetStartLevel(3)
	defer SetStartLevel(0)

	g := newTestGame(t, 1)
	if got := g.State().Level; got != 3 {
		t.Fatalf("Expected start level 3, got %d", got)
	}

	// Resizes and restarts re-seat the game through Reset; the override
	// holds until changed
	g.Reset(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24})
	if got := g.State().Level; got != 3 {
		t.Errorf("Expected level 3 after a second reset, got %d", got)
	}
}
