// Package drift implements Star Drift, a free-flight shooter: rotate and
// thrust an inertial ship, gun down drifting asteroids, survive.
package drift

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/soleneko/starfall/internal/actor"
	"github.com/soleneko/starfall/internal/config"
	"github.com/soleneko/starfall/internal/core"
	"github.com/soleneko/starfall/internal/event"
	"github.com/soleneko/starfall/internal/hud"
	"github.com/soleneko/starfall/internal/progress"
	"github.com/soleneko/starfall/internal/registry"
	"github.com/soleneko/starfall/internal/scene"
	"github.com/soleneko/starfall/internal/spawn"
	"github.com/soleneko/starfall/internal/timer"
)

const (
	invulnKey = "drift.invuln"

	// Collision radii in cells
	bulletHitRadius = 1.0
	shipHitRadius   = 1.2

	// Spawn interval shrinks this much per level, but never below the floor
	spawnRampPerLevel = 15
	spawnIntervalMin  = 45

	// Drift has no authored layouts; levels cycle through numbered zones
	// so level events still carry a scene index.
	zoneCount = 3
)

// bullet is a live projectile.
type bullet struct {
	pos core.Vec2
	vel core.Vec2
	ttl int
}

// asteroid is one drifting hazard.
type asteroid struct {
	pos    core.Vec2
	vel    core.Vec2
	health *actor.Health
}

// Game implements the Star Drift shooter.
type Game struct {
	cfg  config.DriftConfig
	rng  *rand.Rand
	tick uint64

	// Session wiring, rebuilt on every Reset
	bus     *event.Bus
	sched   *timer.Scheduler
	tracker *progress.Tracker
	spawner *spawn.Spawner
	hull    *actor.Health
	bar     *hud.HealthBar
	banner  *hud.LevelBanner

	// Ship state
	shipPos  core.Vec2
	shipVel  core.Vec2
	heading  float64 // Radians; 0 points right, Y grows down
	cooldown int     // Ticks until the next shot is allowed
	invuln   bool

	bullets   []bullet
	asteroids map[string]*asteroid

	// Play area (below the HUD)
	playW     float64
	playH     float64
	hudHeight int

	// Screen dimensions
	screenW int
	screenH int

	score    int
	gameOver bool
	paused   bool
	tooSmall bool
}

// Package-level variables for config/difficulty (like snake pattern)
var (
	configPath         string
	difficultyPreset   string
	selectedStartLevel int
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStartLevel sets the starting level for every subsequent Reset,
// including restarts and resize re-seats. 0 defers to the config.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// New creates a new Star Drift game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("drift", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "drift"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Star Drift"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	dcfg, err := config.LoadDrift(configPath)
	if err != nil {
		log.Warn("falling back to default drift config", "err", err)
		dcfg = config.DefaultDriftConfig()
	}
	config.ApplyDriftPreset(&dcfg, config.DifficultyPreset(difficultyPreset))
	g.cfg = dcfg

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.cooldown = 0
	g.gameOver = false
	g.paused = false
	g.tooSmall = false
	g.invuln = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.hudHeight = 2
	g.bullets = nil
	g.asteroids = make(map[string]*asteroid)

	g.tooSmall = g.screenW < 40 || g.screenH < 12

	g.playW = float64(g.screenW)
	g.playH = float64(g.screenH - g.hudHeight)
	g.shipPos = core.Vec2{X: g.playW / 2, Y: g.playH / 2}
	g.shipVel = core.Vec2{}
	g.heading = -math.Pi / 2 // Nose up

	if g.spawner != nil {
		g.spawner.Close()
	}
	if g.banner != nil {
		g.banner.Close()
	}

	g.bus = event.NewBus()
	g.sched = timer.NewScheduler()
	g.hull = actor.NewHealth("ship", g.cfg.Ship.Hull, g.bus)
	g.bar = hud.NewHealthBar("HULL", g.hull)
	g.banner = hud.NewLevelBanner(g.bus, g.sched, g.cfg.Progression.BannerTicks)

	g.bus.Subscribe(event.Died, func(e event.Event) {
		if d, ok := e.Payload.(actor.DeathEvent); ok && d.Actor == g.hull.ID() {
			g.gameOver = true
		}
	})

	zones := make([]string, zoneCount)
	for i := range zones {
		zones[i] = "zone-" + strconv.Itoa(i+1)
	}
	g.tracker = progress.New(progress.Config{
		StartLevel:       g.cfg.Progression.StartLevel,
		ScorePerLevel:    g.cfg.Progression.ScorePerLevel,
		ScoreProgression: g.cfg.Progression.ScoreProgression,
		AutoAdvance:      g.cfg.Progression.AutoAdvance,
	}, scene.NewCatalog(zones...), nil, g.bus, nil)

	g.spawner = spawn.New(spawn.Config{
		Kind:       "asteroid",
		MaxAlive:   g.cfg.Asteroids.MaxAlive,
		EveryTicks: g.cfg.Asteroids.SpawnEveryTicks,
	}, g.sched, g.bus, g.spawnAsteroid)

	// Deeper sectors spawn rocks faster
	g.bus.Subscribe(event.LevelChanged, func(e event.Event) {
		lv, ok := e.Payload.(progress.LevelEvent)
		if !ok {
			return
		}
		interval := g.cfg.Asteroids.SpawnEveryTicks - (lv.Level-1)*spawnRampPerLevel
		g.spawner.SetInterval(core.Max(spawnIntervalMin, interval))
	})

	startLevel := g.cfg.Progression.StartLevel
	if selectedStartLevel > 0 {
		startLevel = selectedStartLevel
	}
	g.tracker.Start(startLevel)
	g.spawner.Arm()
}

// spawnAsteroid materializes a rock at a random screen edge, drifting
// toward the interior. Called by the spawner with a fresh actor id.
func (g *Game) spawnAsteroid(id string) {
	var pos core.Vec2
	switch g.rng.Intn(4) {
	case 0: // Top
		pos = core.Vec2{X: g.rng.Float64() * g.playW, Y: 0}
	case 1: // Bottom
		pos = core.Vec2{X: g.rng.Float64() * g.playW, Y: g.playH - 1}
	case 2: // Left
		pos = core.Vec2{X: 0, Y: g.rng.Float64() * g.playH}
	default: // Right
		pos = core.Vec2{X: g.playW - 1, Y: g.rng.Float64() * g.playH}
	}

	target := core.Vec2{
		X: g.playW*0.25 + g.rng.Float64()*g.playW*0.5,
		Y: g.playH*0.25 + g.rng.Float64()*g.playH*0.5,
	}
	dir := target.Add(pos.Scale(-1))
	if dir.Len() == 0 {
		dir = core.Vec2{X: 1}
	}
	speed := g.cfg.Asteroids.MinSpeed + g.rng.Float64()*(g.cfg.Asteroids.MaxSpeed-g.cfg.Asteroids.MinSpeed)
	vel := dir.Scale(speed / dir.Len())

	g.asteroids[id] = &asteroid{
		pos:    pos,
		vel:    vel,
		health: actor.NewHealth(id, 1, g.bus),
	}
}

// asteroidIDs returns asteroid ids in sorted order so iteration stays
// deterministic.
func (g *Game) asteroidIDs() []string {
	ids := make([]string, 0, len(g.asteroids))
	for id := range g.asteroids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.steer(input)
	g.integrate()
	g.updateBullets()
	g.updateAsteroids()
	g.resolveCollisions()

	// Drive spawn timers, invulnerability windows, and the banner
	g.sched.Advance()

	return core.StepResult{State: g.State()}
}

// steer applies rotation, thrust, and firing input.
func (g *Game) steer(input core.InputFrame) {
	if input.Has(core.ActionLeft) {
		g.heading -= g.cfg.Physics.TurnRate
	}
	if input.Has(core.ActionRight) {
		g.heading += g.cfg.Physics.TurnRate
	}
	if input.Has(core.ActionThrust) {
		accel := core.Heading(g.heading).Scale(g.cfg.Physics.Thrust)
		g.shipVel = g.shipVel.Add(accel).ClampLen(g.cfg.Physics.MaxSpeed)
	}
	if input.Has(core.ActionFire) && g.cooldown == 0 {
		g.fire()
	}
	if g.cooldown > 0 {
		g.cooldown--
	}
}

// fire launches a bullet from the ship's nose.
func (g *Game) fire() {
	vel := g.shipVel.Add(core.Heading(g.heading).Scale(g.cfg.Physics.BulletSpeed))
	g.bullets = append(g.bullets, bullet{
		pos: g.shipPos,
		vel: vel,
		ttl: g.cfg.Physics.BulletTTLTicks,
	})
	g.cooldown = g.cfg.Physics.FireCooldownTicks
}

// integrate advances ship physics: drag, velocity, edge wraparound.
func (g *Game) integrate() {
	g.shipVel = g.shipVel.Scale(g.cfg.Physics.Drag)
	g.shipPos = g.wrap(g.shipPos.Add(g.shipVel))
}

// updateBullets moves bullets and expires them.
func (g *Game) updateBullets() {
	alive := g.bullets[:0]
	for _, b := range g.bullets {
		b.ttl--
		if b.ttl <= 0 {
			continue
		}
		b.pos = g.wrap(b.pos.Add(b.vel))
		alive = append(alive, b)
	}
	g.bullets = alive
}

// updateAsteroids moves asteroids with edge wraparound.
func (g *Game) updateAsteroids() {
	for _, id := range g.asteroidIDs() {
		a := g.asteroids[id]
		a.pos = g.wrap(a.pos.Add(a.vel))
	}
}

// resolveCollisions handles bullet-asteroid and ship-asteroid contact.
func (g *Game) resolveCollisions() {
	for _, id := range g.asteroidIDs() {
		a, ok := g.asteroids[id]
		if !ok {
			continue
		}

		hit := false
		remaining := g.bullets[:0]
		for _, b := range g.bullets {
			if !hit && dist(b.pos, a.pos) < bulletHitRadius {
				hit = true
				continue // Bullet is spent
			}
			remaining = append(remaining, b)
		}
		g.bullets = remaining

		if hit {
			g.destroyAsteroid(id, true)
			continue
		}

		if dist(g.shipPos, a.pos) < shipHitRadius {
			g.damageShip(g.cfg.Asteroids.HitDamage)
			g.destroyAsteroid(id, false)
		}
	}
}

// destroyAsteroid kills an asteroid; scored kills feed the progression
// tracker. The death notification shrinks the spawner's live count.
func (g *Game) destroyAsteroid(id string, scored bool) {
	a, ok := g.asteroids[id]
	if !ok {
		return
	}
	a.health.Damage(a.health.Max())
	delete(g.asteroids, id)

	if scored {
		g.score += g.cfg.Asteroids.Points
		g.tracker.ReportScore(g.score)
	}
}

// damageShip applies hull damage unless the invulnerability window is
// open, then opens it.
func (g *Game) damageShip(amount int) {
	if g.invuln {
		return
	}
	g.hull.Damage(amount)
	g.invuln = true
	g.sched.After(invulnKey, g.cfg.Ship.InvulnTicks, func() {
		g.invuln = false
	})
}

// wrap folds a position back into the play area (toroidal space).
func (g *Game) wrap(p core.Vec2) core.Vec2 {
	p.X = math.Mod(p.X, g.playW)
	if p.X < 0 {
		p.X += g.playW
	}
	p.Y = math.Mod(p.Y, g.playH)
	if p.Y < 0 {
		p.Y += g.playH
	}
	return p
}

func dist(a, b core.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	for _, b := range g.bullets {
		dst.SetColored(int(b.pos.X), g.hudHeight+int(b.pos.Y), '.', core.ColorBrightYellow)
	}

	for _, a := range g.asteroids {
		dst.SetColored(int(a.pos.X), g.hudHeight+int(a.pos.Y), 'O', core.ColorOrange)
	}

	// Ship, blinking while invulnerable
	if !g.invuln || g.tick%8 < 4 {
		dst.SetColored(int(g.shipPos.X), g.hudHeight+int(g.shipPos.Y), g.shipGlyph(), core.ColorBrightCyan)
	}

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Hull Breach", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}

	g.banner.Render(dst)
}

// shipGlyph picks a direction glyph from the ship's heading quadrant.
func (g *Game) shipGlyph() rune {
	h := math.Mod(g.heading, 2*math.Pi)
	if h < 0 {
		h += 2 * math.Pi
	}
	switch int(math.Floor((h+math.Pi/4)/(math.Pi/2))) % 4 {
	case 0:
		return '>'
	case 1:
		return 'v'
	case 2:
		return '<'
	default:
		return '^'
	}
}

// renderHUD draws the top status bar with score, level, and hull.
func (g *Game) renderHUD(dst *core.Screen) {
	status := fmt.Sprintf(" Star Drift | Score: %d  Level: %d", g.score, g.tracker.Level())
	if ref, ok := g.tracker.CurrentScene(); ok {
		status += "  [" + ref.Name + "]"
	}
	dst.DrawText(0, 0, status)

	g.bar.Render(dst, dst.Width()-24, 0, 10)

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := core.Max(len(line1), len(line2))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.tracker.Level(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
