package patrol

import (
	"fmt"
	"math/rand"
	"sort"

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

const invulnKey = "patrol.invuln"

// Point represents a 2D grid coordinate.
type Point struct {
	X, Y int
}

// drone is one hostile patrol drone.
type drone struct {
	pos    Point
	health *actor.Health
}

// Game implements Sector Patrol: collect energy cores, dodge drones,
// lure them into ion fields.
type Game struct {
	cfg  config.PatrolConfig
	rng  *rand.Rand
	tick uint64

	// Session wiring, rebuilt on every Reset
	bus     *event.Bus
	sched   *timer.Scheduler
	tracker *progress.Tracker
	spawner *spawn.Spawner
	health  *actor.Health
	bar     *hud.HealthBar
	banner  *hud.LevelBanner

	// World state
	player     Point
	invuln     bool
	drones     map[string]*drone
	corePos    Point
	sectorName string
	walls      map[Point]bool
	hazards    map[Point]bool
	mapWidth   int
	mapHeight  int
	mapOffsetX int
	mapOffsetY int
	hudHeight  int

	// Screen dimensions
	screenW int
	screenH int

	score      int
	moveTicker int // Counts ticks until drones move

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

// New creates a new Sector Patrol game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("patrol", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "patrol"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sector Patrol"
}

// Reset initializes/restarts the game.
// The whole session wiring (bus, scheduler, tracker, spawner, widgets)
// is rebuilt so that nothing from the previous run leaks through.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	pcfg, err := config.LoadPatrol(configPath)
	if err != nil {
		log.Warn("falling back to default patrol config", "err", err)
		pcfg = config.DefaultPatrolConfig()
	}
	config.ApplyPatrolPreset(&pcfg, config.DifficultyPreset(difficultyPreset))
	g.cfg = pcfg

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.moveTicker = 0
	g.gameOver = false
	g.paused = false
	g.tooSmall = false
	g.invuln = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.hudHeight = 2
	g.drones = make(map[string]*drone)

	if g.spawner != nil {
		g.spawner.Close()
	}
	if g.banner != nil {
		g.banner.Close()
	}

	g.bus = event.NewBus()
	g.sched = timer.NewScheduler()
	g.health = actor.NewHealth("player", g.cfg.Player.MaxHealth, g.bus)
	g.bar = hud.NewHealthBar("HULL", g.health)
	g.banner = hud.NewLevelBanner(g.bus, g.sched, g.cfg.Progression.BannerTicks)

	g.bus.Subscribe(event.Died, func(e event.Event) {
		if d, ok := e.Payload.(actor.DeathEvent); ok && d.Actor == g.health.ID() {
			g.gameOver = true
		}
	})

	catalog := scene.NewCatalog(g.cfg.Progression.Scenes...)
	g.tracker = progress.New(progress.Config{
		StartLevel:       g.cfg.Progression.StartLevel,
		ScorePerLevel:    g.cfg.Progression.ScorePerLevel,
		ScoreProgression: g.cfg.Progression.ScoreProgression,
		AutoAdvance:      g.cfg.Progression.AutoAdvance,
	}, catalog, g, g.bus, nil)

	// With auto-advance off the tracker never calls LoadScene, so drive
	// sector loads from the level-started announcement instead.
	if !g.cfg.Progression.AutoAdvance {
		g.bus.Subscribe(event.LevelStarted, func(e event.Event) {
			if lv, ok := e.Payload.(progress.LevelEvent); ok && lv.Scene.Name != "" {
				g.loadSector(lv.Scene.Name)
			}
		})
	}

	g.spawner = spawn.New(spawn.Config{
		Kind:       "drone",
		MaxAlive:   g.cfg.Drones.MaxAlive,
		EveryTicks: g.cfg.Drones.SpawnEveryTicks,
	}, g.sched, g.bus, g.spawnDrone)

	startLevel := g.cfg.Progression.StartLevel
	if selectedStartLevel > 0 {
		startLevel = selectedStartLevel
	}
	g.tracker.Start(startLevel)
	g.spawner.Arm()
}

// LoadScene swaps in the sector for a progression level.
// Implements scene.Loader; called by the tracker on every level entry.
func (g *Game) LoadScene(ref scene.Ref) {
	g.loadSector(ref.Name)
	g.tracker.SceneReady()
}

// loadSector parses the named sector layout and re-places the world.
// Drones survive a sector change; any left standing inside the new
// geometry are relocated.
func (g *Game) loadSector(name string) {
	sector := SectorByName(name)
	if sector == nil {
		log.Warn("unknown sector, keeping current layout", "sector", name)
		return
	}
	g.sectorName = sector.Name

	g.walls = make(map[Point]bool)
	g.hazards = make(map[Point]bool)
	g.mapHeight = len(sector.Layout)
	g.mapWidth = 0
	for _, row := range sector.Layout {
		if len(row) > g.mapWidth {
			g.mapWidth = len(row)
		}
	}

	requiredW := g.mapWidth + 2
	requiredH := g.mapHeight + g.hudHeight + 1
	if g.screenW < requiredW || g.screenH < requiredH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	g.mapOffsetX = (g.screenW - g.mapWidth) / 2
	g.mapOffsetY = g.hudHeight

	for y, row := range sector.Layout {
		for x, ch := range row {
			p := Point{X: x, Y: y}
			switch ch {
			case '#':
				g.walls[p] = true
			case '~':
				g.hazards[p] = true
			}
		}
	}

	g.player = g.findSpawnPoint()

	for _, id := range g.droneIDs() {
		d := g.drones[id]
		if g.walls[d.pos] || g.hazards[d.pos] || !g.inBounds(d.pos) {
			if pos, ok := g.randomEmptyCell(4); ok {
				d.pos = pos
			}
		}
	}

	g.spawnCore()
}

// findSpawnPoint picks a clear cell near the map center for the player.
func (g *Game) findSpawnPoint() Point {
	center := Point{X: g.mapWidth / 2, Y: g.mapHeight / 2}
	if g.cellClear(center) {
		return center
	}
	for radius := 1; radius < g.mapWidth; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				p := Point{X: center.X + dx, Y: center.Y + dy}
				if g.inBounds(p) && g.cellClear(p) {
					return p
				}
			}
		}
	}
	return Point{X: 1, Y: 1}
}

// cellClear reports whether a cell is free of walls and hazards.
func (g *Game) cellClear(p Point) bool {
	return !g.walls[p] && !g.hazards[p]
}

func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.mapWidth && p.Y >= 0 && p.Y < g.mapHeight
}

// spawnCore places the next energy core at a random clear cell.
func (g *Game) spawnCore() {
	if pos, ok := g.randomEmptyCell(3); ok {
		g.corePos = pos
		return
	}
	g.corePos = Point{X: -1, Y: -1}
}

// randomEmptyCell picks a random clear cell at least minDist (manhattan)
// away from the player, relaxing the distance requirement if the sector
// is crowded.
func (g *Game) randomEmptyCell(minDist int) (Point, bool) {
	var far, near []Point
	for y := 1; y < g.mapHeight-1; y++ {
		for x := 1; x < g.mapWidth-1; x++ {
			p := Point{X: x, Y: y}
			if !g.cellClear(p) || p == g.player || g.droneAt(p) != nil {
				continue
			}
			if core.Abs(p.X-g.player.X)+core.Abs(p.Y-g.player.Y) >= minDist {
				far = append(far, p)
			} else {
				near = append(near, p)
			}
		}
	}
	if len(far) > 0 {
		return far[g.rng.Intn(len(far))], true
	}
	if len(near) > 0 {
		return near[g.rng.Intn(len(near))], true
	}
	return Point{}, false
}

// spawnDrone materializes a new drone; called by the spawner with a
// fresh actor id.
func (g *Game) spawnDrone(id string) {
	pos, ok := g.randomEmptyCell(6)
	if !ok {
		pos = Point{X: 1, Y: 1}
	}
	g.drones[id] = &drone{
		pos:    pos,
		health: actor.NewHealth(id, 1, g.bus),
	}
}

// droneAt returns the drone occupying the given cell, if any.
func (g *Game) droneAt(p Point) *drone {
	for _, d := range g.drones {
		if d.pos == p {
			return d
		}
	}
	return nil
}

// droneIDs returns drone ids in sorted order so iteration stays
// deterministic.
func (g *Game) droneIDs() []string {
	ids := make([]string, 0, len(g.drones))
	for id := range g.drones {
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

	g.movePlayer(input)

	g.moveTicker++
	if g.moveTicker >= g.cfg.Drones.MoveEveryTicks {
		g.moveTicker = 0
		g.moveDrones()
	}

	g.checkDroneContact()

	// Drive spawn timers, invulnerability windows, and the banner
	g.sched.Advance()

	return core.StepResult{State: g.State()}
}

// movePlayer handles one cell of grid movement per pressed direction.
func (g *Game) movePlayer(input core.InputFrame) {
	next := g.player
	switch {
	case input.Has(core.ActionUp):
		next.Y--
	case input.Has(core.ActionDown):
		next.Y++
	case input.Has(core.ActionLeft):
		next.X--
	case input.Has(core.ActionRight):
		next.X++
	}
	if next == g.player {
		return
	}
	if !g.inBounds(next) || g.walls[next] {
		return
	}
	g.player = next

	if g.hazards[g.player] {
		g.damagePlayer(g.cfg.Drones.ContactDamage)
	}

	if g.player == g.corePos {
		g.collectCore()
	}
}

// collectCore scores the energy core, feeds the progression tracker,
// and spawns the next one.
func (g *Game) collectCore() {
	g.score += g.cfg.Scoring.CorePoints
	g.tracker.ReportScore(g.score)
	if !g.tooSmall {
		g.spawnCore()
	}
}

// moveDrones steps every drone one cell toward the player, preferring
// the axis with the larger distance. A drone that wanders into an ion
// field is destroyed and scored.
func (g *Game) moveDrones() {
	for _, id := range g.droneIDs() {
		d, ok := g.drones[id]
		if !ok {
			continue
		}

		dx := g.player.X - d.pos.X
		dy := g.player.Y - d.pos.Y

		var primary, secondary Point
		if core.Abs(dx) >= core.Abs(dy) {
			primary = Point{X: d.pos.X + sign(dx), Y: d.pos.Y}
			secondary = Point{X: d.pos.X, Y: d.pos.Y + sign(dy)}
		} else {
			primary = Point{X: d.pos.X, Y: d.pos.Y + sign(dy)}
			secondary = Point{X: d.pos.X + sign(dx), Y: d.pos.Y}
		}

		next := d.pos
		if primary != d.pos && g.inBounds(primary) && !g.walls[primary] {
			next = primary
		} else if secondary != d.pos && g.inBounds(secondary) && !g.walls[secondary] {
			next = secondary
		}
		d.pos = next

		if g.hazards[d.pos] {
			g.destroyDrone(id)
		}
	}
}

// destroyDrone kills a drone, scores it, and removes it from the world.
// The death notification shrinks the spawner's live count.
func (g *Game) destroyDrone(id string) {
	d, ok := g.drones[id]
	if !ok {
		return
	}
	d.health.Damage(d.health.Max())
	delete(g.drones, id)

	g.score += g.cfg.Scoring.DronePoints
	g.tracker.ReportScore(g.score)
}

// checkDroneContact damages the player when a drone shares their cell,
// then opens the invulnerability window.
func (g *Game) checkDroneContact() {
	if g.invuln || g.health.Dead() {
		return
	}
	for _, d := range g.drones {
		if d.pos == g.player {
			g.damagePlayer(g.cfg.Drones.ContactDamage)
			return
		}
	}
}

// damagePlayer applies damage unless the invulnerability window is open,
// then opens it.
func (g *Game) damagePlayer(amount int) {
	if g.invuln {
		return
	}
	g.health.Damage(amount)
	g.invuln = true
	g.sched.After(invulnKey, g.cfg.Player.InvulnTicks, func() {
		g.invuln = false
	})
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderSector(dst)

	// Energy core
	if g.corePos.X >= 0 {
		dst.SetColored(g.mapOffsetX+g.corePos.X, g.mapOffsetY+g.corePos.Y, '*', core.ColorBrightYellow)
	}

	// Drones
	for _, d := range g.drones {
		dst.SetColored(g.mapOffsetX+d.pos.X, g.mapOffsetY+d.pos.Y, 'x', core.ColorBrightRed)
	}

	// Player, blinking while invulnerable
	if !g.invuln || g.tick%8 < 4 {
		dst.SetColored(g.mapOffsetX+g.player.X, g.mapOffsetY+g.player.Y, '@', core.ColorBrightCyan)
	}

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Ship Lost", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}

	g.banner.Render(dst)
}

// renderHUD draws the top status bar with score, level, sector, and hull.
func (g *Game) renderHUD(dst *core.Screen) {
	status := fmt.Sprintf(" Sector Patrol | Score: %d  Level: %d  [%s]",
		g.score, g.tracker.Level(), g.sectorName)
	dst.DrawText(0, 0, status)

	g.bar.Render(dst, dst.Width()-20, 0, 10)

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderSector draws walls and ion fields.
func (g *Game) renderSector(dst *core.Screen) {
	for wall := range g.walls {
		dst.Set(g.mapOffsetX+wall.X, g.mapOffsetY+wall.Y, '#')
	}
	for hz := range g.hazards {
		dst.SetColored(g.mapOffsetX+hz.X, g.mapOffsetY+hz.Y, '~', core.ColorRed)
	}
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
