// Package config provides YAML-based game configuration loading and
// difficulty presets for the Starfall arcade.
package config

// ProgressionConfig is the shared level progression surface.
type ProgressionConfig struct {
	StartLevel       int      `yaml:"start_level"`
	ScorePerLevel    int      `yaml:"score_per_level"`
	ScoreProgression bool     `yaml:"score_progression"`
	AutoAdvance      bool     `yaml:"auto_advance"`
	Scenes           []string `yaml:"scenes"`
	BannerTicks      int      `yaml:"banner_ticks"`
}

// PatrolConfig contains all configuration for Sector Patrol.
type PatrolConfig struct {
	Player      PatrolPlayer      `yaml:"player"`
	Drones      PatrolDrones      `yaml:"drones"`
	Scoring     PatrolScoring     `yaml:"scoring"`
	Progression ProgressionConfig `yaml:"progression"`
}

// PatrolPlayer defines player parameters for Sector Patrol.
type PatrolPlayer struct {
	MaxHealth   int `yaml:"max_health"`
	InvulnTicks int `yaml:"invuln_ticks"` // Post-hit invulnerability window
}

// PatrolDrones defines drone parameters for Sector Patrol.
type PatrolDrones struct {
	MaxAlive        int `yaml:"max_alive"`
	SpawnEveryTicks int `yaml:"spawn_every_ticks"`
	MoveEveryTicks  int `yaml:"move_every_ticks"`
	ContactDamage   int `yaml:"contact_damage"`
}

// PatrolScoring defines point values for Sector Patrol.
type PatrolScoring struct {
	CorePoints  int `yaml:"core_points"`
	DronePoints int `yaml:"drone_points"`
}

// DriftConfig contains all configuration for Star Drift.
type DriftConfig struct {
	Physics     DriftPhysics      `yaml:"physics"`
	Ship        DriftShip         `yaml:"ship"`
	Asteroids   DriftAsteroids    `yaml:"asteroids"`
	Progression ProgressionConfig `yaml:"progression"`
}

// DriftPhysics defines physics parameters for Star Drift.
type DriftPhysics struct {
	TurnRate          float64 `yaml:"turn_rate"`           // Radians per tick
	Thrust            float64 `yaml:"thrust"`              // Acceleration per tick
	MaxSpeed          float64 `yaml:"max_speed"`           // Velocity cap
	Drag              float64 `yaml:"drag"`                // Velocity retained per tick (0..1)
	BulletSpeed       float64 `yaml:"bullet_speed"`        // Cells per tick
	BulletTTLTicks    int     `yaml:"bullet_ttl_ticks"`    // Bullet lifetime
	FireCooldownTicks int     `yaml:"fire_cooldown_ticks"` // Minimum ticks between shots
}

// DriftShip defines ship parameters for Star Drift.
type DriftShip struct {
	Hull        int `yaml:"hull"`
	InvulnTicks int `yaml:"invuln_ticks"`
}

// DriftAsteroids defines asteroid parameters for Star Drift.
type DriftAsteroids struct {
	MaxAlive        int     `yaml:"max_alive"`
	SpawnEveryTicks int     `yaml:"spawn_every_ticks"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	HitDamage       int     `yaml:"hit_damage"`
	Points          int     `yaml:"points"`
}
