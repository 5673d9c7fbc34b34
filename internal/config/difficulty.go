package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables level progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPatrolPreset modifies the config based on a difficulty preset.
func ApplyPatrolPreset(cfg *PatrolConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth = 5
		cfg.Drones.MaxAlive = 3
		cfg.Drones.SpawnEveryTicks = 240
	case DifficultyHard:
		cfg.Player.MaxHealth = 2
		cfg.Drones.MaxAlive = 6
		cfg.Drones.SpawnEveryTicks = 120
		cfg.Drones.MoveEveryTicks = 14
	case DifficultyFixed:
		cfg.Progression.ScoreProgression = false
	}
}

// ApplyDriftPreset modifies the config based on a difficulty preset.
func ApplyDriftPreset(cfg *DriftConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Ship.Hull = 150
		cfg.Asteroids.MaxAlive = 4
		cfg.Asteroids.SpawnEveryTicks = 210
	case DifficultyHard:
		cfg.Ship.Hull = 60
		cfg.Asteroids.MaxAlive = 9
		cfg.Asteroids.SpawnEveryTicks = 100
		cfg.Asteroids.MaxSpeed = 0.35
	case DifficultyFixed:
		cfg.Progression.ScoreProgression = false
	}
}
