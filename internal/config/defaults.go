package config

import (
	_ "embed"
)

//go:embed defaults/patrol.yaml
var defaultPatrolYAML []byte

//go:embed defaults/drift.yaml
var defaultDriftYAML []byte

// DefaultPatrolConfig returns the default Sector Patrol configuration.
func DefaultPatrolConfig() PatrolConfig {
	return PatrolConfig{
		Player: PatrolPlayer{
			MaxHealth:   3,
			InvulnTicks: 45,
		},
		Drones: PatrolDrones{
			MaxAlive:        4,
			SpawnEveryTicks: 180,
			MoveEveryTicks:  20,
			ContactDamage:   1,
		},
		Scoring: PatrolScoring{
			CorePoints:  100,
			DronePoints: 250,
		},
		Progression: ProgressionConfig{
			StartLevel:       1,
			ScorePerLevel:    1000,
			ScoreProgression: true,
			AutoAdvance:      true,
			Scenes:           []string{"relay-station", "asteroid-yard", "dark-annex"},
			BannerTicks:      120,
		},
	}
}

// DefaultDriftConfig returns the default Star Drift configuration.
func DefaultDriftConfig() DriftConfig {
	return DriftConfig{
		Physics: DriftPhysics{
			TurnRate:          0.12,
			Thrust:            0.04,
			MaxSpeed:          0.9,
			Drag:              0.985,
			BulletSpeed:       1.4,
			BulletTTLTicks:    45,
			FireCooldownTicks: 12,
		},
		Ship: DriftShip{
			Hull:        100,
			InvulnTicks: 60,
		},
		Asteroids: DriftAsteroids{
			MaxAlive:        6,
			SpawnEveryTicks: 150,
			MinSpeed:        0.05,
			MaxSpeed:        0.25,
			HitDamage:       25,
			Points:          150,
		},
		Progression: ProgressionConfig{
			StartLevel:       1,
			ScorePerLevel:    1500,
			ScoreProgression: true,
			AutoAdvance:      false,
			Scenes:           nil, // Drift uses numeric sector indexes
			BannerTicks:      120,
		},
	}
}
