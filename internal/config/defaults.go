package config

import (
	_ "embed"
)

//go:embed defaults/laserhop.yaml
var defaultLaserHopYAML []byte

// DefaultLaserHopConfig returns the default Laser Hop configuration.
func DefaultLaserHopConfig() LaserHopConfig {
	return LaserHopConfig{
		Stamina: StaminaConfig{
			Max:   5.0,
			Decay: 0.1,
		},
		Timing: TimingConfig{
			TickIntervalMs: 100,
			SweepLegMs:     2500,
		},
		Sweep: SweepConfig{
			FromRow: 2,
			ToRow:   9,
		},
		Scoring: ScoringConfig{
			SaveMinScore: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				DecayMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game ID.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "laserhop", "laserhop_endless":
		return defaultLaserHopYAML
	default:
		return nil
	}
}
