// Package config provides YAML-based configuration loading and difficulty
// presets for Laser Hop.
package config

import "time"

// LaserHopConfig contains all tunable settings of the game.
type LaserHopConfig struct {
	Stamina    StaminaConfig    `yaml:"stamina"`
	Timing     TimingConfig     `yaml:"timing"`
	Sweep      SweepConfig      `yaml:"sweep"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// StaminaConfig defines the stamina bar.
type StaminaConfig struct {
	Max   float64 `yaml:"max"`
	Decay float64 `yaml:"decay"` // lost per tick
}

// TimingConfig defines the clocks driving the game.
type TimingConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms"` // stamina decay cadence
	SweepLegMs     int `yaml:"sweep_leg_ms"`     // one pass of the laser in one direction
}

// SweepConfig defines where the laser travels, in grid rows from the top.
type SweepConfig struct {
	FromRow float64 `yaml:"from_row"`
	ToRow   float64 `yaml:"to_row"`
}

// ScoringConfig controls score persistence.
type ScoringConfig struct {
	SaveMinScore int `yaml:"save_min_score"` // runs below this are not stored
}

// DifficultyConfig defines how the laser speeds up in endless play.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // level or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // laser speed added at max difficulty
	DecayMultiplier float64 `yaml:"decay_multiplier"` // stamina decay added at max difficulty
}

// TickInterval returns the decay cadence as a duration.
func (c LaserHopConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickIntervalMs) * time.Millisecond
}

// SweepLeg returns one laser pass as a duration.
func (c LaserHopConfig) SweepLeg() time.Duration {
	return time.Duration(c.Timing.SweepLegMs) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values yield false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.0
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
