package config

import (
	"time"

	"github.com/vovakirdan/laserhop/internal/core"
)

// Difficulty is a resolved difficulty curve. The zero progress point is the
// configured initial level and the curve tops out at 1.
type Difficulty struct {
	cfg  DifficultyConfig
	base float64
}

// NewDifficulty resolves cfg into a curve.
func NewDifficulty(cfg DifficultyConfig) Difficulty {
	return Difficulty{cfg: cfg, base: core.ClampF(cfg.InitialLevel, 0, 1)}
}

// Active reports whether the curve changes anything at all: progression is
// on, or a preset raised the starting point.
func (d Difficulty) Active() bool {
	return d.progresses() || d.base > 0
}

func (d Difficulty) progresses() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// At returns the difficulty (0 to 1) for a run that is depth endless levels
// deep with the given score.
func (d Difficulty) At(depth, score int) float64 {
	if !d.progresses() {
		return d.base
	}

	var driver int
	switch d.cfg.Progression.Type {
	case "level":
		driver = depth
	case "score":
		driver = score
	default:
		return d.base
	}

	maxAt := max(d.cfg.Progression.MaxAt, 1)
	progress := core.ClampF(float64(driver)/float64(maxAt), 0, 1)
	return d.base + progress*(1-d.base)
}

// SweepLeg shortens one laser pass as difficulty rises.
func (d Difficulty) SweepLeg(base time.Duration, depth, score int) time.Duration {
	speedup := 1 + d.At(depth, score)*d.cfg.Scaling.SpeedMultiplier
	return time.Duration(float64(base) / speedup)
}

// Decay raises the per-tick stamina loss as difficulty rises.
func (d Difficulty) Decay(base float64, depth, score int) float64 {
	return base * (1 + d.At(depth, score)*d.cfg.Scaling.DecayMultiplier)
}
