package laserhop

import (
	"fmt"

	"github.com/vovakirdan/laserhop/internal/config"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/levels"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// levelsDir stores the custom level pack directory set via CLI
var levelsDir string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLevelsDir sets a directory of YAML levels replacing the stock campaign.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// Settings bundles the loaded configuration and campaign.
type Settings struct {
	Config   config.LaserHopConfig
	Campaign []engine.Level
}

// DefaultSettings returns the stock configuration and campaign.
func DefaultSettings() Settings {
	return Settings{
		Config:   config.DefaultLaserHopConfig(),
		Campaign: engine.BuiltinLevels(),
	}
}

// LoadSettings resolves configuration and campaign from the CLI selections.
func LoadSettings() (Settings, error) {
	cfg, err := config.LoadLaserHop(configPath)
	if err != nil {
		return DefaultSettings(), err
	}
	if difficultyPreset != "" {
		config.ApplyLaserHopPreset(&cfg, difficultyPreset)
	}

	campaign := engine.BuiltinLevels()
	if levelsDir != "" {
		campaign, err = levels.NewLoader(levelsDir).Campaign()
		if err != nil {
			return DefaultSettings(), fmt.Errorf("laserhop: level pack: %w", err)
		}
	}

	return Settings{Config: cfg, Campaign: campaign}, nil
}

// CampaignLength returns the number of hand-authored levels.
func (s Settings) CampaignLength() int {
	return len(s.Campaign)
}

// Depth returns how many levels past the campaign level is, 0 inside it.
func (s Settings) Depth(level int) int {
	return max(0, level-s.CampaignLength())
}

// Rules returns the base engine rules.
func (s Settings) Rules() engine.Rules {
	return engine.Rules{
		MaxStamina:   s.Config.Stamina.Max,
		StaminaDecay: s.Config.Stamina.Decay,
	}
}

// EngineOptions builds the options for an engine playing these settings.
// A zero seed keeps the engine's time-based random source.
func (s Settings) EngineOptions(seed int64) []engine.Option {
	base := s.Rules()
	diff := config.NewDifficulty(s.Config.Difficulty)

	opts := []engine.Option{
		engine.WithRules(base),
		engine.WithLevels(s.Campaign),
		engine.WithSeed(seed),
	}
	if diff.Active() {
		opts = append(opts, engine.WithScaling(func(st engine.State) engine.Rules {
			r := base
			r.StaminaDecay = diff.Decay(base.StaminaDecay, s.Depth(st.Level), st.Score)
			return r
		}))
	}
	return opts
}

// NewEngine creates an engine for these settings.
func (s Settings) NewEngine(seed int64) *engine.Engine {
	return engine.New(s.EngineOptions(seed)...)
}

// Sweep returns the laser sweep for a level starting with the given score.
func (s Settings) Sweep(level, score int) engine.Sweep {
	diff := config.NewDifficulty(s.Config.Difficulty)
	return engine.Sweep{
		From: s.Config.Sweep.FromRow,
		To:   s.Config.Sweep.ToRow,
		Leg:  diff.SweepLeg(s.Config.SweepLeg(), s.Depth(level), score),
	}
}
