package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the config directories.
const configFile = "laserhop.yaml"

// LoadLaserHop loads Laser Hop configuration.
// Search order: customPath -> ~/.laserhop/configs/laserhop.yaml -> ./configs/laserhop.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadLaserHop(customPath string) (LaserHopConfig, error) {
	cfg := DefaultLaserHopConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", configFile)); ok {
		return c, nil
	}

	// Use embedded default YAML
	var embedded LaserHopConfig
	if err := yaml.Unmarshal(defaultLaserHopYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultLaserHopConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file; unreadable or invalid files are skipped.
func tryLoad(path string) (LaserHopConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LaserHopConfig{}, false
	}
	cfg := DefaultLaserHopConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LaserHopConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return LaserHopConfig{}, false
	}
	return cfg, true
}

// Validate rejects settings the game cannot run with.
func (c LaserHopConfig) Validate() error {
	switch {
	case c.Stamina.Max <= 0:
		return fmt.Errorf("config: stamina.max must be positive, got %v", c.Stamina.Max)
	case c.Stamina.Decay <= 0:
		return fmt.Errorf("config: stamina.decay must be positive, got %v", c.Stamina.Decay)
	case c.Timing.TickIntervalMs <= 0:
		return fmt.Errorf("config: timing.tick_interval_ms must be positive, got %d", c.Timing.TickIntervalMs)
	case c.Timing.SweepLegMs < 0:
		return fmt.Errorf("config: timing.sweep_leg_ms must not be negative, got %d", c.Timing.SweepLegMs)
	case c.Sweep.FromRow > c.Sweep.ToRow:
		return fmt.Errorf("config: sweep.from_row %v exceeds sweep.to_row %v", c.Sweep.FromRow, c.Sweep.ToRow)
	}
	return nil
}

// UserDir returns ~/.laserhop, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".laserhop")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyLaserHopPreset modifies the config based on a difficulty preset.
func ApplyLaserHopPreset(cfg *LaserHopConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Stamina.Max = 8.0
		cfg.Timing.SweepLegMs = 3500
	case DifficultyHard:
		cfg.Stamina.Max = 3.0
		cfg.Timing.SweepLegMs = 1800
	}
}
