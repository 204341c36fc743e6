package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const academyFile = "academy.yaml"

// Load loads the academy configuration.
// Search order: customPath -> ~/.academy/configs/academy.yaml -> ./configs/academy.yaml -> embedded default
//
// Files only need to set the keys they change; everything else keeps its
// default value.
func Load(customPath string) (AcademyConfig, error) {
	cfg := DefaultAcademyConfig()

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
	if userCfgPath := userConfigPath(academyFile); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", academyFile)); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultAcademyYAML, &cfg); err != nil {
		return DefaultAcademyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (AcademyConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AcademyConfig{}, false
	}
	cfg := DefaultAcademyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AcademyConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return AcademyConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".academy", "configs", filename)
}

// Validate checks values that would make the academy unusable.
func (c AcademyConfig) Validate() error {
	if c.Board.GridSize < 2 || c.Board.GridSize > 32 {
		return fmt.Errorf("board.grid_size must be between 2 and 32, got %d", c.Board.GridSize)
	}
	if c.Board.CellSize <= 0 {
		return fmt.Errorf("board.cell_size must be positive, got %d", c.Board.CellSize)
	}
	if c.Pacing.MoveDelayMS < 0 || c.Pacing.TurnDelayMS < 0 {
		return fmt.Errorf("pacing delays must not be negative")
	}
	if c.Pacing.Preset != "" && !IsValidPreset(PacingPreset(c.Pacing.Preset)) {
		return fmt.Errorf("unknown pacing preset %q", c.Pacing.Preset)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel returns the configured log level, falling back to info.
func (c AcademyConfig) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
