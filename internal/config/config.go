// Package config provides YAML-based configuration loading and pacing
// presets for the academy.
package config

import (
	"time"

	"github.com/vovakirdan/robot-academy/internal/script"
)

// AcademyConfig contains all configuration for the academy.
type AcademyConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Pacing    PacingConfig    `yaml:"pacing"`
	Script    ScriptConfig    `yaml:"script"`
	Lessons   LessonsConfig   `yaml:"lessons"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// BoardConfig defines the default board geometry.
type BoardConfig struct {
	GridSize int `yaml:"grid_size"`
	CellSize int `yaml:"cell_size"` // Pixel size reported in snapshots
}

// PacingConfig defines animation delays between primitives during a run.
type PacingConfig struct {
	Preset      string `yaml:"preset"` // "slow", "normal", "fast" or "instant"
	MoveDelayMS int    `yaml:"move_delay_ms"`
	TurnDelayMS int    `yaml:"turn_delay_ms"`
}

// MoveDelay returns the move delay scaled by the preset.
func (p PacingConfig) MoveDelay() time.Duration {
	return scaledDelay(p.MoveDelayMS, PacingPreset(p.Preset))
}

// TurnDelay returns the turn delay scaled by the preset.
func (p PacingConfig) TurnDelay() time.Duration {
	return scaledDelay(p.TurnDelayMS, PacingPreset(p.Preset))
}

// ScriptConfig bounds learner scripts.
type ScriptConfig struct {
	MaxRepeat int `yaml:"max_repeat"`
	MaxCalls  int `yaml:"max_calls"`
	MaxDepth  int `yaml:"max_depth"`
	MaxSteps  int `yaml:"max_steps"`
}

// Limits converts the section to interpreter limits.
func (s ScriptConfig) Limits() script.Limits {
	return script.Limits{
		MaxRepeat: s.MaxRepeat,
		MaxCalls:  s.MaxCalls,
		MaxDepth:  s.MaxDepth,
		MaxSteps:  s.MaxSteps,
	}
}

// LessonsConfig points at extra lesson files.
type LessonsConfig struct {
	Dir string `yaml:"dir"` // Empty means built-in lessons only
}

// LogConfig configures the charm logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Prefix string `yaml:"prefix"`
}

// TelemetryConfig configures crash reporting.
type TelemetryConfig struct {
	SentryDSN   string `yaml:"sentry_dsn"` // Empty disables reporting
	Environment string `yaml:"environment"`
}
