package config

import (
	_ "embed"
)

//go:embed defaults/academy.yaml
var defaultAcademyYAML []byte

// DefaultAcademyConfig returns the default academy configuration.
func DefaultAcademyConfig() AcademyConfig {
	return AcademyConfig{
		Board: BoardConfig{
			GridSize: 8,
			CellSize: 50,
		},
		Pacing: PacingConfig{
			Preset:      string(PacingNormal),
			MoveDelayMS: 300,
			TurnDelayMS: 200,
		},
		Script: ScriptConfig{
			MaxRepeat: 100,
			MaxCalls:  1000,
			MaxDepth:  8,
			MaxSteps:  10000,
		},
		Log: LogConfig{
			Level:  "info",
			Prefix: "academy",
		},
		Telemetry: TelemetryConfig{
			Environment: "development",
		},
	}
}
