package config

import "time"

// PacingPreset represents a named animation speed.
type PacingPreset string

const (
	PacingSlow    PacingPreset = "slow"
	PacingNormal  PacingPreset = "normal"
	PacingFast    PacingPreset = "fast"
	PacingInstant PacingPreset = "instant"
)

// PacingPresets lists the presets in menu order.
func PacingPresets() []PacingPreset {
	return []PacingPreset{PacingSlow, PacingNormal, PacingFast, PacingInstant}
}

// ScaleForPreset returns the delay multiplier for a preset.
// Unknown presets behave like normal.
func ScaleForPreset(preset PacingPreset) float64 {
	switch preset {
	case PacingSlow:
		return 2.0
	case PacingFast:
		return 0.4
	case PacingInstant:
		return 0
	default:
		return 1.0
	}
}

// IsValidPreset reports whether preset names a known preset.
func IsValidPreset(preset PacingPreset) bool {
	for _, p := range PacingPresets() {
		if p == preset {
			return true
		}
	}
	return false
}

// ApplyPacingPreset selects a preset. The configured delays are kept and
// scaled when read through PacingConfig.
func ApplyPacingPreset(cfg *AcademyConfig, preset PacingPreset) {
	cfg.Pacing.Preset = string(preset)
}

func scaledDelay(ms int, preset PacingPreset) time.Duration {
	scaled := float64(ms) * ScaleForPreset(preset)
	if scaled <= 0 {
		return 0
	}
	return time.Duration(scaled) * time.Millisecond
}
