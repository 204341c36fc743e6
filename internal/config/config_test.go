package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultAcademyConfig()
	if err := yaml.Unmarshal(defaultAcademyYAML, &cfg); err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if cfg != DefaultAcademyConfig() {
		t.Errorf("embedded defaults drifted from DefaultAcademyConfig:\n got %+v\nwant %+v", cfg, DefaultAcademyConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "partial.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Board.GridSize != 10 {
		t.Errorf("grid_size = %d, want 10", cfg.Board.GridSize)
	}
	if cfg.Board.CellSize != 50 {
		t.Errorf("cell_size = %d, want default 50", cfg.Board.CellSize)
	}
	if cfg.Script.MaxRepeat != 100 {
		t.Errorf("max_repeat = %d, want default 100", cfg.Script.MaxRepeat)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("log level = %v, want debug", cfg.LogLevel())
	}
	if got := cfg.Pacing.MoveDelay(); got != 120*time.Millisecond {
		t.Errorf("fast move delay = %v, want 120ms", got)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join("testdata", "nope.yaml")},
		{"invalid values", filepath.Join("testdata", "invalid.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Errorf("Load(%s) succeeded, want error", tt.path)
			}
		})
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultAcademyConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadPrefersLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", "academy.yaml"), []byte("board:\n  grid_size: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Board.GridSize != 6 {
		t.Errorf("grid_size = %d, want 6", cfg.Board.GridSize)
	}
}

func TestPacingPresets(t *testing.T) {
	tests := []struct {
		preset   PacingPreset
		wantMove time.Duration
		wantTurn time.Duration
	}{
		{PacingSlow, 600 * time.Millisecond, 400 * time.Millisecond},
		{PacingNormal, 300 * time.Millisecond, 200 * time.Millisecond},
		{PacingFast, 120 * time.Millisecond, 80 * time.Millisecond},
		{PacingInstant, 0, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultAcademyConfig()
			ApplyPacingPreset(&cfg, tt.preset)

			if got := cfg.Pacing.MoveDelay(); got != tt.wantMove {
				t.Errorf("MoveDelay = %v, want %v", got, tt.wantMove)
			}
			if got := cfg.Pacing.TurnDelay(); got != tt.wantTurn {
				t.Errorf("TurnDelay = %v, want %v", got, tt.wantTurn)
			}
		})
	}
}

func TestValidateRejectsUnknownPreset(t *testing.T) {
	cfg := DefaultAcademyConfig()
	cfg.Pacing.Preset = "ludicrous"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestScriptLimits(t *testing.T) {
	lim := DefaultAcademyConfig().Script.Limits()
	if lim.MaxRepeat != 100 || lim.MaxCalls != 1000 || lim.MaxDepth != 8 || lim.MaxSteps != 10000 {
		t.Errorf("unexpected limits %+v", lim)
	}
}
