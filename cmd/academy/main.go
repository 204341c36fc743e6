// academy is a terminal classroom where learners program a robot to reach a star.
//
// Usage:
//
//	academy list                      - List available lessons
//	academy play [lesson]             - Play lessons in the terminal
//	academy run <lesson> <script>     - Run a script headless and report the outcome
//	academy check <lesson> <script>   - Parse a script and review it against a lesson
//	academy serve                     - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Academy config YAML
//	--lessons <dir>     - Extra lessons directory
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/robot-academy/internal/config"
	"github.com/vovakirdan/robot-academy/internal/engine"
	"github.com/vovakirdan/robot-academy/internal/lessons"
)

var (
	// Global flags
	flagConfig   string
	flagLessons  string
	flagLogLevel string
)

// app holds what every subcommand needs after startup.
var app struct {
	cfg     config.AcademyConfig
	logger  *log.Logger
	catalog *lessons.Catalog
	sentry  bool
}

func main() {
	err := rootCmd.Execute()
	if app.sentry {
		sentry.Flush(2 * time.Second)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "Robot Academy - Program a robot in your terminal",
	Long: `Robot Academy teaches programming with a robot on a grid.
Write a short script with moveForward(), turnRight(), turnLeft() and
repeat loops, then run it and watch the robot try to reach the star.

Available commands:
  list     - Show all lessons
  play     - Play lessons interactively
  run      - Run a script headless
  check    - Parse and review a script without running it
  serve    - Start SSH server for remote play

Examples:
  academy list
  academy play 1 --script ./lesson1.robot
  academy run 3 ./loop.robot --step
  academy serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to academy config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLessons, "lessons", "", "Directory with extra lesson files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration, the logger, crash reporting and the lesson catalog.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLessons != "" {
		cfg.Lessons.Dir = flagLessons
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	app.cfg = cfg

	app.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          cfg.Log.Prefix,
		Level:           cfg.LogLevel(),
	})

	if dsn := cfg.Telemetry.SentryDSN; dsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: cfg.Telemetry.Environment,
		})
		if err != nil {
			app.logger.Warn("crash reporting disabled", "err", err)
		} else {
			app.sentry = true
		}
	}

	catalog, err := lessons.Load(cfg.Lessons.Dir, cfg.Board.GridSize, func(path string, err error) {
		app.logger.Warn("skipping lesson file", "path", path, "err", err)
	})
	if err != nil {
		return err
	}
	app.catalog = catalog
	return nil
}

// engineOptions builds engine options from the loaded configuration.
func engineOptions(logger *log.Logger) engine.Options {
	return engine.Options{
		GridSize:  app.cfg.Board.GridSize,
		CellSize:  app.cfg.Board.CellSize,
		MoveDelay: app.cfg.Pacing.MoveDelay(),
		TurnDelay: app.cfg.Pacing.TurnDelay(),
		Limits:    app.cfg.Script.Limits(),
		Logger:    logger,
	}
}

// applyPace overrides the configured pacing preset.
func applyPace(preset string) error {
	if preset == "" {
		return nil
	}
	if !config.IsValidPreset(config.PacingPreset(preset)) {
		return fmt.Errorf("unknown pace %q (want one of %v)", preset, config.PacingPresets())
	}
	config.ApplyPacingPreset(&app.cfg, config.PacingPreset(preset))
	return nil
}

// lessonArg resolves a lesson id argument against the catalog.
func lessonArg(arg string) (lessons.Lesson, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return lessons.Lesson{}, fmt.Errorf("lesson must be a number, got %q", arg)
	}
	l, ok := app.catalog.ByID(id)
	if !ok {
		return lessons.Lesson{}, fmt.Errorf("unknown lesson %d; run 'academy list' to see lessons", id)
	}
	return l, nil
}

// readScript reads a script file, or standard input when path is "-".
func readScript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading script from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading script: %w", err)
	}
	return string(data), nil
}
