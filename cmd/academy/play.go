package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/lessons"
	"github.com/vovakirdan/robot-academy/internal/platform/tui"
)

var (
	flagScript  string
	flagPace    string
	flagSeed    int64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play [lesson]",
	Short: "Play lessons in the terminal",
	Long: `Open the academy in the terminal. Without a lesson id the lesson
picker is shown first.

Controls:
  R/Enter    - Run the script
  S/Space    - Step: record the script, then run one command per press
  X          - Reset the robot to the lesson start
  H          - Show a hint
  N/P        - Next / previous lesson
  Tab        - Edit the script (Esc to leave the editor)
  L          - Reload the --script file
  Esc/B      - Back to the lesson picker
  Q/Ctrl+C   - Quit

Pace options:
  slow, normal, fast, instant

Examples:
  academy play
  academy play 2
  academy play 3 --script ./loop.robot --pace fast`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScript, "script", "", "Script file to load and reload with L")
	playCmd.Flags().StringVar(&flagPace, "pace", "", "Pacing preset: slow, normal, fast, instant")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed for hints (0 = random based on time)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(_ *cobra.Command, args []string) {
	lessonID := 0
	if len(args) == 1 {
		l, err := lessonArg(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		lessonID = l.ID
	}

	if err := applyPace(flagPace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          app.cfg.Log.Prefix,
		Level:           app.cfg.LogLevel(),
	})

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Engine:  engineOptions(logger),
		Catalog: app.catalog,
		Logger:  logger,
		Config: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
	}
	if flagScript != "" {
		opts.Source = fileSource(flagScript)
	}

	if err := tui.Run(opts, lessonID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// fileSource reads the script for every lesson from path. When path is a
// directory, the script for lesson N is read from the file whose name starts
// with N and a separator, for example "3-loop.robot".
func fileSource(path string) tui.ScriptSource {
	return func(l lessons.Lesson) (string, error) {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("reading script: %w", err)
		}
		if !info.IsDir() {
			return readScript(path)
		}

		for _, pattern := range []string{"%d-*", "%d_*", "%d.*", "%02d-*", "%02d_*", "%02d.*"} {
			matches, _ := filepath.Glob(filepath.Join(path, fmt.Sprintf(pattern, l.ID)))
			if len(matches) > 0 {
				return readScript(matches[0])
			}
		}
		return "", fmt.Errorf("no script for lesson %d in %s", l.ID, path)
	}
}
