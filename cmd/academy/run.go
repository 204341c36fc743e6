package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/engine"
	"github.com/vovakirdan/robot-academy/internal/platform/tui"
)

var (
	flagStep      bool
	flagRunPace   string
	flagWait      bool
	flagShowBoard bool
)

var runCmd = &cobra.Command{
	Use:   "run <lesson> <script>",
	Short: "Run a script headless",
	Long: `Run a script against a lesson without the interactive UI and report
every state change and message. Use "-" to read the script from stdin.

The command exits with status 1 when the robot does not end on the goal.

Examples:
  academy run 1 ./first.robot
  academy run 3 ./loop.robot --step
  echo 'repeat 3 { moveForward(); }' | academy run 1 -`,
	Args: cobra.ExactArgs(2),
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagStep, "step", false, "Record the script, then replay it one command at a time")
	runCmd.Flags().StringVar(&flagRunPace, "pace", "", "Pacing preset used with --wait")
	runCmd.Flags().BoolVar(&flagWait, "wait", false, "Sleep for the pacing delays between commands")
	runCmd.Flags().BoolVar(&flagShowBoard, "board", true, "Print the final board")
}

// logListener prints engine notifications through the charm logger.
type logListener struct {
	log  *log.Logger
	wait bool
}

func (l *logListener) StateChanged(s engine.Snapshot) {
	l.log.Debug("state", "mode", s.Mode, "robot", s.Robot, "step", s.CurrentStep, "commands", len(s.Program))
}

func (l *logListener) Feedback(f engine.Feedback) {
	switch f.Kind {
	case engine.FeedbackError:
		l.log.Error(f.Message)
	case engine.FeedbackSuccess:
		l.log.Info(f.Message)
	default:
		l.log.Info(f.Message, "kind", f.Kind)
	}
}

func (l *logListener) Pace(d time.Duration) {
	if l.wait {
		time.Sleep(d)
	}
}

func runRun(_ *cobra.Command, args []string) {
	lesson, err := lessonArg(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	src, err := readScript(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := applyPace(flagRunPace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := log.NewWithOptions(os.Stdout, log.Options{
		Prefix: fmt.Sprintf("lesson %d", lesson.ID),
		Level:  app.cfg.LogLevel(),
	})
	listener := &logListener{log: out, wait: flagWait}
	eng := engine.New(engineOptions(app.logger), listener)

	grid := lesson.Size(app.cfg.Board.GridSize)
	if err := eng.LoadLevel(lesson.Level(grid)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var res engine.Result
	if flagStep {
		res = stepThrough(eng, src)
	} else {
		res = eng.Run(src)
	}

	if res.Status == engine.StatusSolved {
		if prog, err := eng.Compile(src); err == nil {
			for _, note := range lesson.Review(prog.Blocks()) {
				out.Warn(note)
			}
		}
	}

	if flagShowBoard {
		w, h := tui.BoardSize(grid)
		screen := core.NewScreen(w, h)
		tui.DrawBoard(screen, eng.Snapshot(), 0, 0)
		fmt.Println(tui.RenderScreen(screen))
	}

	robot := eng.Robot()
	out.Info("finished", "status", res.Status, "robot", robot, "distance", robot.Pos.Manhattan(lesson.Goal))
	if res.Status != engine.StatusSolved {
		os.Exit(1)
	}
}

// stepThrough records src and replays it until the engine stops stepping.
func stepThrough(eng *engine.Engine, src string) engine.Result {
	res := eng.Step(src)
	for res.Status == engine.StatusRecorded || res.Status == engine.StatusStepped {
		res = eng.Step(src)
	}
	return res
}
