// Package engine is the robot simulation core. It owns the board state,
// runs scripts against it either in one go or one primitive at a time, and
// reports every change to a Listener.
//
// The engine never sleeps. Animation pacing is emitted as Listener.Pace hints
// and left to the presentation layer's timer.
package engine

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/script"
)

// Learner-facing messages.
const (
	MsgReady      = "Ready to start!"
	MsgSolved     = "🎉 Excellent! You solved the puzzle!"
	MsgNotThere   = "Not quite there yet. Try again! 🔄"
	MsgEmptyRun   = "Add some blocks to create your program!"
	MsgEmptyStep  = "Add some blocks first!"
	msgStepMode   = "Step mode: %d commands. Press Step to execute one at a time."
	msgStepOf     = "Step %d of %d"
	msgHintPrefix = "💡 Hint: "
)

// Options configures an Engine.
type Options struct {
	GridSize  int
	CellSize  int
	MoveDelay time.Duration
	TurnDelay time.Duration
	Limits    script.Limits
	Logger    *log.Logger
	Now       func() time.Time
}

// DefaultOptions returns the board and pacing of the classic lessons.
func DefaultOptions() Options {
	return Options{
		GridSize:  8,
		CellSize:  50,
		MoveDelay: 300 * time.Millisecond,
		TurnDelay: 200 * time.Millisecond,
		Limits:    script.DefaultLimits(),
	}
}

// Status is the outcome of a Run or Step call.
type Status int

const (
	StatusIgnored    Status = iota // Call rejected, engine busy or nothing to do
	StatusEmpty                    // Blank script
	StatusSolved                   // Finished on the goal
	StatusIncomplete               // Finished elsewhere
	StatusFailed                   // Aborted by an error
	StatusRecorded                 // Step mode entered
	StatusStepped                  // One recorded command replayed
)

func (s Status) String() string {
	switch s {
	case StatusIgnored:
		return "ignored"
	case StatusEmpty:
		return "empty"
	case StatusSolved:
		return "solved"
	case StatusIncomplete:
		return "incomplete"
	case StatusFailed:
		return "failed"
	case StatusRecorded:
		return "recorded"
	case StatusStepped:
		return "stepped"
	default:
		return "unknown"
	}
}

// Result reports what a Run or Step call did.
type Result struct {
	Status Status
	Err    error
	Robot  core.Robot
}

// Engine is the simulation core. It is not safe for concurrent use;
// every session owns its own Engine.
type Engine struct {
	opts     Options
	log      *log.Logger
	listener Listener
	compiler *script.Compiler

	// Checkpoint restored by Reset, Run and step recording.
	level    Level
	gridSize int
	loaded   bool

	robot     core.Robot
	obstacles obstacleSet
	mode      Mode
	program   []core.Command
	step      int
}

// New creates an engine with no level loaded. A nil listener discards
// notifications.
func New(opts Options, listener Listener) *Engine {
	def := DefaultOptions()
	if opts.GridSize <= 0 {
		opts.GridSize = def.GridSize
	}
	if opts.CellSize <= 0 {
		opts.CellSize = def.CellSize
	}
	if opts.Limits == (script.Limits{}) {
		opts.Limits = def.Limits
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if listener == nil {
		listener = nopListener{}
	}

	return &Engine{
		opts:     opts,
		log:      logger,
		listener: listener,
		compiler: script.NewCompiler(opts.Limits),
		gridSize: opts.GridSize,
	}
}

// SetListener replaces the listener. A nil listener discards notifications.
func (e *Engine) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	e.listener = l
}

// LoadLevel stores lvl as the reset checkpoint and puts the robot on it.
func (e *Engine) LoadLevel(lvl Level) error {
	if e.mode == ModeRunning || e.mode == ModeStepRecording {
		return ErrBusy
	}

	size := lvl.GridSize
	if size <= 0 {
		size = e.opts.GridSize
	}
	if err := lvl.Validate(size); err != nil {
		e.log.Warn("level rejected", "err", err)
		return fmt.Errorf("load level: %w", err)
	}

	lvl.GridSize = size
	lvl.Obstacles = append([]core.Position(nil), lvl.Obstacles...)
	e.level = lvl
	e.gridSize = size
	e.loaded = true

	e.restore()
	e.log.Debug("level loaded", "robot", lvl.Robot, "goal", lvl.Goal, "obstacles", e.obstacles.Len(), "grid", size)
	e.notify()
	return nil
}

// Reset restores the checkpoint, leaves step mode and announces readiness.
// Calling it repeatedly has the same effect as calling it once. Calls made
// while a run or step recording is in progress are ignored.
func (e *Engine) Reset() {
	if e.busy() {
		e.log.Debug("reset ignored", "mode", e.mode)
		return
	}
	e.restore()
	e.notify()
	e.feedback(MsgReady, FeedbackInfo)
}

// Run executes src from the checkpoint. Calls made while a run is in
// progress are ignored.
func (e *Engine) Run(src string) Result {
	if e.busy() {
		e.log.Debug("run ignored", "mode", e.mode)
		return e.result(StatusIgnored, nil)
	}
	if !e.loaded {
		return e.result(StatusIgnored, ErrNoLevel)
	}
	if strings.TrimSpace(src) == "" {
		e.feedback(MsgEmptyRun, FeedbackInfo)
		return e.result(StatusEmpty, nil)
	}

	e.restore()
	e.mode = ModeRunning
	e.notify()
	defer func() {
		e.mode = ModeIdle
		e.notify()
	}()

	if err := e.exec(src); err != nil {
		e.log.Info("run failed", "robot", e.robot, "err", err)
		e.feedback(Message(err), FeedbackError)
		return e.result(StatusFailed, err)
	}

	status := e.checkGoal()
	e.log.Info("run finished", "status", status, "robot", e.robot)
	return e.result(status, nil)
}

// Step records src on the first call and replays one command per call
// afterwards. Reset leaves step mode.
func (e *Engine) Step(src string) Result {
	if e.busy() {
		e.log.Debug("step ignored", "mode", e.mode)
		return e.result(StatusIgnored, nil)
	}
	if !e.loaded {
		return e.result(StatusIgnored, ErrNoLevel)
	}
	if strings.TrimSpace(src) == "" {
		e.feedback(MsgEmptyStep, FeedbackInfo)
		return e.result(StatusEmpty, nil)
	}

	if e.mode != ModeStepReplaying {
		return e.record(src)
	}
	return e.replay()
}

// Hint shows a hint message to the learner.
func (e *Engine) Hint(text string) {
	e.feedback(msgHintPrefix+text, FeedbackHint)
}

// Notify sends a free-form message to the listener.
func (e *Engine) Notify(msg string, kind FeedbackKind) {
	e.feedback(msg, kind)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Robot:       e.robot,
		Goal:        e.level.Goal,
		Obstacles:   e.obstacles.List(),
		GridSize:    e.gridSize,
		CellSize:    e.opts.CellSize,
		IsRunning:   e.mode == ModeRunning,
		CurrentStep: e.step,
		Program:     append([]core.Command(nil), e.program...),
		StepMode:    e.mode == ModeStepReplaying,
		Mode:        e.mode,
	}
}

// Mode returns the current execution mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Robot returns the live robot state.
func (e *Engine) Robot() core.Robot {
	return e.robot
}

// Level returns the loaded checkpoint.
func (e *Engine) Level() Level {
	return e.level
}

// Compile parses and validates src with the engine's limits.
func (e *Engine) Compile(src string) (*script.Program, error) {
	return e.compiler.Compile(src)
}

func (e *Engine) record(src string) Result {
	e.restore()
	e.mode = ModeStepRecording

	if err := e.exec(src); err != nil {
		// Step mode stays uninitialised; the robot is left where the
		// simulated move failed.
		e.mode = ModeIdle
		e.program = nil
		e.log.Info("step recording failed", "robot", e.robot, "err", err)
		e.notify()
		e.feedback(Message(err), FeedbackError)
		return e.result(StatusFailed, err)
	}

	e.robot = e.level.Robot
	e.step = 0
	e.mode = ModeStepReplaying
	e.log.Info("step mode", "commands", len(e.program))
	e.notify()
	e.feedback(fmt.Sprintf(msgStepMode, len(e.program)), FeedbackInfo)
	return e.result(StatusRecorded, nil)
}

func (e *Engine) replay() Result {
	if e.step >= len(e.program) {
		return e.result(StatusIgnored, nil)
	}

	cmd := e.program[e.step]
	e.step++
	if err := e.apply(cmd); err != nil {
		// Unreachable for a program that recorded cleanly.
		e.log.Error("replay failed", "step", e.step, "cmd", cmd, "err", err)
		e.mode = ModeIdle
		e.program = nil
		e.step = 0
		e.notify()
		e.feedback(Message(err), FeedbackError)
		return e.result(StatusFailed, err)
	}

	if e.step >= len(e.program) {
		return e.result(e.checkGoal(), nil)
	}
	e.feedback(fmt.Sprintf(msgStepOf, e.step, len(e.program)), FeedbackInfo)
	return e.result(StatusStepped, nil)
}

func (e *Engine) exec(src string) error {
	prog, err := e.compiler.Compile(src)
	if err != nil {
		return err
	}
	return prog.Exec(machine{e}, e.opts.Limits)
}

func (e *Engine) apply(cmd core.Command) error {
	m := machine{e}
	switch cmd {
	case core.CmdMoveForward:
		return m.MoveForward()
	case core.CmdTurnRight:
		return m.TurnRight()
	case core.CmdTurnLeft:
		return m.TurnLeft()
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// restore puts the live state back on the checkpoint and leaves step mode.
func (e *Engine) restore() {
	e.robot = e.level.Robot
	e.obstacles = newObstacleSet(e.level.Obstacles)
	e.gridSize = e.level.GridSize
	if e.gridSize <= 0 {
		e.gridSize = e.opts.GridSize
	}
	e.mode = ModeIdle
	e.program = nil
	e.step = 0
}

func (e *Engine) checkGoal() Status {
	if e.robot.Pos == e.level.Goal {
		e.feedback(MsgSolved, FeedbackSuccess)
		return StatusSolved
	}
	e.feedback(MsgNotThere, FeedbackInfo)
	return StatusIncomplete
}

func (e *Engine) busy() bool {
	return e.mode == ModeRunning || e.mode == ModeStepRecording
}

func (e *Engine) result(s Status, err error) Result {
	return Result{Status: s, Err: err, Robot: e.robot}
}

func (e *Engine) notify() {
	e.listener.StateChanged(e.Snapshot())
}

func (e *Engine) feedback(msg string, kind FeedbackKind) {
	e.listener.Feedback(Feedback{Message: msg, Kind: kind, Timestamp: e.opts.Now()})
}

// committed publishes a primitive's effect: nothing while recording,
// a state change otherwise, plus a pace hint outside step mode.
func (e *Engine) committed(delay time.Duration) {
	if e.mode == ModeStepRecording {
		return
	}
	e.notify()
	if e.mode == ModeRunning && delay > 0 {
		e.listener.Pace(delay)
	}
}

// machine exposes the three primitives of an Engine to scripts.
type machine struct {
	e *Engine
}

func (m machine) MoveForward() error {
	e := m.e
	if e.mode == ModeStepRecording {
		e.program = append(e.program, core.CmdMoveForward)
	}

	from := e.robot.Pos
	to := e.robot.Ahead()
	if !to.Within(e.gridSize) {
		return &MoveError{Kind: ErrOutOfBounds, From: from, To: to}
	}
	if e.obstacles.Has(to) {
		return &MoveError{Kind: ErrObstacleCollision, From: from, To: to}
	}

	e.robot.Pos = to
	e.log.Debug("moveForward", "from", from, "to", to)
	e.committed(e.opts.MoveDelay)
	return nil
}

func (m machine) TurnRight() error {
	return m.turn(core.CmdTurnRight, m.e.robot.Dir.Right())
}

func (m machine) TurnLeft() error {
	return m.turn(core.CmdTurnLeft, m.e.robot.Dir.Left())
}

func (m machine) turn(cmd core.Command, to core.Direction) error {
	e := m.e
	if e.mode == ModeStepRecording {
		e.program = append(e.program, cmd)
	}
	e.log.Debug(string(cmd), "from", e.robot.Dir, "to", to)
	e.robot.Dir = to
	e.committed(e.opts.TurnDelay)
	return nil
}

var _ script.Machine = machine{}
