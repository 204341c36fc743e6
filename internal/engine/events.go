package engine

import (
	"time"

	"github.com/vovakirdan/robot-academy/internal/core"
)

// Mode is the execution mode of the engine.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRunning
	ModeStepRecording
	ModeStepReplaying
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRunning:
		return "running"
	case ModeStepRecording:
		return "step-recording"
	case ModeStepReplaying:
		return "step-replaying"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the engine state handed to listeners.
type Snapshot struct {
	Robot       core.Robot
	Goal        core.Position
	Obstacles   []core.Position
	GridSize    int
	CellSize    int
	IsRunning   bool
	CurrentStep int
	Program     []core.Command
	StepMode    bool
	Mode        Mode
}

// IsObstacle reports whether p is an obstacle cell in this snapshot.
func (s Snapshot) IsObstacle(p core.Position) bool {
	for _, o := range s.Obstacles {
		if o == p {
			return true
		}
	}
	return false
}

// AtGoal reports whether the robot stands on the goal.
func (s Snapshot) AtGoal() bool {
	return s.Robot.Pos == s.Goal
}

// FeedbackKind classifies a feedback message.
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
	FeedbackInfo    FeedbackKind = "info"
	FeedbackHint    FeedbackKind = "hint"
)

// Feedback is a learner-facing message.
type Feedback struct {
	Message   string
	Kind      FeedbackKind
	Timestamp time.Time
}

// Listener receives engine notifications. Calls happen synchronously on the
// goroutine that invoked the engine.
type Listener interface {
	// StateChanged is called after every visible mutation.
	StateChanged(Snapshot)
	// Feedback is called with every learner-facing message.
	Feedback(Feedback)
	// Pace is an animation hint: the presentation should hold the
	// previous state on screen for d before showing the next one.
	Pace(d time.Duration)
}

type nopListener struct{}

func (nopListener) StateChanged(Snapshot) {}
func (nopListener) Feedback(Feedback)     {}
func (nopListener) Pace(time.Duration)    {}

// Event is one recorded notification.
type Event struct {
	State    *Snapshot
	Feedback *Feedback
	Pace     time.Duration
}

// Recorder is a Listener that keeps every notification in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) StateChanged(s Snapshot) {
	r.Events = append(r.Events, Event{State: &s})
}

func (r *Recorder) Feedback(f Feedback) {
	r.Events = append(r.Events, Event{Feedback: &f})
}

func (r *Recorder) Pace(d time.Duration) {
	r.Events = append(r.Events, Event{Pace: d})
}

// LastFeedback returns the most recent feedback, if any.
func (r *Recorder) LastFeedback() (Feedback, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if f := r.Events[i].Feedback; f != nil {
			return *f, true
		}
	}
	return Feedback{}, false
}

// LastState returns the most recent snapshot, if any.
func (r *Recorder) LastState() (Snapshot, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if s := r.Events[i].State; s != nil {
			return *s, true
		}
	}
	return Snapshot{}, false
}

// Paces returns all pace hints in order.
func (r *Recorder) Paces() []time.Duration {
	var out []time.Duration
	for _, e := range r.Events {
		if e.Pace > 0 {
			out = append(out, e.Pace)
		}
	}
	return out
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
