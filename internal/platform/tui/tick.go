// Package tui provides the Bubble Tea front end for the academy.
// It handles the terminal UI loop, input mapping and animation pacing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/robot-academy/internal/engine"
)

// FrameMsg asks the model to reveal the next queued frame.
// Gen ties the tick to the animation that scheduled it, so ticks from an
// interrupted animation are dropped.
type FrameMsg struct {
	Gen int
}

// frameCmd returns a command that fires FrameMsg after d.
// A non-positive d fires on the next update.
func frameCmd(d time.Duration, gen int) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return FrameMsg{Gen: gen} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FrameMsg{Gen: gen}
	})
}

// frame is one engine notification waiting to be shown.
type frame struct {
	state    *engine.Snapshot
	feedback *engine.Feedback
	hold     time.Duration // How long the frame stays on screen
}

// frameQueue is an engine.Listener that buffers notifications so the
// model can reveal them at the pace the engine asked for.
type frameQueue struct {
	frames []frame
}

func (q *frameQueue) StateChanged(s engine.Snapshot) {
	q.frames = append(q.frames, frame{state: &s})
}

func (q *frameQueue) Feedback(f engine.Feedback) {
	q.frames = append(q.frames, frame{feedback: &f})
}

func (q *frameQueue) Pace(d time.Duration) {
	if n := len(q.frames); n > 0 {
		q.frames[n-1].hold += d
	}
}

// pop removes and returns the oldest frame.
func (q *frameQueue) pop() (frame, bool) {
	if len(q.frames) == 0 {
		return frame{}, false
	}
	f := q.frames[0]
	q.frames = q.frames[1:]
	return f, true
}

func (q *frameQueue) len() int {
	return len(q.frames)
}

func (q *frameQueue) clear() {
	q.frames = nil
}
