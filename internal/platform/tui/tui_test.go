package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/engine"
	"github.com/vovakirdan/robot-academy/internal/lessons"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runeKey('r'), core.ActionRun, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRun, false},
		{runeKey('s'), core.ActionStep, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStep, false},
		{runeKey('x'), core.ActionReset, false},
		{runeKey('h'), core.ActionHint, false},
		{runeKey('n'), core.ActionNext, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionPrev, false},
		{runeKey('l'), core.ActionReload, false},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionEdit, false},
		{runeKey('?'), core.ActionHelp, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runeKey('k')))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey('q')))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey('z')))
}

func TestDrawBoard(t *testing.T) {
	snap := engine.Snapshot{
		Robot:     core.NewRobot(0, 0, core.East),
		Goal:      core.P(2, 1),
		Obstacles: []core.Position{core.P(1, 1)},
		GridSize:  3,
	}

	w, h := BoardSize(snap.GridSize)
	require.Equal(t, 11, w)
	require.Equal(t, 5, h)

	s := core.NewScreen(w, h)
	DrawBoard(s, snap, 0, 0)

	assert.Equal(t, '▶', s.Get(2, 1), "robot arrow in the middle of its cell")
	assert.Equal(t, glyphEmpty, s.Get(5, 1))
	assert.Equal(t, glyphObstacle, s.Get(4, 2))
	assert.Equal(t, glyphObstacle, s.Get(6, 2))
	assert.Equal(t, glyphGoal, s.Get(8, 2))
	assert.Equal(t, core.ColorBrightYellow, s.GetCell(8, 2).Color)
}

func TestDrawBoardRobotAtGoal(t *testing.T) {
	snap := engine.Snapshot{
		Robot:    core.NewRobot(1, 0, core.North),
		Goal:     core.P(1, 0),
		GridSize: 2,
	}
	w, h := BoardSize(snap.GridSize)
	s := core.NewScreen(w, h)
	DrawBoard(s, snap, 0, 0)

	cell := s.GetCell(5, 1)
	assert.Equal(t, '▲', cell.Rune, "robot drawn over the goal")
	assert.Equal(t, core.ColorGreen, cell.Color)
}

func TestFrameQueuePaceHoldsLastFrame(t *testing.T) {
	q := &frameQueue{}
	q.Pace(time.Second) // Nothing to hold yet
	q.StateChanged(engine.Snapshot{})
	q.Pace(200 * time.Millisecond)
	q.Feedback(engine.Feedback{Message: "done"})

	require.Equal(t, 2, q.len())
	f, ok := q.pop()
	require.True(t, ok)
	assert.NotNil(t, f.state)
	assert.Equal(t, 200*time.Millisecond, f.hold)

	f, ok = q.pop()
	require.True(t, ok)
	assert.Equal(t, "done", f.feedback.Message)
	assert.Zero(t, f.hold)

	_, ok = q.pop()
	assert.False(t, ok)
}

func newTestLessonModel(t *testing.T) LessonModel {
	t.Helper()
	builtin, err := lessons.Builtin(8)
	require.NoError(t, err)

	opts := Options{
		Engine:  engine.DefaultOptions(),
		Catalog: lessons.NewCatalog(builtin),
		Config:  core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: 1},
	}
	m, err := NewLessonModel(opts, 1)
	require.NoError(t, err)
	return m
}

func press(m LessonModel, msg tea.KeyMsg) LessonModel {
	nm, _ := m.Update(msg)
	return nm.(LessonModel)
}

// playOut delivers frame ticks until the animation finishes.
func playOut(t *testing.T, m LessonModel) LessonModel {
	t.Helper()
	for i := 0; m.Animating(); i++ {
		require.Less(t, i, 1000, "animation never finished")
		nm, _ := m.Update(FrameMsg{Gen: m.gen})
		m = nm.(LessonModel)
	}
	return m
}

func TestLessonModelRunSolves(t *testing.T) {
	m := newTestLessonModel(t)
	assert.Equal(t, core.P(1, 1), m.Shown().Robot.Pos)

	m.editor.SetValue(m.Lesson().Solution)
	m = press(m, runeKey('r'))
	require.True(t, m.Animating(), "run is revealed frame by frame")
	assert.Equal(t, core.P(1, 1), m.Shown().Robot.Pos, "first frame is the checkpoint")

	// Keys other than reset are ignored mid-animation.
	m = press(m, runeKey('s'))

	m = playOut(t, m)
	assert.Equal(t, core.P(4, 1), m.Shown().Robot.Pos)
	assert.False(t, m.Shown().IsRunning)

	fb, ok := m.LastFeedback()
	require.True(t, ok)
	assert.Equal(t, engine.MsgSolved, fb.Message)
	assert.Equal(t, engine.FeedbackSuccess, fb.Kind)
}

func TestLessonModelStaleFramesIgnored(t *testing.T) {
	m := newTestLessonModel(t)
	m.editor.SetValue(m.Lesson().Solution)

	m = press(m, runeKey('r'))
	require.True(t, m.Animating())
	stale := m.gen

	m = press(m, runeKey('x'))
	assert.False(t, m.Animating())
	assert.Equal(t, core.P(1, 1), m.Shown().Robot.Pos)

	nm, cmd := m.Update(FrameMsg{Gen: stale})
	m = nm.(LessonModel)
	assert.Nil(t, cmd)
	assert.Equal(t, core.P(1, 1), m.Shown().Robot.Pos)

	fb, _ := m.LastFeedback()
	assert.Equal(t, engine.MsgReady, fb.Message)
}

func TestLessonModelStepThrough(t *testing.T) {
	m := newTestLessonModel(t)
	m.editor.SetValue("turnRight(); moveForward();")

	m = playOut(t, press(m, runeKey('s')))
	assert.True(t, m.Shown().StepMode)
	assert.Equal(t, 0, m.Shown().CurrentStep)
	assert.Equal(t, core.P(1, 1), m.Shown().Robot.Pos)

	m = playOut(t, press(m, runeKey('s')))
	assert.Equal(t, core.East, m.Shown().Robot.Dir)

	m = playOut(t, press(m, runeKey('s')))
	assert.Equal(t, core.P(2, 1), m.Shown().Robot.Pos)

	fb, _ := m.LastFeedback()
	assert.Equal(t, engine.MsgNotThere, fb.Message)
}

func TestLessonModelErrorFeedback(t *testing.T) {
	m := newTestLessonModel(t)
	m.editor.SetValue("moveForward(); moveForward();")

	m = playOut(t, press(m, runeKey('r')))
	assert.Equal(t, core.P(1, 0), m.Shown().Robot.Pos, "stops before the wall")

	fb, _ := m.LastFeedback()
	assert.Equal(t, "Error: Robot hit the wall! 🧱", fb.Message)
	assert.Equal(t, engine.FeedbackError, fb.Kind)
}

func TestLessonModelNavigation(t *testing.T) {
	m := newTestLessonModel(t)

	m = press(m, runeKey('n'))
	assert.Equal(t, 2, m.Lesson().ID)
	m = press(m, runeKey('p'))
	assert.Equal(t, 1, m.Lesson().ID)
	m = press(m, runeKey('p'))
	assert.Equal(t, 1, m.Lesson().ID, "no lesson before the first")

	m = press(m, runeKey('b'))
	assert.True(t, m.BackToMenu())
}

func TestLessonModelEditorFocus(t *testing.T) {
	m := newTestLessonModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.editing)

	// While editing, letters go to the script, not to the key map.
	m = press(m, runeKey('r'))
	assert.Equal(t, "r", m.editor.Value())
	assert.False(t, m.Animating())

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.False(t, m.BackToMenu())
}

func TestLessonModelReloadWithoutSource(t *testing.T) {
	m := newTestLessonModel(t)
	m = press(m, runeKey('l'))

	fb, ok := m.LastFeedback()
	require.True(t, ok)
	assert.Equal(t, engine.FeedbackInfo, fb.Kind)
	assert.Contains(t, fb.Message, "No script file")
}

func TestLessonModelReloadFromSource(t *testing.T) {
	builtin, err := lessons.Builtin(8)
	require.NoError(t, err)

	opts := Options{
		Engine:  engine.DefaultOptions(),
		Catalog: lessons.NewCatalog(builtin),
		Source: func(l lessons.Lesson) (string, error) {
			return l.Solution, nil
		},
		Config: core.RuntimeConfig{Seed: 1},
	}
	m, err := NewLessonModel(opts, 1)
	require.NoError(t, err)
	assert.Equal(t, m.Lesson().Solution, m.editor.Value())

	m.editor.SetValue("")
	m = press(m, runeKey('l'))
	assert.Equal(t, m.Lesson().Solution, m.editor.Value())
	fb, _ := m.LastFeedback()
	assert.Equal(t, "Script reloaded.", fb.Message)
}

func TestSessionPickerToLesson(t *testing.T) {
	builtin, err := lessons.Builtin(8)
	require.NoError(t, err)
	opts := Options{
		Engine:  engine.DefaultOptions(),
		Catalog: lessons.NewCatalog(builtin),
		Config:  core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: 1},
	}

	m := NewSessionModel(opts, 0)
	require.Nil(t, m.lesson)

	nm, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	nm, _ = nm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = nm.(SessionModel)
	require.NotNil(t, m.lesson)
	assert.Equal(t, 2, m.lesson.Lesson().ID)

	nm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = nm.(SessionModel)
	assert.Nil(t, m.lesson)
	assert.Equal(t, 1, m.picker.table.Cursor(), "picker returns to the last lesson")
}
