package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/robot-academy/internal/engine"
)

// SessionModel manages the full academy session flow: picker -> lesson -> picker.
// This is the top-level model for both local and SSH play.
type SessionModel struct {
	opts     Options
	picker   PickerModel
	lesson   *LessonModel
	lastID   int
	err      error
	quitting bool
}

// NewSessionModel creates a session. A positive lessonID opens that lesson
// directly; otherwise the session starts at the lesson picker.
func NewSessionModel(opts Options, lessonID int) SessionModel {
	m := SessionModel{opts: opts, lastID: lessonID}
	if lessonID > 0 {
		lm, err := NewLessonModel(opts, lessonID)
		if err == nil {
			m.lesson = &lm
			return m
		}
		m.err = err
	}
	m.picker = NewPickerModel(opts.Catalog, lessonID, opts.Config.ScreenW, opts.Config.ScreenH)
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.lesson != nil {
		return m.lesson.Init()
	}
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Config.ScreenW = wsm.Width
		m.opts.Config.ScreenH = wsm.Height
	}

	if m.lesson != nil {
		return m.updateLesson(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates while the picker is on screen.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if p, ok := newPicker.(PickerModel); ok {
		m.picker = p
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		lm, err := NewLessonModel(m.opts, selected.ID)
		if err != nil {
			m.err = err
			m.picker = NewPickerModel(m.opts.Catalog, selected.ID, m.opts.Config.ScreenW, m.opts.Config.ScreenH)
			return m, nil
		}
		m.err = nil
		m.lesson = &lm
		m.lastID = selected.ID
		return m, m.lesson.Init()
	}

	return m, cmd
}

// updateLesson handles updates while a lesson is on screen.
func (m SessionModel) updateLesson(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.lesson.Update(msg)
	if lm, ok := newModel.(LessonModel); ok {
		m.lesson = &lm
	}

	if m.lesson.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.lesson.BackToMenu() {
		m.lastID = m.lesson.Lesson().ID
		m.lesson = nil
		m.picker = NewPickerModel(m.opts.Catalog, m.lastID, m.opts.Config.ScreenW, m.opts.Config.ScreenH)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.lesson != nil {
		return m.lesson.View()
	}
	if m.err != nil {
		return RenderFeedback(engine.Feedback{Message: "Error: " + m.err.Error(), Kind: engine.FeedbackError}) + "\n" + m.picker.View()
	}
	return m.picker.View()
}

// Run starts a local academy session on the current terminal.
func Run(opts Options, lessonID int) error {
	if opts.Catalog == nil || opts.Catalog.Len() == 0 {
		return fmt.Errorf("no lessons available")
	}

	p := tea.NewProgram(NewSessionModel(opts, lessonID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("academy session: %w", err)
	}
	return nil
}
