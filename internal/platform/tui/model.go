package tui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/engine"
	"github.com/vovakirdan/robot-academy/internal/lessons"
)

// reviewDelay keeps the success message on screen before lesson notes follow it.
const reviewDelay = 1500 * time.Millisecond

// ScriptSource loads the learner's script for a lesson from outside the TUI,
// for example from a file the learner edits in their own editor.
type ScriptSource func(l lessons.Lesson) (string, error)

// Options configures the lesson screen.
type Options struct {
	Engine  engine.Options
	Catalog *lessons.Catalog
	Source  ScriptSource // Optional
	Logger  *log.Logger
	Config  core.RuntimeConfig
}

// LessonModel is the Bubble Tea model for playing one lesson at a time.
type LessonModel struct {
	opts      Options
	log       *log.Logger
	eng       *engine.Engine
	queue     *frameQueue
	lesson    lessons.Lesson
	screen    *core.Screen
	editor    textarea.Model
	keyMapper *KeyMapper
	help      help.Model
	rng       *rand.Rand

	shown       engine.Snapshot // Snapshot currently on screen
	feedback    engine.Feedback
	hasFeedback bool
	animating   bool
	gen         int // Animation generation

	editing    bool
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewLessonModel creates the lesson screen positioned on lessonID.
func NewLessonModel(opts Options, lessonID int) (LessonModel, error) {
	if opts.Catalog == nil || opts.Catalog.Len() == 0 {
		return LessonModel{}, fmt.Errorf("no lessons available")
	}
	lesson, ok := opts.Catalog.ByID(lessonID)
	if !ok {
		return LessonModel{}, fmt.Errorf("lesson not found: %d", lessonID)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Config.Seed == 0 {
		opts.Config.Seed = time.Now().UnixNano()
	}

	queue := &frameQueue{}
	engOpts := opts.Engine
	engOpts.Logger = logger
	eng := engine.New(engOpts, queue)

	editor := textarea.New()
	editor.Placeholder = "moveForward();\nturnRight();\nrepeat 3 {\n  moveForward();\n}"
	editor.ShowLineNumbers = true
	editor.CharLimit = 4096
	editor.SetWidth(34)
	editor.SetHeight(12)
	editor.Blur()

	h := help.New()
	h.ShowAll = false

	m := LessonModel{
		opts:      opts,
		log:       logger,
		eng:       eng,
		queue:     queue,
		editor:    editor,
		keyMapper: NewKeyMapper(),
		help:      h,
		rng:       rand.New(rand.NewSource(opts.Config.Seed)),
		width:     opts.Config.ScreenW,
		height:    opts.Config.ScreenH,
	}
	m.loadLesson(lesson)
	return m, nil
}

// Init initializes the model.
func (m LessonModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model state.
func (m LessonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditorKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.nextFrame()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input while the board has focus.
func (m LessonModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	m.log.Debug("action", "action", action, "lesson", m.lesson.ID)

	switch action {
	case core.ActionRun:
		if m.animating {
			return m, nil
		}
		src := m.editor.Value()
		res := m.eng.Run(src)
		m.review(res, src)
		return m.animate()

	case core.ActionStep:
		if m.animating {
			return m, nil
		}
		src := m.editor.Value()
		res := m.eng.Step(src)
		m.review(res, src)
		return m.animate()

	case core.ActionReset:
		m.stopAnimation()
		m.eng.Reset()
		m.flush()

	case core.ActionHint:
		m.eng.Hint(m.lesson.Hint(m.rng))
		m.flush()

	case core.ActionNext:
		if next, ok := m.opts.Catalog.Next(m.lesson.ID); ok {
			m.stopAnimation()
			m.loadLesson(next)
		}

	case core.ActionPrev:
		if prev, ok := m.opts.Catalog.Prev(m.lesson.ID); ok {
			m.stopAnimation()
			m.loadLesson(prev)
		}

	case core.ActionReload:
		m.stopAnimation()
		m.reloadScript()
		m.flush()

	case core.ActionEdit:
		m.editing = true
		return m, m.editor.Focus()

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionBack:
		m.stopAnimation()
		m.backToMenu = true
	}

	return m, nil
}

// handleEditorKey sends keys to the script editor until focus leaves it.
func (m LessonModel) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc", "tab":
		m.editing = false
		m.editor.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// loadLesson puts a lesson into the engine and resets the screen.
func (m *LessonModel) loadLesson(l lessons.Lesson) {
	m.lesson = l
	grid := l.Size(m.opts.Engine.GridSize)
	if grid <= 0 {
		grid = engine.DefaultOptions().GridSize
	}
	w, h := BoardSize(grid)
	if m.screen == nil {
		m.screen = core.NewScreen(w, h)
	} else {
		m.screen.Resize(w, h)
	}

	m.queue.clear()
	m.hasFeedback = false
	if err := m.eng.LoadLevel(l.Level(grid)); err != nil {
		m.log.Warn("cannot load lesson", "lesson", l.ID, "err", err)
		m.eng.Notify(engine.Message(err), engine.FeedbackError)
		m.flush()
		return
	}

	if m.opts.Source != nil {
		if src, err := m.opts.Source(l); err == nil {
			m.editor.SetValue(src)
		} else {
			m.editor.Reset()
		}
	} else {
		m.editor.Reset()
	}

	m.eng.Notify(fmt.Sprintf("Lesson %d: %s", l.ID, l.Description), engine.FeedbackInfo)
	m.flush()
}

// reloadScript reads the script again from its source.
func (m *LessonModel) reloadScript() {
	if m.opts.Source == nil {
		m.eng.Notify("No script file to reload. Press tab to edit the script.", engine.FeedbackInfo)
		return
	}

	src, err := m.opts.Source(m.lesson)
	if err != nil {
		m.eng.Notify("Error: "+err.Error(), engine.FeedbackError)
		return
	}
	m.editor.SetValue(src)
	m.eng.Reset()
	m.eng.Notify("Script reloaded.", engine.FeedbackInfo)
}

// review appends lesson notes after a solved run.
func (m *LessonModel) review(res engine.Result, src string) {
	if res.Status != engine.StatusSolved {
		return
	}
	prog, err := m.eng.Compile(src)
	if err != nil {
		return
	}
	notes := m.lesson.Review(prog.Blocks())
	if len(notes) == 0 {
		return
	}
	m.queue.Pace(reviewDelay)
	for _, n := range notes {
		m.eng.Notify(n, engine.FeedbackHint)
	}
}

// animate starts revealing queued frames.
func (m LessonModel) animate() (tea.Model, tea.Cmd) {
	if m.queue.len() == 0 {
		return m, nil
	}
	m.gen++
	m.animating = true
	return m.nextFrame()
}

// nextFrame reveals frames until one asks to be held on screen.
func (m LessonModel) nextFrame() (tea.Model, tea.Cmd) {
	for {
		f, ok := m.queue.pop()
		if !ok {
			m.animating = false
			return m, nil
		}
		m.apply(f)
		if f.hold > 0 {
			return m, frameCmd(f.hold, m.gen)
		}
	}
}

// flush reveals all queued frames at once unless an animation is playing.
func (m *LessonModel) flush() {
	if m.animating {
		return
	}
	for {
		f, ok := m.queue.pop()
		if !ok {
			return
		}
		m.apply(f)
	}
}

func (m *LessonModel) stopAnimation() {
	m.queue.clear()
	m.animating = false
	m.gen++
}

func (m *LessonModel) apply(f frame) {
	if f.state != nil {
		m.shown = *f.state
	}
	if f.feedback != nil {
		m.feedback = *f.feedback
		m.hasFeedback = true
	}
}

// View renders the current state to a string for display.
func (m LessonModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("ROBOT ACADEMY · Lesson %d: %s", m.lesson.ID, m.lesson.Title)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.lesson.Description))
	b.WriteString("\n\n")

	m.screen.Clear()
	DrawBoard(m.screen, m.shown, 0, 0)
	board := RenderScreen(m.screen)

	editorPanel := panelStyle
	if m.editing {
		editorPanel = focusedPanelStyle
	}
	editor := editorPanel.Render(m.editor.View())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", editor))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.statusLine()))
	b.WriteString("\n")
	if m.hasFeedback {
		b.WriteString(RenderFeedback(m.feedback))
	}
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(subtleStyle.Render("editing · esc/tab to leave the editor"))
	} else {
		b.WriteString(subtleStyle.Render(m.help.View(m.keyMapper.Keys())))
	}

	return b.String()
}

// statusLine summarises mode, progress and block budget.
func (m LessonModel) statusLine() string {
	var parts []string

	switch {
	case m.shown.IsRunning || m.animating:
		parts = append(parts, "running")
	case m.shown.StepMode:
		parts = append(parts, fmt.Sprintf("step %d/%d", m.shown.CurrentStep, len(m.shown.Program)))
	default:
		parts = append(parts, "ready")
	}

	parts = append(parts, m.shown.Robot.String())

	if prog, err := m.eng.Compile(m.editor.Value()); err == nil {
		blocks := prog.Blocks().Total
		if m.lesson.MaxBlocks > 0 {
			parts = append(parts, fmt.Sprintf("blocks %d/%d", blocks, m.lesson.MaxBlocks))
		} else {
			parts = append(parts, fmt.Sprintf("blocks %d", blocks))
		}
	}

	return strings.Join(parts, " · ")
}

// Lesson returns the lesson on screen.
func (m LessonModel) Lesson() lessons.Lesson {
	return m.lesson
}

// Shown returns the snapshot currently on screen.
func (m LessonModel) Shown() engine.Snapshot {
	return m.shown
}

// LastFeedback returns the feedback currently on screen.
func (m LessonModel) LastFeedback() (engine.Feedback, bool) {
	return m.feedback, m.hasFeedback
}

// Animating reports whether queued frames are still being revealed.
func (m LessonModel) Animating() bool {
	return m.animating
}

// BackToMenu returns true if the learner asked for the lesson picker.
func (m LessonModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the learner wants to quit entirely.
func (m LessonModel) IsQuitting() bool {
	return m.quitting
}
