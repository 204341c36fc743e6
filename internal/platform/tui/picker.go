package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/lessons"
)

// Picker layout constants
const (
	pickerTitleWidth = 24
	pickerMinHeight  = 5
)

// PickerKeyMap defines the key bindings for the lesson picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start lesson"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PickerModel lists the lessons in a table and lets the learner choose one.
type PickerModel struct {
	lessons   []lessons.Lesson
	table     table.Model
	help      help.Model
	keys      PickerKeyMap
	keyMapper *KeyMapper
	width     int
	height    int
	quitting  bool
	selected  *lessons.Lesson
}

// NewPickerModel creates a picker over the catalog, with the cursor on lessonID.
func NewPickerModel(catalog *lessons.Catalog, lessonID, width, height int) PickerModel {
	m := PickerModel{
		lessons:   catalog.List(),
		help:      help.New(),
		keys:      DefaultPickerKeyMap(),
		keyMapper: NewKeyMapper(),
		width:     width,
		height:    height,
	}
	m.table = m.createTable()
	m.updateTableRows()

	for i, l := range m.lessons {
		if l.ID == lessonID {
			m.table.SetCursor(i)
			break
		}
	}
	return m
}

// createTable creates the lesson table sized to the window.
func (m *PickerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Lesson", Width: pickerTitleWidth},
		{Title: "Grid", Width: 6},
		{Title: "Blocks", Width: 7},
		{Title: "Walls", Width: 6},
	}

	height := core.Clamp(m.height-8, pickerMinHeight, max(pickerMinHeight, len(m.lessons)+1))

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the lesson list.
func (m *PickerModel) updateTableRows() {
	rows := make([]table.Row, len(m.lessons))
	for i, l := range m.lessons {
		grid := "-"
		if l.GridSize > 0 {
			grid = fmt.Sprintf("%dx%d", l.GridSize, l.GridSize)
		}
		blocks := "-"
		if l.MaxBlocks > 0 {
			blocks = strconv.Itoa(l.MaxBlocks)
		}
		title := l.Title
		if len(title) > pickerTitleWidth {
			title = title[:pickerTitleWidth-1] + "."
		}
		rows[i] = table.Row{
			strconv.Itoa(l.ID),
			title,
			grid,
			blocks,
			strconv.Itoa(len(l.Obstacles)),
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.table.MoveUp(1)
			return m, nil
		case MenuActionDown:
			m.table.MoveDown(1)
			return m, nil
		case MenuActionSelect:
			if c := m.table.Cursor(); c >= 0 && c < len(m.lessons) {
				l := m.lessons[c]
				m.selected = &l
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("ROBOT ACADEMY", m.width)))
	b.WriteString("\n\n")

	if len(m.lessons) == 0 {
		b.WriteString(subtleStyle.Render("No lessons found."))
	} else {
		b.WriteString(panelStyle.Render(m.table.View()))
		if c := m.table.Cursor(); c >= 0 && c < len(m.lessons) {
			b.WriteString("\n")
			b.WriteString(subtleStyle.Render(m.lessons[c].Description))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the chosen lesson, or nil while the learner is browsing.
func (m PickerModel) Selected() *lessons.Lesson {
	return m.selected
}

// IsQuitting returns true if the learner wants to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}
