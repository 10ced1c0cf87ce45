// Package ui is the interactive terminal front end for the task list.
// Each key press is one event applied to the store; saving and loading are
// explicit, like the Save and Load buttons of a desktop to-do window.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/store"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

const helpLine = "a add • e edit • c complete • d delete • s save • l load • q quit"

// Model is the bubbletea model over a store.
type Model struct {
	store  *store.Store
	path   string
	cursor int
	mode   mode
	input  textinput.Model
	status string

	// prefill is the input value an edit started from. The input rewrites
	// tabs and newlines, so an unchanged value must not be written back.
	prefill string
}

// New returns a model that edits s and saves to and loads from path.
func New(s *store.Store, path string) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 0
	ti.Width = 40

	return Model{
		store:  s,
		path:   path,
		input:  ti,
		mode:   modeList,
		status: "Press 'a' to add a task.",
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m Model, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	return err
}

// Cursor returns the selected index.
func (m Model) Cursor() int { return m.cursor }

// Status returns the status line.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInputMode(msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m Model) updateInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.resetInput()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		value := m.input.Value()
		m.status = "Nothing changed"
		switch m.mode {
		case modeAdd:
			if m.store.Append(value) {
				m.cursor = m.store.Len() - 1
				m.status = "Added task"
			}
		case modeEdit:
			if value != m.prefill && m.store.Rename(m.cursor, value) {
				m.status = "Edited task"
			}
		}
		m.resetInput()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, m.store.Len())
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, m.store.Len())
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		m.status = "Add: type a title and press Enter"
		return m, m.input.Focus()
	case "e":
		t, ok := m.store.At(m.cursor)
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.input.SetValue(t.Title)
		m.input.CursorEnd()
		m.prefill = m.input.Value()
		m.status = "Edit: change the title and press Enter"
		return m, m.input.Focus()
	case "c", " ", "space":
		if m.store.MarkCompleted(m.cursor) {
			m.status = "Marked task complete"
		}
	case "d", "delete":
		if m.store.Remove(m.cursor) {
			m.cursor = clampCursor(m.cursor, m.store.Len())
			m.status = "Deleted task"
		}
	case "s":
		if err := m.store.SaveAll(m.path); err != nil {
			m.status = fmt.Sprintf("Error saving tasks: %v", err)
		} else {
			m.status = "Tasks saved successfully."
		}
	case "l":
		m = m.Load()
	}
	return m, nil
}

// Load replaces the list with the task file's contents and reports the
// result in the status line. On failure the list is left as it was.
func (m Model) Load() Model {
	if err := m.store.LoadAll(m.path); err != nil {
		m.status = fmt.Sprintf("Error loading tasks: %v", err)
		return m
	}
	m.cursor = clampCursor(m.cursor, m.store.Len())
	m.status = "Tasks loaded successfully."
	return m
}

func (m *Model) resetInput() {
	m.mode = modeList
	m.prefill = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "To-Do List (%s)\n\n", m.path)

	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		b.WriteString("  (no tasks)\n")
	}
	for i, t := range tasks {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		b.WriteString(prefix + t.String() + "\n")
	}

	b.WriteString("\n")
	if m.mode != modeList {
		b.WriteString(m.input.View() + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(helpLine + "\n")
	return b.String()
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
