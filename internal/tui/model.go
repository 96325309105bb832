// Package tui is the terminal rendition of the glossary entry form.
package tui

import (
	"fmt"
	"strings"

	"texglossary/internal/form"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field indexes of the form inputs
const (
	FieldWord = iota
	FieldPartOfSpeech
	FieldDefinition
	fieldCount
)

var labels = [fieldCount]string{"Word", "Part of speech", "Definition"}

// Model is the bubbletea model of the entry form
type Model struct {
	actions form.Actions
	path    string

	inputs [fieldCount]textinput.Model
	focus  int

	status    form.Result
	hasStatus bool

	styles Styles
}

// NewModel creates a form model that writes through actions
func NewModel(actions form.Actions, path string) Model {
	m := Model{
		actions: actions,
		path:    path,
		styles:  DefaultStyles(),
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.Width = 48
		m.inputs[i] = in
	}
	m.inputs[FieldPartOfSpeech].Placeholder = "optional"
	m.inputs[FieldWord].Focus()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "enter":
			if m.focus < FieldDefinition {
				return m, m.setFocus(m.focus + 1)
			}
			return m, m.submit()
		case "ctrl+z":
			m.showStatus(m.actions.Undo())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	res := m.actions.Submit(
		m.inputs[FieldWord].Value(),
		m.inputs[FieldPartOfSpeech].Value(),
		m.inputs[FieldDefinition].Value(),
	)
	m.showStatus(res)

	if !res.OK() {
		return nil
	}
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	return m.setFocus(FieldWord)
}

func (m *Model) showStatus(res form.Result) {
	m.status = res
	m.hasStatus = true
}

// setFocus moves focus to field i, wrapping around
func (m *Model) setFocus(i int) tea.Cmd {
	i = (i%fieldCount + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// Focused returns the index of the focused field
func (m Model) Focused() int {
	return m.focus
}

// Value returns the current text of field i
func (m Model) Value(i int) string {
	return m.inputs[i].Value()
}

// Status returns the last action result, if any
func (m Model) Status() (form.Result, bool) {
	return m.status, m.hasStatus
}

// View renders the form.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("TeX glossary: " + m.path))
	sb.WriteString("\n")

	for i, in := range m.inputs {
		label := m.styles.Label
		if i == m.focus {
			label = m.styles.Focused
		}
		sb.WriteString(label.Render(labels[i]))
		sb.WriteString(in.View())
		sb.WriteString("\n")
	}

	if m.hasStatus {
		line := fmt.Sprintf("%s: %s", m.status.Title, m.status.Message)
		sb.WriteString("\n")
		sb.WriteString(m.styles.Status(m.status.Severity).Render(line))
		sb.WriteString("\n")
	}

	hints := []string{"tab next", "enter submit"}
	if m.actions.UndoEnabled() {
		hints = append(hints, "ctrl+z undo")
	}
	hints = append(hints, "esc quit")
	sb.WriteString(m.styles.Hint.Render(strings.Join(hints, " • ")))
	sb.WriteString("\n")

	return sb.String()
}

// Run shows the form until the user quits
func Run(actions form.Actions, path string) error {
	if _, err := tea.NewProgram(NewModel(actions, path)).Run(); err != nil {
		return fmt.Errorf("failed to run terminal form: %w", err)
	}
	return nil
}
