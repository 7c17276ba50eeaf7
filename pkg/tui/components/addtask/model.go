package addtask

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/lanes/pkg/tui/events"
	"tableflip.dev/lanes/pkg/tui/theme"
)

type focusField int

const (
	fieldTitle focusField = iota
	fieldDescription
)

// Model is the add-task form: a title and an optional description.
type Model struct {
	id      events.ComponentID
	focused bool
	focus   focusField
	theme   theme.Theme

	width int

	title       textinput.Model
	description textinput.Model

	errorMsg string
}

// NewModel constructs a focused, empty form.
func NewModel(th theme.Theme) *Model {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.Prompt = ""

	desc := textinput.New()
	desc.Placeholder = "Optional details"
	desc.Prompt = ""

	m := &Model{
		id:          events.ComponentID("addtask"),
		focused:     true,
		focus:       fieldTitle,
		theme:       th,
		title:       title,
		description: desc,
	}
	m.SetWidth(48)
	m.updateInputFocus()
	return m
}

// ID returns the component id used in emitted events.
func (m *Model) ID() events.ComponentID {
	return m.id
}

// SetTheme swaps the styles used to render the form.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
}

// SetError shows msg under the inputs and keeps the form open.
func (m *Model) SetError(msg string) {
	m.errorMsg = msg
	m.focus = fieldTitle
	m.updateInputFocus()
}

// Error returns the message currently shown, if any.
func (m *Model) Error() string {
	return m.errorMsg
}

// Values returns the raw title and description.
func (m *Model) Values() (string, string) {
	return m.title.Value(), m.description.Value()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		events.FocusCmd(m.id),
		m.title.Focus(),
	)
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case events.FocusMsg:
		if msg.Component == m.id {
			m.focused = true
			return m, m.updateInputFocus()
		}
	case events.BlurMsg:
		if msg.Component == m.id {
			m.focused = false
			return m, m.updateInputFocus()
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !m.focused {
		return nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if m.focus == fieldTitle {
			m.focus = fieldDescription
		} else {
			m.focus = fieldTitle
		}
		return m.updateInputFocus()
	case "enter":
		title, desc := m.Values()
		return events.TaskSubmitCmd(m.id, title, desc)
	case "esc":
		return events.TaskCancelCmd(m.id)
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
		if strings.TrimSpace(m.title.Value()) != "" {
			m.errorMsg = ""
		}
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return cmd
}

func (m *Model) updateInputFocus() tea.Cmd {
	if !m.focused {
		m.title.Blur()
		m.description.Blur()
		return nil
	}
	if m.focus == fieldTitle {
		m.description.Blur()
		return m.title.Focus()
	}
	m.title.Blur()
	return m.description.Focus()
}

// SetWidth sizes the inputs to fit width columns.
func (m *Model) SetWidth(width int) {
	if width < 24 {
		width = 24
	}
	m.width = width
	m.title.SetWidth(width - 16)
	m.description.SetWidth(width - 16)
}

// View renders the form.
func (m *Model) View() (string, *tea.Cursor) {
	th := m.theme.Modal
	label := func(text string, f focusField) string {
		marker := "  "
		if m.focus == f {
			marker = "› "
		}
		return th.Label.Render(marker + text)
	}

	titleLine := lipgloss.JoinHorizontal(lipgloss.Top, label("Title       ", fieldTitle), m.title.View())
	descLine := lipgloss.JoinHorizontal(lipgloss.Top, label("Description ", fieldDescription), m.description.View())

	lines := []string{th.Title.Render("New Task"), "", titleLine, descLine, ""}
	if m.errorMsg != "" {
		lines = append(lines, th.Error.Render(m.errorMsg))
	} else {
		lines = append(lines, th.Label.Render("enter to add · tab to switch · esc to cancel"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	box := th.Frame.Width(m.width).Render(body)

	var cursor *tea.Cursor
	input, row := &m.title, 2
	if m.focus == fieldDescription {
		input, row = &m.description, 3
	}
	if c := input.Cursor(); c != nil && m.focused {
		clone := *c
		clone.Position.X += lipgloss.Width(label("Title       ", fieldTitle))
		clone.Position.Y += row
		clone.Position.X += 2 + 1 // left padding, border
		clone.Position.Y += 1 + 1 // top padding, border
		cursor = &clone
	}
	return box, cursor
}
