package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/lanes/pkg/config"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m FocusMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"focus"`, m.Component)
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m BlurMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"blur"`, m.Component)
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// BlurCmd wraps a BlurMsg in a tea.Cmd helper.
func BlurCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return BlurMsg{Component: component}
	}
}

// TaskSubmitMsg is emitted when the add-task form is submitted. The board
// decides whether the values are acceptable.
type TaskSubmitMsg struct {
	Component   ComponentID
	Title       string
	Description string
}

// Describe implements the logging helper.
func (m TaskSubmitMsg) Describe() string {
	return fmt.Sprintf(`component:%q title:%q`, m.Component, m.Title)
}

// TaskSubmitCmd wraps a TaskSubmitMsg.
func TaskSubmitCmd(component ComponentID, title, description string) tea.Cmd {
	return func() tea.Msg {
		return TaskSubmitMsg{Component: component, Title: title, Description: description}
	}
}

// TaskCancelMsg is emitted when the add-task form is dismissed.
type TaskCancelMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m TaskCancelMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// TaskCancelCmd wraps a TaskCancelMsg.
func TaskCancelCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return TaskCancelMsg{Component: component}
	}
}

// TimerMsg carries a deferred callback into Update so it runs on the UI loop.
type TimerMsg struct {
	Fire func()
}

// Describe implements the logging helper.
func (TimerMsg) Describe() string {
	return "timer"
}

// ConfigChangedMsg carries settings re-read from the config file.
type ConfigChangedMsg struct {
	Config *config.Config
}

// Describe implements the logging helper.
func (m ConfigChangedMsg) Describe() string {
	if m.Config == nil {
		return "config:nil"
	}
	return fmt.Sprintf(`theme:%q`, m.Config.Theme)
}
