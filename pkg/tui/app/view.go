package teaui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
)

const (
	defaultWidth = 96
	minColumn    = 20
)

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	lanes := m.svc.Lanes()
	dragged, dragging := m.svc.Dragging()

	width := m.columnWidth()
	columns := make([]string, 0, len(lanes))
	for i, l := range lane.All() {
		columns = append(columns, m.renderLane(l, lanes[l], i == m.focus, dragged, dragging, width))
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	parts := []string{boardView, m.renderFooter()}
	if m.form == nil {
		return lipgloss.JoinVertical(lipgloss.Left, parts...), nil
	}

	formView, cursor := m.form.View()
	if cursor != nil {
		cursor.Position.Y += lipgloss.Height(boardView) + lipgloss.Height(parts[1])
	}
	parts = append(parts, formView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...), cursor
}

func (m *Model) renderLane(l lane.ID, items board.Sequence, focused bool, dragged string, dragging bool, width int) string {
	inner := width - 4 // frame border and padding
	header := m.theme.LaneHeader(l).Render(truncate.StringWithTail(fmt.Sprintf("%s (%d)", l.Title(), len(items)), uint(inner), "…"))

	rows := []string{header, ""}
	if len(items) == 0 && !(dragging && focused) {
		rows = append(rows, m.theme.Lane.Empty.Render("No tasks"))
	}
	cursor := m.cursor[l]
	for i, it := range items {
		rows = append(rows, m.renderCard(it, focused && i == cursor, dragged, dragging, inner))
	}
	if dragging && focused && cursor >= len(items) {
		slot := m.theme.Card.DropTarget.Width(inner).Render("drop here")
		rows = append(rows, slot)
	}

	frame := m.theme.Lane.Frame
	if focused {
		frame = m.theme.Lane.FrameFocused
	}
	return frame.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderCard(it item.Item, atCursor bool, dragged string, dragging bool, width int) string {
	th := m.theme.Card
	style := th.Base
	marker := ""
	switch {
	case it.ID == dragged:
		style = th.Dragging
		marker = "⇕ "
	case it.Exiting():
		style = th.Exiting
		marker = "× "
	case atCursor && dragging:
		style = th.Cursor
		marker = "↳ "
	case atCursor:
		style = th.Cursor
	case dragging:
		style = th.DropTarget
	case it.Entering():
		style = th.Entering
		marker = "+ "
	}

	text := width - 4 // card border and padding
	lines := []string{th.Title.Render(truncate.StringWithTail(marker+it.Title, uint(text), "…"))}
	if desc := strings.TrimSpace(it.Description); desc != "" {
		lines = append(lines, th.Description.Render(truncate.StringWithTail(desc, uint(text), "…")))
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	status := m.theme.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Footer.Error.Render(m.status)
	}
	help := m.theme.Footer.Help.Render(truncate.StringWithTail(helpText, uint(m.totalWidth()), "…"))
	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}

func (m *Model) totalWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m *Model) columnWidth() int {
	w := m.totalWidth() / len(lane.All())
	if w < minColumn {
		w = minColumn
	}
	return w
}

func (m *Model) formWidth() int {
	w := m.totalWidth() / 2
	if w < 48 {
		w = 48
	}
	return w
}
