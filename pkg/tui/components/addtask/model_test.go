package addtask

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/lanes/pkg/tui/events"
	"tableflip.dev/lanes/pkg/tui/theme"
)

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Text: string(r), Code: r})
	}
}

func TestSubmitEmitsValues(t *testing.T) {
	m := NewModel(theme.New(theme.Light))
	typeText(m, "Buy milk")
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(m, "2 litres")

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	msg, ok := cmd().(events.TaskSubmitMsg)
	if !ok {
		t.Fatalf("expected TaskSubmitMsg, got %T", cmd())
	}
	if msg.Title != "Buy milk" || msg.Description != "2 litres" {
		t.Fatalf("unexpected values %#v", msg)
	}
}

func TestEscapeCancels(t *testing.T) {
	m := NewModel(theme.New(theme.Dark))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatalf("expected cancel command")
	}
	if _, ok := cmd().(events.TaskCancelMsg); !ok {
		t.Fatalf("expected TaskCancelMsg")
	}
}

func TestErrorIsRenderedAndClearedByTyping(t *testing.T) {
	m := NewModel(theme.New(theme.Light))
	m.SetError("title is required")
	view, _ := m.View()
	if !strings.Contains(stripANSI(view), "title is required") {
		t.Fatalf("expected error in view:\n%s", stripANSI(view))
	}
	typeText(m, "x")
	if m.Error() != "" {
		t.Fatalf("typing a title should clear the error")
	}
}

func TestBlurIgnoresKeys(t *testing.T) {
	m := NewModel(theme.New(theme.Light))
	m.Update(events.BlurMsg{Component: m.ID()})
	typeText(m, "abc")
	if title, _ := m.Values(); title != "" {
		t.Fatalf("blurred form should ignore keys, got %q", title)
	}
}
