package teaui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/lanes/pkg/app"
	"tableflip.dev/lanes/pkg/config"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/loop"
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

func newTestModel(t *testing.T) *Model {
	t.Helper()
	timers := &loop.Deferred{}
	svc := app.New(timers, app.Options{
		EntryTransition: time.Millisecond,
		ExitTransition:  time.Millisecond,
		IDs:             app.SampleIDs(),
		Seed:            app.SampleBoard(),
	})
	m := New(svc, timers, Options{Mode: theme.Light})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "space":
			msg = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		m.Update(msg)
	}
}

// settle runs timer commands and feeds their messages back until none remain.
func settle(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0 && i < 100; i++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case events.TimerMsg:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func laneIDs(m *Model, l lane.ID) string {
	return strings.Join(m.svc.LaneView(l).IDs(), ",")
}

func TestViewShowsLanesInOrder(t *testing.T) {
	m := newTestModel(t)
	view, _ := m.View()
	out := stripANSI(view)

	done := strings.Index(out, "Done (2)")
	pending := strings.Index(out, "Pending (2)")
	notDone := strings.Index(out, "Not Done (1)")
	if done < 0 || pending < 0 || notDone < 0 {
		t.Fatalf("expected lane headers, got:\n%s", out)
	}
	if !(done < pending && pending < notDone) {
		t.Fatalf("lanes out of order:\n%s", out)
	}
	for _, title := range []string{"Task 1", "Task 2", "Task 3", "Task 4", "Task 5"} {
		if !strings.Contains(out, title) {
			t.Fatalf("missing %s in view:\n%s", title, out)
		}
	}
}

func TestDragOntoCardAcrossLanes(t *testing.T) {
	m := newTestModel(t)

	press(m, "l", "space")
	if id, ok := m.svc.Dragging(); !ok || id != "card-5" {
		t.Fatalf("expected card-5 dragged, got %q %v", id, ok)
	}
	view, _ := m.View()
	if !strings.Contains(stripANSI(view), "⇕ Task 5") {
		t.Fatalf("expected dragged marker:\n%s", stripANSI(view))
	}

	press(m, "h", "j", "enter")
	if got := laneIDs(m, lane.Pending); got != "card-2,card-5,card-3" {
		t.Fatalf("pending lane: %s", got)
	}
	if _, ok := m.svc.Dragging(); ok {
		t.Fatalf("drag should end after drop")
	}
	if m.cursor[lane.Pending] != 1 {
		t.Fatalf("cursor should follow the dropped card, got %d", m.cursor[lane.Pending])
	}
}

func TestDropPastLastCardAppends(t *testing.T) {
	m := newTestModel(t)

	press(m, "space", "h", "j", "j", "j")
	if m.cursor[lane.Done] != 2 {
		t.Fatalf("cursor should reach the lane slot while dragging, got %d", m.cursor[lane.Done])
	}
	view, _ := m.View()
	if !strings.Contains(stripANSI(view), "drop here") {
		t.Fatalf("expected drop slot:\n%s", stripANSI(view))
	}

	press(m, "enter")
	if got := laneIDs(m, lane.Done); got != "card-1,card-4,card-2" {
		t.Fatalf("done lane: %s", got)
	}
	if m.cursor[lane.Done] != 2 {
		t.Fatalf("cursor should land on the dropped card, got %d", m.cursor[lane.Done])
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	m := newTestModel(t)

	press(m, "space", "l", "esc")
	if _, ok := m.svc.Dragging(); ok {
		t.Fatalf("esc should clear the drag")
	}
	if got := laneIDs(m, lane.Pending); got != "card-2,card-3" {
		t.Fatalf("board changed: %s", got)
	}
	press(m, "enter")
	if !m.statusErr {
		t.Fatalf("enter without a drag should report an error")
	}
}

func TestCreateTaskThroughForm(t *testing.T) {
	m := newTestModel(t)

	press(m, "n")
	if m.form == nil {
		t.Fatalf("expected form to open")
	}

	m.Update(events.TaskSubmitMsg{Component: m.form.ID(), Title: "   "})
	if m.form == nil || m.form.Error() == "" {
		t.Fatalf("blank title should keep the form open with an error")
	}

	_, cmd := m.Update(events.TaskSubmitMsg{Component: m.form.ID(), Title: "Write docs", Description: "README"})
	if m.form != nil {
		t.Fatalf("form should close after a valid submit")
	}
	it, ok := m.svc.Store().FindByID("card-6")
	if !ok || !it.Entering() {
		t.Fatalf("expected card-6 entering, got %#v", it)
	}
	if m.cursor[lane.Pending] != 2 {
		t.Fatalf("cursor should move to the new card, got %d", m.cursor[lane.Pending])
	}

	settle(m, cmd)
	it, _ = m.svc.Store().FindByID("card-6")
	if it.Entering() {
		t.Fatalf("entry transition should have settled")
	}
}

func TestCancelFormLeavesBoard(t *testing.T) {
	m := newTestModel(t)

	press(m, "n")
	m.Update(events.TaskCancelMsg{Component: m.form.ID()})
	if m.form != nil {
		t.Fatalf("form should close on cancel")
	}
	if m.svc.Store().Len() != 5 {
		t.Fatalf("cancel should not add cards")
	}
}

func TestDeleteRemovesCardAfterExit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	it, ok := m.svc.Store().FindByID("card-2")
	if !ok || !it.Exiting() {
		t.Fatalf("expected card-2 exiting, got %#v", it)
	}
	view, _ := m.View()
	if !strings.Contains(stripANSI(view), "× Task 2") {
		t.Fatalf("expected exiting marker:\n%s", stripANSI(view))
	}

	press(m, "space")
	if _, dragging := m.svc.Dragging(); dragging {
		t.Fatalf("exiting cards cannot be picked up")
	}

	settle(m, cmd)
	if got := laneIDs(m, lane.Pending); got != "card-3" {
		t.Fatalf("pending lane: %s", got)
	}
}

func TestThemeToggleAndConfigReload(t *testing.T) {
	m := newTestModel(t)

	press(m, "t")
	if m.mode != theme.Dark {
		t.Fatalf("expected dark mode, got %s", m.mode)
	}
	m.Update(events.ConfigChangedMsg{Config: &config.Config{Theme: config.ThemeLight}})
	if m.mode != theme.Light {
		t.Fatalf("expected light mode after reload, got %s", m.mode)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok && len(batch) == 1 {
		msg = batch[0]()
	}
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message, got %T", msg)
	}
}
