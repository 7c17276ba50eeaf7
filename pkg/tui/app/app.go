// Package teaui hosts the Bubble Tea program for the lanes board.
package teaui

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/lanes/pkg/app"
	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/config"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/lifecycle"
	"tableflip.dev/lanes/pkg/loop"
	"tableflip.dev/lanes/pkg/tui/components/addtask"
	"tableflip.dev/lanes/pkg/tui/events"
	"tableflip.dev/lanes/pkg/tui/theme"
)

const helpText = "h/l lane · j/k card · space pick up · enter drop · esc cancel · n new · x delete · t theme · q quit"

// Options configure the board model.
type Options struct {
	Mode   theme.Mode
	Logger log.FieldLogger
	// Configs delivers settings re-read from the config file.
	Configs <-chan *config.Config
}

// Model renders the three lanes and turns key presses into board requests.
// Timer callbacks scheduled by the board come back as TimerMsg so every
// mutation runs inside Update.
type Model struct {
	svc    *app.Service
	timers *loop.Deferred
	logger log.FieldLogger

	mode  theme.Mode
	theme theme.Theme

	focus  int
	cursor map[lane.ID]int

	form *addtask.Model

	status    string
	statusErr bool

	width  int
	height int

	configs <-chan *config.Config
}

// New builds the model. svc must schedule its timers on timers.
func New(svc *app.Service, timers *loop.Deferred, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Model{
		svc:     svc,
		timers:  timers,
		logger:  logger,
		mode:    opts.Mode,
		theme:   theme.New(opts.Mode),
		focus:   lane.Default.Position(),
		cursor:  make(map[lane.ID]int, len(lane.All())),
		status:  "Ready",
		configs: opts.Configs,
	}
}

// Run launches the interactive TUI program.
func Run(svc *app.Service, timers *loop.Deferred, opts Options) error {
	p := tea.NewProgram(New(svc, timers, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForConfig(), m.timerCmds())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		if m.form != nil {
			m.form.SetWidth(m.formWidth())
		}
	case events.TimerMsg:
		if v.Fire != nil {
			v.Fire()
		}
	case events.ConfigChangedMsg:
		if v.Config != nil {
			m.setMode(theme.Resolve(v.Config.Theme))
		}
		cmds = append(cmds, m.waitForConfig())
	case events.TaskSubmitMsg:
		if m.form != nil && v.Component == m.form.ID() {
			m.submit(v.Title, v.Description)
		}
	case events.TaskCancelMsg:
		if m.form != nil && v.Component == m.form.ID() {
			m.form = nil
			m.setStatus("Cancelled", false)
		}
	case tea.KeyMsg:
		if v.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form == nil {
			cmds = append(cmds, m.handleKey(v))
			break
		}
		_, cmd := m.form.Update(msg)
		cmds = append(cmds, cmd)
	default:
		if m.form != nil {
			_, cmd := m.form.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.clampCursors()
	cmds = append(cmds, m.timerCmds())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "h", "left":
		if m.focus > 0 {
			m.focus--
		}
	case "l", "right":
		if m.focus < len(lane.All())-1 {
			m.focus++
		}
	case "j", "down":
		m.cursor[m.focusedLane()]++
	case "k", "up":
		if m.cursor[m.focusedLane()] > 0 {
			m.cursor[m.focusedLane()]--
		}
	case "space", " ":
		m.pickUp()
	case "enter":
		m.drop()
	case "esc":
		if id, ok := m.svc.Dragging(); ok {
			m.svc.EndDrag()
			m.setStatus(fmt.Sprintf("Put %s back", id), false)
		}
	case "n":
		m.form = addtask.NewModel(m.theme)
		m.form.SetWidth(m.formWidth())
		return m.form.Init()
	case "x", "delete", "backspace":
		m.deleteCurrent()
	case "t":
		m.setMode(m.mode.Toggle())
		m.setStatus(fmt.Sprintf("Theme: %s", m.mode), false)
	}
	return nil
}

func (m *Model) pickUp() {
	it, ok := m.current()
	if !ok {
		m.setStatus("Nothing to pick up here", true)
		return
	}
	if it.Exiting() {
		m.setStatus(fmt.Sprintf("%s is being deleted", it.ID), true)
		return
	}
	m.svc.StartDrag(it.ID)
	m.setStatus(fmt.Sprintf("Dragging %q · move with h/j/k/l, enter to drop, esc to cancel", it.Title), false)
}

func (m *Model) drop() {
	dragged, ok := m.svc.Dragging()
	if !ok {
		m.setStatus("Press space to pick up a card first", true)
		return
	}
	defer m.svc.EndDrag()

	l := m.focusedLane()
	var err error
	if target, ok := m.current(); ok {
		_, err = m.svc.DropOnItem(target.ID, l)
	} else {
		_, err = m.svc.DropOnLane(l)
	}
	if err != nil {
		m.setStatus(describeError(err), true)
		return
	}
	if idx := m.svc.LaneView(l).IndexOf(dragged); idx >= 0 {
		m.cursor[l] = idx
	}
	m.setStatus(fmt.Sprintf("Dropped %s in %s", dragged, l.Title()), false)
}

func (m *Model) deleteCurrent() {
	it, ok := m.current()
	if !ok {
		m.setStatus("Nothing to delete here", true)
		return
	}
	scheduled, err := m.svc.DeleteTask(it.ID)
	switch {
	case err != nil:
		m.setStatus(describeError(err), true)
	case scheduled:
		m.setStatus(fmt.Sprintf("Deleting %q", it.Title), false)
	default:
		m.setStatus(fmt.Sprintf("%q is already being deleted", it.Title), false)
	}
}

func (m *Model) submit(title, description string) {
	it, err := m.svc.CreateTask(title, description)
	if err != nil {
		m.form.SetError(describeError(err))
		return
	}
	m.form = nil
	m.focus = it.Lane.Position()
	if idx := m.svc.LaneView(it.Lane).IndexOf(it.ID); idx >= 0 {
		m.cursor[it.Lane] = idx
	}
	m.setStatus(fmt.Sprintf("Added %q", it.Title), false)
}

func (m *Model) setMode(mode theme.Mode) {
	m.mode = mode
	m.theme = theme.New(mode)
	if m.form != nil {
		m.form.SetTheme(m.theme)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) focusedLane() lane.ID {
	return lane.All()[m.focus]
}

// current returns the card under the cursor in the focused lane. While a drag
// is in flight the cursor may sit one past the last card, on the lane area.
func (m *Model) current() (item.Item, bool) {
	items := m.svc.LaneView(m.focusedLane())
	idx := m.cursor[m.focusedLane()]
	if idx < 0 || idx >= len(items) {
		return item.Item{}, false
	}
	return items[idx], true
}

func (m *Model) clampCursors() {
	_, dragging := m.svc.Dragging()
	lanes := m.svc.Lanes()
	for _, l := range lane.All() {
		limit := len(lanes[l]) - 1
		if dragging {
			limit = len(lanes[l])
		}
		if m.cursor[l] > limit {
			m.cursor[l] = limit
		}
		if m.cursor[l] < 0 {
			m.cursor[l] = 0
		}
	}
}

func (m *Model) timerCmds() tea.Cmd {
	if m.timers == nil {
		return nil
	}
	pending := m.timers.Drain()
	if len(pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(pending))
	for _, t := range pending {
		fire := t.Fire
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return events.TimerMsg{Fire: fire}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForConfig() tea.Cmd {
	ch := m.configs
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return events.ConfigChangedMsg{Config: cfg}
	}
}

type describer interface {
	Describe() string
}

func (m *Model) noteEvent(msg tea.Msg) {
	if d, ok := msg.(describer); ok {
		m.logger.WithField("msg", fmt.Sprintf("%T", msg)).Debug(d.Describe())
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, lifecycle.ErrEmptyTitle):
		return "A title is required"
	case errors.Is(err, board.ErrStaleReference):
		return "That card is gone: " + err.Error()
	default:
		return err.Error()
	}
}
