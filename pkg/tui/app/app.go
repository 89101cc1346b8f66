// Package app is the root Bubble Tea model of the console: a calendar pane,
// a records pane and the event dialog composited over both.
package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/console"
	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/modal"
	"tableflip.dev/ampcred/pkg/source"
	"tableflip.dev/ampcred/pkg/store"
	"tableflip.dev/ampcred/pkg/theme"
	"tableflip.dev/ampcred/pkg/tui/components/calendarpane"
	"tableflip.dev/ampcred/pkg/tui/components/eventform"
	"tableflip.dev/ampcred/pkg/tui/components/help"
	"tableflip.dev/ampcred/pkg/tui/components/recordspane"
	"tableflip.dev/ampcred/pkg/tui/overlay"
)

const helpText = "1/2/3 view · [ ] month · / search · c category · s sort · n new · e edit · tab pane · ? help · q quit"

type reloadMsg struct{}

type reloadedMsg struct {
	err error
}

type storeChangeMsg struct {
	change store.Change
}

// Options wire the model to its data.
type Options struct {
	Console *console.Console
	Palette theme.Palette
	Logger  *zap.Logger
	// Source is re-read when Reloads fires.
	Source  source.Source
	Reloads <-chan struct{}
}

// Model composes the console panes.
type Model struct {
	ctx     context.Context
	console *console.Console
	palette theme.Palette
	logger  *zap.Logger
	src     source.Source
	reloads <-chan struct{}

	width  int
	height int

	focus    console.Pane
	calendar *calendarpane.Model
	records  *recordspane.Model
	form     *eventform.Model
	help     *help.Model

	showHelp bool
	status   string
}

// New constructs the root model.
func New(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		ctx:      ctx,
		console:  opts.Console,
		palette:  opts.Palette,
		logger:   logger,
		src:      opts.Source,
		reloads:  opts.Reloads,
		focus:    console.CalendarPane,
		calendar: calendarpane.New(opts.Palette),
		records:  recordspane.New(opts.Palette),
		form:     eventform.New(ctx, opts.Console.Modal(), opts.Palette),
		help:     help.New(opts.Palette, 60, 20),
		status:   "Ready",
	}
	m.width, m.height = 100, 30
	m.layoutContent()
	m.refresh()
	return m
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForReload(), m.waitForChange())
}

func (m *Model) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.console.Store().Changes()
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangeMsg{change: change}
	}
}

func (m *Model) reload() tea.Cmd {
	ctx, c, src := m.ctx, m.console, m.src
	return func() tea.Msg {
		return reloadedMsg{err: c.Reload(ctx, src)}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layoutContent()
	case reloadMsg:
		if m.src != nil {
			cmds = append(cmds, m.reload())
		}
		cmds = append(cmds, m.waitForReload())
	case reloadedMsg:
		if v.err != nil {
			m.logger.Warn("reload failed", zap.Error(v.err))
			m.status = "Reload failed: " + v.err.Error()
		} else {
			m.status = "Reloaded " + source.Describe(m.src)
		}
		m.refresh()
	case storeChangeMsg:
		m.logger.Debug("store changed",
			zap.String("action", string(v.change.Action)),
			zap.String("id", v.change.Event.ID),
			zap.Uint64("version", v.change.Version))
		m.refresh()
		cmds = append(cmds, m.waitForChange())
	case recordspane.QueryChangedMsg:
		m.console.SetQuery(v.Text)
		m.refresh()
	case tea.KeyMsg:
		if v.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(v))
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	dialog := m.console.Modal()
	if dialog.IsOpen() {
		_, cmd := m.form.Update(msg)
		if !dialog.IsOpen() {
			m.afterDialog(dialog)
		}
		return cmd
	}
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
			return nil
		}
		_, cmd := m.help.Update(msg)
		return cmd
	}
	if m.records.Searching() {
		_, cmd := m.records.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.showHelp = true
		return nil
	case "tab":
		if m.focus == console.CalendarPane {
			m.focus = console.RecordsPane
		} else {
			m.focus = console.CalendarPane
		}
		return nil
	case "1", "2", "3":
		mode := calendar.AllModes()[int(msg.String()[0]-'1')]
		_ = m.console.SetMode(mode)
		m.status = mode.Title() + " view"
	case "v":
		m.status = m.console.CycleMode().Title() + " view"
	case "[":
		m.status = m.console.ShiftMonth(-1).Title()
	case "]":
		m.status = m.console.ShiftMonth(1).Title()
	case "/":
		m.focus = console.RecordsPane
		return m.records.StartSearch()
	case "c":
		m.status = "Category: " + m.console.CycleCategory()
	case "s":
		m.status = "Sort: " + m.console.ToggleSort().Title()
	case "n":
		dialog.OpenAt(m.calendar.SelectedDay())
		return m.form.Sync()
	case "e":
		e, ok := m.editTarget()
		if !ok {
			m.status = "Nothing to edit on this day"
			return nil
		}
		dialog.OpenEdit(e)
		return m.form.Sync()
	default:
		if m.focus == console.RecordsPane {
			_, cmd := m.records.Update(msg)
			return cmd
		}
		_, cmd := m.calendar.Update(msg)
		return cmd
	}
	m.refresh()
	return nil
}

// editTarget picks the first event on the selected day. Week cells also hold
// neighbouring days within the tolerance window, so those are skipped.
func (m *Model) editTarget() (event.Event, bool) {
	day := m.calendar.SelectedDay()
	for _, e := range m.calendar.SelectedEvents() {
		if e.Day == day {
			return e, true
		}
	}
	return event.Event{}, false
}

func (m *Model) afterDialog(dialog *modal.Controller) {
	switch dialog.Outcome() {
	case modal.Submitted:
		m.status = "Saved"
	case modal.Cancelled:
		m.status = "Cancelled"
	}
	m.refresh()
}

// refresh pulls the memoized derivations back out of the console.
func (m *Model) refresh() {
	layout, err := m.console.Layout()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.calendar.SetLayout(layout, m.console.EmptyMessage(console.CalendarPane))
	m.records.SetRecords(m.console.Records(), m.console.Query(), m.console.EmptyMessage(console.RecordsPane))
}

func (m *Model) layoutContent() {
	m.width = max(m.width, 40)
	m.height = max(m.height, 12)
	bodyHeight := m.height - 6
	calWidth := m.width * 3 / 5
	m.calendar.SetSize(calWidth-4, bodyHeight)
	m.records.SetSize(m.width-calWidth-4, bodyHeight)
	m.form.SetSize(m.width, m.height)
	m.help.SetSize(min(m.width-4, 72), m.height-4)
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	screen := m.viewBase()
	if m.showHelp {
		screen, _, _ = overlay.Compose(screen, m.width, m.height, m.help.View(), overlay.Placement{})
		return screen, nil
	}
	if !m.console.Modal().IsOpen() {
		return screen, nil
	}
	dialog, cursor := m.form.View()
	screen, x, y := overlay.Compose(screen, m.width, m.height, dialog, overlay.Placement{})
	if cursor != nil {
		cursor.Position.X += x
		cursor.Position.Y += y
	}
	return screen, cursor
}

func (m *Model) viewBase() string {
	p := m.palette
	state := m.console.State()
	rng := m.console.Range()

	tabs := make([]string, 0, 3)
	for i, mode := range calendar.AllModes() {
		label := fmt.Sprintf(" %d %s ", i+1, mode.Title())
		if mode == state.Mode {
			tabs = append(tabs, p.Selected.Render(label))
		} else {
			tabs = append(tabs, p.Muted.Render(label))
		}
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		p.Title.Render(p.Variant.Title)+"  "+p.Subtitle.Render(p.Variant.Subtitle),
		strings.Join(tabs, "")+"  "+p.Accent.Render(rng.Title()),
	)

	bodyHeight := m.height - 6
	calWidth := m.width * 3 / 5
	calStyle, recStyle := p.Pane, p.Pane
	if m.focus == console.CalendarPane {
		calStyle = p.ActivePane
	} else {
		recStyle = p.ActivePane
	}
	calView := calStyle.Width(calWidth - 2).Height(bodyHeight).Render(m.calendar.View())
	recView := recStyle.Width(m.width - calWidth - 2).Height(bodyHeight).Render(m.records.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, calView, recView)

	footer := p.Help.Render(helpText) + "\n" + p.Muted.Render(m.status)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// HelpVisible reports whether the key reference is showing.
func (m *Model) HelpVisible() bool {
	return m.showHelp
}

// Status returns the footer status line.
func (m *Model) Status() string {
	return m.status
}
