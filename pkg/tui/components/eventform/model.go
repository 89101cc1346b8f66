// Package eventform renders the event dialog and feeds keystrokes into a
// modal.Controller.
package eventform

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/ampcred/pkg/modal"
	"tableflip.dev/ampcred/pkg/theme"
)

var labels = map[string]string{
	modal.FieldTitle: "Title",
	modal.FieldDay:   "Day",
	modal.FieldTime:  "Time",
	modal.FieldLane:  "Lane",
}

var placeholders = map[string]string{
	modal.FieldTitle: "What is happening?",
	modal.FieldDay:   "1–31",
	modal.FieldTime:  "09:30",
	modal.FieldLane:  "Board, Media, Teaching…",
}

const labelWidth = 7

// Model is the dialog overlay. The controller owns the state; the model only
// mirrors it into text inputs.
type Model struct {
	ctx     context.Context
	ctrl    *modal.Controller
	palette theme.Palette

	fields []string
	inputs []textinput.Model
	focus  int

	width  int
	status string
}

// New creates a dialog bound to ctrl.
func New(ctx context.Context, ctrl *modal.Controller, palette theme.Palette) *Model {
	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		palette: palette,
		fields:  modal.Fields(),
	}
	for _, f := range m.fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[f]
		in.CharLimit = 120
		m.inputs = append(m.inputs, in)
	}
	m.SetSize(80, 24)
	return m
}

// Sync copies the controller's draft into the inputs and focuses the first
// field. Call it after opening the controller.
func (m *Model) Sync() tea.Cmd {
	draft := m.ctrl.Draft()
	for i, f := range m.fields {
		m.inputs[i].SetValue(draft.Get(f))
		m.inputs[i].CursorEnd()
	}
	m.focus = 0
	m.status = ""
	return m.updateFocus()
}

// SetSize sizes the dialog for a width x height screen.
func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = 80
	}
	m.width = clampInt(width-10, 30, 64)
	for i := range m.inputs {
		m.inputs[i].SetWidth(m.width - labelWidth - 6)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.updateFocus()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.ctrl.IsOpen() {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		return nil
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.inputs)
		return m.updateFocus()
	case "shift+tab", "up":
		m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		return m.updateFocus()
	case "enter":
		m.submit()
		return nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	_ = m.ctrl.Set(m.fields[m.focus], m.inputs[m.focus].Value())
	return cmd
}

func (m *Model) submit() {
	for i, f := range m.fields {
		_ = m.ctrl.Set(f, m.inputs[i].Value())
	}
	_, err := m.ctrl.Submit(m.ctx)
	if err == nil {
		m.status = ""
		return
	}
	var verr *modal.ValidationError
	if errors.As(err, &verr) {
		m.status = "Fix the highlighted fields."
		for i, f := range m.fields {
			if _, bad := verr.Fields[f]; bad {
				m.focus = i
				m.updateFocus()
				break
			}
		}
		return
	}
	m.status = err.Error()
}

func (m *Model) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// Status returns the dialog-level message, e.g. a failed save.
func (m *Model) Status() string {
	return m.status
}

// View renders the framed dialog and the cursor position relative to its top
// left corner.
func (m *Model) View() (string, *tea.Cursor) {
	mt := m.palette.Modal
	title := "New event"
	if m.ctrl.Editing() != "" {
		title = "Edit event"
	}

	lines := []string{mt.Title.Render(title), ""}
	errs := m.ctrl.Errors()
	cursorRow := -1
	for i, f := range m.fields {
		label := mt.Label.Render(padRight(labels[f], labelWidth))
		marker := "  "
		if i == m.focus {
			marker = m.palette.Accent.Render("› ")
			cursorRow = len(lines)
		}
		lines = append(lines, marker+label+m.inputs[i].View())
		if msg, ok := errs[f]; ok {
			lines = append(lines, strings.Repeat(" ", 2+labelWidth)+mt.Error.Render(msg))
		}
	}
	lines = append(lines, "")
	if m.status != "" {
		lines = append(lines, mt.Error.Render(m.status))
	}
	lines = append(lines, m.palette.Help.Render("tab next · enter save · esc cancel"))

	body := mt.Body.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	var cursor *tea.Cursor
	if c := m.inputs[m.focus].Cursor(); c != nil && cursorRow >= 0 {
		clone := *c
		clone.Position.X += 2 + labelWidth
		clone.Position.Y += cursorRow
		clone.Position.X += 2 // left padding
		clone.Position.Y += 1 // top padding
		clone.Position.X += 1 // left border
		clone.Position.Y += 1 // top border
		cursor = &clone
	}
	return mt.Frame.Render(body), cursor
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
