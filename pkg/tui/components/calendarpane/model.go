// Package calendarpane draws a calendar.Layout and tracks the selected day.
package calendarpane

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/theme"
)

const weekdays = "Su Mo Tu We Th Fr Sa"

// Model renders one layout. selected is a cell index in Month and Week mode
// and an agenda row in Agenda mode.
type Model struct {
	palette theme.Palette
	layout  calendar.Layout
	empty   string

	selected int
	width    int
	height   int
}

// New creates an empty pane.
func New(palette theme.Palette) *Model {
	return &Model{palette: palette, width: 60, height: 20}
}

// SetSize sets the inner drawing area.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 14)
	m.height = max(height, 4)
}

// SetLayout swaps in a freshly derived layout. The selection is kept when the
// mode is unchanged and clamped to the new bounds.
func (m *Model) SetLayout(l calendar.Layout, empty string) {
	if l.Mode != m.layout.Mode {
		m.selected = 0
	}
	m.layout = l
	m.empty = empty
	m.clamp()
}

// Layout returns the layout being drawn.
func (m *Model) Layout() calendar.Layout {
	return m.layout
}

// SelectedDay returns the day under the selection, or 0 when nothing is
// selectable.
func (m *Model) SelectedDay() int {
	if m.layout.Mode == calendar.ModeAgenda {
		if m.selected < len(m.layout.Agenda) {
			return m.layout.Agenda[m.selected].Day
		}
		return 0
	}
	if m.selected < len(m.layout.Cells) {
		return m.layout.Cells[m.selected].Day
	}
	return 0
}

// SelectedEvents returns the events under the selection in display order.
func (m *Model) SelectedEvents() []event.Event {
	if m.layout.Mode == calendar.ModeAgenda {
		if m.selected < len(m.layout.Agenda) {
			return []event.Event{m.layout.Agenda[m.selected]}
		}
		return nil
	}
	if m.selected < len(m.layout.Cells) {
		return event.Clone(m.layout.Cells[m.selected].Events)
	}
	return nil
}

// Select moves the selection to day, if the layout has it.
func (m *Model) Select(day int) {
	if m.layout.Mode == calendar.ModeAgenda {
		for i, e := range m.layout.Agenda {
			if e.Day == day {
				m.selected = i
				return
			}
		}
		return
	}
	for i, c := range m.layout.Cells {
		if c.Day == day {
			m.selected = i
			return
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update moves the selection with arrow or vim keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	vertical := 7
	if m.layout.Mode != calendar.ModeMonth {
		vertical = 1
	}
	switch key.String() {
	case "left", "h":
		m.selected--
	case "right", "l":
		m.selected++
	case "up", "k":
		m.selected -= vertical
	case "down", "j":
		m.selected += vertical
	case "home", "g":
		m.selected = 0
	case "end", "G":
		m.selected = m.count() - 1
	}
	m.clamp()
	return m, nil
}

func (m *Model) count() int {
	if m.layout.Mode == calendar.ModeAgenda {
		return len(m.layout.Agenda)
	}
	return len(m.layout.Cells)
}

func (m *Model) clamp() {
	n := m.count()
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// View renders the pane body.
func (m *Model) View() string {
	var body string
	switch m.layout.Mode {
	case calendar.ModeWeek:
		body = m.viewWeek()
	case calendar.ModeAgenda:
		body = m.viewAgenda()
	default:
		body = m.viewMonth()
	}
	if n := len(m.layout.Unplaced); n > 0 {
		body += "\n" + m.palette.Muted.Render(fmt.Sprintf("%d event(s) outside this view", n))
	}
	return lipgloss.NewStyle().MaxHeight(m.height).Render(body)
}

func (m *Model) viewMonth() string {
	cellWidth := max(m.width/7, 3)
	var lines []string
	header := make([]string, 0, 7)
	for _, d := range strings.Fields(weekdays) {
		header = append(header, m.palette.Muted.Render(fit(d, cellWidth)))
	}
	lines = append(lines, strings.Join(header, ""))

	offset := m.layout.Range.Offset()
	weeks := (offset + len(m.layout.Cells) + 6) / 7
	perCell := max((m.height-2)/max(weeks, 1)-1, 0)

	for w := 0; w < weeks; w++ {
		rows := make([][]string, perCell+1)
		for col := 0; col < 7; col++ {
			idx := w*7 + col - offset
			if idx < 0 || idx >= len(m.layout.Cells) {
				for r := range rows {
					rows[r] = append(rows[r], strings.Repeat(" ", cellWidth))
				}
				continue
			}
			cell := m.layout.Cells[idx]
			day := fit(strconv.Itoa(cell.Day), cellWidth)
			switch {
			case idx == m.selected:
				day = m.palette.Selected.Render(day)
			case !cell.Empty():
				day = m.palette.Accent.Render(day)
			}
			rows[0] = append(rows[0], day)
			for r := 1; r <= perCell; r++ {
				rows[r] = append(rows[r], m.chip(cell.Events, r-1, perCell, cellWidth))
			}
		}
		for _, row := range rows {
			lines = append(lines, strings.Join(row, ""))
		}
	}
	if m.layout.Empty() && m.empty != "" {
		lines = append(lines, "", m.palette.Empty.Render(m.empty))
	}
	return strings.Join(lines, "\n")
}

// chip renders the i-th visible line of a cell, turning the last slot into a
// "+n" counter when the cell overflows.
func (m *Model) chip(events []event.Event, i, slots, width int) string {
	if i >= len(events) {
		return strings.Repeat(" ", width)
	}
	if i == slots-1 && len(events) > slots {
		return m.palette.Muted.Render(fit(fmt.Sprintf("+%d", len(events)-i), width))
	}
	e := events[i]
	return m.palette.Lane(e.Lane, e.Color).Render(fit(e.Label(), width-1)) + " "
}

func (m *Model) viewWeek() string {
	n := max(len(m.layout.Cells), 1)
	colWidth := max(m.width/n, 8)
	cols := make([]string, 0, n)
	for i, c := range m.layout.Cells {
		head := fit(fmt.Sprintf("%s %d", c.Label, c.Day), colWidth)
		if i == m.selected {
			head = m.palette.Selected.Render(head)
		} else {
			head = m.palette.Title.Render(head)
		}
		lines := []string{head}
		for _, e := range c.Events {
			lines = append(lines, m.palette.Lane(e.Lane, e.Color).Render(fit(e.Label(), colWidth-1))+" ")
		}
		if c.Empty() {
			lines = append(lines, m.palette.Empty.Render(fit("—", colWidth)))
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if m.layout.Empty() && m.empty != "" {
		out += "\n\n" + m.palette.Empty.Render(m.empty)
	}
	return out
}

func (m *Model) viewAgenda() string {
	if len(m.layout.Agenda) == 0 {
		return m.palette.Empty.Render(m.empty)
	}
	start := 0
	if visible := m.height - 1; m.selected >= visible {
		start = m.selected - visible + 1
	}
	lines := make([]string, 0, len(m.layout.Agenda))
	for i := start; i < len(m.layout.Agenda) && len(lines) < m.height; i++ {
		e := m.layout.Agenda[i]
		prefix := fmt.Sprintf("%3d  ", e.Day)
		lane := ""
		if e.Lane != "" {
			lane = " " + m.palette.Lane(e.Lane, e.Color).Render(e.Lane)
		}
		text := fit(e.Label(), m.width-len(prefix)-lipgloss.Width(lane)-1)
		line := prefix + strings.TrimRight(text, " ")
		if i == m.selected {
			line = m.palette.Selected.Render(line)
		}
		lines = append(lines, line+lane)
	}
	return strings.Join(lines, "\n")
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		return truncate.StringWithTail(s, uint(width), "…")
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}
