// Package recordspane lists filtered records with a search box and a
// markdown preview of the selected record.
package recordspane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/ampcred/pkg/filter"
	"tableflip.dev/ampcred/pkg/record"
	"tableflip.dev/ampcred/pkg/theme"
)

// QueryChangedMsg is emitted while the user edits the search box.
type QueryChangedMsg struct {
	Text string
}

// Model is the records pane.
type Model struct {
	palette theme.Palette

	records []record.Record
	empty   string
	query   filter.Query
	cursor  int

	search    textinput.Model
	searching bool
	preview   bool

	width  int
	height int

	rendered    string
	renderedKey string
}

// New creates an empty pane.
func New(palette theme.Palette) *Model {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "search title, category, abstract"
	in.CharLimit = 80
	return &Model{palette: palette, search: in, width: 40, height: 20}
}

// SetSize sets the inner drawing area.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 16)
	m.height = max(height, 4)
	m.search.SetWidth(m.width - 4)
}

// SetRecords swaps in the filtered list and the filter that produced it.
func (m *Model) SetRecords(records []record.Record, q filter.Query, empty string) {
	m.records = records
	m.query = q
	m.empty = empty
	if m.cursor >= len(records) {
		m.cursor = len(records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if !m.searching && m.search.Value() != q.Text {
		m.search.SetValue(q.Text)
	}
}

// Selected returns the record under the cursor.
func (m *Model) Selected() (record.Record, bool) {
	if m.cursor < len(m.records) {
		return m.records[m.cursor], true
	}
	return record.Record{}, false
}

// Searching reports whether the search box has the keyboard.
func (m *Model) Searching() bool {
	return m.searching
}

// StartSearch gives the search box the keyboard.
func (m *Model) StartSearch() tea.Cmd {
	m.searching = true
	m.search.CursorEnd()
	return m.search.Focus()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.searching {
		switch key.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if after := m.search.Value(); after != before {
			m.cursor = 0
			text := after
			cmd = tea.Batch(cmd, func() tea.Msg { return QueryChangedMsg{Text: text} })
		}
		return m, cmd
	}

	switch key.String() {
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.records) - 1
	case "enter", "p":
		m.preview = !m.preview
	}
	if m.cursor >= len(m.records) {
		m.cursor = len(m.records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m, nil
}

// View renders the pane body.
func (m *Model) View() string {
	lines := []string{m.search.View(), m.filterLine(), ""}

	if len(m.records) == 0 {
		lines = append(lines, m.palette.Empty.Render(m.empty))
		return strings.Join(lines, "\n")
	}

	listHeight := m.height - len(lines)
	var previewText string
	if m.preview {
		previewText = m.renderPreview()
		listHeight -= min(lipgloss.Height(previewText)+1, listHeight/2)
	}
	listHeight = max(listHeight, 1)

	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	for i := start; i < len(m.records) && i < start+listHeight; i++ {
		lines = append(lines, m.row(i))
	}
	if previewText != "" {
		lines = append(lines, "", previewText)
	}
	return lipgloss.NewStyle().MaxHeight(m.height).Render(strings.Join(lines, "\n"))
}

func (m *Model) filterLine() string {
	category := m.query.Category
	if category == "" {
		category = filter.AllCategories
	}
	sortKey := m.query.Sort
	if sortKey == "" {
		sortKey = filter.SortAlphabetical
	}
	return m.palette.Muted.Render(fmt.Sprintf("%s · %s · %d shown", category, sortKey.Title(), len(m.records)))
}

func (m *Model) row(i int) string {
	r := m.records[i]
	meta := r.Category
	if when := r.When(); when != "" {
		meta += " · " + when
	}
	titleWidth := m.width - lipgloss.Width(meta) - 3
	title := r.Title
	if titleWidth < 8 {
		titleWidth = m.width - 2
		meta = ""
	}
	title = truncate.StringWithTail(title, uint(max(titleWidth, 1)), "…")
	gap := m.width - 2 - lipgloss.Width(title) - lipgloss.Width(meta)
	line := title + strings.Repeat(" ", max(gap, 1)) + m.palette.Muted.Render(meta)
	if i == m.cursor {
		return m.palette.Accent.Render("› ") + m.palette.Selected.Render(title) + strings.Repeat(" ", max(gap, 1)) + m.palette.Muted.Render(meta)
	}
	return "  " + line
}

func (m *Model) renderPreview() string {
	r, ok := m.Selected()
	if !ok {
		return ""
	}
	key := fmt.Sprintf("%s/%d/%t", r.ID, m.width, m.palette.Dark)
	if key == m.renderedKey {
		return m.rendered
	}
	md := fmt.Sprintf("## %s\n\n%s\n", r.Title, r.Abstract)
	if len(r.Tags) > 0 {
		md += "\n_" + strings.Join(r.Tags, ", ") + "_\n"
	}
	style := "light"
	if m.palette.Dark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(m.width-4, 20)),
	)
	out := r.Abstract
	if err == nil {
		if rendered, rerr := renderer.Render(md); rerr == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	m.rendered = out
	m.renderedKey = key
	return out
}
