package console

import (
	"fmt"
	"strings"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/filter"
)

// Pane names one of the console's two lists.
type Pane int

const (
	// CalendarPane shows the event layout.
	CalendarPane Pane = iota
	// RecordsPane shows the filtered record list.
	RecordsPane
)

// EmptyMessage returns the placeholder for pane, or "" when the pane has
// something to show.
func (c *Console) EmptyMessage(pane Pane) string {
	switch pane {
	case RecordsPane:
		if len(c.Records()) > 0 {
			return ""
		}
		return RecordsEmptyMessage(c.Query())
	default:
		layout, err := c.Layout()
		if err != nil || !layout.Empty() {
			return ""
		}
		return CalendarEmptyMessage(layout.Mode, layout.Range)
	}
}

// CalendarEmptyMessage describes a layout with no placed events.
func CalendarEmptyMessage(mode calendar.Mode, r calendar.Range) string {
	switch mode {
	case calendar.ModeAgenda:
		return "Nothing on the agenda."
	case calendar.ModeWeek:
		return "No events this week."
	default:
		return fmt.Sprintf("No events in %s.", r.Title())
	}
}

// RecordsEmptyMessage describes a filter that matched nothing.
func RecordsEmptyMessage(q filter.Query) string {
	text := strings.TrimSpace(q.Text)
	category := strings.TrimSpace(q.Category)
	inCategory := category != "" && category != filter.AllCategories
	switch {
	case text != "" && inCategory:
		return fmt.Sprintf("No %s match %q.", strings.ToLower(category), text)
	case text != "":
		return fmt.Sprintf("No records match %q.", text)
	case inCategory:
		return fmt.Sprintf("No records in %s.", category)
	default:
		return "No records yet."
	}
}
