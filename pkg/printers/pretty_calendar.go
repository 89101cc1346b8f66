package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/event"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Layout prints l in its mode's shape. message is shown when nothing was
// placed.
func (pp *PrettyPrint) Layout(l calendar.Layout, message string) {
	switch l.Mode {
	case calendar.ModeWeek:
		pp.Week(l, message)
	case calendar.ModeAgenda:
		pp.Agenda(l, message)
	default:
		pp.MonthGrid(l)
		pp.MonthListing(l, message)
	}
	pp.Unplaced(l.Unplaced)
}

// MonthGrid prints a compact month with busy days highlighted.
func (pp *PrettyPrint) MonthGrid(l calendar.Layout) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)

	m := l.Range.Title()
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = color.New(color.Faint).Fprintln(w, "Su Mo Tu We Th Fr Sa")

	d := time.Weekday(l.Range.Offset())

	// Pad out the start of the month.
	_, _ = fmt.Fprint(w, strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for _, c := range l.Cells {
		if c.Empty() {
			_, _ = l1.Fprintf(w, "%2d ", c.Day)
		} else {
			_, _ = l2.Fprintf(w, "%2d ", c.Day)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

// MonthListing prints each busy day with its events.
func (pp *PrettyPrint) MonthListing(l calendar.Layout, message string) {
	if l.Empty() {
		pp.Empty(message)
		return
	}
	s := color.New(color.Underline)
	p := color.New()
	w := pp.out()

	d := time.Weekday(l.Range.Offset())
	for _, c := range l.Cells {
		weekday := d
		d = (d + 1) % 7
		if c.Empty() {
			continue
		}
		printer := p
		if weekday == time.Sunday {
			printer = s
		}
		_, _ = printer.Fprintf(w, "%2d %s", c.Day, weekday.String()[0:2])
		for i, e := range c.Events {
			prefix := "  "
			if i > 0 {
				prefix = "       "
			}
			pp.eventLine(prefix, e)
		}
	}
	pp.NewLine()
}

// Week prints one column per cell.
func (pp *PrettyPrint) Week(l calendar.Layout, message string) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 24
	tbl.Wrap = true

	header := make([]interface{}, 0, len(l.Cells))
	rows := 0
	for _, c := range l.Cells {
		header = append(header, bold.Sprintf("%s %d", c.Label, c.Day))
		if len(c.Events) > rows {
			rows = len(c.Events)
		}
	}
	tbl.AddRow(header...)
	for i := 0; i < rows; i++ {
		row := make([]interface{}, 0, len(l.Cells))
		for _, c := range l.Cells {
			if i < len(c.Events) {
				row = append(row, c.Events[i].Label())
			} else {
				row = append(row, "")
			}
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
	if l.Empty() {
		pp.Empty(message)
	}
}

// Agenda prints the chronological list as a table.
func (pp *PrettyPrint) Agenda(l calendar.Layout, message string) {
	if len(l.Agenda) == 0 {
		pp.Empty(message)
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	header := []interface{}{bold.Sprint("Day"), bold.Sprint("Time"), bold.Sprint("Title"), bold.Sprint("Lane")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, e := range l.Agenda {
		row := []interface{}{e.Day, event.NormalizeTime(e.Time), e.Title, faint.Sprint(e.Lane)}
		if pp.ShowID {
			row = append([]interface{}{e.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	if pp.ShowID {
		tbl.RightAlign(1)
	} else {
		tbl.RightAlign(0)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Unplaced lists events the layout could not bucket.
func (pp *PrettyPrint) Unplaced(events []event.Event) {
	if len(events) == 0 {
		return
	}
	i := color.New(color.Italic)
	_, _ = i.Fprintf(pp.out(), "Unplaced\n")
	for _, e := range events {
		pp.eventLine(fmt.Sprintf("%3d  ", e.Day), e)
	}
	pp.NewLine()
}
