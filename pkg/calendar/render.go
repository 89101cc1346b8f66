// Package calendar buckets events into Month, Week and Agenda layouts. It is
// a pure derivation: the same events, mode and range always produce the same
// layout.
package calendar

import (
	"fmt"
	"sort"
	"strconv"

	"tableflip.dev/ampcred/pkg/event"
)

const (
	// DefaultTolerance is the Week-mode matching window. An event with day d
	// shows in every column whose day c satisfies |d-c| <= tolerance, which
	// keeps sparse calendars populated. Zero means exact matching.
	DefaultTolerance = 1
	// DefaultStride is the day distance between adjacent Week columns.
	DefaultStride = 1
)

// DefaultColumns are the Week-mode column names.
var DefaultColumns = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// Cell is one bucket of a Month or Week layout.
type Cell struct {
	Key    string        `json:"key"`
	Label  string        `json:"label"`
	Day    int           `json:"day"`
	Events []event.Event `json:"events"`
}

// Empty reports whether nothing was bucketed into the cell.
func (c Cell) Empty() bool {
	return len(c.Events) == 0
}

// Layout is the derived view for one mode. Month and Week fill Cells, Agenda
// fills Agenda. Unplaced holds events a bucketing layout had to ignore,
// e.g. a day outside the month.
type Layout struct {
	Mode     Mode          `json:"mode"`
	Range    Range         `json:"range"`
	Cells    []Cell        `json:"cells,omitempty"`
	Agenda   []event.Event `json:"agenda,omitempty"`
	Unplaced []event.Event `json:"unplaced,omitempty"`
}

// Placed returns every event occurrence in the layout, in display order.
// Week mode may list the same event more than once.
func (l Layout) Placed() []event.Event {
	if l.Mode == ModeAgenda {
		return event.Clone(l.Agenda)
	}
	var out []event.Event
	for _, c := range l.Cells {
		out = append(out, c.Events...)
	}
	return out
}

// Empty reports whether no event was placed.
func (l Layout) Empty() bool {
	if l.Mode == ModeAgenda {
		return len(l.Agenda) == 0
	}
	for _, c := range l.Cells {
		if !c.Empty() {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no slices with l.
func (l Layout) Clone() Layout {
	out := l
	if l.Cells != nil {
		out.Cells = make([]Cell, len(l.Cells))
		for i, c := range l.Cells {
			c.Events = event.Clone(c.Events)
			out.Cells[i] = c
		}
	}
	out.Agenda = event.Clone(l.Agenda)
	out.Unplaced = event.Clone(l.Unplaced)
	return out
}

// Cell returns the cell for the given day.
func (l Layout) Cell(day int) (Cell, bool) {
	for _, c := range l.Cells {
		if c.Day == day {
			return c, true
		}
	}
	return Cell{}, false
}

// Option customises Render behaviour.
type Option func(*renderOptions)

type renderOptions struct {
	tolerance int
	stride    int
	columns   []string
}

// WithTolerance sets the Week-mode matching window. Negative values are
// treated as zero.
func WithTolerance(n int) Option {
	return func(opts *renderOptions) {
		if n < 0 {
			n = 0
		}
		opts.tolerance = n
	}
}

// WithStride sets the day distance between Week columns.
func WithStride(n int) Option {
	return func(opts *renderOptions) {
		if n > 0 {
			opts.stride = n
		}
	}
}

// WithColumns overrides the Week-mode column names.
func WithColumns(names []string) Option {
	return func(opts *renderOptions) {
		if len(names) == 0 {
			return
		}
		opts.columns = append([]string(nil), names...)
	}
}

// Render derives the layout for mode.
func Render(events []event.Event, mode Mode, r Range, opts ...Option) (Layout, error) {
	config := &renderOptions{
		tolerance: DefaultTolerance,
		stride:    DefaultStride,
		columns:   DefaultColumns,
	}
	for _, opt := range opts {
		opt(config)
	}

	switch mode {
	case ModeMonth:
		return renderMonth(events, r), nil
	case ModeWeek:
		return renderWeek(events, r, config), nil
	case ModeAgenda:
		return renderAgenda(events, r), nil
	default:
		return Layout{}, fmt.Errorf("calendar: unknown view mode %q", mode)
	}
}

func renderMonth(events []event.Event, r Range) Layout {
	days := r.DayCount()
	layout := Layout{Mode: ModeMonth, Range: r, Cells: make([]Cell, days)}
	for i := range layout.Cells {
		day := i + 1
		layout.Cells[i] = Cell{Key: strconv.Itoa(day), Label: strconv.Itoa(day), Day: day}
	}
	for _, e := range events {
		if !e.ValidDay(days) {
			layout.Unplaced = append(layout.Unplaced, e)
			continue
		}
		cell := &layout.Cells[e.Day-1]
		cell.Events = append(cell.Events, e)
	}
	for i := range layout.Cells {
		sortByTime(layout.Cells[i].Events)
	}
	return layout
}

// DayForColumn maps a Week column index to its representative day number.
func DayForColumn(r Range, stride, index int) int {
	anchor := r.WeekAnchor
	if anchor < 1 {
		anchor = 1
	}
	if stride < 1 {
		stride = DefaultStride
	}
	return anchor + index*stride
}

func renderWeek(events []event.Event, r Range, opts *renderOptions) Layout {
	layout := Layout{Mode: ModeWeek, Range: r, Cells: make([]Cell, len(opts.columns))}
	for i, name := range opts.columns {
		layout.Cells[i] = Cell{Key: name, Label: name, Day: DayForColumn(r, opts.stride, i)}
	}
	days := r.DayCount()
	for _, e := range events {
		placed := false
		if e.ValidDay(days) {
			for i := range layout.Cells {
				if abs(e.Day-layout.Cells[i].Day) <= opts.tolerance {
					layout.Cells[i].Events = append(layout.Cells[i].Events, e)
					placed = true
				}
			}
		}
		if !placed {
			layout.Unplaced = append(layout.Unplaced, e)
		}
	}
	for i := range layout.Cells {
		sortByDayTime(layout.Cells[i].Events)
	}
	return layout
}

func renderAgenda(events []event.Event, r Range) Layout {
	agenda := event.Clone(events)
	sortByDayTime(agenda)
	if agenda == nil {
		agenda = []event.Event{}
	}
	return Layout{Mode: ModeAgenda, Range: r, Agenda: agenda}
}

func sortByTime(events []event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return event.CompareTime(events[i].Time, events[j].Time) < 0
	})
}

func sortByDayTime(events []event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Day != events[j].Day {
			return events[i].Day < events[j].Day
		}
		return event.CompareTime(events[i].Time, events[j].Time) < 0
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
