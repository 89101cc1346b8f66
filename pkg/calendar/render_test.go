package calendar

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/ampcred/pkg/event"
)

func TestMonthScenarioSingleEvent(t *testing.T) {
	events := []event.Event{{ID: "e1", Day: 5, Time: "09:00", Title: "Sync"}}

	layout, err := Render(events, ModeMonth, Range{Days: 7})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(layout.Cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(layout.Cells))
	}
	for _, cell := range layout.Cells {
		if cell.Day == 5 {
			if len(cell.Events) != 1 {
				t.Fatalf("expected exactly one entry on day 5, got %d", len(cell.Events))
			}
			if got := cell.Events[0].Label(); got != "09:00 · Sync" {
				t.Fatalf("unexpected label %q", got)
			}
			continue
		}
		if !cell.Empty() {
			t.Fatalf("expected day %d to be empty, got %v", cell.Day, cell.Events)
		}
	}
}

func TestMonthUsesRealDayCount(t *testing.T) {
	tests := map[string]struct {
		r    Range
		want int
	}{
		"february leap":   {r: Range{Year: 2024, Month: time.February}, want: 29},
		"february common": {r: Range{Year: 2025, Month: time.February}, want: 28},
		"april":           {r: Range{Year: 2025, Month: time.April}, want: 30},
		"override":        {r: Range{Year: 2025, Month: time.April, Days: 28}, want: 28},
		"no month":        {r: Range{}, want: 31},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			layout, err := Render(nil, ModeMonth, tc.r)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if len(layout.Cells) != tc.want {
				t.Fatalf("expected %d cells, got %d", tc.want, len(layout.Cells))
			}
		})
	}
}

func TestMonthSortsBucketByNumericTime(t *testing.T) {
	events := []event.Event{
		{ID: "a", Day: 3, Time: "10:00", Title: "Late"},
		{ID: "b", Day: 3, Time: "9:30", Title: "Early"},
		{ID: "c", Day: 3, Time: "09:30", Title: "Early twin"},
	}
	layout, err := Render(events, ModeMonth, Range{Days: 30})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cell, ok := layout.Cell(3)
	if !ok {
		t.Fatalf("missing cell 3")
	}
	got := ids(cell.Events)
	want := []string{"b", "c", "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected bucket order (-want +got):\n%s", diff)
	}
}

func TestMonthMalformedDaysAreUnplaced(t *testing.T) {
	events := []event.Event{
		{ID: "ok", Day: 28},
		{ID: "zero", Day: 0},
		{ID: "neg", Day: -3},
		{ID: "late", Day: 30},
	}
	layout, err := Render(events, ModeMonth, Range{Year: 2025, Month: time.February})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := ids(layout.Unplaced); !cmp.Equal(got, []string{"zero", "neg", "late"}) {
		t.Fatalf("unexpected unplaced %v", got)
	}
	if got := ids(layout.Placed()); !cmp.Equal(got, []string{"ok"}) {
		t.Fatalf("unexpected placed %v", got)
	}
}

func TestEveryEventAccountedFor(t *testing.T) {
	events := randomEvents(200, 42)
	for _, mode := range []Mode{ModeMonth, ModeAgenda} {
		layout, err := Render(events, mode, Range{Year: 2025, Month: time.June})
		if err != nil {
			t.Fatalf("render %s: %v", mode, err)
		}
		got := append(ids(layout.Placed()), ids(layout.Unplaced)...)
		want := ids(events)
		sort.Strings(got)
		sort.Strings(want)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s layout dropped or duplicated events (-want +got):\n%s", mode, diff)
		}
	}
}

func TestWeekToleranceOverlapIsBounded(t *testing.T) {
	events := randomEvents(100, 7)
	for _, tolerance := range []int{0, 1, 2} {
		layout, err := Render(events, ModeWeek, Range{Days: 31, WeekAnchor: 10}, WithTolerance(tolerance))
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		counts := map[string]int{}
		for _, e := range layout.Placed() {
			counts[e.ID]++
		}
		for _, e := range layout.Unplaced {
			if counts[e.ID] != 0 {
				t.Fatalf("event %s both placed and unplaced", e.ID)
			}
			counts[e.ID]++
		}
		for _, e := range events {
			n := counts[e.ID]
			if n < 1 || n > 2*tolerance+1 {
				t.Fatalf("tolerance %d: event %s (day %d) appears %d times", tolerance, e.ID, e.Day, n)
			}
		}
	}
}

func TestWeekBucketing(t *testing.T) {
	events := []event.Event{
		{ID: "mon", Day: 10, Time: "08:00"},
		{ID: "between", Day: 11, Time: "12:00"},
		{ID: "far", Day: 20},
	}
	r := Range{Days: 31, WeekAnchor: 10}

	layout, err := Render(events, ModeWeek, r, WithStride(2), WithColumns([]string{"Mon", "Wed", "Fri"}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := map[string][]string{
		"Mon": {"mon", "between"},
		"Wed": {"between"},
		"Fri": nil,
	}
	for _, cell := range layout.Cells {
		if diff := cmp.Diff(want[cell.Key], ids(cell.Events)); diff != "" {
			t.Fatalf("column %s (day %d) mismatch (-want +got):\n%s", cell.Key, cell.Day, diff)
		}
	}
	if got := ids(layout.Unplaced); !cmp.Equal(got, []string{"far"}) {
		t.Fatalf("unexpected unplaced %v", got)
	}

	exact, err := Render(events, ModeWeek, r, WithTolerance(0))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := ids(exact.Cells[1].Events); !cmp.Equal(got, []string{"between"}) {
		t.Fatalf("exact matching should put day 11 only in Tue, got %v", got)
	}
}

func TestLayoutClone(t *testing.T) {
	l, err := Render([]event.Event{{ID: "a", Day: 2, Time: "09:00", Title: "A"}}, ModeAgenda, Range{Year: 2026, Month: 3})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cp := l.Clone()
	cp.Agenda[0].Title = "B"
	if l.Agenda[0].Title != "A" {
		t.Fatalf("clone shares the agenda slice")
	}
	if diff := cmp.Diff(Layout{}, Layout{}.Clone()); diff != "" {
		t.Fatalf("empty clone (-want +got):\n%s", diff)
	}
}

func TestDayForColumn(t *testing.T) {
	r := Range{WeekAnchor: 6}
	for i, want := range []int{6, 7, 8, 9, 10} {
		if got := DayForColumn(r, 1, i); got != want {
			t.Fatalf("column %d: got day %d, want %d", i, got, want)
		}
	}
	if got := DayForColumn(Range{}, 0, 2); got != 3 {
		t.Fatalf("expected defaults anchor=1 stride=1, got %d", got)
	}
}

func TestAgendaSortedByDayThenTime(t *testing.T) {
	events := randomEvents(150, 99)
	layout, err := Render(events, ModeAgenda, Range{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i := 1; i < len(layout.Agenda); i++ {
		prev, cur := layout.Agenda[i-1], layout.Agenda[i]
		if prev.Day > cur.Day || (prev.Day == cur.Day && event.CompareTime(prev.Time, cur.Time) > 0) {
			t.Fatalf("agenda out of order at %d: %v then %v", i, prev, cur)
		}
	}
}

func TestAgendaTiesKeepSourceOrder(t *testing.T) {
	events := []event.Event{
		{ID: "first", Day: 2, Time: "09:00"},
		{ID: "second", Day: 2, Time: "9:00"},
		{ID: "earlier", Day: 1, Time: "17:00"},
	}
	layout, err := Render(events, ModeAgenda, Range{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]string{"earlier", "first", "second"}, ids(layout.Agenda)); diff != "" {
		t.Fatalf("unexpected agenda (-want +got):\n%s", diff)
	}
	if events[0].ID != "first" {
		t.Fatalf("render must not reorder its input")
	}
}

func TestEmptyEvents(t *testing.T) {
	for _, mode := range AllModes() {
		layout, err := Render(nil, mode, Range{Days: 5})
		if err != nil {
			t.Fatalf("render %s: %v", mode, err)
		}
		if !layout.Empty() {
			t.Fatalf("%s layout should be empty", mode)
		}
	}
}

func TestUnknownMode(t *testing.T) {
	if _, err := Render(nil, Mode("year"), Range{}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestParseModeAndNext(t *testing.T) {
	m, err := ParseMode(" Agenda ")
	if err != nil || m != ModeAgenda {
		t.Fatalf("ParseMode = %q, %v", m, err)
	}
	if _, err := ParseMode("quarter"); err == nil {
		t.Fatalf("expected error")
	}
	if ModeAgenda.Next() != ModeMonth || ModeMonth.Next() != ModeWeek {
		t.Fatalf("unexpected mode cycle")
	}
}

func TestRangeShiftAndTitle(t *testing.T) {
	r := Range{Year: 2025, Month: time.December}
	next := r.Shift(1)
	if next.Year != 2026 || next.Month != time.January {
		t.Fatalf("unexpected shift %+v", next)
	}
	if next.Title() != "January 2026" {
		t.Fatalf("unexpected title %q", next.Title())
	}
	parsed, ok := ParseMonth("March 2026")
	if !ok || parsed.Month != time.March || parsed.Offset() != int(time.Sunday) {
		t.Fatalf("unexpected parsed month %+v (offset %d)", parsed, parsed.Offset())
	}
}

func randomEvents(n int, seed int64) []event.Event {
	rnd := rand.New(rand.NewSource(seed))
	times := []string{"09:00", "9:30", "10:00", "14:15", "2:00 PM", "TBD", ""}
	events := make([]event.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, event.Event{
			ID:    "e" + strconv.Itoa(i),
			Title: "Event " + strconv.Itoa(i),
			Day:   rnd.Intn(36) - 2,
			Time:  times[rnd.Intn(len(times))],
		})
	}
	return events
}

func ids(events []event.Event) []string {
	if len(events) == 0 {
		return nil
	}
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}
