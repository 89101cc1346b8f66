package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/record"
)

func newPrinter(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
	buf := &bytes.Buffer{}
	return &PrettyPrint{Out: buf}, buf
}

func render(t *testing.T, mode calendar.Mode, events []event.Event) calendar.Layout {
	t.Helper()
	l, err := calendar.Render(events, mode, calendar.Range{Year: 2026, Month: time.March})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return l
}

func TestMonthOutput(t *testing.T) {
	pp, buf := newPrinter(t)
	events := []event.Event{
		{ID: "e1", Day: 5, Time: "09:00", Title: "Sync", Lane: "Board"},
		{ID: "e2", Day: 40, Time: "10:00", Title: "Lost"},
	}
	pp.Layout(render(t, calendar.ModeMonth, events), "No events.")
	out := buf.String()

	for _, want := range []string{"March 2026", "Su Mo Tu We Th Fr Sa", " 5 Th  09:00 · Sync [Board]", "Unplaced", "Lost"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEmptyStates(t *testing.T) {
	cases := []struct {
		mode calendar.Mode
	}{
		{mode: calendar.ModeMonth},
		{mode: calendar.ModeWeek},
		{mode: calendar.ModeAgenda},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			pp, buf := newPrinter(t)
			pp.Layout(render(t, tc.mode, nil), "Nothing here.")
			if !strings.Contains(buf.String(), "Nothing here.") {
				t.Fatalf("expected empty message, got:\n%s", buf.String())
			}
		})
	}

	pp, buf := newPrinter(t)
	pp.Records(nil, "No records match \"x\".")
	if !strings.Contains(buf.String(), "No records match") {
		t.Fatalf("expected records empty message, got:\n%s", buf.String())
	}
}

func TestWeekColumns(t *testing.T) {
	pp, buf := newPrinter(t)
	events := []event.Event{{ID: "e1", Day: 2, Time: "08:00", Title: "Standup"}}
	pp.Week(render(t, calendar.ModeWeek, events), "")
	out := buf.String()
	for _, want := range []string{"Mon 1", "Fri 5", "08:00 · Standup"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestAgendaAndRecords(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.ShowID = true
	events := []event.Event{
		{ID: "late", Day: 9, Time: "14:00", Title: "Later"},
		{ID: "early", Day: 2, Time: "9:00", Title: "Earlier"},
	}
	pp.Agenda(render(t, calendar.ModeAgenda, events), "")
	out := buf.String()
	if strings.Index(out, "Earlier") > strings.Index(out, "Later") {
		t.Fatalf("agenda out of order:\n%s", out)
	}
	if !strings.Contains(out, "09:00") {
		t.Fatalf("agenda should normalize times:\n%s", out)
	}

	buf.Reset()
	pp.Records([]record.Record{{ID: "r1", Title: "Brand Guidelines", Category: "Documents", Updated: "2025-03-14", Tags: []string{"brand"}}}, "")
	out = buf.String()
	for _, want := range []string{"r1", "Brand Guidelines", "Documents", "2025-03-14", "brand"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRecordDetail(t *testing.T) {
	pp, buf := newPrinter(t)
	err := pp.RecordDetail(record.Record{ID: "r1", Title: "Speaker Kit", Category: "Documents", Abstract: "Bio variants and **headshots**."})
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Speaker Kit", "Documents", "headshots"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestJSON(t *testing.T) {
	pp, buf := newPrinter(t)
	if err := pp.JSON(map[string]int{"count": 2}); err != nil {
		t.Fatalf("json: %v", err)
	}
	got := map[string]int{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["count"] != 2 {
		t.Fatalf("unexpected json %s", buf.String())
	}
}
