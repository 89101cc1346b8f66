package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/record"
)

func TestBuiltinIsValid(t *testing.T) {
	events, records, err := Load(context.Background(), Builtin())
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	if len(events) == 0 || len(records) == 0 {
		t.Fatalf("builtin seed should not be empty")
	}
}

func TestValidateRejectsDuplicates(t *testing.T) {
	err := Validate([]event.Event{{ID: "a"}, {ID: "a"}}, nil)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected duplicate event error, got %v", err)
	}
	err = Validate(nil, []record.Record{{ID: "r"}, {ID: "r"}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected duplicate record error, got %v", err)
	}
	if err := Validate([]event.Event{{Title: "no id"}}, nil); err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `events:
  - id: e1
    title: Sync
    day: 5
    time: "09:00"
    lane: Board
records:
  - id: r1
    title: Alpha
    category: Documents
    updated: 2024-01-01
    tags: [one, two]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	events, records, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	wantEvents := []event.Event{{ID: "e1", Title: "Sync", Day: 5, Time: "09:00", Lane: "Board"}}
	if diff := cmp.Diff(wantEvents, events); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
	wantRecords := []record.Record{{ID: "r1", Title: "Alpha", Category: "Documents", Updated: "2024-01-01", Tags: []string{"one", "two"}}}
	if diff := cmp.Diff(wantRecords, records); diff != "" {
		t.Fatalf("records (-want +got):\n%s", diff)
	}

	out := filepath.Join(t.TempDir(), "export.yaml")
	if err := WriteYAML(out, events, records); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	again, err := YAML(out).Events(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(events, again); diff != "" {
		t.Fatalf("exported events differ (-want +got):\n%s", diff)
	}
}

func TestICSMapsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	data := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:timed-1\r\n" +
		"DTSTAMP:20250101T000000Z\r\n" +
		"DTSTART:20250305T093000Z\r\n" +
		"DTEND:20250305T103000Z\r\n" +
		"SUMMARY:Staff sync\r\n" +
		"CATEGORIES:Operations,Weekly\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:allday-1\r\n" +
		"DTSTAMP:20250101T000000Z\r\n" +
		"DTSTART;VALUE=DATE:20250312\r\n" +
		"SUMMARY:Retreat\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	events, records, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("ics carries no records, got %d", len(records))
	}
	want := []event.Event{
		{ID: "timed-1", Title: "Staff sync", Day: 5, Time: "09:30", Lane: "Operations"},
		{ID: "allday-1", Title: "Retreat", Day: 12},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestICSLogsSkippedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	data := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"DTSTAMP:20250101T000000Z\r\n" +
		"DTSTART:20250305T093000Z\r\n" +
		"SUMMARY:No uid\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:bad-start\r\n" +
		"DTSTAMP:20250101T000000Z\r\n" +
		"DTSTART:not-a-date\r\n" +
		"SUMMARY:Broken\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:good-1\r\n" +
		"DTSTAMP:20250101T000000Z\r\n" +
		"DTSTART:20250307T080000Z\r\n" +
		"SUMMARY:Kept\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	src, err := Open(path, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	events, err := src.Events(context.Background())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].ID != "good-1" {
		t.Fatalf("expected only good-1, got %+v", events)
	}

	if got := logs.FilterMessage("skipping vevent").Len(); got != 2 {
		t.Fatalf("expected 2 skip warnings, got %d", got)
	}
	summary := logs.FilterMessage("ics entries skipped").All()
	if len(summary) != 1 {
		t.Fatalf("expected one summary warning, got %d", len(summary))
	}
	if got := summary[0].ContextMap()["skipped"]; got != int64(2) {
		t.Fatalf("expected skipped=2, got %v", got)
	}
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	if _, err := Open("seed.csv"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
	src, err := Open("")
	if err != nil {
		t.Fatalf("open builtin: %v", err)
	}
	if Describe(src) != "builtin" {
		t.Fatalf("expected builtin source, got %s", Describe(src))
	}
}

func TestStaticHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Builtin().Events(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWatchSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte("events: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte("events: [{id: a, day: 1}]\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload signal")
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}
