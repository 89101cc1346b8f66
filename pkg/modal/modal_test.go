package modal

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/store"
)

func newController(t *testing.T, seed []event.Event) (*Controller, *store.Store) {
	t.Helper()
	s, err := store.New(seed)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	n := 0
	c := New(s, Options{
		MaxDay:      30,
		DefaultLane: "Teaching",
		NewID: func() string {
			n++
			return "new-" + string(rune('0'+n))
		},
	})
	return c, s
}

func TestSubmitEmptyTitleLeavesStoreUnchanged(t *testing.T) {
	c, s := newController(t, []event.Event{{ID: "e1", Day: 5, Time: "09:00", Title: "Sync"}})
	before := s.Version()

	c.Open()
	_ = c.Set(FieldDay, "12")
	_ = c.Set(FieldTime, "10:00")

	_, err := c.Submit(context.Background())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields[FieldTitle]; !ok {
		t.Fatalf("expected title error, got %v", verr.Fields)
	}
	if s.Version() != before || s.Len() != 1 {
		t.Fatalf("store changed on invalid submission")
	}
	if !c.IsOpen() {
		t.Fatalf("dialog should stay open after invalid submission")
	}
	if c.Errors()[FieldTitle] == "" {
		t.Fatalf("expected inline title error")
	}
	if c.Draft().Day != "12" {
		t.Fatalf("draft should survive a rejected submission")
	}
}

func TestSubmitAppendsExactlyOneVisibleEvent(t *testing.T) {
	c, s := newController(t, []event.Event{{ID: "e1", Day: 5, Time: "09:00", Title: "Sync"}})

	c.Open()
	for field, value := range map[string]string{
		FieldTitle: " Board meeting ",
		FieldDay:   "12",
		FieldTime:  "7:30 pm",
	} {
		if err := c.Set(field, value); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
	created, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID != "new-1" || created.Title != "Board meeting" || created.Time != "19:30" || created.Lane != "Teaching" {
		t.Fatalf("unexpected created event %+v", created)
	}
	if s.Len() != 2 {
		t.Fatalf("expected exactly one appended event, store has %d", s.Len())
	}
	if c.State() != Closed || c.Outcome() != Submitted {
		t.Fatalf("expected closed/submitted, got %s/%s", c.State(), c.Outcome())
	}

	layout, err := calendar.Render(s.Events(), calendar.ModeMonth, calendar.Range{Days: 30})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cell, _ := layout.Cell(12)
	if len(cell.Events) != 1 || cell.Events[0].Label() != "19:30 · Board meeting" {
		t.Fatalf("new event not visible in day 12: %+v", cell.Events)
	}
}

func TestValidationMessages(t *testing.T) {
	tests := map[string]struct {
		draft Draft
		want  []string
	}{
		"all blank":       {draft: Draft{}, want: []string{FieldTitle, FieldDay, FieldTime}},
		"day not number":  {draft: Draft{Title: "x", Day: "fifth", Time: "9:00"}, want: []string{FieldDay}},
		"day too large":   {draft: Draft{Title: "x", Day: "31", Time: "9:00"}, want: []string{FieldDay}},
		"bad time":        {draft: Draft{Title: "x", Day: "3", Time: "noonish"}, want: []string{FieldTime}},
		"whitespace only": {draft: Draft{Title: "  ", Day: "3", Time: "9"}, want: []string{FieldTitle}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, _ := newController(t, nil)
			c.Open()
			_ = c.Set(FieldTitle, tc.draft.Title)
			_ = c.Set(FieldDay, tc.draft.Day)
			_ = c.Set(FieldTime, tc.draft.Time)
			_, err := c.Submit(context.Background())
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tc.want) {
				t.Fatalf("expected errors on %v, got %v", tc.want, verr.Fields)
			}
			for _, f := range tc.want {
				if verr.Fields[f] == "" {
					t.Fatalf("missing error for %s in %v", f, verr.Fields)
				}
			}
		})
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	c, s := newController(t, nil)
	c.Open()
	_ = c.Set(FieldTitle, "Draft")
	c.Cancel()

	if c.State() != Closed || c.Outcome() != Cancelled {
		t.Fatalf("expected closed/cancelled, got %s/%s", c.State(), c.Outcome())
	}
	if c.Draft() != (Draft{}) {
		t.Fatalf("draft not discarded: %+v", c.Draft())
	}
	if s.Len() != 0 {
		t.Fatalf("cancel must not touch the store")
	}

	c.Open()
	if c.Draft().Title != "" || c.Draft().Lane != "Teaching" {
		t.Fatalf("reopened dialog should start from defaults, got %+v", c.Draft())
	}
}

func TestClosedDialogRejectsEdits(t *testing.T) {
	c, _ := newController(t, nil)
	if err := c.Set(FieldTitle, "x"); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
	c.Open()
	if err := c.Set("color", "red"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestEditReplacesEvent(t *testing.T) {
	c, s := newController(t, []event.Event{{ID: "e1", Day: 5, Time: "09:00", Title: "Sync", Lane: "Board"}})
	orig, _ := s.Get("e1")

	c.OpenEdit(orig)
	if c.Editing() != "e1" || c.Draft().Day != "5" {
		t.Fatalf("edit draft not prefilled: %+v", c.Draft())
	}
	_ = c.Set(FieldDay, "6")
	updated, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if updated.ID != "e1" {
		t.Fatalf("edit must keep the ID, got %q", updated.ID)
	}
	got, _ := s.Get("e1")
	if got.Day != 6 || got.Lane != "Board" || s.Len() != 1 {
		t.Fatalf("unexpected stored event %+v (len %d)", got, s.Len())
	}
}

func TestEditKeepsColor(t *testing.T) {
	c, s := newController(t, []event.Event{{ID: "e1", Day: 5, Time: "09:00", Title: "Sync", Lane: "Board", Color: "#ff0000"}})
	orig, _ := s.Get("e1")

	c.OpenEdit(orig)
	_ = c.Set(FieldTitle, "Sync 2")
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got, _ := s.Get("e1")
	if got.Title != "Sync 2" || got.Color != "#ff0000" {
		t.Fatalf("unexpected stored event %+v", got)
	}

	c.Open()
	_ = c.Set(FieldTitle, "Fresh")
	_ = c.Set(FieldDay, "7")
	_ = c.Set(FieldTime, "10:00")
	created, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Color != "" {
		t.Fatalf("new event inherited color %q from the last edit", created.Color)
	}
}

func TestSinkErrorKeepsDialogOpen(t *testing.T) {
	c, s := newController(t, []event.Event{{ID: "new-1"}})
	c.Open()
	_ = c.Set(FieldTitle, "Clash")
	_ = c.Set(FieldDay, "2")
	_ = c.Set(FieldTime, "08:00")
	if _, err := c.Submit(context.Background()); !errors.Is(err, store.ErrDuplicateID) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
	if !c.IsOpen() || s.Len() != 1 {
		t.Fatalf("dialog should stay open and store unchanged")
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	s, _ := store.New(nil)
	c := New(s, Options{})
	for i := 0; i < 3; i++ {
		c.OpenAt(i + 1)
		_ = c.Set(FieldTitle, "Repeat")
		_ = c.Set(FieldTime, "12:00")
		if _, err := c.Submit(context.Background()); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 events, got %d", s.Len())
	}
}
