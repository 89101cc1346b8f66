package event

import "testing"

func TestNormalizeTime(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"padded":         {in: "09:30", want: "09:30"},
		"unpadded hour":  {in: "9:30", want: "09:30"},
		"unpadded both":  {in: "9:5", want: "09:05"},
		"hour only":      {in: "14", want: "14:00"},
		"pm suffix":      {in: "2:15 PM", want: "14:15"},
		"am noon edge":   {in: "12:00am", want: "00:00"},
		"pm noon":        {in: "12pm", want: "12:00"},
		"dotted":         {in: "7.45", want: "07:45"},
		"garbage kept":   {in: "  TBD ", want: "TBD"},
		"out of range":   {in: "25:00", want: "25:00"},
		"empty":          {in: "", want: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := NormalizeTime(tc.in); got != tc.want {
				t.Fatalf("NormalizeTime(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompareTime(t *testing.T) {
	if CompareTime("9:00", "10:00") >= 0 {
		t.Fatalf("expected 9:00 before 10:00")
	}
	// Lexically "10:00" < "9:00"; numeric compare must not fall for it.
	if CompareTime("10:00", "9:00") <= 0 {
		t.Fatalf("expected 10:00 after 9:00")
	}
	if CompareTime("09:00", "9:00") != 0 {
		t.Fatalf("expected padded and unpadded times to be equal")
	}
	if CompareTime("TBD", "23:59") <= 0 {
		t.Fatalf("expected unparseable time after parseable")
	}
	if CompareTime("Later", "Morning") >= 0 {
		t.Fatalf("expected lexical order for unparseable times")
	}
}

func TestLabel(t *testing.T) {
	e := Event{ID: "e1", Day: 5, Time: "9:00", Title: "Sync"}
	if got := e.Label(); got != "09:00 · Sync" {
		t.Fatalf("unexpected label %q", got)
	}
	e.Time = ""
	if got := e.Label(); got != "Sync" {
		t.Fatalf("unexpected label without time %q", got)
	}
}

func TestLanes(t *testing.T) {
	events := []Event{
		{ID: "1", Lane: "Teaching"},
		{ID: "2", Lane: "Board"},
		{ID: "3", Lane: "Teaching"},
		{ID: "4"},
	}
	lanes := Lanes(events)
	if len(lanes) != 2 || lanes[0] != "Teaching" || lanes[1] != "Board" {
		t.Fatalf("unexpected lanes %v", lanes)
	}
}
