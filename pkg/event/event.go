// Package event defines the calendar entries shown by the console views.
package event

import (
	"fmt"
	"strings"
)

// Event is a calendar-like entry. Day is a day-of-month used only for
// bucketing; it is not tied to a real date.
type Event struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Day   int    `json:"day" yaml:"day"`
	Time  string `json:"time,omitempty" yaml:"time,omitempty"`
	Lane  string `json:"lane,omitempty" yaml:"lane,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Label renders the entry the way calendar cells show it, e.g. "09:00 · Sync".
func (e Event) Label() string {
	t := NormalizeTime(e.Time)
	if t == "" {
		return e.Title
	}
	return fmt.Sprintf("%s · %s", t, e.Title)
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("%d %s", e.Day, e.Label())
}

// ValidDay reports whether the event day falls inside 1..days.
func (e Event) ValidDay(days int) bool {
	return e.Day >= 1 && e.Day <= days
}

// Clone returns a copy of the slice.
func Clone(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// Lanes returns the distinct lanes of events in first-seen order.
func Lanes(events []Event) []string {
	seen := make(map[string]bool, len(events))
	var lanes []string
	for _, e := range events {
		lane := strings.TrimSpace(e.Lane)
		if lane == "" || seen[lane] {
			continue
		}
		seen[lane] = true
		lanes = append(lanes, lane)
	}
	return lanes
}
