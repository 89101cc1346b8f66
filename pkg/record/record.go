// Package record defines the documents, volumes and research items listed by
// the console's documentation panel.
package record

import (
	"strings"
	"time"
)

// Record is a searchable documentation entry.
type Record struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Updated  string   `json:"updated,omitempty" yaml:"updated,omitempty"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

var stampLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006",
}

// Stamp returns the value records are ordered by when sorted by recency.
// Updated wins over Year; ok is false when neither yields a time.
func (r Record) Stamp() (time.Time, bool) {
	if v := strings.TrimSpace(r.Updated); v != "" {
		for _, layout := range stampLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	if r.Year > 0 {
		return time.Date(r.Year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// When renders the recency field for display.
func (r Record) When() string {
	if v := strings.TrimSpace(r.Updated); v != "" {
		return v
	}
	if r.Year > 0 {
		return time.Date(r.Year, time.January, 1, 0, 0, 0, 0, time.UTC).Format("2006")
	}
	return ""
}

// Clone returns a copy of the slice. Tags are shared; records are never
// mutated after load.
func Clone(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// Find returns the record with the given ID.
func Find(records []Record, id string) (Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
