// Package filter derives the visible subset of a record list from a search
// query, a category selection and a sort key.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/ampcred/pkg/record"
)

// AllCategories is the category selection that disables category filtering.
const AllCategories = "All"

// SortKey selects the ordering of filtered records.
type SortKey string

const (
	// SortAlphabetical orders by title using locale-aware collation.
	SortAlphabetical SortKey = "alphabetical"
	// SortRecent orders by Updated/Year, most recent first.
	SortRecent SortKey = "recent"
	// SortNone keeps source order.
	SortNone SortKey = "none"
)

// AllSortKeys returns the supported sort keys.
func AllSortKeys() []SortKey {
	return []SortKey{SortAlphabetical, SortRecent, SortNone}
}

// ParseSortKey converts a string to a SortKey. Empty input yields
// SortAlphabetical.
func ParseSortKey(raw string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case "":
		return SortAlphabetical, nil
	case "a-z", "az", "alpha", "title":
		return SortAlphabetical, nil
	case "newest", "updated", "year":
		return SortRecent, nil
	}
	for _, candidate := range AllSortKeys() {
		if candidate == k {
			return candidate, nil
		}
	}
	return SortAlphabetical, fmt.Errorf("filter: unknown sort key %q", raw)
}

// Toggle flips between alphabetical and recent.
func (k SortKey) Toggle() SortKey {
	if k == SortAlphabetical {
		return SortRecent
	}
	return SortAlphabetical
}

// Title renders the key for selectors.
func (k SortKey) Title() string {
	switch k {
	case SortRecent:
		return "Most recent"
	case SortNone:
		return "Unsorted"
	default:
		return "A–Z"
	}
}

// Query is the user's current filter selection.
type Query struct {
	Text     string  `json:"text,omitempty"`
	Category string  `json:"category,omitempty"`
	Sort     SortKey `json:"sort,omitempty"`
}

// Option customises Apply behaviour.
type Option func(*applyOptions)

type applyOptions struct {
	locale language.Tag
}

// WithLocale sets the collation locale used by SortAlphabetical.
func WithLocale(tag language.Tag) Option {
	return func(opts *applyOptions) {
		opts.locale = tag
	}
}

// Apply filters records by query text and category, then sorts the result.
// The input slice is never modified.
func Apply(records []record.Record, q Query, opts ...Option) []record.Record {
	config := &applyOptions{locale: language.English}
	for _, opt := range opts {
		opt(config)
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Text))
	category := strings.TrimSpace(q.Category)
	if category == AllCategories {
		category = ""
	}

	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if category != "" && r.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(haystack(r)), needle) {
			continue
		}
		out = append(out, r)
	}

	switch q.Sort {
	case SortRecent:
		sortRecent(out)
	case SortNone:
	default:
		sortAlphabetical(out, collate.New(config.locale, collate.IgnoreCase))
	}
	return out
}

// Categories returns AllCategories followed by each distinct category in
// first-seen order.
func Categories(records []record.Record) []string {
	seen := map[string]bool{AllCategories: true}
	out := []string{AllCategories}
	for _, r := range records {
		c := strings.TrimSpace(r.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// haystack joins the searchable fields with newlines so a single-line query
// never matches across two fields.
func haystack(r record.Record) string {
	parts := make([]string, 0, 3+len(r.Tags))
	parts = append(parts, r.Title, r.Category, r.Abstract)
	parts = append(parts, r.Tags...)
	return strings.Join(parts, "\n")
}

func sortAlphabetical(records []record.Record, c *collate.Collator) {
	sort.SliceStable(records, func(i, j int) bool {
		return c.CompareString(records[i].Title, records[j].Title) < 0
	})
}

func sortRecent(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, okI := records[i].Stamp()
		tj, okJ := records[j].Stamp()
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
}
