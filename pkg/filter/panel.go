package filter

import (
	"sync"

	"golang.org/x/text/language"

	"tableflip.dev/ampcred/pkg/record"
)

// Panel owns a record list and caches the last derived view so repeated
// renders with unchanged inputs do not re-filter.
type Panel struct {
	mu sync.Mutex

	records []record.Record
	version uint64
	locale  language.Tag

	cached      []record.Record
	cachedQuery Query
	cachedAt    uint64
	hasCache    bool

	derivations int
}

// NewPanel creates a panel over records.
func NewPanel(records []record.Record, locale language.Tag) *Panel {
	return &Panel{
		records: record.Clone(records),
		version: 1,
		locale:  locale,
	}
}

// SetRecords replaces the source list and invalidates the cache.
func (p *Panel) SetRecords(records []record.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = record.Clone(records)
	p.version++
	p.hasCache = false
}

// Records returns a copy of the unfiltered source list.
func (p *Panel) Records() []record.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return record.Clone(p.records)
}

// Version increments every time the source list is replaced.
func (p *Panel) Version() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Categories lists the category selector values for the source list.
func (p *Panel) Categories() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Categories(p.records)
}

// View returns the filtered and sorted records for q.
func (p *Panel) View(q Query) []record.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hasCache && p.cachedAt == p.version && p.cachedQuery == q {
		return record.Clone(p.cached)
	}
	p.cached = Apply(p.records, q, WithLocale(p.locale))
	p.cachedQuery = q
	p.cachedAt = p.version
	p.hasCache = true
	p.derivations++
	return record.Clone(p.cached)
}

// Derivations reports how many times View actually re-derived.
func (p *Panel) Derivations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.derivations
}
