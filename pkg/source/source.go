// Package source loads the seed events and records the console starts from.
// The console never owns its data: it asks a Source at start-up and again on
// reload.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/record"
)

// ErrDuplicateID is returned when a seed repeats an event or record ID.
var ErrDuplicateID = errors.New("source: duplicate id")

// Source provides seed data.
type Source interface {
	Events(ctx context.Context) ([]event.Event, error)
	Records(ctx context.Context) ([]record.Record, error)
}

// Describer is implemented by sources that can name themselves for logs and
// status lines.
type Describer interface {
	Describe() string
}

// Describe names src for humans.
func Describe(src Source) string {
	if d, ok := src.(Describer); ok {
		return d.Describe()
	}
	return fmt.Sprintf("%T", src)
}

// OpenOption customises the source Open returns.
type OpenOption func(*openOptions)

type openOptions struct {
	logger *zap.Logger
}

// WithLogger reports entries a file source had to skip.
func WithLogger(logger *zap.Logger) OpenOption {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// Open picks a source for path by extension. An empty path selects the
// builtin seed.
func Open(path string, opts ...OpenOption) (Source, error) {
	config := &openOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(config)
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return Builtin(), nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("source: expand %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(expanded)) {
	case ".yaml", ".yml":
		return YAML(expanded), nil
	case ".ics", ".ical":
		src := ICS(expanded)
		src.Logger = config.logger
		return src, nil
	default:
		return nil, fmt.Errorf("source: unsupported seed file %q (want .yaml or .ics)", path)
	}
}

// Load reads both lists from src and validates them.
func Load(ctx context.Context, src Source) ([]event.Event, []record.Record, error) {
	events, err := src.Events(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("source: load events: %w", err)
	}
	records, err := src.Records(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("source: load records: %w", err)
	}
	if err := Validate(events, records); err != nil {
		return nil, nil, err
	}
	return events, records, nil
}

// Validate rejects seeds with repeated or missing IDs.
func Validate(events []event.Event, records []record.Record) error {
	seen := make(map[string]bool, len(events))
	for i, e := range events {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return fmt.Errorf("source: event %d (%q) has no id", i, e.Title)
		}
		if seen[id] {
			return fmt.Errorf("%w: event %q", ErrDuplicateID, id)
		}
		seen[id] = true
	}
	seen = make(map[string]bool, len(records))
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return fmt.Errorf("source: record %d (%q) has no id", i, r.Title)
		}
		if seen[id] {
			return fmt.Errorf("%w: record %q", ErrDuplicateID, id)
		}
		seen[id] = true
	}
	return nil
}

// Static serves fixed lists. It is what tests and the builtin seed use.
type Static struct {
	Name       string
	EventList  []event.Event
	RecordList []record.Record
}

// Events implements Source.
func (s *Static) Events(ctx context.Context) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return event.Clone(s.EventList), nil
}

// Records implements Source.
func (s *Static) Records(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return record.Clone(s.RecordList), nil
}

// Describe implements Describer.
func (s *Static) Describe() string {
	if s.Name == "" {
		return "static"
	}
	return s.Name
}
