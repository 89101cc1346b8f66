// Package app assembles a console from configuration so the CLI commands and
// the terminal UI share one code path.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/config"
	"tableflip.dev/ampcred/pkg/console"
	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/filter"
	"tableflip.dev/ampcred/pkg/modal"
	"tableflip.dev/ampcred/pkg/record"
	"tableflip.dev/ampcred/pkg/source"
	"tableflip.dev/ampcred/pkg/theme"
)

// ErrNotFound is returned when a record ID is unknown.
var ErrNotFound = errors.New("app: not found")

// Service provides high-level operations over a loaded console.
type Service struct {
	Config  *config.Config
	Source  source.Source
	Console *console.Console
	Variant theme.Variant
	Logger  *zap.Logger
}

// Open loads the configured seed and builds the console.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("app: no configuration")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	variant, err := theme.Lookup(cfg.Variant)
	if err != nil {
		return nil, err
	}
	src, err := source.Open(cfg.Seed, source.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	mode, err := calendar.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	sortKey, err := filter.ParseSortKey(cfg.Sort)
	if err != nil {
		return nil, err
	}

	c, err := console.Load(ctx, src,
		console.WithLogger(logger),
		console.WithLocale(cfg.LocaleTag()),
		console.WithRange(RangeFor(cfg, time.Now())),
		console.WithState(console.State{Mode: mode, Sort: sortKey}),
		console.WithModalOptions(modal.Options{DefaultLane: variant.DefaultLane()}),
		console.WithCalendarOptions(
			calendar.WithTolerance(cfg.Tolerance),
			calendar.WithColumns(cfg.Columns),
		),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("console ready",
		zap.String("source", source.Describe(src)),
		zap.String("variant", variant.Name),
		zap.Int("events", c.Store().Len()))

	return &Service{Config: cfg, Source: src, Console: c, Variant: variant, Logger: logger}, nil
}

// RangeFor picks the calendar range: the configured month, else the month of
// now.
func RangeFor(cfg *config.Config, now time.Time) calendar.Range {
	r, ok := calendar.ParseMonth(cfg.Month)
	if !ok {
		r = calendar.MonthRange(now)
	}
	r.WeekAnchor = cfg.WeekAnchor
	return r
}

// Reload re-reads the seed.
func (s *Service) Reload(ctx context.Context) error {
	return s.Console.Reload(ctx, s.Source)
}

// Watch signals when the seed file changes. The builtin seed never changes,
// so it yields a nil channel.
func (s *Service) Watch(ctx context.Context) (<-chan struct{}, error) {
	if s.Config.Seed == "" {
		return nil, nil
	}
	return source.Watch(ctx, s.Config.Seed, 150*time.Millisecond)
}

// NewEvent describes an event to add through the dialog controller.
type NewEvent struct {
	Title string
	Day   int
	Time  string
	Lane  string
}

// AddEvent runs the event dialog without a screen: open, fill, submit. The
// controller applies the same validation the interactive dialog does.
func (s *Service) AddEvent(ctx context.Context, in NewEvent) (event.Event, error) {
	dialog := s.Console.Modal()
	dialog.Open()
	fields := map[string]string{
		modal.FieldTitle: in.Title,
		modal.FieldTime:  in.Time,
	}
	if in.Day != 0 {
		fields[modal.FieldDay] = strconv.Itoa(in.Day)
	}
	// An empty lane keeps the dialog's default.
	if in.Lane != "" {
		fields[modal.FieldLane] = in.Lane
	}
	for _, f := range modal.Fields() {
		if f == modal.FieldLane && in.Lane == "" {
			continue
		}
		if err := dialog.Set(f, fields[f]); err != nil {
			dialog.Cancel()
			return event.Event{}, err
		}
	}
	e, err := dialog.Submit(ctx)
	if err != nil {
		dialog.Cancel()
		return event.Event{}, err
	}
	s.Logger.Info("event added", zap.String("id", e.ID), zap.Int("day", e.Day))
	return e, nil
}

// Record finds a record by ID.
func (s *Service) Record(id string) (record.Record, error) {
	r, ok := record.Find(s.Console.AllRecords(), id)
	if !ok {
		return record.Record{}, fmt.Errorf("%w: record %q", ErrNotFound, id)
	}
	return r, nil
}

// Export writes the current events and records as a YAML seed.
func (s *Service) Export(path string) error {
	return source.WriteYAML(path, s.Console.Store().Events(), s.Console.AllRecords())
}
