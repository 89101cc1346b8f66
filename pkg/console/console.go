// Package console holds the view state of the admin console and memoizes the
// calendar layout and record list derived from it.
package console

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/filter"
	"tableflip.dev/ampcred/pkg/modal"
	"tableflip.dev/ampcred/pkg/record"
	"tableflip.dev/ampcred/pkg/source"
	"tableflip.dev/ampcred/pkg/store"
)

// State is the user's current selection. It lives only as long as the
// process.
type State struct {
	Mode      calendar.Mode  `json:"mode"`
	Query     string         `json:"query,omitempty"`
	Category  string         `json:"category"`
	Sort      filter.SortKey `json:"sort"`
	ModalOpen bool           `json:"modalOpen"`
}

type layoutKey struct {
	version uint64
	mode    calendar.Mode
	rng     calendar.Range
}

// Console wires the event store, record panel and modal controller to one
// view state.
type Console struct {
	mu sync.Mutex

	store  *store.Store
	panel  *filter.Panel
	modal  *modal.Controller
	logger *zap.Logger

	state      State
	rng        calendar.Range
	renderOpts []calendar.Option

	layout            calendar.Layout
	layoutKey         layoutKey
	hasLayout         bool
	layoutDerivations int
}

type buildOptions struct {
	logger     *zap.Logger
	locale     language.Tag
	state      State
	rng        calendar.Range
	renderOpts []calendar.Option
	modal      modal.Options
}

// Option customises New.
type Option func(*buildOptions)

// WithLogger sets the logger for state changes.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *buildOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithLocale sets the collation locale for alphabetical sorting.
func WithLocale(tag language.Tag) Option {
	return func(opts *buildOptions) {
		opts.locale = tag
	}
}

// WithState sets the initial view state.
func WithState(s State) Option {
	return func(opts *buildOptions) {
		opts.state = s
	}
}

// WithRange sets the calendar range shown first.
func WithRange(r calendar.Range) Option {
	return func(opts *buildOptions) {
		opts.rng = r
	}
}

// WithCalendarOptions passes renderer options through to calendar.Render.
func WithCalendarOptions(options ...calendar.Option) Option {
	return func(opts *buildOptions) {
		opts.renderOpts = append(opts.renderOpts, options...)
	}
}

// WithModalOptions configures the event dialog.
func WithModalOptions(m modal.Options) Option {
	return func(opts *buildOptions) {
		opts.modal = m
	}
}

// New creates a console over the seed events and records.
func New(events []event.Event, records []record.Record, opts ...Option) (*Console, error) {
	config := &buildOptions{
		logger: zap.NewNop(),
		locale: language.English,
		state: State{
			Mode:     calendar.ModeMonth,
			Category: filter.AllCategories,
			Sort:     filter.SortAlphabetical,
		},
	}
	for _, opt := range opts {
		opt(config)
	}

	s, err := store.New(events)
	if err != nil {
		return nil, fmt.Errorf("console: seed store: %w", err)
	}

	state := config.state
	if state.Mode == "" {
		state.Mode = calendar.ModeMonth
	}
	if state.Category == "" {
		state.Category = filter.AllCategories
	}
	if state.Sort == "" {
		state.Sort = filter.SortAlphabetical
	}
	state.ModalOpen = false

	if config.modal.MaxDay <= 0 {
		config.modal.MaxDay = config.rng.DayCount()
	}

	return &Console{
		store:      s,
		panel:      filter.NewPanel(records, config.locale),
		modal:      modal.New(s, config.modal),
		logger:     config.logger,
		state:      state,
		rng:        config.rng,
		renderOpts: config.renderOpts,
	}, nil
}

// Load builds a console from src.
func Load(ctx context.Context, src source.Source, opts ...Option) (*Console, error) {
	events, records, err := source.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return New(events, records, opts...)
}

// Store returns the event store.
func (c *Console) Store() *store.Store {
	return c.store
}

// State returns a copy of the view state.
func (c *Console) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.ModalOpen = c.modal.IsOpen()
	return s
}

// Range returns the calendar range.
func (c *Console) Range() calendar.Range {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng
}

// SetMode switches the calendar layout.
func (c *Console) SetMode(m calendar.Mode) error {
	parsed, err := calendar.ParseMode(string(m))
	if err != nil {
		return fmt.Errorf("console: set mode: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Mode = parsed
	c.logger.Debug("mode changed", zap.String("mode", string(parsed)))
	return nil
}

// CycleMode moves to the next layout and returns it.
func (c *Console) CycleMode() calendar.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Mode = c.state.Mode.Next()
	c.logger.Debug("mode changed", zap.String("mode", string(c.state.Mode)))
	return c.state.Mode
}

// SetQuery sets the record search text.
func (c *Console) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = q
	c.logger.Debug("query changed", zap.String("query", q))
}

// SetCategory selects a record category. Unknown categories are accepted
// and simply match nothing.
func (c *Console) SetCategory(category string) {
	if category == "" {
		category = filter.AllCategories
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Category = category
	c.logger.Debug("category changed", zap.String("category", category))
}

// CycleCategory moves to the next category in selector order and returns it.
func (c *Console) CycleCategory() string {
	categories := c.panel.Categories()
	c.mu.Lock()
	defer c.mu.Unlock()
	next := categories[0]
	for i, candidate := range categories {
		if candidate == c.state.Category {
			next = categories[(i+1)%len(categories)]
			break
		}
	}
	c.state.Category = next
	c.logger.Debug("category changed", zap.String("category", next))
	return next
}

// SetSort selects the record ordering.
func (c *Console) SetSort(k filter.SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = k
	c.logger.Debug("sort changed", zap.String("sort", string(k)))
}

// ToggleSort flips between alphabetical and recent and returns the new key.
func (c *Console) ToggleSort() filter.SortKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = c.state.Sort.Toggle()
	c.logger.Debug("sort changed", zap.String("sort", string(c.state.Sort)))
	return c.state.Sort
}

// ShiftMonth moves the calendar range by delta months. Ranges not tied to a
// real month are left alone.
func (c *Console) ShiftMonth(delta int) calendar.Range {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rng = c.rng.Shift(delta)
	c.modal.SetMaxDay(c.rng.DayCount())
	c.logger.Debug("range changed", zap.String("range", c.rng.Title()))
	return c.rng
}

// Layout returns the calendar layout for the current mode and range. It is
// re-derived only when the store, mode or range changed. Callers get a copy
// and may modify it freely.
func (c *Console) Layout() (calendar.Layout, error) {
	version := c.store.Version()

	c.mu.Lock()
	defer c.mu.Unlock()
	key := layoutKey{version: version, mode: c.state.Mode, rng: c.rng}
	if c.hasLayout && c.layoutKey == key {
		return c.layout.Clone(), nil
	}
	layout, err := calendar.Render(c.store.Events(), key.mode, key.rng, c.renderOpts...)
	if err != nil {
		return calendar.Layout{}, err
	}
	c.layout = layout
	c.layoutKey = key
	c.hasLayout = true
	c.layoutDerivations++
	if len(layout.Unplaced) > 0 {
		c.logger.Debug("events outside layout", zap.Int("unplaced", len(layout.Unplaced)), zap.String("mode", string(key.mode)))
	}
	return layout.Clone(), nil
}

// LayoutDerivations reports how many times Layout actually re-rendered.
func (c *Console) LayoutDerivations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layoutDerivations
}

// Query returns the filter query for the current state.
func (c *Console) Query() filter.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return filter.Query{Text: c.state.Query, Category: c.state.Category, Sort: c.state.Sort}
}

// Records returns the filtered and sorted record list.
func (c *Console) Records() []record.Record {
	return c.panel.View(c.Query())
}

// AllRecords returns the unfiltered record list.
func (c *Console) AllRecords() []record.Record {
	return c.panel.Records()
}

// RecordDerivations reports how many times Records actually re-filtered.
func (c *Console) RecordDerivations() int {
	return c.panel.Derivations()
}

// Categories lists the category selector values.
func (c *Console) Categories() []string {
	return c.panel.Categories()
}

// Modal returns the event dialog controller.
func (c *Console) Modal() *modal.Controller {
	return c.modal
}

// Reload replaces the store and record list with a fresh read of src. On
// error the console keeps its current data.
func (c *Console) Reload(ctx context.Context, src source.Source) error {
	events, records, err := source.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("console: reload %s: %w", source.Describe(src), err)
	}
	if err := c.store.Reset(events); err != nil {
		return fmt.Errorf("console: reload %s: %w", source.Describe(src), err)
	}
	c.panel.SetRecords(records)

	categories := c.panel.Categories()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !contains(categories, c.state.Category) {
		c.state.Category = filter.AllCategories
	}
	c.logger.Info("reloaded seed",
		zap.String("source", source.Describe(src)),
		zap.Int("events", len(events)),
		zap.Int("records", len(records)))
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
