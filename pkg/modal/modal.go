// Package modal drives the "new event" dialog: open, edit fields, then submit
// or cancel. Submission validates the draft before touching the store.
package modal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/ampcred/pkg/event"
)

// State is the dialog lifecycle state.
type State int

const (
	// Closed means no dialog is shown.
	Closed State = iota
	// Open means the dialog is shown and fields are editable.
	Open
	// Submitted is the outcome of an accepted submission.
	Submitted
	// Cancelled is the outcome of a discarded draft.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	default:
		return "closed"
	}
}

// Field names accepted by Set.
const (
	FieldTitle = "title"
	FieldDay   = "day"
	FieldTime  = "time"
	FieldLane  = "lane"
)

// Fields lists the editable fields in tab order.
func Fields() []string {
	return []string{FieldTitle, FieldDay, FieldTime, FieldLane}
}

// ErrNotOpen is returned when editing or submitting a closed dialog.
var ErrNotOpen = errors.New("modal: dialog is not open")

// ValidationError maps field names to messages. The store is untouched when
// Submit returns one.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "modal: invalid event: " + strings.Join(parts, "; ")
}

// Sink receives accepted events.
type Sink interface {
	Append(e event.Event) error
	Replace(e event.Event) error
}

// Draft holds the raw field values as typed.
type Draft struct {
	Title string
	Day   string
	Time  string
	Lane  string
}

// Get returns the value of a field.
func (d Draft) Get(field string) string {
	switch field {
	case FieldTitle:
		return d.Title
	case FieldDay:
		return d.Day
	case FieldTime:
		return d.Time
	case FieldLane:
		return d.Lane
	default:
		return ""
	}
}

// Options configure a Controller.
type Options struct {
	// MaxDay bounds the day field; zero means 31.
	MaxDay int
	// DefaultLane pre-fills the lane of new drafts.
	DefaultLane string
	// NewID generates IDs for created events; defaults to random UUIDs.
	NewID func() string
}

// Controller is the dialog state machine.
type Controller struct {
	sink Sink
	opts Options

	state   State
	outcome State
	editing string
	// base carries the fields the dialog does not edit, e.g. Color.
	base event.Event

	draft  Draft
	errors map[string]string
}

// New creates a closed controller writing accepted events to sink.
func New(sink Sink, opts Options) *Controller {
	if opts.MaxDay <= 0 {
		opts.MaxDay = 31
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Controller{sink: sink, opts: opts, state: Closed, outcome: Closed}
}

// State returns the current state, Open or Closed.
func (c *Controller) State() State { return c.state }

// IsOpen reports whether the dialog is shown.
func (c *Controller) IsOpen() bool { return c.state == Open }

// Outcome returns how the last dialog ended: Submitted, Cancelled, or Closed
// if none has ended yet.
func (c *Controller) Outcome() State { return c.outcome }

// Editing returns the ID of the event being edited, or "" when creating.
func (c *Controller) Editing() string { return c.editing }

// Draft returns the in-progress field values.
func (c *Controller) Draft() Draft { return c.draft }

// Errors returns the field errors from the last rejected submission.
func (c *Controller) Errors() map[string]string {
	if len(c.errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// SetMaxDay updates the day bound, e.g. after the calendar month changes.
func (c *Controller) SetMaxDay(n int) {
	if n > 0 {
		c.opts.MaxDay = n
	}
}

// Open shows an empty dialog for a new event.
func (c *Controller) Open() {
	c.state = Open
	c.editing = ""
	c.base = event.Event{}
	c.draft = Draft{Lane: c.opts.DefaultLane}
	c.errors = nil
}

// OpenAt shows an empty dialog with the day pre-filled.
func (c *Controller) OpenAt(day int) {
	c.Open()
	if day > 0 {
		c.draft.Day = strconv.Itoa(day)
	}
}

// OpenEdit shows the dialog pre-filled from an existing event. Submitting
// replaces that event.
func (c *Controller) OpenEdit(e event.Event) {
	c.state = Open
	c.editing = e.ID
	c.base = e
	c.draft = Draft{
		Title: e.Title,
		Day:   strconv.Itoa(e.Day),
		Time:  e.Time,
		Lane:  e.Lane,
	}
	c.errors = nil
}

// Set updates one field of the draft.
func (c *Controller) Set(field, value string) error {
	if c.state != Open {
		return ErrNotOpen
	}
	switch field {
	case FieldTitle:
		c.draft.Title = value
	case FieldDay:
		c.draft.Day = value
	case FieldTime:
		c.draft.Time = value
	case FieldLane:
		c.draft.Lane = value
	default:
		return fmt.Errorf("modal: unknown field %q", field)
	}
	delete(c.errors, field)
	return nil
}

// Validate checks the draft and returns the event it describes. The ID is
// left empty for new events.
func (c *Controller) Validate() (event.Event, error) {
	errs := map[string]string{}
	d := c.draft

	title := strings.TrimSpace(d.Title)
	if title == "" {
		errs[FieldTitle] = "title is required"
	}

	day := 0
	if raw := strings.TrimSpace(d.Day); raw == "" {
		errs[FieldDay] = "date is required"
	} else if n, err := strconv.Atoi(raw); err != nil {
		errs[FieldDay] = "date must be a day number"
	} else if n < 1 || n > c.opts.MaxDay {
		errs[FieldDay] = fmt.Sprintf("date must be between 1 and %d", c.opts.MaxDay)
	} else {
		day = n
	}

	clock := ""
	if raw := strings.TrimSpace(d.Time); raw == "" {
		errs[FieldTime] = "time is required"
	} else if parsed, err := event.ParseClock(raw); err != nil {
		errs[FieldTime] = "time must look like 09:30"
	} else {
		clock = parsed.String()
	}

	if len(errs) > 0 {
		return event.Event{}, &ValidationError{Fields: errs}
	}
	e := c.base
	e.ID = c.editing
	e.Title = title
	e.Day = day
	e.Time = clock
	e.Lane = strings.TrimSpace(d.Lane)
	return e, nil
}

// Submit validates the draft and hands the event to the sink. On a
// validation or sink error the dialog stays open and the store is unchanged.
func (c *Controller) Submit(ctx context.Context) (event.Event, error) {
	if c.state != Open {
		return event.Event{}, ErrNotOpen
	}
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	e, err := c.Validate()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.errors = verr.Fields
		}
		return event.Event{}, err
	}

	if c.editing != "" {
		err = c.sink.Replace(e)
	} else {
		e.ID = c.opts.NewID()
		err = c.sink.Append(e)
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("modal: save event: %w", err)
	}

	c.close(Submitted)
	return e, nil
}

// Cancel discards the draft and closes the dialog.
func (c *Controller) Cancel() {
	if c.state != Open {
		return
	}
	c.close(Cancelled)
}

func (c *Controller) close(outcome State) {
	c.state = Closed
	c.outcome = outcome
	c.editing = ""
	c.base = event.Event{}
	c.draft = Draft{}
	c.errors = nil
}
