// Package store holds the process-local event list backing the calendar. It
// is the only place events are added or replaced; everything else derives
// views from snapshots.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/ampcred/pkg/event"
)

var (
	// ErrDuplicateID is returned when an event ID is already present.
	ErrDuplicateID = errors.New("store: duplicate event id")
	// ErrNotFound is returned when replacing an event that does not exist.
	ErrNotFound = errors.New("store: event not found")
	// ErrMissingID is returned for events without an ID.
	ErrMissingID = errors.New("store: event id required")
)

// Action describes a store mutation.
type Action string

const (
	// ActionAppend indicates a new event was added.
	ActionAppend Action = "append"
	// ActionReplace indicates an existing event was replaced wholesale.
	ActionReplace Action = "replace"
	// ActionReset indicates the whole list was reseeded.
	ActionReset Action = "reset"
)

// Change is emitted on Changes after every successful mutation.
type Change struct {
	Action  Action
	Event   event.Event
	Version uint64
}

// Store is a concurrency-safe in-memory event list. Mutations bump Version so
// derived views can be memoized on it.
type Store struct {
	mu sync.RWMutex

	events  []event.Event
	index   map[string]int
	version uint64

	changes chan Change
}

// New creates a store seeded with events.
func New(seed []event.Event) (*Store, error) {
	s := &Store{changes: make(chan Change, 64)}
	if err := s.reset(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Changes exposes the mutation feed. Sends never block; when the buffer is
// full the change is dropped and readers should rely on Version.
func (s *Store) Changes() <-chan Change {
	return s.changes
}

// Events returns a snapshot of the current events in insertion order.
func (s *Store) Events() []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return event.Clone(s.events)
}

// Len returns the number of events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Get returns the event with the given ID.
func (s *Store) Get(id string) (event.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[id]
	if !ok {
		return event.Event{}, false
	}
	return s.events[idx], true
}

// Version returns the mutation counter.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Append adds e to the end of the list.
func (s *Store) Append(e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return ErrMissingID
	}
	if _, ok := s.index[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	e.ID = id
	s.index[id] = len(s.events)
	s.events = append(s.events, e)
	s.bumpLocked(ActionAppend, e)
	return nil
}

// Replace swaps the event with the same ID for e.
func (s *Store) Replace(e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.index[e.ID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, e.ID)
	}
	s.events[idx] = e
	s.bumpLocked(ActionReplace, e)
	return nil
}

// Reset replaces every event with seed.
func (s *Store) Reset(seed []event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetLocked(seed); err != nil {
		return err
	}
	s.bumpLocked(ActionReset, event.Event{})
	return nil
}

func (s *Store) reset(seed []event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetLocked(seed); err != nil {
		return err
	}
	s.version = 1
	return nil
}

func (s *Store) resetLocked(seed []event.Event) error {
	events := make([]event.Event, 0, len(seed))
	index := make(map[string]int, len(seed))
	for _, e := range seed {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return ErrMissingID
		}
		if _, ok := index[id]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		e.ID = id
		index[id] = len(events)
		events = append(events, e)
	}
	s.events = events
	s.index = index
	return nil
}

func (s *Store) bumpLocked(action Action, e event.Event) {
	s.version++
	select {
	case s.changes <- Change{Action: action, Event: e, Version: s.version}:
	default:
	}
}
