package calendar

import (
	"fmt"
	"strings"
)

// Mode selects the calendar layout strategy.
type Mode string

const (
	// ModeMonth lays out one cell per day of the month.
	ModeMonth Mode = "month"
	// ModeWeek lays out a few named day columns.
	ModeWeek Mode = "week"
	// ModeAgenda lists every event in (day, time) order.
	ModeAgenda Mode = "agenda"
)

// AllModes returns the supported modes in switcher order.
func AllModes() []Mode {
	return []Mode{ModeMonth, ModeWeek, ModeAgenda}
}

// ParseMode converts a string to a Mode. Empty input yields ModeMonth.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if m == "" {
		return ModeMonth, nil
	}
	for _, candidate := range AllModes() {
		if candidate == m {
			return candidate, nil
		}
	}
	return ModeMonth, fmt.Errorf("calendar: unknown view mode %q", raw)
}

// Next returns the mode after m in switcher order.
func (m Mode) Next() Mode {
	modes := AllModes()
	for i, candidate := range modes {
		if candidate == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeMonth
}

// Title renders the mode for tabs and headers.
func (m Mode) Title() string {
	switch m {
	case ModeWeek:
		return "Week"
	case ModeAgenda:
		return "Agenda"
	default:
		return "Month"
	}
}
