package calendar

import (
	"strconv"
	"strings"
	"time"
)

const monthFormat = "January 2006"

// Range anchors a layout. Year and Month give the real day count for Month
// mode; Days overrides it when set. WeekAnchor is the day number of the first
// Week column.
type Range struct {
	Year       int        `json:"year,omitempty"`
	Month      time.Month `json:"month,omitempty"`
	Days       int        `json:"days,omitempty"`
	WeekAnchor int        `json:"weekAnchor,omitempty"`
}

// MonthRange returns the range covering the month containing t.
func MonthRange(t time.Time) Range {
	return Range{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses "January 2006" names into a Range.
func ParseMonth(name string) (Range, bool) {
	if strings.TrimSpace(name) == "" {
		return Range{}, false
	}
	t, err := time.Parse(monthFormat, strings.TrimSpace(name))
	if err != nil {
		return Range{}, false
	}
	return MonthRange(t), true
}

// DayCount returns the number of day cells Month mode produces.
func (r Range) DayCount() int {
	if r.Days > 0 {
		return r.Days
	}
	if r.Year > 0 && r.Month >= time.January && r.Month <= time.December {
		return DaysIn(r.Year, r.Month)
	}
	return 31
}

// Offset is the weekday of the first day (Sunday == 0), used to pad grids.
// It is zero when the range is not tied to a real month.
func (r Range) Offset() int {
	if r.Year <= 0 || r.Month < time.January || r.Month > time.December {
		return 0
	}
	return int(time.Date(r.Year, r.Month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// Title renders "January 2006", or "Day 1–N" for ranges without a month.
func (r Range) Title() string {
	if r.Year <= 0 || r.Month < time.January || r.Month > time.December {
		return "Days 1–" + strconv.Itoa(r.DayCount())
	}
	return time.Date(r.Year, r.Month, 1, 0, 0, 0, 0, time.UTC).Format(monthFormat)
}

// Shift moves the range by delta months, keeping Days and WeekAnchor.
func (r Range) Shift(delta int) Range {
	if r.Year <= 0 || r.Month < time.January || r.Month > time.December {
		return r
	}
	t := time.Date(r.Year, r.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	r.Year = t.Year()
	r.Month = t.Month()
	return r
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
