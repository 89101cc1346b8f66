package event

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a parsed wall-clock time without a date.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns the minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String renders the clock zero-padded as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock accepts "9:05", "09:05", "9", "9:05 PM" and "9pm".
func ParseClock(v string) (Clock, error) {
	s := strings.ToLower(strings.TrimSpace(v))
	if s == "" {
		return Clock{}, fmt.Errorf("event: empty time")
	}

	meridiem := ""
	for _, suffix := range []string{"am", "pm"} {
		if strings.HasSuffix(s, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	if !hasMinutes {
		hourPart, minutePart, hasMinutes = strings.Cut(s, ".")
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return Clock{}, fmt.Errorf("event: invalid hour in %q", v)
	}
	minute := 0
	if hasMinutes {
		minute, err = strconv.Atoi(minutePart)
		if err != nil {
			return Clock{}, fmt.Errorf("event: invalid minute in %q", v)
		}
	}

	switch meridiem {
	case "am":
		if hour < 1 || hour > 12 {
			return Clock{}, fmt.Errorf("event: invalid hour in %q", v)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return Clock{}, fmt.Errorf("event: invalid hour in %q", v)
		}
		if hour != 12 {
			hour += 12
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("event: time out of range %q", v)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// NormalizeTime zero-pads parseable times to HH:MM. Anything it cannot parse
// is returned trimmed but otherwise untouched.
func NormalizeTime(v string) string {
	c, err := ParseClock(v)
	if err != nil {
		return strings.TrimSpace(v)
	}
	return c.String()
}

// CompareTime orders two display times. Parseable times compare numerically
// and sort before unparseable ones; unparseable times compare lexically.
func CompareTime(a, b string) int {
	ca, errA := ParseClock(a)
	cb, errB := ParseClock(b)
	switch {
	case errA == nil && errB == nil:
		return ca.Minutes() - cb.Minutes()
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(strings.TrimSpace(a), strings.TrimSpace(b))
	}
}
