package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/record"
)

// ICSSource maps the VEVENTs of an iCalendar file onto events. Only the
// day-of-month and wall-clock start survive; dates, zones and recurrence are
// dropped. ICS files carry no records.
type ICSSource struct {
	Path string
	// Logger receives a warning for every VEVENT that cannot be mapped.
	Logger *zap.Logger
}

// ICS returns a source backed by the iCalendar file at path.
func ICS(path string) *ICSSource {
	return &ICSSource{Path: path}
}

// Events implements Source.
func (s *ICSSource) Events(ctx context.Context) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", s.Path, err)
	}
	defer f.Close()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("source: parse %s: %w", s.Path, err)
	}

	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	events := make([]event.Event, 0)
	skipped := 0
	for i, ve := range cal.Events() {
		e, err := fromVEvent(ve)
		if err != nil {
			skipped++
			logger.Warn("skipping vevent",
				zap.String("path", s.Path),
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		events = append(events, e)
	}
	if skipped > 0 {
		logger.Warn("ics entries skipped",
			zap.String("path", s.Path),
			zap.Int("skipped", skipped),
			zap.Int("loaded", len(events)))
	}
	return events, nil
}

// Records implements Source.
func (s *ICSSource) Records(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

// Describe implements Describer.
func (s *ICSSource) Describe() string {
	return "ics:" + s.Path
}

func fromVEvent(ve *ical.VEvent) (event.Event, error) {
	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || strings.TrimSpace(uid.Value) == "" {
		return event.Event{}, fmt.Errorf("source: vevent without UID")
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return event.Event{}, fmt.Errorf("source: vevent %s: %w", uid.Value, err)
	}

	e := event.Event{
		ID:  strings.TrimSpace(uid.Value),
		Day: start.Day(),
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Title = p.Value
	}
	if !allDay(ve) {
		e.Time = start.Format("15:04")
	}
	if p := ve.GetProperty(ical.ComponentProperty("CATEGORIES")); p != nil {
		first, _, _ := strings.Cut(p.Value, ",")
		e.Lane = strings.TrimSpace(first)
	}
	if p := ve.GetProperty(ical.ComponentProperty("COLOR")); p != nil {
		e.Color = strings.TrimSpace(p.Value)
	}
	return e, nil
}

func allDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}
