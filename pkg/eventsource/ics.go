package eventsource

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"

	"github.com/NvMustang/fomo-sub000/pkg/event"
	"github.com/NvMustang/fomo-sub000/pkg/timeutil"
)

const defaultMaxOccurrences = 500

// ICS reads events from an iCalendar file, expanding RRULE recurrences into
// concrete occurrences within [now, now+Horizon].
type ICS struct {
	Path     string
	Horizon  time.Duration
	Location *time.Location

	// MaxOccurrences caps recurrence expansion per VEVENT. Zero means the
	// default cap.
	MaxOccurrences int

	// now is overridable in tests.
	Now func() time.Time
}

func (s *ICS) Events(_ context.Context) ([]*event.Event, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("eventsource: open %s: %w", s.Path, err)
	}
	defer f.Close()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("eventsource: parse %s: %w", s.Path, err)
	}

	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	horizon := s.Horizon
	if horizon <= 0 {
		horizon = 30 * 24 * time.Hour
	}
	maxOcc := s.MaxOccurrences
	if maxOcc <= 0 {
		maxOcc = defaultMaxOccurrences
	}

	out := make([]*event.Event, 0)
	for _, ve := range cal.Events() {
		events, err := s.expand(ve, now, now.Add(horizon), loc, maxOcc)
		if err != nil {
			// Skip the broken VEVENT, keep parsing the rest.
			log.WithField("path", s.Path).WithError(err).Warn("eventsource: skipping vevent")
			continue
		}
		out = append(out, events...)
	}
	return out, nil
}

func (s *ICS) expand(ve *ical.VEvent, rangeStart, rangeEnd time.Time, loc *time.Location, maxOcc int) ([]*event.Event, error) {
	uid := propValue(ve, ical.ComponentPropertyUniqueId)
	if uid == "" {
		return nil, fmt.Errorf("missing UID")
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("uid %s: %w", uid, err)
	}
	end, _ := ve.GetEndAt()
	if end.IsZero() {
		end = start
	}

	base := &event.Event{
		ID:          uid,
		Title:       propValue(ve, ical.ComponentPropertySummary),
		Description: propValue(ve, ical.ComponentPropertyDescription),
		Start:       timeutil.Timestamp{Time: start.In(loc)},
		End:         timeutil.Timestamp{Time: end.In(loc)},
		Tags:        categories(ve),
		OrganizerID: strings.TrimPrefix(propValue(ve, ical.ComponentProperty("ORGANIZER")), "mailto:"),
	}
	if venue := propValue(ve, ical.ComponentPropertyLocation); venue != "" {
		base.Venue = &event.Venue{Name: venue}
	}

	raw := propValue(ve, ical.ComponentPropertyRrule)
	if raw == "" {
		return []*event.Event{base}, nil
	}

	r, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, fmt.Errorf("uid %s: rrule: %w", uid, err)
	}
	r.DTStart(start)

	times := r.Between(rangeStart.In(start.Location()), rangeEnd.In(start.Location()), true)
	if len(times) > maxOcc {
		times = times[:maxOcc]
		log.WithFields(log.Fields{"uid": uid, "cap": maxOcc}).Warn("eventsource: truncated recurrence expansion")
	}

	duration := end.Sub(start)
	out := make([]*event.Event, 0, len(times))
	for _, occStart := range times {
		occ := *base
		occ.ID = fmt.Sprintf("%s/%s", uid, occStart.In(loc).Format(time.RFC3339))
		occ.Start = timeutil.Timestamp{Time: occStart.In(loc)}
		occ.End = timeutil.Timestamp{Time: occStart.Add(duration).In(loc)}
		out = append(out, &occ)
	}
	return out, nil
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

func categories(ve *ical.VEvent) []string {
	p := ve.GetProperty(ical.ComponentProperty("CATEGORIES"))
	if p == nil || p.Value == "" {
		return nil
	}
	parts := strings.Split(p.Value, ",")
	tags := make([]string, 0, len(parts))
	for _, t := range parts {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
