package filter

import (
	"strings"
	"time"

	"github.com/NvMustang/fomo-sub000/pkg/event"
	"github.com/NvMustang/fomo-sub000/pkg/period"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

// Options is the shared context every predicate reads. It is passed
// explicitly instead of living in ambient globals so the pipeline stays a
// pure function of its inputs.
type Options struct {
	Now      time.Time
	Location *time.Location

	// Query is a case-insensitive substring searched over every string and
	// number field of the event, nested fields included.
	Query string

	// Tags use AND semantics: every requested tag must substring-match some
	// tag on the event. Empty or "all" matches everything.
	Tags []string

	// IsPublic / IsOnline are tri-state: nil means "all". Events missing the
	// flag match any filter value.
	IsPublic *bool
	IsOnline *bool

	OrganizerID string

	// Period restricts to a single calendar bucket; empty means all.
	Period period.Key

	// Response restricts on the resolved response for the current user; nil
	// means all. Resolved maps event id to the user's effective response.
	Response *response.Response
	Resolved map[string]response.Response
}

// Predicate decides whether a single event stays visible.
type Predicate func(e *event.Event, opts Options) bool

// Predicates returns the full pipeline in evaluation order.
func Predicates() []Predicate {
	return []Predicate{
		MatchQuery,
		MatchTags,
		MatchVisibility,
		MatchOrganizer,
		MatchPeriod,
		MatchResponse,
	}
}

// Apply composes all predicates with logical AND.
func Apply(events []*event.Event, opts Options) []*event.Event {
	preds := Predicates()
	out := make([]*event.Event, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		keep := true
		for _, p := range preds {
			if !p(e, opts) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}

// MatchQuery searches the query string over every string and number field of
// the event, recursively.
func MatchQuery(e *event.Event, opts Options) bool {
	q := strings.ToLower(strings.TrimSpace(opts.Query))
	if q == "" {
		return true
	}
	return searchEvent(e, q)
}

// MatchTags requires every requested tag to substring-match some event tag.
func MatchTags(e *event.Event, opts Options) bool {
	wanted := make([]string, 0, len(opts.Tags))
	for _, t := range opts.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || t == "all" {
			continue
		}
		wanted = append(wanted, t)
	}
	if len(wanted) == 0 {
		return true
	}
	for _, want := range wanted {
		found := false
		for _, have := range e.Tags {
			if strings.Contains(strings.ToLower(have), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MatchVisibility checks the tri-state public/online flags. Missing data on
// the event matches any filter value; malformed events never match.
func MatchVisibility(e *event.Event, opts Options) bool {
	if !e.Valid() {
		return false
	}
	return matchTri(opts.IsPublic, e.IsPublic) && matchTri(opts.IsOnline, e.IsOnline)
}

func matchTri(want, have *bool) bool {
	if want == nil || have == nil {
		return true
	}
	return *want == *have
}

// MatchOrganizer is exact identifier equality.
func MatchOrganizer(e *event.Event, opts Options) bool {
	if opts.OrganizerID == "" {
		return true
	}
	return e.OrganizerID == opts.OrganizerID
}

// MatchPeriod delegates to the temporal classifier.
func MatchPeriod(e *event.Event, opts Options) bool {
	if opts.Period == "" {
		return true
	}
	if !e.Valid() {
		return false
	}
	return period.Classify(e, opts.Now, opts.Location) == opts.Period
}

// MatchResponse compares the user's resolved response for the event.
func MatchResponse(e *event.Event, opts Options) bool {
	if opts.Response == nil {
		return true
	}
	return response.Normalize(opts.Resolved[e.ID]) == response.Normalize(*opts.Response)
}

// Extractor yields the candidate option values an event contributes to a
// filter-bar control, e.g. its tags.
type Extractor func(e *event.Event) []string

// Setter returns a copy of opts with the single option value selected.
type Setter func(opts Options, value string) Options

// CountByOption powers UI badges: for each distinct value found across the
// unfiltered candidate set, it counts the events that would remain visible
// if exactly that option were additionally selected. The full predicate set
// runs once per candidate value.
func CountByOption(events []*event.Event, opts Options, extract Extractor, set Setter) map[string]int {
	values := make(map[string]struct{})
	for _, e := range events {
		if e == nil {
			continue
		}
		for _, v := range extract(e) {
			v = strings.TrimSpace(v)
			if v != "" {
				values[v] = struct{}{}
			}
		}
	}
	counts := make(map[string]int, len(values))
	for v := range values {
		counts[v] = len(Apply(events, set(opts, v)))
	}
	return counts
}

// TagExtractor and TagSetter wire CountByOption to the tag control.
func TagExtractor(e *event.Event) []string { return e.Tags }

func TagSetter(opts Options, value string) Options {
	tags := append([]string(nil), opts.Tags...)
	opts.Tags = append(tags, value)
	return opts
}

// PeriodExtractor classifies the event so the calendar control can badge its
// buckets; PeriodSetter selects one bucket.
func PeriodExtractor(now time.Time, loc *time.Location) Extractor {
	return func(e *event.Event) []string {
		k := period.Classify(e, now, loc)
		if k == period.Other {
			return nil
		}
		return []string{string(k)}
	}
}

func PeriodSetter(opts Options, value string) Options {
	opts.Period = period.Key(value)
	return opts
}

// ResponseExtractor badges the response control from the resolved map.
func ResponseExtractor(resolved map[string]response.Response) Extractor {
	return func(e *event.Event) []string {
		r := response.Normalize(resolved[e.ID])
		if r == response.None {
			return nil
		}
		return []string{string(r)}
	}
}

func ResponseSetter(opts Options, value string) Options {
	r := response.Response(value)
	opts.Response = &r
	return opts
}
