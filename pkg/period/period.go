package period

import (
	"sort"
	"time"

	"github.com/NvMustang/fomo-sub000/pkg/event"
)

// Key names a calendar bucket. Classification evaluates the keys in the
// order of Priority; the first match wins, so an event ending in the past
// is past even when it starts today.
type Key string

const (
	Past        Key = "past"
	Today       Key = "today"
	Tomorrow    Key = "tomorrow"
	ThisWeekend Key = "thisWeekend"
	ThisWeek    Key = "thisWeek"
	NextWeek    Key = "nextWeek"
	ThisMonth   Key = "thisMonth"
	NextMonth   Key = "nextMonth"
	Other       Key = "other"
)

// Priority is both the classification order and the display order of
// grouped buckets. Other never appears in grouped views.
var Priority = []Key{Past, Today, Tomorrow, ThisWeekend, ThisWeek, NextWeek, ThisMonth, NextMonth}

var labels = map[Key]string{
	Past:        "Past",
	Today:       "Today",
	Tomorrow:    "Tomorrow",
	ThisWeekend: "This weekend",
	ThisWeek:    "This week",
	NextWeek:    "Next week",
	ThisMonth:   "This month",
	NextMonth:   "Next month",
	Other:       "Later",
}

func (k Key) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// ParseKey resolves a key string, accepting the canonical names only.
func ParseKey(s string) (Key, bool) {
	k := Key(s)
	if _, ok := labels[k]; ok {
		return k, true
	}
	return "", false
}

// Period is one calendar bucket with its half-open [Start, End) interval and
// the events assigned to it.
type Period struct {
	Key    Key
	Label  string
	Start  time.Time
	End    time.Time
	Events []*event.Event
}

// Classify assigns e to a bucket relative to now. All comparisons happen in
// loc; a nil loc falls back to time.Local. Events without a usable start
// classify as Other.
func Classify(e *event.Event, now time.Time, loc *time.Location) Key {
	if loc == nil {
		loc = time.Local
	}
	if !e.Valid() {
		return Other
	}

	now = now.In(loc)
	start := e.Start.In(loc)
	end := e.End.In(loc)
	if e.End.IsZero() {
		end = start
	}

	today := midnight(now)
	startDay := midnight(start)
	week := weekStart(now)
	month := monthStart(now)

	switch {
	case end.Before(now):
		return Past
	case startDay.Equal(today):
		return Today
	case startDay.Equal(today.AddDate(0, 0, 1)):
		return Tomorrow
	case weekStart(start).Equal(week) && isWeekend(start):
		return ThisWeekend
	case weekStart(start).Equal(week):
		return ThisWeek
	case weekStart(start).Equal(week.AddDate(0, 0, 7)):
		return NextWeek
	case monthStart(start).Equal(month):
		return ThisMonth
	case monthStart(start).Equal(month.AddDate(0, 1, 0)):
		return NextMonth
	}
	return Other
}

// Interval returns the [start, end) window a key covers relative to now.
// Past has no lower bound.
func Interval(k Key, now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	today := midnight(now)
	week := weekStart(now)
	month := monthStart(now)

	switch k {
	case Past:
		return time.Time{}, now
	case Today:
		return today, today.AddDate(0, 0, 1)
	case Tomorrow:
		return today.AddDate(0, 0, 1), today.AddDate(0, 0, 2)
	case ThisWeekend:
		return week.AddDate(0, 0, 5), week.AddDate(0, 0, 7)
	case ThisWeek:
		return week, week.AddDate(0, 0, 7)
	case NextWeek:
		return week.AddDate(0, 0, 7), week.AddDate(0, 0, 14)
	case ThisMonth:
		return month, month.AddDate(0, 1, 0)
	case NextMonth:
		return month.AddDate(0, 1, 0), month.AddDate(0, 2, 0)
	}
	return time.Time{}, time.Time{}
}

// GroupByPeriods classifies every event, discards Other, sorts each bucket by
// start ascending, and returns the non-empty buckets in Priority order
// regardless of event insertion order.
func GroupByPeriods(events []*event.Event, now time.Time, loc *time.Location) []Period {
	buckets := make(map[Key][]*event.Event)
	for _, e := range events {
		k := Classify(e, now, loc)
		if k == Other {
			continue
		}
		buckets[k] = append(buckets[k], e)
	}

	out := make([]Period, 0, len(buckets))
	for _, k := range Priority {
		group := buckets[k]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i].Start.Time, group[j].Start.Time
			if a.Equal(b) {
				return group[i].ID < group[j].ID
			}
			return a.Before(b)
		})
		start, end := Interval(k, now, loc)
		out = append(out, Period{
			Key:    k,
			Label:  k.Label(),
			Start:  start,
			End:    end,
			Events: group,
		})
	}
	return out
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday 00:00 beginning the ISO week containing t.
func weekStart(t time.Time) time.Time {
	shift := (int(t.Weekday()) + 6) % 7
	return midnight(t).AddDate(0, 0, -shift)
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
