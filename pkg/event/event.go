package event

import (
	"github.com/NvMustang/fomo-sub000/pkg/timeutil"
)

// Venue is where an event happens. Coordinates are optional; the core only
// carries them through for map consumers.
type Venue struct {
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// Counters are server-computed aggregates, read-only here.
type Counters struct {
	Going      int `json:"going,omitempty"`
	Interested int `json:"interested,omitempty"`
}

// Event is the external calendar entity. This core never mutates events; it
// reads them to classify and filter. Visibility flags are tri-state pointers:
// nil means the data is missing and must never exclude the event.
type Event struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Start       timeutil.Timestamp `json:"start"`
	End         timeutil.Timestamp `json:"end,omitempty"`
	Venue       *Venue             `json:"venue,omitempty"`
	IsPublic    *bool              `json:"isPublic,omitempty"`
	IsOnline    *bool              `json:"isOnline,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	OrganizerID string             `json:"organizerId,omitempty"`
	Counters    Counters           `json:"counters,omitempty"`
}

// Valid reports whether the snapshot carried the fields the pipeline needs.
// Invalid events fail visibility and period matches instead of crashing.
func (e *Event) Valid() bool {
	return e != nil && e.ID != "" && !e.Start.IsZero()
}
