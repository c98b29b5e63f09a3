package response

import (
	"fmt"
	"strings"
)

// Response is the reaction a user holds toward an event. The zero value None
// means "no reaction recorded". Seen, Invited and Cleared are bookkeeping
// values that appear in history but are not standing reactions.
type Response string

const (
	None          Response = ""
	Going         Response = "going"
	Interested    Response = "interested"
	NotInterested Response = "not_interested"
	Maybe         Response = "maybe"
	Invited       Response = "invited"
	Seen          Response = "seen"
	Cleared       Response = "cleared"
)

// aliases maps legacy and convenience spellings onto the canonical values.
var aliases = map[string]Response{
	"going":          Going,
	"participe":      Going, // legacy
	"yes":            Going,
	"interested":     Interested,
	"interest":       Interested,
	"not_interested": NotInterested,
	"not-interested": NotInterested,
	"notinterested":  NotInterested,
	"not_there":      NotInterested, // legacy
	"no":             NotInterested,
	"maybe":          Maybe,
	"invited":        Invited,
	"invite":         Invited,
	"seen":           Seen,
	"cleared":        Cleared,
	"clear":          Cleared,
	"none":           Cleared,
}

// ForAlias resolves a user-supplied spelling to a canonical Response.
func ForAlias(s string) (Response, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return None, nil
	}
	if r, ok := aliases[key]; ok {
		return r, nil
	}
	return None, fmt.Errorf("response: unknown response %q", s)
}

// Standing reports whether r is a real reaction a user can hold over time,
// as opposed to a history marker like seen or cleared.
func (r Response) Standing() bool {
	switch r {
	case Going, Interested, NotInterested, Maybe:
		return true
	}
	return false
}

// Normalize collapses markers down to None so callers comparing "what the
// user actively holds" never see seen, invited or cleared.
func Normalize(r Response) Response {
	if r.Standing() {
		return r
	}
	return None
}

// Values lists the canonical responses a user can select.
func Values() []Response {
	return []Response{Going, Interested, NotInterested, Maybe}
}

func (r Response) String() string {
	if r == None {
		return "none"
	}
	return string(r)
}

// Display renders a short human label.
func (r Response) Display() string {
	switch r {
	case Going:
		return "Going"
	case Interested:
		return "Interested"
	case NotInterested:
		return "Not interested"
	case Maybe:
		return "Maybe"
	case Invited:
		return "Invited"
	case Seen:
		return "Seen"
	case Cleared:
		return "Cleared"
	}
	return "None"
}
