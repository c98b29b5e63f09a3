package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NvMustang/fomo-sub000/pkg/response"
	"github.com/NvMustang/fomo-sub000/pkg/timeutil"
)

// Entry is a single, immutable record in a user's response history for one
// event. Changing a response always means appending a new Entry; the only
// operation that removes one is the optimistic rollback in pkg/engine.
type Entry struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	EventID   string             `json:"eventId"`
	Initial   response.Response  `json:"initialResponse,omitempty"`
	Final     response.Response  `json:"finalResponse"`
	InvitedBy string             `json:"invitedByUserId,omitempty"`
	Created   timeutil.Timestamp `json:"createdAt"`
}

// New builds an entry with a locally generated id so optimistic writes never
// wait on a server-assigned identifier.
func New(userID, eventID string, initial, final response.Response) *Entry {
	now := time.Now()
	return &Entry{
		ID:      NewID(now),
		UserID:  userID,
		EventID: eventID,
		Initial: initial,
		Final:   final,
		Created: timeutil.Timestamp{Time: now},
	}
}

// NewID generates a sortable identifier: millisecond timestamp plus a short
// random suffix.
func NewID(now time.Time) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%013d-%s", now.UnixMilli(), suffix)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s %s→%s (%s)", e.EventID, e.Initial, e.Final, e.Created)
}

// Newer reports whether a should win over b when resolving the current
// response. Greater Created wins; identical Created falls back to lexically
// greater ID so resolution stays deterministic even under equal clocks.
func Newer(a, b *Entry) bool {
	if b == nil {
		return a != nil
	}
	if a == nil {
		return false
	}
	at, bt := a.Created.Time, b.Created.Time
	if at.Equal(bt) {
		return a.ID > b.ID
	}
	return at.After(bt)
}
