package history

import "context"

// Store is the append-only response history collection. Implementations must
// never edit an entry in place; Remove exists solely for optimistic rollback
// and only ever removes the winning entry of a pair.
type Store interface {
	// Append adds an entry. No deduplication happens here.
	Append(e *Entry) error

	// Latest returns the winning entry for a (user, event) pair, or nil.
	Latest(userID, eventID string) *Entry

	// LatestByEvent returns, for one user, the winning entry per event.
	LatestByEvent(userID string) map[string]*Entry

	// LatestByUser returns, for one event, the winning entry per user.
	LatestByUser(eventID string) map[string]*Entry

	// Remove removes the winning entry for the pair, but only while its id
	// is still the given one. The winner check and the removal happen
	// atomically so a concurrent append can never be deleted by mistake.
	// Returns the removed entry, or nil when the pair has no history or a
	// newer entry has taken over.
	Remove(userID, eventID, id string) *Entry

	// List returns every entry ordered by Created ascending (ID breaks ties).
	List(ctx context.Context) []*Entry
}
