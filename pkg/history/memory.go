package history

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Memory is the in-memory Store used for a live session. Remote completions
// land on goroutines, so access is guarded even though mutations never
// interleave mid-operation from the caller's point of view.
type Memory struct {
	mu      sync.Mutex
	entries []*Entry
}

var _ Store = (*Memory)(nil)

func NewMemory(entries ...*Entry) *Memory {
	m := &Memory{}
	for _, e := range entries {
		if e != nil {
			m.entries = append(m.entries, e)
		}
	}
	return m
}

func (m *Memory) Append(e *Entry) error {
	if e == nil {
		return errors.New("history: nil entry")
	}
	if e.ID == "" || e.UserID == "" || e.EventID == "" {
		return errors.New("history: entry missing required fields")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *Memory) Latest(userID, eventID string) *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *Entry
	for _, e := range m.entries {
		if e.UserID != userID || e.EventID != eventID {
			continue
		}
		if Newer(e, best) {
			best = e
		}
	}
	return best
}

func (m *Memory) LatestByEvent(userID string) map[string]*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*Entry)
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if Newer(e, out[e.EventID]) {
			out[e.EventID] = e
		}
	}
	return out
}

func (m *Memory) LatestByUser(eventID string) map[string]*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*Entry)
	for _, e := range m.entries {
		if e.EventID != eventID {
			continue
		}
		if Newer(e, out[e.UserID]) {
			out[e.UserID] = e
		}
	}
	return out
}

func (m *Memory) Remove(userID, eventID, id string) *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	var best *Entry
	for i, e := range m.entries {
		if e.UserID != userID || e.EventID != eventID {
			continue
		}
		if Newer(e, best) {
			best = e
			idx = i
		}
	}
	if idx < 0 || best.ID != id {
		return nil
	}
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	return best
}

func (m *Memory) List(_ context.Context) []*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Entry, len(m.entries))
	copy(out, m.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return Newer(out[j], out[i])
	})
	return out
}
