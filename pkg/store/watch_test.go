package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/NvMustang/fomo-sub000/pkg/response"
)

func TestPersistenceWatchEmitsHistoryChanges(t *testing.T) {
	p := load(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe to directories before writing.
	time.Sleep(50 * time.Millisecond)

	e := entryAt("ren", "jazz-night", response.Going, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC))
	if err := p.Append(e); err != nil {
		t.Fatalf("append entry: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventHistoryInvalidated {
				return
			}
			if evt.Type == EventHistoryChanged {
				if evt.UserID != "ren" {
					t.Fatalf("expected user 'ren', got %q", evt.UserID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for history change event")
		}
	}
}

func TestPersistenceWatchClosesOnCancel(t *testing.T) {
	p := load(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for channel close")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	throttle := newEventThrottle(20 * time.Millisecond)
	defer throttle.Stop()

	sent := make(chan Event, 16)
	send := func(ev Event) { sent <- ev }

	// A burst of writes for one user flushes as a single notification.
	for i := 0; i < 5; i++ {
		throttle.Enqueue(Event{Type: EventHistoryChanged, UserID: "ren"}, send)
	}

	select {
	case evt := <-sent:
		if evt.Type != EventHistoryChanged || evt.UserID != "ren" {
			t.Fatalf("flushed event = %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for flush")
	}

	select {
	case evt := <-sent:
		t.Fatalf("burst flushed more than once: %+v", evt)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEventThrottleKeepsDistinctUsers(t *testing.T) {
	throttle := newEventThrottle(20 * time.Millisecond)
	defer throttle.Stop()

	sent := make(chan Event, 16)
	send := func(ev Event) { sent <- ev }

	throttle.Enqueue(Event{Type: EventHistoryChanged, UserID: "ren"}, send)
	throttle.Enqueue(Event{Type: EventHistoryChanged, UserID: "stimpy"}, send)

	users := make(map[string]bool)
	for i := 0; i < 2; i++ {
		select {
		case evt := <-sent:
			users[evt.UserID] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for flush")
		}
	}
	if !users["ren"] || !users["stimpy"] {
		t.Errorf("flushed users = %v", users)
	}
}

func TestUserForPath(t *testing.T) {
	p := load(t)
	e := entryAt("ren", "jazz-night", response.Going, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC))

	path := filepath.Join(p.basePath, encode("ren"), encode("jazz-night"), flatten(e.ID))
	if got := p.userForPath(path); got != "ren" {
		t.Errorf("userForPath = %q, want ren", got)
	}
	if got := p.userForPath(p.basePath); got != "" {
		t.Errorf("userForPath(base) = %q, want empty", got)
	}
	if got := p.userForPath("/somewhere/else"); got == "ren" {
		t.Errorf("unrelated path resolved to a user")
	}
}
