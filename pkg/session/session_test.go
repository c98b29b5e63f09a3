package session

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/NvMustang/fomo-sub000/pkg/engine"
	"github.com/NvMustang/fomo-sub000/pkg/history"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

func newSession(entries ...*history.Entry) (*Session, history.Store) {
	store := history.NewMemory(entries...)
	s := New(engine.New(store, nil))
	s.Log = logrus.New()
	s.Log.SetOutput(io.Discard)
	return s, store
}

func seed(userID, eventID string, final response.Response) *history.Entry {
	return history.New(userID, eventID, response.None, final)
}

func TestCloseEmitsSeenWhenUntouched(t *testing.T) {
	s, store := newSession()
	s.Open("ren", "jazz")

	e := s.Close(context.Background())
	if e == nil || e.Final != response.Seen {
		t.Fatalf("Close = %v, want a seen marker", e)
	}
	if got := store.Latest("ren", "jazz"); got == nil || got.Final != response.Seen {
		t.Errorf("store Latest = %v, want seen", got)
	}
}

func TestCloseEmitsSeenOverUnactedInvitation(t *testing.T) {
	s, _ := newSession(seed("ren", "jazz", response.Invited))
	s.Open("ren", "jazz")

	e := s.Close(context.Background())
	if e == nil || e.Final != response.Seen {
		t.Fatalf("Close = %v, want a seen marker over the invitation", e)
	}
	if e.Initial != response.Invited {
		t.Errorf("Initial = %s, want invited", e.Initial)
	}
}

func TestCloseReemitsSeenAfterCleared(t *testing.T) {
	s, store := newSession(seed("ren", "jazz", response.Cleared))
	s.Open("ren", "jazz")

	e := s.Close(context.Background())
	if e == nil || e.Final != response.Seen {
		t.Fatalf("Close = %v, want a fresh seen marker over a cleared baseline", e)
	}
	if got := store.Latest("ren", "jazz"); got == nil || got.Final != response.Seen {
		t.Errorf("store Latest = %v, want seen", got)
	}
}

func TestCloseEmitsTransition(t *testing.T) {
	s, store := newSession(seed("ren", "jazz", response.Going))
	s.Open("ren", "jazz")
	s.SelectionChange(response.Cleared)

	e := s.Close(context.Background())
	if e == nil || e.Final != response.Cleared || e.Initial != response.Going {
		t.Fatalf("Close = %v, want going→cleared", e)
	}
	if got := store.Latest("ren", "jazz"); got.Final != response.Cleared {
		t.Errorf("store Latest = %v, want cleared", got)
	}
}

func TestCloseEmitsNothingWhenUnchanged(t *testing.T) {
	s, store := newSession(seed("ren", "jazz", response.Going))
	s.Open("ren", "jazz")

	if e := s.Close(context.Background()); e != nil {
		t.Fatalf("Close = %v, want nil when the reaction is unchanged", e)
	}
	if entries := store.List(context.Background()); len(entries) != 1 {
		t.Errorf("store grew to %d entries", len(entries))
	}
}

func TestCloseIgnoresNoopSelection(t *testing.T) {
	s, _ := newSession(seed("ren", "jazz", response.Interested))
	s.Open("ren", "jazz")
	s.SelectionChange(response.Interested)

	if e := s.Close(context.Background()); e != nil {
		t.Errorf("reselecting the same response should emit nothing, got %v", e)
	}
}

func TestCloseUsesStoreStateWhenUntouched(t *testing.T) {
	// Another path records a change while the view is open.
	s, store := newSession()
	s.Open("ren", "jazz")
	if err := store.Append(seed("ren", "jazz", response.Going)); err != nil {
		t.Fatal(err)
	}

	// Untouched close picks up the external change, which differs from the
	// none captured at open, so the transition wins over a seen marker.
	e := s.Close(context.Background())
	if e == nil || e.Final != response.Going {
		t.Fatalf("Close = %v, want going from the external change", e)
	}
}

func TestSessionSingleUse(t *testing.T) {
	s, store := newSession()
	s.Open("ren", "jazz")
	if s.State() != Opened {
		t.Fatalf("state = %v, want opened", s.State())
	}
	s.Close(context.Background())
	if s.State() != Closed {
		t.Fatalf("state = %v, want closed", s.State())
	}

	// Reopening and closing again is inert.
	s.Open("ren", "rock")
	s.SelectionChange(response.Going)
	if e := s.Close(context.Background()); e != nil {
		t.Errorf("closed session emitted %v", e)
	}
	if entries := store.List(context.Background()); len(entries) != 1 {
		t.Errorf("store has %d entries, want only the first seen marker", len(entries))
	}
}

func TestSelectionChangeBeforeOpen(t *testing.T) {
	s, store := newSession()
	s.SelectionChange(response.Going)
	if e := s.Close(context.Background()); e != nil {
		t.Errorf("unopened session emitted %v", e)
	}
	if entries := store.List(context.Background()); len(entries) != 0 {
		t.Errorf("store has %d entries, want none", len(entries))
	}
}

func TestCloseWithoutEngine(t *testing.T) {
	s := New(nil)
	s.Log = logrus.New()
	s.Log.SetOutput(io.Discard)
	s.Open("ren", "jazz")
	if e := s.Close(context.Background()); e != nil {
		t.Errorf("engineless close emitted %v", e)
	}
}
