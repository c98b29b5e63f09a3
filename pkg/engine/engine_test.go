package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/NvMustang/fomo-sub000/pkg/history"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

type remoteFunc func(ctx context.Context, m Mutation) error

func (f remoteFunc) Submit(ctx context.Context, m Mutation) error { return f(ctx, m) }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSetResponseOptimistic(t *testing.T) {
	store := history.NewMemory()

	var mu sync.Mutex
	var submitted []Mutation
	eng := New(store, remoteFunc(func(_ context.Context, m Mutation) error {
		mu.Lock()
		defer mu.Unlock()
		submitted = append(submitted, m)
		return nil
	}))
	eng.Log = quietLogger()

	e, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Going)
	if err != nil {
		t.Fatalf("SetResponse: %v", err)
	}

	// The store reflects the change before the remote completes.
	if got := store.Latest("ren", "jazz"); got == nil || got.ID != e.ID {
		t.Errorf("Latest = %v, want the appended entry", got)
	}
	if e.Initial != response.None || e.Final != response.Going {
		t.Errorf("entry transition = %s→%s, want none→going", e.Initial, e.Final)
	}

	eng.Wait()
	mu.Lock()
	defer mu.Unlock()
	if len(submitted) != 1 || submitted[0].Final != response.Going {
		t.Errorf("submitted = %v", submitted)
	}
}

func TestSetResponseCapturesInitial(t *testing.T) {
	store := history.NewMemory()
	eng := New(store, nil)

	if _, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Interested); err != nil {
		t.Fatalf("first SetResponse: %v", err)
	}
	e, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Going)
	if err != nil {
		t.Fatalf("second SetResponse: %v", err)
	}
	if e.Initial != response.Interested {
		t.Errorf("Initial = %s, want interested", e.Initial)
	}
}

func TestRollbackOnRemoteFailure(t *testing.T) {
	store := history.NewMemory()
	eng := New(store, remoteFunc(func(context.Context, Mutation) error {
		return errors.New("upstream says no")
	}))
	eng.Log = quietLogger()

	if _, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Going); err != nil {
		t.Fatalf("SetResponse: %v", err)
	}
	eng.Wait()

	if got := store.Latest("ren", "jazz"); got != nil {
		t.Errorf("entry should be rolled back, still have %v", got)
	}
}

func TestRollbackRestoresPrior(t *testing.T) {
	store := history.NewMemory()
	okRemote := remoteFunc(func(context.Context, Mutation) error { return nil })
	eng := New(store, okRemote)
	eng.Log = quietLogger()

	if _, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Interested); err != nil {
		t.Fatalf("seed SetResponse: %v", err)
	}
	eng.Wait()

	eng.Remote = remoteFunc(func(context.Context, Mutation) error {
		return errors.New("upstream says no")
	})
	if _, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Going); err != nil {
		t.Fatalf("failing SetResponse: %v", err)
	}
	eng.Wait()

	if got := store.Latest("ren", "jazz"); got == nil || got.Final != response.Interested {
		t.Errorf("rollback should restore interested, got %v", got)
	}
}

func TestRollbackSkipsSupersededEntry(t *testing.T) {
	store := history.NewMemory()
	release := make(chan struct{})
	eng := New(store, remoteFunc(func(_ context.Context, m Mutation) error {
		if m.Final == response.Going {
			<-release
			return errors.New("slow failure")
		}
		return nil
	}))
	eng.Log = quietLogger()

	if _, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Going); err != nil {
		t.Fatalf("first SetResponse: %v", err)
	}
	// A newer entry lands while the first submission is still in flight.
	second, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Interested)
	if err != nil {
		t.Fatalf("second SetResponse: %v", err)
	}
	close(release)
	eng.Wait()

	// The stale failure must not remove the newer entry.
	if got := store.Latest("ren", "jazz"); got == nil || got.ID != second.ID {
		t.Errorf("Latest = %v, want the superseding entry", got)
	}
}

// removeHook lets a test inject work at the worst possible moment, right as
// rollback asks the store to remove the failed entry.
type removeHook struct {
	*history.Memory
	before func()
}

func (s *removeHook) Remove(userID, eventID, id string) *history.Entry {
	if s.before != nil {
		s.before()
	}
	return s.Memory.Remove(userID, eventID, id)
}

func TestRollbackNeverRemovesConcurrentAppend(t *testing.T) {
	mem := history.NewMemory()

	// A newer user action lands between the remote failure and the removal.
	var superseding *history.Entry
	store := &removeHook{Memory: mem, before: func() {
		superseding = history.New("ren", "jazz", response.Going, response.Interested)
		if err := mem.Append(superseding); err != nil {
			t.Errorf("interleaved append: %v", err)
		}
	}}

	eng := New(store, remoteFunc(func(context.Context, Mutation) error {
		return errors.New("upstream says no")
	}))
	eng.Log = quietLogger()

	if _, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Going); err != nil {
		t.Fatalf("SetResponse: %v", err)
	}
	eng.Wait()

	// The newer entry must survive and the rejected one must not resurface.
	got := mem.Latest("ren", "jazz")
	if got == nil || got.ID != superseding.ID {
		t.Fatalf("Latest = %v, want the concurrently appended entry %s", got, superseding.ID)
	}
	if got.Final != response.Interested {
		t.Errorf("resolved response = %s, want interested", got.Final)
	}
}

func TestInvite(t *testing.T) {
	store := history.NewMemory()
	eng := New(store, nil)

	e, err := eng.Invite(context.Background(), "stimpy", "jazz", "ren")
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if e.Final != response.Invited || e.InvitedBy != "ren" {
		t.Errorf("invite entry = %v", e)
	}

	if _, err := eng.Invite(context.Background(), "stimpy", "jazz", ""); err == nil {
		t.Error("invite without inviter should fail")
	}
}

func TestRecordValidation(t *testing.T) {
	eng := New(history.NewMemory(), nil)
	if _, err := eng.SetResponse(context.Background(), "", "jazz", response.Going); err == nil {
		t.Error("missing user id should fail")
	}
	if _, err := eng.SetResponse(context.Background(), "ren", "", response.Going); err == nil {
		t.Error("missing event id should fail")
	}
	eng = New(nil, nil)
	if _, err := eng.SetResponse(context.Background(), "ren", "jazz", response.Going); err == nil {
		t.Error("missing store should fail")
	}
}
