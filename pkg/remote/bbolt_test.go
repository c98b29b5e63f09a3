package remote

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/NvMustang/fomo-sub000/pkg/engine"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

func TestBoltSinkAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remote.db")
	sink, err := NewBoltSink(path)
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	ctx := context.Background()
	mutations := []engine.Mutation{
		{UserID: "ren", EventID: "jazz-night", Final: response.Going},
		{UserID: "ren", EventID: "jazz-night", Initial: response.Going, Final: response.Cleared},
		{UserID: "stimpy", EventID: "jazz-night", Final: response.Invited, InvitedBy: "ren"},
	}
	for _, m := range mutations {
		if err := sink.Submit(ctx, m); err != nil {
			t.Fatalf("Submit(%v): %v", m, err)
		}
	}

	// Repeated submissions never overwrite; every change is its own record.
	all, err := sink.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d records, want 3", len(all))
	}

	var invited *engine.Mutation
	for i := range all {
		if all[i].Final == response.Invited {
			invited = &all[i]
		}
	}
	if invited == nil || invited.InvitedBy != "ren" {
		t.Errorf("invited record = %v", invited)
	}
}

func TestBoltSinkCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remote.db")
	sink, err := NewBoltSink(path)
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sink.Submit(ctx, engine.Mutation{UserID: "ren", EventID: "jazz-night", Final: response.Going}); err == nil {
		t.Error("cancelled context should fail the submission")
	}
}

func TestFuncAdapter(t *testing.T) {
	var got engine.Mutation
	f := Func(func(_ context.Context, m engine.Mutation) error {
		got = m
		return nil
	})
	if err := f.Submit(context.Background(), engine.Mutation{UserID: "ren", EventID: "e", Final: response.Maybe}); err != nil {
		t.Fatal(err)
	}
	if got.Final != response.Maybe {
		t.Errorf("adapter passed %v", got)
	}

	if err := Discard.Submit(context.Background(), engine.Mutation{}); err != nil {
		t.Errorf("Discard should never fail: %v", err)
	}
}
