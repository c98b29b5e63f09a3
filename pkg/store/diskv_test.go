package store

import (
	"context"
	"testing"
	"time"

	"github.com/NvMustang/fomo-sub000/pkg/history"
	"github.com/NvMustang/fomo-sub000/pkg/response"
	"github.com/NvMustang/fomo-sub000/pkg/timeutil"
)

type testConfig struct {
	base string
}

func (c *testConfig) BasePath() string   { return c.base }
func (c *testConfig) RemotePath() string { return c.base + ".remote" }
func (c *testConfig) UserID() string     { return "" }

func load(t *testing.T) *Persistence {
	t.Helper()
	p, err := Load(&testConfig{base: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func entryAt(userID, eventID string, final response.Response, at time.Time) *history.Entry {
	return &history.Entry{
		ID:      history.NewID(at),
		UserID:  userID,
		EventID: eventID,
		Final:   final,
		Created: timeutil.Timestamp{Time: at},
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	p := load(t)
	base := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	first := entryAt("ren", "jazz-night", response.Interested, base)
	second := entryAt("ren", "jazz-night", response.Going, base.Add(time.Minute))
	other := entryAt("stimpy", "jazz-night", response.Maybe, base)

	for _, e := range []*history.Entry{first, second, other} {
		if err := p.Append(e); err != nil {
			t.Fatalf("Append(%s): %v", e.ID, err)
		}
	}

	got := p.Latest("ren", "jazz-night")
	if got == nil || got.ID != second.ID {
		t.Fatalf("Latest = %v, want %s", got, second.ID)
	}
	if got.Final != response.Going || got.UserID != "ren" {
		t.Errorf("round-tripped entry = %+v", got)
	}
}

func TestPersistenceLatestByEvent(t *testing.T) {
	p := load(t)
	base := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	entries := []*history.Entry{
		entryAt("ren", "jazz-night", response.Interested, base),
		entryAt("ren", "jazz-night", response.Going, base.Add(time.Minute)),
		entryAt("ren", "rock-fest", response.Maybe, base),
		entryAt("stimpy", "rock-fest", response.Going, base),
	}
	for _, e := range entries {
		if err := p.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	byEvent := p.LatestByEvent("ren")
	if len(byEvent) != 2 {
		t.Fatalf("LatestByEvent = %v", byEvent)
	}
	if byEvent["jazz-night"].Final != response.Going || byEvent["rock-fest"].Final != response.Maybe {
		t.Errorf("LatestByEvent = %v", byEvent)
	}

	byUser := p.LatestByUser("rock-fest")
	if len(byUser) != 2 || byUser["stimpy"].Final != response.Going {
		t.Errorf("LatestByUser = %v", byUser)
	}
}

func TestPersistenceRemove(t *testing.T) {
	p := load(t)
	base := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	first := entryAt("ren", "jazz-night", response.Interested, base)
	second := entryAt("ren", "jazz-night", response.Going, base.Add(time.Minute))
	if err := p.Append(first); err != nil {
		t.Fatal(err)
	}
	if err := p.Append(second); err != nil {
		t.Fatal(err)
	}

	removed := p.Remove("ren", "jazz-night", second.ID)
	if removed == nil || removed.ID != second.ID {
		t.Fatalf("Remove = %v, want %s", removed, second.ID)
	}
	if got := p.Latest("ren", "jazz-night"); got == nil || got.ID != first.ID {
		t.Errorf("Latest after removal = %v, want %s", got, first.ID)
	}
	if got := p.Remove("ren", "nope", first.ID); got != nil {
		t.Errorf("Remove for unknown pair = %v", got)
	}

	// first is the winner now; removing by a stale id must not erase it.
	if got := p.Remove("ren", "jazz-night", second.ID); got != nil {
		t.Errorf("Remove with stale id = %v, want nil", got)
	}
	if got := p.Latest("ren", "jazz-night"); got == nil || got.ID != first.ID {
		t.Errorf("Latest = %v, want %s untouched", got, first.ID)
	}
}

func TestPersistenceList(t *testing.T) {
	p := load(t)
	base := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	second := entryAt("ren", "jazz-night", response.Going, base.Add(time.Minute))
	first := entryAt("ren", "jazz-night", response.Interested, base)
	if err := p.Append(second); err != nil {
		t.Fatal(err)
	}
	if err := p.Append(first); err != nil {
		t.Fatal(err)
	}

	all := p.List(context.Background())
	if len(all) != 2 {
		t.Fatalf("List returned %d entries", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Errorf("List order = [%s, %s]", all[0].ID, all[1].ID)
	}
}

func TestPersistenceAppendValidation(t *testing.T) {
	p := load(t)
	if err := p.Append(nil); err == nil {
		t.Error("nil entry should be rejected")
	}
	if err := p.Append(&history.Entry{ID: "x"}); err == nil {
		t.Error("entry missing ids should be rejected")
	}
}

func TestKeyTransformRoundTrip(t *testing.T) {
	e := entryAt("ren", "jazz-night", response.Going, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC))
	key := toKey(e)
	pk := keyToPathTransform(key)
	if len(pk.Path) != 2 {
		t.Fatalf("path = %v, want user and event segments", pk.Path)
	}
	if decode(pk.Path[0]) != "ren" || decode(pk.Path[1]) != "jazz-night" {
		t.Errorf("decoded path = [%s, %s]", decode(pk.Path[0]), decode(pk.Path[1]))
	}
	if pathToKeyTransform(pk) != key {
		t.Errorf("transform does not round trip: %s", key)
	}
}
