package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"github.com/NvMustang/fomo-sub000/pkg/history"
)

// Load creates a durable history.Store backed by diskv using the provided
// config. Entries are laid out as <user>/<event>/<entry-id> so per-pair and
// per-user lookups stay cheap prefix walks.
func Load(cfg Config) (*Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &Persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// Persistence is the diskv-backed history store. mu serializes mutations so
// the winner check inside Remove cannot race a concurrent Append.
type Persistence struct {
	d        *diskv.Diskv
	basePath string

	mu sync.Mutex
}

var _ history.Store = (*Persistence)(nil)

func (p *Persistence) read(key string) (*history.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &history.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Persistence) Append(e *history.Entry) error {
	if e == nil || e.ID == "" || e.UserID == "" || e.EventID == "" {
		return fmt.Errorf("store: entry missing required fields")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.d.Write(toKey(e), data)
}

func (p *Persistence) Latest(userID, eventID string) *history.Entry {
	return pickLatest(p.scan(pairPrefix(userID, eventID)))
}

func (p *Persistence) LatestByEvent(userID string) map[string]*history.Entry {
	out := make(map[string]*history.Entry)
	for _, e := range p.scan(userPrefix(userID)) {
		if history.Newer(e, out[e.EventID]) {
			out[e.EventID] = e
		}
	}
	return out
}

func (p *Persistence) LatestByUser(eventID string) map[string]*history.Entry {
	encoded := encode(eventID)
	out := make(map[string]*history.Entry)
	for key := range p.d.Keys(nil) {
		pk := keyToPathTransform(key)
		if len(pk.Path) != 2 || pk.Path[1] != encoded {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		if history.Newer(e, out[e.UserID]) {
			out[e.UserID] = e
		}
	}
	return out
}

func (p *Persistence) Remove(userID, eventID, id string) *history.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	last := pickLatest(p.scan(pairPrefix(userID, eventID)))
	if last == nil || last.ID != id {
		return nil
	}
	if err := p.d.Erase(toKey(last)); err != nil {
		fmt.Fprintf(os.Stderr, "store: erase %s: %s\n", last.ID, err)
		return nil
	}
	return last
}

func (p *Persistence) List(ctx context.Context) []*history.Entry {
	all := make([]*history.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return history.Newer(all[j], all[i])
	})
	return all
}

func (p *Persistence) scan(prefix string) []*history.Entry {
	all := make([]*history.Entry, 0)
	for key := range p.d.KeysPrefix(prefix, nil) {
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	return all
}

func pickLatest(entries []*history.Entry) *history.Entry {
	var best *history.Entry
	for _, e := range entries {
		if history.Newer(e, best) {
			best = e
		}
	}
	return best
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `user-event-id`. Identifiers are hex encoded so they cannot
// collide with the separator or the filesystem; the entry id has its dashes
// flattened for the same reason.
func toKey(e *history.Entry) string {
	return fmt.Sprintf("%s%s", pairPrefix(e.UserID, e.EventID), flatten(e.ID))
}

func pairPrefix(userID, eventID string) string {
	return fmt.Sprintf("%s%s-", userPrefix(userID), encode(eventID))
}

func userPrefix(userID string) string {
	return fmt.Sprintf("%s-", encode(userID))
}

func flatten(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}

func encode(s string) string {
	return hex.EncodeToString([]byte(s))
}

func decode(s string) string {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("decode: %s", err)
	}
	return string(raw)
}
