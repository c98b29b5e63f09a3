package eventsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/NvMustang/fomo-sub000/pkg/event"
)

// Source supplies the current snapshot of events on demand. The core never
// writes back to a source.
type Source interface {
	Events(ctx context.Context) ([]*event.Event, error)
}

// Static serves a fixed slice, mostly for tests and demos.
type Static []*event.Event

func (s Static) Events(_ context.Context) ([]*event.Event, error) {
	return s, nil
}

// File reads a JSON array of events from disk.
type File struct {
	Path string
}

func (f *File) Events(_ context.Context) ([]*event.Event, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("eventsource: read %s: %w", f.Path, err)
	}
	var events []*event.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("eventsource: parse %s: %w", f.Path, err)
	}
	return events, nil
}

// Multi fans out to several sources as one.
type Multi []Source

func (m Multi) Events(ctx context.Context) ([]*event.Event, error) {
	return Load(ctx, m...)
}

// Load fetches every source concurrently and concatenates the results.
func Load(ctx context.Context, sources ...Source) ([]*event.Event, error) {
	var (
		mu  sync.Mutex
		all []*event.Event
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			events, err := src.Events(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, events...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}
