package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/NvMustang/fomo-sub000/pkg/app"
	"github.com/NvMustang/fomo-sub000/pkg/printers"
	"github.com/NvMustang/fomo-sub000/pkg/response"
	"github.com/NvMustang/fomo-sub000/pkg/store"
)

// Watcher streams history change notifications.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Watch tails the history store and reprints a user's response tallies
// whenever their history changes, until the context is cancelled.
type Watch struct {
	UserID string

	Store   Watcher
	Service *app.Service
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not watch, no watchable store")
	}

	ch, err := n.Store.Watch(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(fmt.Sprintf("watching history for %s", n.UserID))

	for ev := range ch {
		switch ev.Type {
		case store.EventHistoryChanged:
			if ev.UserID != n.UserID {
				continue
			}
		case store.EventHistoryInvalidated:
			// Unattributable change; refresh anyway.
		}
		if n.Service == nil {
			fmt.Println("history changed")
			continue
		}
		resolved := n.Service.Resolved(n.UserID)
		fmt.Println("")
		pp.TitleWithCount("Responses", len(resolved), "event")
		pp.Counts(countByResponse(resolved))
	}
	return nil
}

func countByResponse(resolved map[string]response.Response) map[string]int {
	out := make(map[string]int)
	for _, r := range resolved {
		out[r.String()]++
	}
	return out
}
