package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/NvMustang/fomo-sub000/pkg/app"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

// View simulates one detail view session: open, optionally pick a response,
// close. What gets persisted is decided by the close-time diff, not here.
type View struct {
	UserID    string
	EventID   string
	Selection *response.Response

	Service *app.Service
}

func (n *View) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not view, no service")
	}

	emitted := n.Service.View(ctx, n.UserID, n.EventID, n.Selection)
	fmt.Println("")
	if emitted == nil {
		fmt.Println("no change recorded")
	} else {
		fmt.Printf("recorded %s (was %s)\n", emitted.Final.Display(), emitted.Initial.Display())
	}
	fmt.Println("")
	return nil
}
