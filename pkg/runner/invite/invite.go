package invite

import (
	"context"
	"errors"
	"fmt"

	"github.com/NvMustang/fomo-sub000/pkg/app"
)

type Invite struct {
	UserID    string // the invited user
	EventID   string
	InvitedBy string // who is doing the inviting

	Service *app.Service
}

func (n *Invite) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not invite, no service")
	}

	if _, err := n.Service.Invite(ctx, n.UserID, n.EventID, n.InvitedBy); err != nil {
		return err
	}
	fmt.Printf("\ninvited %s to %s\n\n", n.UserID, n.EventID)
	return nil
}
