package respond

import (
	"context"
	"errors"
	"fmt"

	"github.com/NvMustang/fomo-sub000/pkg/app"
	"github.com/NvMustang/fomo-sub000/pkg/printers"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

type Respond struct {
	UserID   string
	EventID  string
	Response response.Response
	ShowID   bool

	Service *app.Service
}

func (n *Respond) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not respond, no service")
	}

	entry, err := n.Service.Respond(ctx, n.UserID, n.EventID, n.Response)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.Title(fmt.Sprintf("%s → %s", n.EventID, n.Response.Display()))
	if entry.Initial != entry.Final {
		fmt.Printf("was: %s\n\n", entry.Initial.Display())
	}
	return nil
}
