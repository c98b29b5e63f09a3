package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/NvMustang/fomo-sub000/pkg/app"
	"github.com/NvMustang/fomo-sub000/pkg/printers"
)

// Journal lists the recorded response history, oldest first.
type Journal struct {
	ShowID bool

	Service *app.Service
}

func (n *Journal) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show history, no service")
	}

	entries, err := n.Service.History(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.TitleWithCount("History", len(entries), "record")
	pp.History(entries)
	return nil
}
