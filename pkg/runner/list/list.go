package list

import (
	"context"
	"errors"
	"fmt"

	"github.com/NvMustang/fomo-sub000/pkg/app"
	"github.com/NvMustang/fomo-sub000/pkg/filter"
	"github.com/NvMustang/fomo-sub000/pkg/printers"
)

type List struct {
	UserID  string
	Options filter.Options
	Flat    bool
	ShowID  bool

	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}

	visible, grouped, err := n.Service.Feed(ctx, n.UserID, n.Options)
	if err != nil {
		return err
	}
	resolved := n.Service.Resolved(n.UserID)

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	if n.Flat {
		pp.TitleWithCount("Events", len(visible), "event")
		pp.Events(visible, resolved)
		return nil
	}

	if len(grouped) == 0 {
		pp.Title("Events")
		pp.Events(nil, resolved)
		return nil
	}
	pp.Periods(grouped, resolved)
	return nil
}
