package counts

import (
	"context"
	"errors"
	"fmt"

	"github.com/NvMustang/fomo-sub000/pkg/app"
	"github.com/NvMustang/fomo-sub000/pkg/filter"
	"github.com/NvMustang/fomo-sub000/pkg/printers"
)

// Dimension names a filter-bar control to badge.
type Dimension string

const (
	Tags      Dimension = "tags"
	Periods   Dimension = "periods"
	Responses Dimension = "responses"
)

type Counts struct {
	UserID    string
	Options   filter.Options
	Dimension Dimension

	Service *app.Service
}

func (n *Counts) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not count, no service")
	}

	var (
		counts map[string]int
		err    error
	)
	switch n.Dimension {
	case Tags:
		counts, err = n.Service.TagCounts(ctx, n.UserID, n.Options)
	case Periods:
		counts, err = n.Service.PeriodCounts(ctx, n.UserID, n.Options)
	case Responses:
		counts, err = n.Service.ResponseCounts(ctx, n.UserID, n.Options)
	default:
		return fmt.Errorf("unknown dimension %q", n.Dimension)
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(string(n.Dimension))
	pp.Counts(counts)
	return nil
}
