package who

import (
	"context"
	"errors"
	"fmt"

	"github.com/NvMustang/fomo-sub000/pkg/app"
	"github.com/NvMustang/fomo-sub000/pkg/printers"
)

type Who struct {
	EventID string

	Service *app.Service
}

func (n *Who) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not list users, no service")
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(n.EventID)
	pp.Who(n.Service.Who(n.EventID))
	return nil
}
