package printers

import (
	"github.com/NvMustang/fomo-sub000/pkg/period"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

// Periods renders grouped calendar buckets in priority order.
func (pp *PrettyPrint) Periods(periods []period.Period, resolved map[string]response.Response) {
	for _, p := range periods {
		pp.TitleWithCount(p.Label, len(p.Events), "event")
		pp.Events(p.Events, resolved)
	}
}
