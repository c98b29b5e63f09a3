package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NvMustang/fomo-sub000/pkg/filter"
	"github.com/NvMustang/fomo-sub000/pkg/period"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

// FilterOptions
type FilterOptions struct {
	Query     string
	Tags      []string
	Public    string
	Online    string
	Organizer string
	Period    string
	Response  string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Query, "query", "q", "", "Free text search over every event field.")
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil, "Tag filter; repeatable, all given tags must match.")
	cmd.Flags().StringVar(&o.Public, "public", "all", `Public filter: "true", "false" or "all".`)
	cmd.Flags().StringVar(&o.Online, "online", "all", `Online filter: "true", "false" or "all".`)
	cmd.Flags().StringVar(&o.Organizer, "organizer", "", "Only events by this organizer id.")
	cmd.Flags().StringVar(&o.Period, "period", "", "Only events in this calendar bucket, example: thisWeekend.")
	cmd.Flags().StringVar(&o.Response, "response", "", "Only events with this resolved response, example: going.")
}

// ToFilter validates the raw flag values into pipeline options.
func (o *FilterOptions) ToFilter() (filter.Options, error) {
	opts := filter.Options{
		Query:       o.Query,
		Tags:        o.Tags,
		OrganizerID: o.Organizer,
	}

	var err error
	if opts.IsPublic, err = parseTri(o.Public); err != nil {
		return opts, fmt.Errorf("--public: %w", err)
	}
	if opts.IsOnline, err = parseTri(o.Online); err != nil {
		return opts, fmt.Errorf("--online: %w", err)
	}

	if o.Period != "" {
		k, ok := period.ParseKey(o.Period)
		if !ok {
			return opts, fmt.Errorf("--period: unknown bucket %q", o.Period)
		}
		opts.Period = k
	}

	if o.Response != "" {
		r, err := response.ForAlias(o.Response)
		if err != nil {
			return opts, err
		}
		opts.Response = &r
	}

	return opts, nil
}

func parseTri(s string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return nil, nil
	case "true", "yes":
		v := true
		return &v, nil
	case "false", "no":
		v := false
		return &v, nil
	}
	return nil, fmt.Errorf(`want "true", "false" or "all", got %q`, s)
}
