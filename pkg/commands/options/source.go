package options

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/NvMustang/fomo-sub000/pkg/eventsource"
	"github.com/NvMustang/fomo-sub000/pkg/timeutil"
)

// SourceOptions
type SourceOptions struct {
	EventsPath string
	ICSPath    string
	Horizon    string
}

func AddSourceArgs(cmd *cobra.Command, o *SourceOptions) {
	cmd.Flags().StringVar(&o.EventsPath, "events", "",
		"Path to a JSON event snapshot file.")
	cmd.Flags().StringVar(&o.ICSPath, "ics", "",
		"Path to an iCalendar file to import events from.")
	cmd.Flags().StringVar(&o.Horizon, "horizon", "",
		`Recurrence expansion window for --ics, example: --horizon="4w".`)
}

// ToSource builds the event source from the flags. At least one of --events
// or --ics must be given.
func (o *SourceOptions) ToSource(loc *time.Location) (eventsource.Source, error) {
	var sources eventsource.Multi

	if o.EventsPath != "" {
		sources = append(sources, &eventsource.File{Path: o.EventsPath})
	}
	if o.ICSPath != "" {
		var horizon time.Duration
		if o.Horizon != "" {
			var err error
			if horizon, _, err = timeutil.ParseWindow(o.Horizon); err != nil {
				return nil, err
			}
		}
		sources = append(sources, &eventsource.ICS{
			Path:     o.ICSPath,
			Horizon:  horizon,
			Location: loc,
		})
	}

	switch len(sources) {
	case 0:
		return nil, errors.New("no event source given, use --events or --ics")
	case 1:
		return sources[0], nil
	}
	return sources, nil
}
