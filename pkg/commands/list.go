package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/NvMustang/fomo-sub000/pkg/commands/options"
	"github.com/NvMustang/fomo-sub000/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	uo := &options.IdentityOptions{}
	io := &options.IDOptions{}
	fo := &options.FilterOptions{}
	so := &options.SourceOptions{}

	var flat bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events grouped by calendar bucket.",
		Long: base.Wrap80("List events from a snapshot or calendar file, " +
			"filtered and grouped into calendar buckets like Today, Tomorrow " +
			"and This weekend. Use --flat for a single ungrouped table."),
		Example: `
  fomo list --events feed.json
  fomo list --ics town.ics -t jazz --period thisWeekend
  fomo list --events feed.json --response going --flat
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := fo.ToFilter()
			if err != nil {
				return err
			}
			source, err := so.ToSource(time.Local)
			if err != nil {
				return err
			}
			svc, user, cleanup, err := newService(uo.User)
			if err != nil {
				return err
			}
			defer cleanup()
			svc.Source = source

			l := list.List{
				UserID:  user,
				Options: opts,
				Flat:    flat,
				ShowID:  io.ShowID,
				Service: svc,
			}
			return l.Do(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "Skip calendar grouping.")
	options.AddIdentityArgs(cmd, uo)
	options.AddShowIDArgs(cmd, io)
	options.AddFilterArgs(cmd, fo)
	options.AddSourceArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
