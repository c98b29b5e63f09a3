package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/NvMustang/fomo-sub000/pkg/commands/options"
	"github.com/NvMustang/fomo-sub000/pkg/runner/counts"
)

func addCounts(topLevel *cobra.Command) {
	uo := &options.IdentityOptions{}
	fo := &options.FilterOptions{}
	so := &options.SourceOptions{}

	cmd := &cobra.Command{
		Use:   "counts <tags|periods|responses>",
		Short: "Show how many events each filter choice would match.",
		Long: base.Wrap80("Show how many events each filter choice would " +
			"match, with the other active filters applied. These are the " +
			"badge numbers next to each control in a filter bar."),
		Example: `
  fomo counts tags --events feed.json
  fomo counts periods --ics town.ics -t jazz
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected one of tags, periods or responses")
			}
			switch counts.Dimension(args[0]) {
			case counts.Tags, counts.Periods, counts.Responses:
				return nil
			}
			return fmt.Errorf("unknown dimension %q", args[0])
		},
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

			c := counts.Counts{
				UserID:    user,
				Options:   opts,
				Dimension: counts.Dimension(args[0]),
				Service:   svc,
			}
			return c.Do(cmd.Context())
		},
	}
	options.AddIdentityArgs(cmd, uo)
	options.AddFilterArgs(cmd, fo)
	options.AddSourceArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
