package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/NvMustang/fomo-sub000/pkg/runner/who"
)

func addWho(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "who <event>",
		Short: "List users with a standing response or invitation for an event.",
		Long: base.Wrap80("List users with a standing response or open " +
			"invitation for an event, based on the local history."),
		Example: `
  fomo who jazz-night
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := newService("")
			if err != nil {
				return err
			}
			defer cleanup()

			w := who.Who{
				EventID: args[0],
				Service: svc,
			}
			return w.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
