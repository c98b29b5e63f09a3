package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/NvMustang/fomo-sub000/pkg/commands/options"
	"github.com/NvMustang/fomo-sub000/pkg/runner/journal"
)

func addJournal(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show the full recorded response history.",
		Long: base.Wrap80("Show every recorded response entry, oldest " +
			"first, across all users and events in the local store."),
		Example: `
  fomo journal
  fomo journal --id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := newService("")
			if err != nil {
				return err
			}
			defer cleanup()

			j := journal.Journal{
				ShowID:  io.ShowID,
				Service: svc,
			}
			return j.Do(cmd.Context())
		},
	}
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
