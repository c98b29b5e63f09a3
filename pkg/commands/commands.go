package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "fomo",
		Short: base.Wrap80("Track evolving reactions to events on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRespond(topLevel)
	addInvite(topLevel)
	addView(topLevel)
	addList(topLevel)
	addCounts(topLevel)
	addWho(topLevel)
	addJournal(topLevel)
	addWatch(topLevel)
	addVersion(topLevel)
}
