package commands

import (
	"errors"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/NvMustang/fomo-sub000/pkg/commands/options"
	"github.com/NvMustang/fomo-sub000/pkg/runner/invite"
)

func addInvite(topLevel *cobra.Command) {
	uo := &options.IdentityOptions{}

	var invitee string

	cmd := &cobra.Command{
		Use:   "invite <event> --to <user>",
		Short: "Invite a user to an event.",
		Long: base.Wrap80("Invite a user to an event. The invitation is " +
			"recorded on the invited user's history with the inviter attached."),
		Example: `
  fomo invite jazz-night --to stimpy
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if invitee == "" {
				return errors.New("missing --to <user>")
			}
			svc, user, cleanup, err := newService(uo.User)
			if err != nil {
				return err
			}
			defer cleanup()

			i := invite.Invite{
				UserID:    invitee,
				EventID:   args[0],
				InvitedBy: user,
				Service:   svc,
			}
			return i.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&invitee, "to", "", "User id to invite.")
	options.AddIdentityArgs(cmd, uo)

	topLevel.AddCommand(cmd)
}
