package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/NvMustang/fomo-sub000/pkg/commands/options"
	"github.com/NvMustang/fomo-sub000/pkg/response"
	"github.com/NvMustang/fomo-sub000/pkg/runner/respond"
)

func addRespond(topLevel *cobra.Command) {
	uo := &options.IdentityOptions{}
	io := &options.IDOptions{}

	var pick response.Response

	cmd := &cobra.Command{
		Use:   "respond <event> <response>",
		Short: "Record a response to an event.",
		Long: base.Wrap80("Record a response to an event. The change applies " +
			"locally right away and is submitted upstream in the background; " +
			"if the submission fails the change is rolled back.\n\n" +
			"Responses: going, interested, not_interested, maybe, cleared."),
		Example: `
  fomo respond jazz-night going
  fomo respond jazz-night cleared -u ren
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <event> <response>, got %d args", len(args))
			}
			var err error
			pick, err = response.ForAlias(args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, user, cleanup, err := newService(uo.User)
			if err != nil {
				return err
			}
			defer cleanup()

			r := respond.Respond{
				UserID:   user,
				EventID:  args[0],
				Response: pick,
				ShowID:   io.ShowID,
				Service:  svc,
			}
			return r.Do(cmd.Context())
		},
	}
	options.AddIdentityArgs(cmd, uo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
