package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/NvMustang/fomo-sub000/pkg/commands/options"
	"github.com/NvMustang/fomo-sub000/pkg/response"
	"github.com/NvMustang/fomo-sub000/pkg/runner/view"
)

func addView(topLevel *cobra.Command) {
	uo := &options.IdentityOptions{}

	var pick *response.Response

	cmd := &cobra.Command{
		Use:   "view <event> [response]",
		Short: "Open an event, optionally pick a response, and close it.",
		Long: base.Wrap80("Open an event, optionally pick a response, and " +
			"close it. Only the difference between what you started with and " +
			"what you left with is recorded; opening without touching anything " +
			"marks the event as seen."),
		Example: `
  fomo view jazz-night
  fomo view jazz-night interested
`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 1:
				return nil
			case 2:
				r, err := response.ForAlias(args[1])
				if err != nil {
					return err
				}
				pick = &r
				return nil
			}
			return fmt.Errorf("expected <event> [response], got %d args", len(args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, user, cleanup, err := newService(uo.User)
			if err != nil {
				return err
			}
			defer cleanup()

			v := view.View{
				UserID:    user,
				EventID:   args[0],
				Selection: pick,
				Service:   svc,
			}
			return v.Do(cmd.Context())
		},
	}
	options.AddIdentityArgs(cmd, uo)

	topLevel.AddCommand(cmd)
}
