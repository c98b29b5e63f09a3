package commands

import (
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/NvMustang/fomo-sub000/pkg/commands/options"
	"github.com/NvMustang/fomo-sub000/pkg/runner/watch"
	"github.com/NvMustang/fomo-sub000/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	uo := &options.IdentityOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the history store and report changes live.",
		Long: base.Wrap80("Watch the on-disk history store and print updated " +
			"response tallies whenever another process records a change. " +
			"Runs until interrupted."),
		Example: `
  fomo watch
  fomo watch -u ren
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, user, cleanup, err := newService(uo.User)
			if err != nil {
				return err
			}
			defer cleanup()

			p, ok := svc.Store.(*store.Persistence)
			if !ok {
				return errors.New("watch requires the disk store")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := watch.Watch{
				UserID:  user,
				Store:   p,
				Service: svc,
			}
			return w.Do(ctx)
		},
	}
	options.AddIdentityArgs(cmd, uo)

	topLevel.AddCommand(cmd)
}
