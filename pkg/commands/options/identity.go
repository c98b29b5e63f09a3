package options

import (
	"github.com/spf13/cobra"
)

// IdentityOptions
type IdentityOptions struct {
	User string
}

func AddIdentityArgs(cmd *cobra.Command, o *IdentityOptions) {
	cmd.Flags().StringVarP(&o.User, "user", "u", "",
		"Act as this user id instead of the configured or anonymous identity.")
}
