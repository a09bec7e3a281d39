package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/identity"
)

var adminEnableCmd = &cobra.Command{
	Use:   "enable <admin_id>",
	Short: "Enable another administrator",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			return a.service.Enable(ctx, target, acting)
		})
		if err != nil {
			fail("enable admin "+target, err)
		}
		fmt.Fprintf(os.Stderr, "Enabled admin '%s'\n", target)
	},
}

var adminDisableCmd = &cobra.Command{
	Use:   "disable <admin_id>",
	Short: "Disable another administrator",
	Long: `Disable another administrator. A disabled admin cannot act with --as
until it is enabled again.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			return a.service.Disable(ctx, target, acting)
		})
		if err != nil {
			fail("disable admin "+target, err)
		}
		fmt.Fprintf(os.Stderr, "Disabled admin '%s'\n", target)
	},
}

func init() {
	adminCmd.AddCommand(adminEnableCmd)
	adminCmd.AddCommand(adminDisableCmd)
}
