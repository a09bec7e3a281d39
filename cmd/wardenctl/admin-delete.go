package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/identity"
)

// adminDeleteCmd represents the admin delete command
var adminDeleteCmd = &cobra.Command{
	Use:   "delete <admin_id>",
	Short: "Delete another administrator",
	Long: `Delete another administrator and all of its group memberships.

The configured root administrator (root_admin_id) cannot be deleted.

Example:
  wardenctl --as root admin delete <id>`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			return a.service.Delete(ctx, target, acting)
		})
		if err != nil {
			fail("delete admin "+target, err)
		}
		fmt.Fprintf(os.Stderr, "Deleted admin '%s'\n", target)
	},
}

func init() {
	adminCmd.AddCommand(adminDeleteCmd)
}
