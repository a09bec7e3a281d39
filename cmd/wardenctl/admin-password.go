package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/identity"
)

// adminPasswordCmd represents the admin password command
var adminPasswordCmd = &cobra.Command{
	Use:   "password <admin_id> <digest>",
	Short: "Change another administrator's password",
	Long: `Change another administrator's password.

The digest is the 32 character hash the client computes from the plain
password. It is stored under a fresh salt.

Example:
  wardenctl --as root admin password <id> 0123456789abcdef0123456789abcdef`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		target, digest := args[0], args[1]
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			return a.service.ChangePassword(ctx, target, digest, acting)
		})
		if err != nil {
			fail("change password for "+target, err)
		}
		fmt.Fprintf(os.Stderr, "Changed password of admin '%s'\n", target)
	},
}

func init() {
	adminCmd.AddCommand(adminPasswordCmd)
}
