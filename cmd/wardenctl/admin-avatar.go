package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/identity"
)

// adminAvatarCmd represents the admin avatar command
var adminAvatarCmd = &cobra.Command{
	Use:   "avatar <admin_id> <digest>",
	Short: "Set another administrator's avatar",
	Long: `Set another administrator's avatar to a 32 character digest.

Example:
  wardenctl --as root admin avatar <id> 0123456789abcdef0123456789abcdef`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		target, digest := args[0], args[1]
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			return a.service.UpdateAvatar(ctx, target, digest, acting)
		})
		if err != nil {
			fail("set avatar of "+target, err)
		}
		fmt.Fprintf(os.Stderr, "Updated avatar of admin '%s'\n", target)
	},
}

func init() {
	adminCmd.AddCommand(adminAvatarCmd)
}
