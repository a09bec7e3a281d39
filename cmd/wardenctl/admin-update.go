package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/admin"
	"github.com/adminwarden/warden/pkg/identity"
)

// adminUpdateCmd represents the admin update command
var adminUpdateCmd = &cobra.Command{
	Use:   "update <admin_id>",
	Short: "Update another administrator's profile",
	Long: `Update another administrator's profile.

All profile fields are replaced, so pass every field you want to keep.

Example:
  wardenctl --as root admin update <id> --name alice --email alice@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		f := cmd.Flags()
		status, err := parseStatus(mustString(f.GetString("status")))
		if err != nil {
			fail("update admin "+target, err)
		}
		in := admin.UpdateInput{
			Name:      mustString(f.GetString("name")),
			Nickname:  mustString(f.GetString("nickname")),
			Email:     mustString(f.GetString("email")),
			Introduce: mustString(f.GetString("introduce")),
			Avatar:    mustString(f.GetString("avatar")),
			Status:    status,
		}

		err = withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			return a.service.Update(ctx, target, in, acting)
		})
		if err != nil {
			fail("update admin "+target, err)
		}
		fmt.Fprintf(os.Stderr, "Updated admin '%s'\n", target)
	},
}

func init() {
	adminCmd.AddCommand(adminUpdateCmd)
	addProfileFlags(adminUpdateCmd)
	_ = adminUpdateCmd.MarkFlagRequired("name")
}
