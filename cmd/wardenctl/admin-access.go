package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/identity"
)

// adminAccessCmd represents the admin access command
var adminAccessCmd = &cobra.Command{
	Use:   "access <admin_id> [group_id...]",
	Short: "Replace an administrator's group memberships",
	Long: `Replace an administrator's group memberships.

Only groups the acting admin belongs to, or that sit below one of them,
are granted. Other requested groups are silently dropped. Passing no group
removes every membership.

Example:
  wardenctl --as alice admin access <bob id> <group id> <group id>`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target, groups := args[0], args[1:]
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			if err := a.service.SetAccess(ctx, target, groups, acting); err != nil {
				return err
			}
			detail, err := a.service.Detail(ctx, target)
			if err != nil {
				return err
			}
			for _, g := range detail.Groups {
				fmt.Printf("%s\t%s\n", g.ID, g.Title)
			}
			return nil
		})
		if err != nil {
			fail("set access for "+target, err)
		}
		fmt.Fprintf(os.Stderr, "Updated groups of admin '%s'\n", target)
	},
}

func init() {
	adminCmd.AddCommand(adminAccessCmd)
}
