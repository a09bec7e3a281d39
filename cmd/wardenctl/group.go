package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/admin"
	"github.com/adminwarden/warden/pkg/identity"
)

// groupCmd represents the group command
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage the group hierarchy",
	Long: `Manage the group hierarchy. Changing the hierarchy changes what every
admin may grant, so these commands require the root administrator.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'group' requires a subcommand (create, move)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a group",
	Long: `Create a group, optionally below a parent. The new group's id is printed to stdout.

Example:
  wardenctl --as root group create ops
  wardenctl --as root group create on-call --parent <ops id>`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := admin.GroupInput{Title: args[0]}
		in.Description, _ = cmd.Flags().GetString("description")
		in.ParentID, _ = cmd.Flags().GetString("parent")

		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			g, err := a.service.CreateGroup(ctx, in, acting)
			if err != nil {
				return err
			}
			fmt.Println(g.ID)
			return nil
		})
		if err != nil {
			fail("create group", err)
		}
	},
}

var groupMoveCmd = &cobra.Command{
	Use:   "move <group_id> [parent_id]",
	Short: "Move a group below another, or make it a root",
	Long: `Move a group below another group. Without a parent the group becomes a root.
A move that would make a group its own ancestor is refused.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		id, parent := args[0], ""
		if len(args) == 2 {
			parent = args[1]
		}
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			return a.service.MoveGroup(ctx, id, parent, acting)
		})
		if err != nil {
			fail("move group "+id, err)
		}
		fmt.Fprintf(os.Stderr, "Moved group '%s'\n", id)
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupMoveCmd)
	groupCreateCmd.Flags().String("description", "", "Group description")
	groupCreateCmd.Flags().String("parent", "", "Parent group id")
}
