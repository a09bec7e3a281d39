package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
)

// ruleCmd represents the rule command
var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage permission rules",
	Long:  `Manage permission rules. These commands require the root administrator.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'rule' requires a subcommand (create, attach)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var ruleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a rule",
	Long: `Create a rule. The slug must be unique. The new rule's id is printed to stdout.

Example:
  wardenctl --as root rule create --title "List admins" --slug admins.list --method GET --url /admins`,
	Run: func(cmd *cobra.Command, args []string) {
		f := cmd.Flags()
		rule := model.Rule{
			Title:       mustString(f.GetString("title")),
			Slug:        mustString(f.GetString("slug")),
			Method:      mustString(f.GetString("method")),
			URL:         mustString(f.GetString("url")),
			Description: mustString(f.GetString("description")),
		}
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			created, err := a.service.CreateRule(ctx, rule, acting)
			if err != nil {
				return err
			}
			fmt.Println(created.ID)
			return nil
		})
		if err != nil {
			fail("create rule", err)
		}
	},
}

var ruleAttachCmd = &cobra.Command{
	Use:   "attach <group_id> <rule_id>",
	Short: "Attach a rule to a group",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		groupID, ruleID := args[0], args[1]
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			return a.service.AttachRule(ctx, groupID, ruleID, acting)
		})
		if err != nil {
			fail(fmt.Sprintf("attach rule %s to group %s", ruleID, groupID), err)
		}
		fmt.Fprintf(os.Stderr, "Attached rule '%s' to group '%s'\n", ruleID, groupID)
	},
}

func init() {
	rootCmd.AddCommand(ruleCmd)
	ruleCmd.AddCommand(ruleCreateCmd)
	ruleCmd.AddCommand(ruleAttachCmd)
	ruleCreateCmd.Flags().String("title", "", "Rule title")
	ruleCreateCmd.Flags().String("slug", "", "Unique rule identifier")
	ruleCreateCmd.Flags().String("method", "", "HTTP method the rule covers")
	ruleCreateCmd.Flags().String("url", "", "URL the rule covers")
	ruleCreateCmd.Flags().String("description", "", "Rule description")
	_ = ruleCreateCmd.MarkFlagRequired("title")
	_ = ruleCreateCmd.MarkFlagRequired("slug")
}
