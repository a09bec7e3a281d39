package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// adminRulesCmd represents the admin rules command
var adminRulesCmd = &cobra.Command{
	Use:   "rules <admin_id>",
	Short: "List the effective rules of an administrator",
	Long: `List the effective rules of an administrator: the union of the rules
attached to each of its groups.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withApp(cmd, func(ctx context.Context, a *app) error {
			rules, err := a.service.Rules(ctx, args[0])
			if err != nil {
				return err
			}
			for _, r := range rules {
				fmt.Printf("%s\t%s\t%s %s\n", r.ID, r.Slug, r.Method, r.URL)
			}
			return nil
		})
		if err != nil {
			fail("list rules of "+args[0], err)
		}
	},
}

func init() {
	adminCmd.AddCommand(adminRulesCmd)
}
