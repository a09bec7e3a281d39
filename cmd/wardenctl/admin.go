package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/model"
)

// adminCmd represents the admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrators",
	Long: `Manage administrators.

Every subcommand acts on behalf of the admin given with --as. An admin can
never change, disable, delete or revoke itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'admin' requires a subcommand (create, update, avatar, password, enable, disable, delete, access, detail, rules)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
}

func parseStatus(s string) (model.Status, error) {
	status, err := model.StatusString(strings.ToLower(s))
	if err != nil {
		return 0, fmt.Errorf("invalid status %q (expected one of %s)", s, strings.Join(model.StatusStrings(), ", "))
	}
	return status, nil
}
