package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/admin"
	"github.com/adminwarden/warden/pkg/identity"
)

// adminCreateCmd represents the admin create command
var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an administrator",
	Long: `Create an administrator.

The password is the 32 character digest the client computes from the plain
password. The new admin joins the first group of the acting admin. Only the
root administrator can create another root.

The new admin's id is printed to stdout.

Example:
  wardenctl --as root admin create --name alice --email alice@example.com --password <digest>`,
	Run: func(cmd *cobra.Command, args []string) {
		in, err := createInputFromFlags(cmd)
		if err != nil {
			fail("create admin", err)
		}

		err = withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			created, err := a.service.Create(ctx, in, acting)
			if err != nil {
				return err
			}
			fmt.Println(created.ID)
			return nil
		})
		if err != nil {
			fail("create admin", err)
		}
	},
}

func init() {
	adminCmd.AddCommand(adminCreateCmd)
	addProfileFlags(adminCreateCmd)
	adminCreateCmd.Flags().String("password", "", "32 character password digest")
	adminCreateCmd.Flags().Bool("root", false, "Create a root administrator")
	_ = adminCreateCmd.MarkFlagRequired("name")
	_ = adminCreateCmd.MarkFlagRequired("password")
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Login name")
	cmd.Flags().String("nickname", "", "Display name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("introduce", "", "Short introduction")
	cmd.Flags().String("avatar", "", "32 character avatar digest")
	cmd.Flags().String("status", "enabled", "enabled or disabled")
}

func createInputFromFlags(cmd *cobra.Command) (admin.CreateInput, error) {
	f := cmd.Flags()
	status, err := parseStatus(mustString(f.GetString("status")))
	if err != nil {
		return admin.CreateInput{}, err
	}
	isRoot, _ := f.GetBool("root")
	return admin.CreateInput{
		Name:      mustString(f.GetString("name")),
		Nickname:  mustString(f.GetString("nickname")),
		Email:     mustString(f.GetString("email")),
		Introduce: mustString(f.GetString("introduce")),
		Password:  mustString(f.GetString("password")),
		Avatar:    mustString(f.GetString("avatar")),
		Status:    status,
		IsRoot:    isRoot,
	}, nil
}

// mustString drops the error of a flag lookup for a flag the command defines
func mustString(s string, _ error) string {
	return s
}
