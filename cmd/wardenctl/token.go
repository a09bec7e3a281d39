package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/admin"
	"github.com/adminwarden/warden/pkg/config"
	"github.com/adminwarden/warden/pkg/identity"
)

// errLocalRevocation is returned by token revoke when the blacklist would
// vanish with this process
var errLocalRevocation = errors.New("revocation_backend is memory; a revocation would not outlive this command (set revocation_backend: redis)")

// checkSharedRevocation rejects backends other processes cannot see
func checkSharedRevocation(cfg *config.WardenConfig) error {
	if cfg.RevocationBackend != config.BackendRedis {
		return errLocalRevocation
	}
	return nil
}

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage refresh tokens",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token' requires a subcommand (issue, revoke)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue <admin_id>",
	Short: "Issue a refresh token for an administrator",
	Long: `Issue a refresh token for an administrator. Requires the root administrator.

The token is printed to stdout and is valid for refresh_token_ttl seconds.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			if !acting.IsRoot {
				return admin.ErrForbidden
			}
			subject, err := a.identities.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			raw, err := a.tokens.Issue(subject.AdminID)
			if err != nil {
				return err
			}
			fmt.Println(raw)
			return nil
		})
		if err != nil {
			fail("issue token for "+args[0], err)
		}
	},
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <refresh_token>",
	Short: "Revoke another administrator's refresh token",
	Long: `Revoke another administrator's refresh token. The token stays
blacklisted for its full issued lifetime, counted from now.

Requires revocation_backend: redis. The memory backend lives only as long as
this process, so the command refuses to run with it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withIdentity(cmd, func(ctx context.Context, a *app, acting *identity.Identity) error {
			if err := checkSharedRevocation(a.cfg); err != nil {
				return err
			}
			return a.service.RevokeRefreshToken(ctx, args[0], acting)
		})
		if err != nil {
			fail("revoke token", err)
		}
		fmt.Fprintln(os.Stderr, "Token revoked")
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
}
