package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wardenctl",
	Short: "Administer warden accounts, groups and rules",
	Long: `Administer warden accounts, groups and rules.

Configuration is read from $WARDEN_CONFIG_PATH/warden.yml and the environment.
Run 'wardenctl configuration show' to see the effective values.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("as", "", "ID of the admin performing the action")
	rootCmd.PersistentFlags().String("client-ip", "", "Client IP address recorded in the audit trail")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func main() {
	Execute()
}
