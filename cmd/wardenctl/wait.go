package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/config"
	"github.com/adminwarden/warden/pkg/db"
	"github.com/adminwarden/warden/pkg/revocation"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the database and revocation backend to be ready",
	Long: `Wait for the database (and Redis, when revocation_backend is redis) to
accept connections.

This command will repeatedly check until every backend responds or the
maximum number of retries is reached.

Example:
  wardenctl wait
  wardenctl wait --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetInt("retries")

		if err := waitForBackends(cmd.Context(), retries, time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Backends did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("warden backends are ready")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForBackends(ctx context.Context, retries int, interval time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return db.ErrMissingURL
	}

	fmt.Println("Waiting for backends to be ready...")

	var lastErr error
	for i := 0; i < retries; i++ {
		if lastErr = ping(ctx, cfg); lastErr == nil {
			fmt.Println()
			return nil
		}

		fmt.Print(".")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	fmt.Println()
	return fmt.Errorf("gave up after %d attempts: %w", retries, lastErr)
}

func ping(ctx context.Context, cfg *config.WardenConfig) error {
	database, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}

	if cfg.RevocationBackend == config.BackendRedis {
		cache, err := revocation.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		_ = cache.Close()
	}
	return nil
}
