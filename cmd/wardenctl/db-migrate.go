package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/config"
	"github.com/adminwarden/warden/pkg/db"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

This command runs all pending database migrations to bring the schema
up to date. Migrations are embedded in the binary.

Example:
  wardenctl db migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(); err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  wardenctl db down      # Rollback 1 migration
  wardenctl db down 3    # Rollback 3 migrations`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps, err := parseSteps(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rollback failed: %v\n", err)
			os.Exit(1)
		}
		if err := runMigrationsDown(steps); err != nil {
			fmt.Fprintf(os.Stderr, "Rollback failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Long:  `Show the current database migration version.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showMigrationStatus(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get status: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbMigrateStatusCmd)
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 1 {
		return 0, fmt.Errorf("invalid number of steps: %q", args[0])
	}
	return steps, nil
}

// databaseURL only needs database_url, so the rest of the configuration is not validated
func databaseURL() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return "", db.ErrMissingURL
	}
	return cfg.DatabaseURL, nil
}

func runMigrations() error {
	dbURL, err := databaseURL()
	if err != nil {
		return err
	}

	before, err := db.Status(dbURL)
	if err != nil {
		return err
	}
	fmt.Printf("Current version: %d (dirty: %v)\n", before.Version, before.Dirty)

	changed, err := db.MigrateUp(dbURL)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("No migrations to run - database is up to date")
		return nil
	}

	after, err := db.Status(dbURL)
	if err != nil {
		return err
	}
	fmt.Printf("Migrated to version: %d\n", after.Version)
	fmt.Println("Migrations complete")
	return nil
}

func runMigrationsDown(steps int) error {
	dbURL, err := databaseURL()
	if err != nil {
		return err
	}

	fmt.Printf("Rolling back %d migration(s)...\n", steps)
	if err := db.MigrateDown(dbURL, steps); err != nil {
		return err
	}

	status, err := db.Status(dbURL)
	if err != nil {
		return err
	}
	if status.Pristine {
		fmt.Println("Rolled back all migrations")
		return nil
	}
	fmt.Printf("Rolled back to version: %d\n", status.Version)
	return nil
}

func showMigrationStatus() error {
	dbURL, err := databaseURL()
	if err != nil {
		return err
	}

	status, err := db.Status(dbURL)
	if err != nil {
		return err
	}
	if status.Pristine {
		fmt.Println("No migrations have been applied yet")
		return nil
	}

	fmt.Printf("Current version: %d\n", status.Version)
	if status.Dirty {
		fmt.Println("Warning: Database is in a dirty state")
	}

	files, err := db.MigrationFiles()
	if err != nil {
		return err
	}
	fmt.Printf("Embedded migrations: %d\n", len(files))
	return nil
}
