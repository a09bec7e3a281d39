package db

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	migrations "github.com/adminwarden/warden/db"
)

// MigrationsTable is the table golang-migrate records the schema version in
const MigrationsTable = "warden_schema_migrations"

// MigrationStatus describes the schema version of a database
type MigrationStatus struct {
	Version uint
	Dirty   bool
	// Pristine is true when no migration has ever been applied
	Pristine bool
}

// WithMigrationsTable appends the x-migrations-table parameter to a database URL
func WithMigrationsTable(dbURL string) string {
	if strings.Contains(dbURL, "?") {
		return dbURL + "&x-migrations-table=" + MigrationsTable
	}
	return dbURL + "?x-migrations-table=" + MigrationsTable
}

func newMigrate(dbURL string) (*migrate.Migrate, error) {
	if dbURL == "" {
		return nil, ErrMissingURL
	}

	migrationsFS, err := fs.Sub(migrations.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to get embedded migrations: %w", err)
	}

	d, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, WithMigrationsTable(dbURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// MigrateUp applies all pending migrations. It reports whether anything changed.
func MigrateUp(dbURL string) (bool, error) {
	m, err := newMigrate(dbURL)
	if err != nil {
		return false, err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("migration failed: %w", err)
	}
	return true, nil
}

// MigrateDown rolls back the given number of migrations
func MigrateDown(dbURL string, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// Status returns the current migration version
func Status(dbURL string) (MigrationStatus, error) {
	m, err := newMigrate(dbURL)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return MigrationStatus{Pristine: true}, nil
		}
		return MigrationStatus{}, err
	}
	return MigrationStatus{Version: version, Dirty: dirty}, nil
}

// MigrationFiles lists the embedded up migrations in order
func MigrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrations.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
