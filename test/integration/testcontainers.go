package integration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/adminwarden/warden/pkg/db"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	RawDB       *sql.DB
	Container   testcontainers.Container
	DatabaseURL string // Connection string for the test database
}

// NewTestContext starts PostgreSQL in a testcontainer and applies the embedded migrations.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("warden_test"),
		tcpostgres.WithUsername("warden"),
		tcpostgres.WithPassword("warden"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	// Get connection string for the host (not container network)
	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://warden:warden@%s:%s/warden_test?sslmode=disable", host, port.Port())

	if _, err := db.MigrateUp(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	database, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	rawDB, err := database.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	return &TestContext{
		DB:          database,
		RawDB:       rawDB,
		Container:   pgContainer,
		DatabaseURL: connStr,
	}, nil
}

// Reset empties every table between scenarios
func (tc *TestContext) Reset() error {
	_, err := tc.RawDB.Exec(`TRUNCATE group_accesses, rule_accesses, rules, groups, admins, messages`)
	return err
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
