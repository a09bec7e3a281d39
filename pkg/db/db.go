package db

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrMissingURL is returned when no database URL is configured
var ErrMissingURL = errors.New("database_url is required (set DATABASE_URL or database_url in warden.yml)")

// Config holds database connection configuration
type Config struct {
	// URL is the PostgreSQL connection URL
	URL string
	// Debug enables GORM statement logging
	Debug bool
}

// Connect establishes a database connection.
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, ErrMissingURL
	}

	// Default to silent logging unless debug logging is configured
	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logMode),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
