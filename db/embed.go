// Package db embeds the SQL migrations for the warden schema.
package db

import "embed"

// Migrations holds the migrations/*.sql files applied by golang-migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
