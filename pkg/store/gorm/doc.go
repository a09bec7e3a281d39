// Package gorm implements the store interfaces on PostgreSQL through GORM.
//
// Queries are written as raw SQL with positional placeholders so that they
// read the same as the migrations under db/migrations. Constraint violations
// reported by the driver are translated into the sentinel errors of the
// store package.
package gorm
