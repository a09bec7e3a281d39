package gorm

import (
	"errors"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/adminwarden/warden/pkg/store"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translate maps driver errors onto store sentinels. notFound is the
// sentinel used for missing rows and foreign-key violations.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return notFound
		case pgUniqueViolation:
			return store.ErrDuplicate
		}
	}
	return err
}
