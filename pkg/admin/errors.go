package admin

import (
	"errors"
	"fmt"

	"github.com/adminwarden/warden/pkg/hierarchy"
	"github.com/adminwarden/warden/pkg/password"
	"github.com/adminwarden/warden/pkg/revocation"
	"github.com/adminwarden/warden/pkg/store"
	"github.com/adminwarden/warden/pkg/token"
)

// Error kinds returned by administrative operations. Callers match them with
// errors.Is; the underlying cause stays matchable too.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrSelfModification = errors.New("administrators cannot perform this action on themselves")
	ErrProtectedAccount = errors.New("account is protected")
	ErrAlreadyInState   = errors.New("admin is already in the requested state")
	ErrAlreadyRevoked   = errors.New("token is already revoked")
	ErrTokenInvalid     = errors.New("token is expired or invalid")
	ErrSelfRevocation   = errors.New("administrators cannot revoke their own refresh token")
	ErrCycleDetected    = errors.New("group hierarchy cycle")
	ErrAlreadyExists    = errors.New("already exists")
	ErrForbidden        = errors.New("operation requires the root administrator")
)

// kindOf maps lower-layer sentinels onto the error kinds above
func kindOf(err error) error {
	switch {
	case errors.Is(err, store.ErrAdminNotFound),
		errors.Is(err, store.ErrGroupNotFound),
		errors.Is(err, store.ErrRuleNotFound),
		errors.Is(err, hierarchy.ErrGroupNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, password.ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, hierarchy.ErrCycleDetected):
		return ErrCycleDetected
	case errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrExpiredToken),
		errors.Is(err, revocation.ErrInvalidTTL):
		return ErrTokenInvalid
	}
	return nil
}

// translate wraps err with its kind. Errors that already carry a kind, or
// have none, are returned unchanged.
func translate(err error) error {
	if err == nil || isKind(err) {
		return err
	}
	if kind := kindOf(err); kind != nil {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return err
}

func isKind(err error) bool {
	for _, k := range []error{
		ErrInvalidInput, ErrNotFound, ErrSelfModification, ErrProtectedAccount,
		ErrAlreadyInState, ErrAlreadyRevoked, ErrTokenInvalid, ErrSelfRevocation,
		ErrCycleDetected, ErrAlreadyExists, ErrForbidden,
	} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
