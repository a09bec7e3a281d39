package store

import "context"

// AccessStore abstracts admin/group membership storage
type AccessStore interface {
	// Transaction wraps operations in a database transaction.
	// The provided function receives a transactional AccessStore.
	// If the function returns an error, the transaction is rolled back.
	Transaction(ctx context.Context, fn func(AccessStore) error) error

	// LockAdmin takes a row lock on the admin until the surrounding transaction
	// ends, serializing membership replaces for that admin.
	// Returns ErrAdminNotFound if the admin doesn't exist.
	LockAdmin(ctx context.Context, adminID string) error

	// GroupIDsForAdmin returns the ids of the groups an admin belongs to.
	GroupIDsForAdmin(ctx context.Context, adminID string) ([]string, error)

	// DeleteGroupAccess removes every membership of an admin.
	DeleteGroupAccess(ctx context.Context, adminID string) error

	// CreateGroupAccess inserts one membership per group id.
	// Returns ErrGroupNotFound if a group doesn't exist.
	CreateGroupAccess(ctx context.Context, adminID string, groupIDs []string) error
}
