package store

import (
	"context"

	"github.com/adminwarden/warden/pkg/model"
)

// Profile holds the admin fields editable by another administrator
type Profile struct {
	Name      string
	Nickname  string
	Email     string
	Introduce string
	Status    model.Status
	Avatar    *string
}

// AdminsStore abstracts admin storage operations
type AdminsStore interface {
	// FetchAdmin retrieves an admin by id.
	// Returns ErrAdminNotFound if the admin doesn't exist.
	FetchAdmin(ctx context.Context, id string) (*model.Admin, error)

	// NameOrEmailTaken reports whether another admin (not excludeID) uses name or email.
	NameOrEmailTaken(ctx context.Context, name, email, excludeID string) (bool, error)

	// CreateAdmin inserts a new admin. Returns ErrDuplicate on a name/email clash.
	CreateAdmin(ctx context.Context, admin *model.Admin) error

	// UpdateProfile overwrites the editable profile fields.
	UpdateProfile(ctx context.Context, id string, profile Profile) error

	// UpdateAvatar sets the avatar digest.
	UpdateAvatar(ctx context.Context, id, avatar string) error

	// UpdatePassword stores a new password hash and salt.
	UpdatePassword(ctx context.Context, id, hash, salt string) error

	// UpdateStatus flips the enabled/disabled status.
	UpdateStatus(ctx context.Context, id string, status model.Status) error

	// DeleteAdmin removes the admin together with its group accesses in one transaction.
	DeleteAdmin(ctx context.Context, id string) error
}
