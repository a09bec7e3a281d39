package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
)

// Ensure AdminsStore implements store.AdminsStore
var _ store.AdminsStore = (*AdminsStore)(nil)

// AdminsStore implements store.AdminsStore using GORM
type AdminsStore struct {
	db *gorm.DB
}

// NewAdminsStore creates a new AdminsStore
func NewAdminsStore(db *gorm.DB) *AdminsStore {
	return &AdminsStore{db: db}
}

// FetchAdmin retrieves an admin by id
func (s *AdminsStore) FetchAdmin(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	tx := s.db.WithContext(ctx).Where("id = ?", id).First(&admin)
	if tx.Error != nil {
		return nil, translate(tx.Error, store.ErrAdminNotFound)
	}
	return &admin, nil
}

// NameOrEmailTaken reports whether another admin already uses name or email
func (s *AdminsStore) NameOrEmailTaken(ctx context.Context, name, email, excludeID string) (bool, error) {
	var count int64
	tx := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM admins
		WHERE (name = ? OR (email <> '' AND email = ?)) AND id <> ?
	`, name, email, excludeID).Scan(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// CreateAdmin inserts a new admin
func (s *AdminsStore) CreateAdmin(ctx context.Context, a *model.Admin) error {
	err := s.db.WithContext(ctx).Exec(`
		INSERT INTO admins (id, name, nickname, email, introduce, password_hash, password_salt, avatar, status, is_root, created_ip)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.Nickname, a.Email, a.Introduce, a.PasswordHash, a.PasswordSalt, a.Avatar, int(a.Status), a.IsRoot, a.CreatedIP).Error
	return translate(err, store.ErrAdminNotFound)
}

// UpdateProfile overwrites the editable profile fields
func (s *AdminsStore) UpdateProfile(ctx context.Context, id string, p store.Profile) error {
	result := s.db.WithContext(ctx).Exec(`
		UPDATE admins SET name = ?, nickname = ?, email = ?, introduce = ?, status = ?, avatar = ?
		WHERE id = ?
	`, p.Name, p.Nickname, p.Email, p.Introduce, int(p.Status), p.Avatar, id)
	return rowsOrNotFound(result, store.ErrAdminNotFound)
}

// UpdateAvatar sets the avatar digest
func (s *AdminsStore) UpdateAvatar(ctx context.Context, id, avatar string) error {
	result := s.db.WithContext(ctx).Exec(`UPDATE admins SET avatar = ? WHERE id = ?`, avatar, id)
	return rowsOrNotFound(result, store.ErrAdminNotFound)
}

// UpdatePassword stores a new password hash and salt
func (s *AdminsStore) UpdatePassword(ctx context.Context, id, hash, salt string) error {
	result := s.db.WithContext(ctx).Exec(`UPDATE admins SET password_hash = ?, password_salt = ? WHERE id = ?`, hash, salt, id)
	return rowsOrNotFound(result, store.ErrAdminNotFound)
}

// UpdateStatus flips the enabled/disabled status
func (s *AdminsStore) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	result := s.db.WithContext(ctx).Exec(`UPDATE admins SET status = ? WHERE id = ?`, int(status), id)
	return rowsOrNotFound(result, store.ErrAdminNotFound)
}

// DeleteAdmin removes the admin and its group accesses in one transaction
func (s *AdminsStore) DeleteAdmin(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM group_accesses WHERE admin_id = ?`, id).Error; err != nil {
			return err
		}
		result := tx.Exec(`DELETE FROM admins WHERE id = ?`, id)
		return rowsOrNotFound(result, store.ErrAdminNotFound)
	})
}

func rowsOrNotFound(result *gorm.DB, notFound error) error {
	if result.Error != nil {
		return translate(result.Error, notFound)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
