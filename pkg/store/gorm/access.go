package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/adminwarden/warden/pkg/store"
)

// Ensure AccessStore implements store.AccessStore
var _ store.AccessStore = (*AccessStore)(nil)

// AccessStore implements store.AccessStore using GORM
type AccessStore struct {
	db *gorm.DB
}

// NewAccessStore creates a new AccessStore
func NewAccessStore(db *gorm.DB) *AccessStore {
	return &AccessStore{db: db}
}

// Transaction wraps operations in a database transaction.
func (s *AccessStore) Transaction(ctx context.Context, fn func(store.AccessStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AccessStore{db: tx})
	})
}

// LockAdmin locks the admin row FOR UPDATE. It only serializes anything when
// called inside Transaction.
func (s *AccessStore) LockAdmin(ctx context.Context, adminID string) error {
	var ids []string
	tx := s.db.WithContext(ctx).Raw(`SELECT id FROM admins WHERE id = ? FOR UPDATE`, adminID).Pluck("id", &ids)
	if tx.Error != nil {
		return tx.Error
	}
	if len(ids) == 0 {
		return store.ErrAdminNotFound
	}
	return nil
}

// GroupIDsForAdmin returns the ids of the groups an admin belongs to
func (s *AccessStore) GroupIDsForAdmin(ctx context.Context, adminID string) ([]string, error) {
	var ids []string
	tx := s.db.WithContext(ctx).Raw(`
		SELECT group_id FROM group_accesses
		WHERE admin_id = ?
		ORDER BY group_id
	`, adminID).Pluck("group_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

// DeleteGroupAccess removes every membership of an admin
func (s *AccessStore) DeleteGroupAccess(ctx context.Context, adminID string) error {
	return s.db.WithContext(ctx).Exec(`DELETE FROM group_accesses WHERE admin_id = ?`, adminID).Error
}

// CreateGroupAccess inserts one membership per group id
func (s *AccessStore) CreateGroupAccess(ctx context.Context, adminID string, groupIDs []string) error {
	for _, groupID := range groupIDs {
		err := s.db.WithContext(ctx).Exec(`
			INSERT INTO group_accesses (admin_id, group_id) VALUES (?, ?)
			ON CONFLICT DO NOTHING
		`, adminID, groupID).Error
		if err != nil {
			return translate(err, store.ErrGroupNotFound)
		}
	}
	return nil
}
