package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
)

// Ensure GroupsStore implements store.GroupsStore
var _ store.GroupsStore = (*GroupsStore)(nil)

// GroupsStore implements store.GroupsStore using GORM
type GroupsStore struct {
	db *gorm.DB
}

// NewGroupsStore creates a new GroupsStore
func NewGroupsStore(db *gorm.DB) *GroupsStore {
	return &GroupsStore{db: db}
}

// ListGroups returns every group ordered by id
func (s *GroupsStore) ListGroups(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	tx := s.db.WithContext(ctx).Raw(`
		SELECT id, parent_id, title, description, created_at
		FROM groups
		ORDER BY id
	`).Scan(&groups)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return groups, nil
}

// FetchGroups returns the groups with the given ids
func (s *GroupsStore) FetchGroups(ctx context.Context, ids []string) ([]model.Group, error) {
	groups := make([]model.Group, 0, len(ids))
	if len(ids) == 0 {
		return groups, nil
	}
	tx := s.db.WithContext(ctx).Raw(`
		SELECT id, parent_id, title, description, created_at
		FROM groups
		WHERE id IN ?
		ORDER BY id
	`, ids).Scan(&groups)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return groups, nil
}

// CreateGroup inserts a group
func (s *GroupsStore) CreateGroup(ctx context.Context, g *model.Group) error {
	err := s.db.WithContext(ctx).Exec(`
		INSERT INTO groups (id, parent_id, title, description)
		VALUES (?, ?, ?, ?)
	`, g.ID, g.ParentID, g.Title, g.Description).Error
	return translate(err, store.ErrGroupNotFound)
}

// SetParent moves a group under parentID
func (s *GroupsStore) SetParent(ctx context.Context, id, parentID string) error {
	var parent *string
	if parentID != "" {
		parent = &parentID
	}
	result := s.db.WithContext(ctx).Exec(`UPDATE groups SET parent_id = ? WHERE id = ?`, parent, id)
	return rowsOrNotFound(result, store.ErrGroupNotFound)
}
