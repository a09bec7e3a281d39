package store

import (
	"context"

	"github.com/adminwarden/warden/pkg/model"
)

// GroupsStore abstracts group storage operations
type GroupsStore interface {
	// ListGroups returns the whole group forest.
	ListGroups(ctx context.Context) ([]model.Group, error)

	// FetchGroups returns the groups with the given ids; unknown ids are skipped.
	FetchGroups(ctx context.Context, ids []string) ([]model.Group, error)

	// CreateGroup inserts a group. Returns ErrGroupNotFound if the parent is missing.
	CreateGroup(ctx context.Context, group *model.Group) error

	// SetParent moves a group under parentID ("" makes it a root).
	SetParent(ctx context.Context, id, parentID string) error
}
