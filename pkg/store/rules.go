package store

import (
	"context"

	"github.com/adminwarden/warden/pkg/model"
)

// RulesStore abstracts rule storage operations
type RulesStore interface {
	// RulesForGroup returns the rules attached directly to a group.
	RulesForGroup(ctx context.Context, groupID string) ([]model.Rule, error)

	// CreateRule inserts a rule. Returns ErrDuplicate if the slug is taken.
	CreateRule(ctx context.Context, rule *model.Rule) error

	// AttachRule attaches a rule to a group. Attaching twice is a no-op.
	AttachRule(ctx context.Context, groupID, ruleID string) error
}
