package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adminwarden/warden/pkg/hierarchy"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/store"
)

// GrantManager replaces an admin's group memberships
type GrantManager struct {
	admins store.AdminsStore
	groups hierarchy.GroupLister
	access store.AccessStore
	logger *slog.Logger
}

// NewGrantManager creates a GrantManager. A nil logger uses slog.Default().
func NewGrantManager(admins store.AdminsStore, groups hierarchy.GroupLister, access store.AccessStore, logger *slog.Logger) *GrantManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &GrantManager{admins: admins, groups: groups, access: access, logger: logger}
}

// Permitted returns the subset of requested (deduplicated, in order) that
// acting may grant. Root identities may grant anything.
func (m *GrantManager) Permitted(ctx context.Context, requested []string, acting *identity.Identity) ([]string, error) {
	wanted := Dedup(requested)
	if acting != nil && acting.IsRoot {
		return wanted, nil
	}

	h, err := hierarchy.Load(ctx, m.groups)
	if err != nil {
		return nil, err
	}
	var own []string
	if acting != nil {
		own = acting.GroupIDs
	}
	reach, err := h.Closure(own)
	if err != nil {
		return nil, err
	}

	permitted := make([]string, 0, len(wanted))
	for _, id := range wanted {
		if _, ok := reach[id]; ok {
			permitted = append(permitted, id)
		}
	}
	return permitted, nil
}

// SetAccess makes the permitted part of requested the complete membership of target.
// Groups outside the acting admin's reach are dropped without error. Replaces
// of one target run one at a time under a lock on the admin.
func (m *GrantManager) SetAccess(ctx context.Context, target string, requested []string, acting *identity.Identity) error {
	if _, err := m.admins.FetchAdmin(ctx, target); err != nil {
		return err
	}

	permitted, err := m.Permitted(ctx, requested, acting)
	if err != nil {
		return err
	}

	if dropped := len(Dedup(requested)) - len(permitted); dropped > 0 {
		m.logger.DebugContext(ctx, "dropping out-of-scope groups from grant",
			"target", target, "dropped", dropped, "granted", len(permitted))
	}

	err = m.access.Transaction(ctx, func(tx store.AccessStore) error {
		// Concurrent replaces of the same target queue here, so the
		// DELETE below always sees the previous replace's rows.
		if err := tx.LockAdmin(ctx, target); err != nil {
			return err
		}
		if err := tx.DeleteGroupAccess(ctx, target); err != nil {
			return fmt.Errorf("clearing access: %w", err)
		}
		if len(permitted) == 0 {
			return nil
		}
		if err := tx.CreateGroupAccess(ctx, target, permitted); err != nil {
			return fmt.Errorf("granting access: %w", err)
		}
		return nil
	})
	return err
}
