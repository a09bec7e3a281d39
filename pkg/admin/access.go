package admin

import (
	"context"

	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
)

// SetAccess replaces target's group memberships with the groups in groupIDs
// that acting is allowed to grant.
func (s *Service) SetAccess(ctx context.Context, target string, groupIDs []string, acting *identity.Identity) (err error) {
	defer func() {
		s.auditor.Log(audit.AccessEvent{
			ActorID:      actor(acting),
			TargetID:     target,
			ClientIP:     acting.ClientIP(),
			Requested:    groupIDs,
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	return translate(s.grants.SetAccess(ctx, target, groupIDs, acting))
}

// Detail is an admin together with the groups it belongs to
type Detail struct {
	Admin  model.Admin
	Groups []model.Group
}

// Detail returns target and its groups
func (s *Service) Detail(ctx context.Context, target string) (*Detail, error) {
	a, err := s.fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	ids, err := s.access.GroupIDsForAdmin(ctx, target)
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.FetchGroups(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &Detail{Admin: *a, Groups: groups}, nil
}

// Rules returns the effective rules of target
func (s *Service) Rules(ctx context.Context, target string) ([]model.Rule, error) {
	if _, err := s.fetch(ctx, target); err != nil {
		return nil, err
	}
	ids, err := s.access.GroupIDsForAdmin(ctx, target)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveRules(ctx, ids)
}
