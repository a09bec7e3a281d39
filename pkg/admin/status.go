package admin

import (
	"context"
	"fmt"

	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
)

// Enable allows target to act again
func (s *Service) Enable(ctx context.Context, target string, acting *identity.Identity) error {
	return s.setStatus(ctx, target, model.StatusEnabled, acting)
}

// Disable stops target from acting
func (s *Service) Disable(ctx context.Context, target string, acting *identity.Identity) error {
	return s.setStatus(ctx, target, model.StatusDisabled, acting)
}

func (s *Service) setStatus(ctx context.Context, target string, status model.Status, acting *identity.Identity) (err error) {
	defer func() {
		s.auditor.Log(audit.StatusEvent{
			ActorID:      actor(acting),
			TargetID:     target,
			ClientIP:     acting.ClientIP(),
			Enable:       status == model.StatusEnabled,
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if err := guardOther(target, acting); err != nil {
		return err
	}
	a, err := s.fetch(ctx, target)
	if err != nil {
		return err
	}
	if a.Status == status {
		return fmt.Errorf("%w: %s", ErrAlreadyInState, status)
	}
	return translate(s.admins.UpdateStatus(ctx, target, status))
}

// Delete removes target and all of its group memberships
func (s *Service) Delete(ctx context.Context, target string, acting *identity.Identity) (err error) {
	defer func() {
		s.auditor.Log(audit.DeleteEvent{
			ActorID:      actor(acting),
			TargetID:     target,
			ClientIP:     acting.ClientIP(),
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if err := guardOther(target, acting); err != nil {
		return err
	}
	if _, err := s.fetch(ctx, target); err != nil {
		return err
	}
	if s.rootAdminID != "" && target == s.rootAdminID {
		return ErrProtectedAccount
	}
	return translate(s.admins.DeleteAdmin(ctx, target))
}
