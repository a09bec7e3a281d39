package admin

import (
	"context"

	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/password"
)

// ChangePassword replaces target's password with one derived from digest,
// a 32 character client-side hash, under a fresh salt.
func (s *Service) ChangePassword(ctx context.Context, target, digest string, acting *identity.Identity) (err error) {
	defer func() {
		s.auditor.Log(audit.PasswordEvent{
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

	hash, err := s.hash(digest)
	if err != nil {
		return err
	}
	return translate(s.admins.UpdatePassword(ctx, target, hash.Password, hash.Salt))
}

// hash encrypts digest under a freshly drawn salt
func (s *Service) hash(digest string) (password.Hash, error) {
	salt, err := s.passwords.NewSalt()
	if err != nil {
		return password.Hash{}, err
	}
	hash, err := s.passwords.Encrypt(digest, salt)
	if err != nil {
		return password.Hash{}, translate(err)
	}
	return hash, nil
}
