package admin

import (
	"context"
	"fmt"

	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/revocation"
)

// RevokeRefreshToken blacklists another admin's refresh token for the
// token's full issued lifetime (exp - iat), counted from now.
func (s *Service) RevokeRefreshToken(ctx context.Context, raw string, acting *identity.Identity) (err error) {
	var subject, fingerprint string
	defer func() {
		s.auditor.Log(audit.RevokeEvent{
			ActorID:      actor(acting),
			SubjectID:    subject,
			Fingerprint:  fingerprint,
			ClientIP:     acting.ClientIP(),
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if raw == "" {
		return fmt.Errorf("%w: empty refresh token", ErrInvalidInput)
	}
	fingerprint = revocation.Fingerprint(raw)

	revoked, err := s.blacklist.Contains(ctx, fingerprint)
	if err != nil {
		return fmt.Errorf("checking blacklist: %w", err)
	}
	if revoked {
		return ErrAlreadyRevoked
	}

	claims, err := s.tokens.Decode(raw)
	if err != nil {
		return translate(err)
	}
	subject = claims.AdminID
	if acting.Is(subject) {
		return ErrSelfRevocation
	}

	return translate(s.blacklist.Add(ctx, fingerprint, claims.Lifetime()))
}
