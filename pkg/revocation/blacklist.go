package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

// ErrInvalidTTL is returned when a token would be blacklisted for no time at all
var ErrInvalidTTL = errors.New("revocation ttl must be positive")

// Fingerprint returns the blacklist key for a raw token
func Fingerprint(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

// Blacklist records revoked token fingerprints in a Cache
type Blacklist struct {
	cache Cache
	now   func() time.Time
}

// NewBlacklist creates a Blacklist over cache
func NewBlacklist(cache Cache, now func() time.Time) *Blacklist {
	if now == nil {
		now = time.Now
	}
	return &Blacklist{cache: cache, now: now}
}

// Add blacklists fingerprint for ttl. Re-adding resets the expiry.
func (b *Blacklist) Add(ctx context.Context, fingerprint string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	revokedAt := strconv.FormatInt(b.now().Unix(), 10)
	return b.cache.SetWithTTL(ctx, fingerprint, revokedAt, ttl)
}

// Contains reports whether fingerprint is currently blacklisted
func (b *Blacklist) Contains(ctx context.Context, fingerprint string) (bool, error) {
	return b.cache.Exists(ctx, fingerprint)
}

// IsRevoked reports whether the raw token is currently blacklisted
func (b *Blacklist) IsRevoked(ctx context.Context, rawToken string) (bool, error) {
	return b.Contains(ctx, Fingerprint(rawToken))
}
