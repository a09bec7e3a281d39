package revocation

import (
	"context"
	"time"
)

// Cache is a key/value store whose entries expire on their own
type Cache interface {
	// SetWithTTL stores value under key, replacing any existing entry and its expiry.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	// Exists reports whether key holds an unexpired entry.
	Exists(ctx context.Context, key string) (bool, error)
	// Close releases the backend.
	Close() error
}
