package revocation

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a thread-safe in-process Cache.
// A background goroutine periodically removes expired entries.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	done    chan struct{}
	closed  bool
}

// MemoryOption configures a MemoryCache
type MemoryOption func(*MemoryCache)

// WithMemoryClock replaces the wall clock used for expiry
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) { c.now = now }
}

// NewMemoryCache creates a MemoryCache that sweeps expired entries every interval.
// A non-positive interval disables the sweeper; expired entries are still never reported.
func NewMemoryCache(interval time.Duration, opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if interval > 0 {
		go c.cleanup(interval)
	}
	return c
}

// SetWithTTL stores value under key until ttl elapses
func (c *MemoryCache) SetWithTTL(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

// Exists reports whether key holds an unexpired entry
func (c *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return c.now().Before(entry.expiresAt), nil
}

// Len returns the number of stored entries, expired or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.done:
			return
		}
	}
}

// Sweep removes all expired entries
func (c *MemoryCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Close stops the background cleanup goroutine. It is safe to call multiple times.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.done)
		c.closed = true
	}
	return nil
}
