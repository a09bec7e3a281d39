package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(0)
	c := NewMemoryCache(0, WithMemoryClock(clock.Now))
	defer c.Close()

	require.NoError(t, c.SetWithTTL(ctx, "k", "v", 10*time.Second))

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Set(9)
	ok, _ = c.Exists(ctx, "k")
	assert.True(t, ok)

	clock.Set(10)
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCache_ResetTTL(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(0)
	c := NewMemoryCache(0, WithMemoryClock(clock.Now))
	defer c.Close()

	require.NoError(t, c.SetWithTTL(ctx, "k", "v", 10*time.Second))
	clock.Set(8)
	require.NoError(t, c.SetWithTTL(ctx, "k", "v", 10*time.Second))
	clock.Set(15)

	ok, _ := c.Exists(ctx, "k")
	assert.True(t, ok)
}

func TestMemoryCache_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(0)
	c := NewMemoryCache(0, WithMemoryClock(clock.Now))
	defer c.Close()

	require.NoError(t, c.SetWithTTL(ctx, "short", "v", time.Second))
	require.NoError(t, c.SetWithTTL(ctx, "long", "v", time.Hour))
	clock.Set(5)
	c.Sweep()

	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewMemoryCache(time.Millisecond)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
