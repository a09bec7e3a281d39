package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}

const digest = "0123456789abcdef0123456789abcdef"

func newTestHasher() *Hasher {
	return NewHasher("server-salt").WithParams(fastParams)
}

func TestNewSalt(t *testing.T) {
	h := newTestHasher()

	salt, err := h.NewSalt()
	require.NoError(t, err)
	assert.Len(t, salt, SaltBytes*2)

	other, err := h.NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)
}

func TestEncrypt_Deterministic(t *testing.T) {
	h := newTestHasher()

	for _, salt := range []string{"abc123", ""} {
		first, err := h.Encrypt(digest, salt)
		require.NoError(t, err)
		second, err := h.Encrypt(digest, salt)
		require.NoError(t, err)

		assert.Equal(t, first, second, "salt %q", salt)
		assert.Equal(t, salt, first.Salt)
		assert.Len(t, first.Password, 64)
	}

	a, err := h.Encrypt(digest, "abc123")
	require.NoError(t, err)
	b, err := h.Encrypt(digest, "")
	require.NoError(t, err)
	assert.NotEqual(t, a.Password, b.Password)
}

func TestEncrypt_PepperChangesDigest(t *testing.T) {
	a, err := NewHasher("one").WithParams(fastParams).Encrypt(digest, "abc123")
	require.NoError(t, err)
	b, err := NewHasher("two").WithParams(fastParams).Encrypt(digest, "abc123")
	require.NoError(t, err)
	assert.NotEqual(t, a.Password, b.Password)
}

func TestEncrypt_InvalidLength(t *testing.T) {
	h := newTestHasher()

	for _, in := range []string{"", "short", strings.Repeat("x", 31), strings.Repeat("x", 33), strings.Repeat("é", 33)} {
		_, err := h.Encrypt(in, "")
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestEncrypt_CountsCharacters(t *testing.T) {
	h := newTestHasher()

	// 32 characters, 33 bytes
	in := "é" + strings.Repeat("a", 31)
	require.Len(t, in, 33)

	hash, err := h.Encrypt(in, "abc123")
	require.NoError(t, err)
	assert.True(t, h.Verify(in, "abc123", hash.Password))
}

func TestVerify_RoundTrip(t *testing.T) {
	h := newTestHasher()

	salt, err := h.NewSalt()
	require.NoError(t, err)
	hash, err := h.Encrypt(digest, salt)
	require.NoError(t, err)

	for _, s := range []string{salt, "fixed", ""} {
		got, err := h.Encrypt(digest, s)
		require.NoError(t, err)
		assert.True(t, h.Verify(digest, s, got.Password), "salt %q", s)
	}

	assert.True(t, h.Verify(digest, hash.Salt, hash.Password))
	assert.False(t, h.Verify(strings.Repeat("f", 32), hash.Salt, hash.Password))
	assert.False(t, h.Verify(digest, "other", hash.Password))
	assert.False(t, h.Verify(digest, hash.Salt, "not-hex"))
	assert.False(t, h.Verify("short", hash.Salt, hash.Password))
}
