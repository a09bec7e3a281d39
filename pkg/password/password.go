// Package password derives stored password digests from the fixed-length
// digests clients submit.
//
// Clients never send a raw password. They send a 32 character digest which is
// stretched with Argon2id, keyed by a per-admin salt plus the server-wide
// salt from configuration. Encrypt is a pure function of its inputs; callers
// storing a new password draw the salt from NewSalt first.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
)

// DigestLength is the exact length, in characters, of a client-submitted password digest
const DigestLength = 32

// SaltBytes is the number of random bytes in a generated per-admin salt
const SaltBytes = 6

// ErrInvalidInput is returned when the submitted digest has the wrong length
var ErrInvalidInput = errors.New("password digest must be 32 characters")

// Params are the Argon2id cost parameters
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

// DefaultParams follow the OWASP Argon2id recommendation
var DefaultParams = Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 1,
	KeyLen:  32,
}

// Hash is a stored password digest together with the salt that produced it
type Hash struct {
	Password string
	Salt     string
}

// Hasher turns client digests into stored digests
type Hasher struct {
	pepper string
	params Params
}

// NewHasher creates a Hasher keyed by the server-wide salt
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper, params: DefaultParams}
}

// WithParams returns a copy of h using the given cost parameters
func (h *Hasher) WithParams(p Params) *Hasher {
	return &Hasher{pepper: h.pepper, params: p}
}

// ValidDigest reports whether digest is exactly DigestLength characters long
func ValidDigest(digest string) bool {
	return utf8.RuneCountInString(digest) == DigestLength
}

// NewSalt returns a random hex salt of SaltBytes bytes
func (h *Hasher) NewSalt() (string, error) {
	b := make([]byte, SaltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Encrypt derives the stored digest for plaintext under salt. The same
// inputs always produce the same Hash, including an empty salt.
func (h *Hasher) Encrypt(plaintext, salt string) (Hash, error) {
	if !ValidDigest(plaintext) {
		return Hash{}, ErrInvalidInput
	}
	return Hash{Password: hex.EncodeToString(h.derive(plaintext, salt)), Salt: salt}, nil
}

// Verify reports whether plaintext with salt produces hash
func (h *Hasher) Verify(plaintext, salt, hash string) bool {
	if !ValidDigest(plaintext) {
		return false
	}
	want, err := hex.DecodeString(hash)
	if err != nil || len(want) != int(h.params.KeyLen) {
		return false
	}
	return subtle.ConstantTimeCompare(want, h.derive(plaintext, salt)) == 1
}

func (h *Hasher) derive(plaintext, salt string) []byte {
	p := h.params
	return argon2.IDKey([]byte(plaintext), []byte(salt+h.pepper), p.Time, p.Memory, p.Threads, p.KeyLen)
}
