// Package token issues and decodes refresh tokens.
//
// Refresh tokens are HS256 JWTs whose jti is the configured refresh-token id
// and whose adminid claim names the administrator the token was issued to.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carried by a refresh token
type Claims struct {
	AdminID string `json:"adminid"`
	jwt.RegisteredClaims
}

// Lifetime returns exp - iat, the span the token was issued for
func (c *Claims) Lifetime() time.Duration {
	if c.ExpiresAt == nil || c.IssuedAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(c.IssuedAt.Time)
}

// Codec signs and verifies refresh tokens
type Codec struct {
	secret  []byte
	tokenID string
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Codec
type Option func(*Codec)

// WithClock replaces the wall clock, used for issuing and for expiry checks
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec creates a Codec. tokenID is the jti every refresh token carries.
func NewCodec(secret []byte, tokenID string, ttl time.Duration, opts ...Option) *Codec {
	c := &Codec{secret: secret, tokenID: tokenID, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue creates a signed refresh token for adminID
func (c *Codec) Issue(adminID string) (string, error) {
	if adminID == "" {
		return "", fmt.Errorf("%w: empty admin id", ErrInvalidToken)
	}
	now := c.now()
	claims := Claims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.tokenID,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies raw and returns its claims
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing iat", ErrInvalidToken)
	}
	if claims.ID != c.tokenID {
		return nil, fmt.Errorf("%w: unexpected jti", ErrInvalidToken)
	}
	if claims.AdminID == "" {
		return nil, fmt.Errorf("%w: missing adminid", ErrInvalidToken)
	}
	if claims.Lifetime() <= 0 {
		return nil, fmt.Errorf("%w: exp not after iat", ErrInvalidToken)
	}
	return claims, nil
}
