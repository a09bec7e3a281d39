package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func TestIssueDecode(t *testing.T) {
	c := NewCodec(secret, "refresh", time.Hour, WithClock(fixedClock(1000)))

	raw, err := c.Issue("admin-1")
	require.NoError(t, err)

	claims, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "refresh", claims.ID)
	assert.Equal(t, int64(1000), claims.IssuedAt.Unix())
	assert.Equal(t, time.Hour, claims.Lifetime())
}

func TestDecode_Expired(t *testing.T) {
	issuer := NewCodec(secret, "refresh", time.Hour, WithClock(fixedClock(1000)))
	raw, err := issuer.Issue("admin-1")
	require.NoError(t, err)

	later := NewCodec(secret, "refresh", time.Hour, WithClock(fixedClock(1000+7200)))
	_, err = later.Decode(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDecode_Rejects(t *testing.T) {
	c := NewCodec(secret, "refresh", time.Hour, WithClock(fixedClock(1000)))

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return raw
	}
	valid := func() Claims {
		return Claims{
			AdminID: "admin-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "refresh",
				IssuedAt:  jwt.NewNumericDate(time.Unix(1000, 0)),
				ExpiresAt: jwt.NewNumericDate(time.Unix(4600, 0)),
			},
		}
	}

	wrongJTI := valid()
	wrongJTI.ID = "access"
	noIAT := valid()
	noIAT.IssuedAt = nil
	noExp := valid()
	noExp.ExpiresAt = nil
	noAdmin := valid()
	noAdmin.AdminID = ""

	tests := map[string]string{
		"garbage":      "not.a.token",
		"wrong secret": sign(valid(), jwt.SigningMethodHS256, []byte("another-secret-another-secret-!!")),
		"wrong method": sign(valid(), jwt.SigningMethodHS512, secret),
		"wrong jti":    sign(wrongJTI, jwt.SigningMethodHS256, secret),
		"missing iat":  sign(noIAT, jwt.SigningMethodHS256, secret),
		"missing exp":  sign(noExp, jwt.SigningMethodHS256, secret),
		"missing id":   sign(noAdmin, jwt.SigningMethodHS256, secret),
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIssue_EmptyAdmin(t *testing.T) {
	c := NewCodec(secret, "refresh", time.Hour)
	_, err := c.Issue("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
