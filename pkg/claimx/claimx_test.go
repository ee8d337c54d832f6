package claimx_test

import (
	"testing"
	"time"

	"github.com/lanternware/lantern-go/pkg/claimx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func TestDecode(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute)
	token := mintToken(t, jwt.MapClaims{
		"sub":      "user-123",
		"username": "alice",
		"email":    "alice@example.com",
		"role":     "admin",
		"exp":      exp.Unix(),
	})

	claims, err := claimx.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, exp.Unix(), claims.ExpiresAt)
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "aGVhZGVy.cGF5bG9hZA"},
		{"payload not json", "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.c2ln"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := claimx.Decode(tc.token)
			require.ErrorIs(t, err, claimx.ErrMalformedToken)
		})
	}
}

func TestDecodeIgnoresSignature(t *testing.T) {
	t.Parallel()

	token := mintToken(t, jwt.MapClaims{"sub": "user-123", "exp": time.Now().Add(time.Hour).Unix()})

	// Decoding is unverified, so a clobbered signature still decodes
	tampered := token[:len(token)-4] + "AAAA"
	claims, err := claimx.Decode(tampered)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	require.True(t, claimx.IsExpired(claimx.Claims{ExpiresAt: now.Unix() - 1}, now))
	require.True(t, claimx.IsExpired(claimx.Claims{ExpiresAt: now.Unix()}, now), "expiry at now counts as expired")
	require.False(t, claimx.IsExpired(claimx.Claims{ExpiresAt: now.Unix() + 1}, now))

	// Tokens without an exp claim read as already expired
	require.True(t, claimx.IsExpired(claimx.Claims{}, now))
}
