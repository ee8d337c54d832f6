// Package claimx decodes the payload segment of a Lantern access token into
// user claims without verifying the signature. Signature verification is the
// server's job; decoded claims are advisory only and must never gate anything
// beyond client-side display and routing.
package claimx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken reports a token that does not have the expected
// header.payload.signature structure or whose payload is not valid JSON.
var ErrMalformedToken = errors.New("claimx: malformed token")

// Claims are the user attributes carried in an access token payload.
type Claims struct {
	// Subject is the user's unique identifier (the "sub" claim).
	Subject string

	Username string
	Email    string
	Role     string

	// ExpiresAt is the expiry as epoch seconds (the "exp" claim).
	ExpiresAt int64
}

// tokenClaims is the wire shape of the payload segment.
type tokenClaims struct {
	jwt.RegisteredClaims

	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Decode extracts claims from accessToken. It is a pure function with no
// side effects and performs no signature or issuer validation.
func Decode(accessToken string) (Claims, error) {
	var tc tokenClaims

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %s", ErrMalformedToken, err)
	}

	claims := Claims{
		Subject:  tc.Subject,
		Username: tc.Username,
		Email:    tc.Email,
		Role:     tc.Role,
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Unix()
	}

	return claims, nil
}

// IsExpired reports whether the claims' expiry is at or before now. This is
// an optimistic client-side check to avoid firing obviously-doomed requests,
// not a security boundary.
func IsExpired(claims Claims, now time.Time) bool {
	return claims.ExpiresAt <= now.Unix()
}
