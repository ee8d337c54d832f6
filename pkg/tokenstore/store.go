// Package tokenstore persists the credential pair a session holds for the
// Lantern API: the short-lived access token and the longer-lived refresh
// token. Stores are pure persistence, they carry no refresh or expiry policy.
package tokenstore

import "context"

// Credential is the token pair held for one session. The access token is
// opaque to the store; only the session layer decodes it. A missing refresh
// token is represented by the empty string.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// IsZero reports whether no credential is held at all.
func (c Credential) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// Store is durable key/value persistence for a single credential pair.
//
// Implementations must make Set atomic with respect to readers: Get never
// observes an access token from one Set paired with a refresh token from
// another. Get returns the zero Credential (and a nil error) when nothing is
// persisted, and Clear is idempotent.
type Store interface {
	Get(ctx context.Context) (Credential, error)
	Set(ctx context.Context, cred Credential) error
	Clear(ctx context.Context) error
}
