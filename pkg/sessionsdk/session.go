package sessionsdk

import (
	"context"
	"net/http"
	"time"

	"github.com/lanternware/lantern-go/pkg/claimx"
	"github.com/lanternware/lantern-go/pkg/tokenstore"
)

// Session is the authenticated surface of the SDK. Each Session owns its own
// credential store and refresh coordinator, so independent sessions (and
// tests) never share hidden state. Sessions are safe for concurrent use.
type Session struct {
	client      *Client
	store       tokenstore.Store
	coordinator *refreshCoordinator
}

func newSession(client *Client, store tokenstore.Store) *Session {
	return &Session{
		client:      client,
		store:       store,
		coordinator: newRefreshCoordinator(client, store),
	}
}

// IsAuthenticated reports whether the session holds a well-formed,
// unexpired access token. It is synchronous and never touches the network,
// which makes it suitable for route-guard style decisions.
func (s *Session) IsAuthenticated() bool {
	claims, ok := s.CurrentClaims()
	return ok && !claimx.IsExpired(claims, time.Now())
}

// CurrentClaims decodes the stored access token's claims. The second return
// is false when no token is stored or it cannot be decoded. Claims are
// advisory; the server re-checks authorization on every request.
func (s *Session) CurrentClaims() (claimx.Claims, bool) {
	cred, err := s.store.Get(context.Background())
	if err != nil || cred.AccessToken == "" {
		return claimx.Claims{}, false
	}

	claims, err := claimx.Decode(cred.AccessToken)
	if err != nil {
		return claimx.Claims{}, false
	}

	return claims, true
}

// RefreshState reports the refresh coordinator's current state.
func (s *Session) RefreshState() RefreshState {
	return s.coordinator.State()
}

// Store exposes the session's credential store.
func (s *Session) Store() tokenstore.Store {
	return s.store
}

// Logout revokes the session server-side and clears local credentials. The
// local clear always happens: client-side access decisions are driven by
// local state, and the server invalidates its own session state
// independently, so a failed revocation is logged and swallowed.
func (s *Session) Logout(ctx context.Context) error {
	cred, err := s.store.Get(ctx)
	if err == nil && !cred.IsZero() {
		payload, _ := marshalBody(logoutRequest{RefreshToken: cred.RefreshToken})

		// No 401-retry here: a rejected logout must not trigger a refresh.
		resp, body, err := s.client.roundTrip(ctx, http.MethodPost, "/v1/auth/logout", payload, cred.AccessToken)
		if err != nil {
			s.client.logger.Warn("remote logout failed", "error", err)
		} else if err := decodeJSON(resp, body, nil, http.StatusNoContent); err != nil {
			s.client.logger.Warn("remote logout rejected", "error", err)
		}
	}

	return s.store.Clear(ctx)
}
