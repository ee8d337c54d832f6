package sessionsdk

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/lanternware/lantern-go/pkg/tokenstore"

	"golang.org/x/sync/singleflight"
)

// RefreshState is the observable state of a session's refresh coordinator.
type RefreshState int32

const (
	// StateIdle means no refresh is in flight. This is the state at startup,
	// after every successful refresh, and after a failed refresh has finished
	// clearing credentials.
	StateIdle RefreshState = iota

	// StateRefreshing means a refresh call is in flight; requests rejected
	// with 401 during this window wait for its outcome instead of issuing
	// their own refresh.
	StateRefreshing

	// StateFailed means the refresh call itself was rejected. Terminal for
	// the session's credentials; the state resets to Idle once they are
	// cleared.
	StateFailed
)

func (s RefreshState) String() string {
	switch s {
	case StateRefreshing:
		return "refreshing"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// refreshCoordinator owns the single-flight refresh protocol. For any one
// invalidation event (identified by the stale access token that got the 401)
// at most one refresh call is issued; every request that hits a 401 during
// that window blocks on the same flight and receives the same outcome.
type refreshCoordinator struct {
	client *Client
	store  tokenstore.Store

	group singleflight.Group
	state atomic.Int32

	// failMu serialises the clear-credentials-and-notify path so concurrent
	// rejections cannot interleave it.
	failMu sync.Mutex
}

func newRefreshCoordinator(client *Client, store tokenstore.Store) *refreshCoordinator {
	return &refreshCoordinator{client: client, store: store}
}

// State returns the coordinator's current state.
func (rc *refreshCoordinator) State() RefreshState {
	return RefreshState(rc.state.Load())
}

// Refresh obtains a replacement access token for a request whose bearer
// token staleToken was rejected with 401. Concurrent callers holding the
// same stale token share one flight. Returns ErrAuthenticationExpired after
// a terminal failure, by which point credentials are cleared and the auth
// failure hook has fired.
func (rc *refreshCoordinator) Refresh(ctx context.Context, staleToken string) (string, error) {
	token, err, _ := rc.group.Do(staleToken, func() (any, error) {
		return rc.refresh(ctx, staleToken)
	})
	if err != nil {
		return "", err
	}

	return token.(string), nil
}

func (rc *refreshCoordinator) refresh(ctx context.Context, staleToken string) (string, error) {
	// A previous flight may have already rotated this token; a late 401 from
	// a request that still carried the old one must not refresh again.
	cred, err := rc.store.Get(ctx)
	if err == nil && cred.AccessToken != "" && cred.AccessToken != staleToken {
		return cred.AccessToken, nil
	}

	rc.state.Store(int32(StateRefreshing))

	if cred.RefreshToken == "" {
		return "", rc.fail(ctx, errors.New("no refresh token stored"))
	}

	rc.client.logger.Debug("refreshing access token")

	tokenResp, err := rc.client.refreshGrant(ctx, cred.RefreshToken)
	if err != nil {
		return "", rc.fail(ctx, err)
	}

	next := tokenstore.Credential{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
	}
	if next.RefreshToken == "" {
		// Server chose not to rotate the refresh token
		next.RefreshToken = cred.RefreshToken
	}
	if err := rc.store.Set(ctx, next); err != nil {
		return "", rc.fail(ctx, err)
	}

	rc.state.Store(int32(StateIdle))
	rc.client.logger.Debug("access token refreshed")
	return next.AccessToken, nil
}

// fail runs the terminal-failure path: mark Failed, clear credentials,
// notify the hook, and only then return to Idle.
func (rc *refreshCoordinator) fail(ctx context.Context, cause error) error {
	rc.state.Store(int32(StateFailed))
	rc.client.logger.Warn("token refresh failed, forcing logout", "error", cause)

	rc.handleAuthFailure(ctx)

	rc.state.Store(int32(StateIdle))
	return ErrAuthenticationExpired
}

// handleAuthFailure clears stored credentials and fires the registered
// auth-failure hook. Safe to call multiple times, concurrently or not.
func (rc *refreshCoordinator) handleAuthFailure(ctx context.Context) {
	rc.failMu.Lock()
	defer rc.failMu.Unlock()

	if err := rc.store.Clear(ctx); err != nil {
		rc.client.logger.Warn("failed to clear credentials", "error", err)
	}

	if rc.client.authFailureHook != nil {
		rc.client.authFailureHook()
	}
}
