package sessionsdk

import (
	"context"
	"net/http"
)

// do issues an authenticated request against the API.
//
// The stored access token (when present) is attached as a bearer credential;
// attaching never blocks and never refreshes proactively. On a 401 the
// request consults the refresh coordinator, then replays itself exactly once
// with the replacement token. A second 401 fails with
// ErrAuthenticationExpired without another refresh attempt: the retried flag
// is an explicit value in this function, not state smuggled onto the
// request. Non-401 responses pass through untouched.
func (s *Session) do(ctx context.Context, method, path string, in any) (*http.Response, []byte, error) {
	payload, err := marshalBody(in)
	if err != nil {
		return nil, nil, err
	}

	cred, err := s.store.Get(ctx)
	if err != nil {
		// A broken store reads as "unauthenticated", the server decides
		cred.AccessToken = ""
	}

	resp, body, err := s.client.roundTrip(ctx, method, path, payload, cred.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, body, nil
	}

	// One refresh per invalidation event; waiters queued during an in-flight
	// refresh all receive its outcome.
	token, err := s.coordinator.Refresh(ctx, cred.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	resp, body, err = s.client.roundTrip(ctx, method, path, payload, token)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// Already retried once and the fresh token was rejected too.
		s.client.logger.Warn("retried request rejected again", "method", method, "path", path)
		s.coordinator.handleAuthFailure(ctx)
		return nil, nil, ErrAuthenticationExpired
	}

	return resp, body, nil
}
