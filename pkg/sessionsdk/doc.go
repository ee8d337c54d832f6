/*
Package sessionsdk is the Go client SDK for the Lantern API. It acquires,
stores, injects, and transparently refreshes the short-lived bearer tokens
the API issues, so application code can make authenticated calls without
handling token lifecycle itself.

# Client vs Session

The package is organized around two types:

  - Client: unauthenticated operations (login, register, password reset,
    email verification) and the entry point for creating Sessions
  - Session: authenticated operations with automatic refresh-on-401

Create a Client and log in:

	client := sessionsdk.New("https://api.lantern.example")

	session, err := client.Login(ctx, "alice", "password", true)

Or resume a remembered session from a durable store without a network call:

	store, err := sqlite.NewStore("lantern.db")
	client := sessionsdk.New("https://api.lantern.example", sessionsdk.WithStore(store))

	session := client.ResumeSession()
	if session.IsAuthenticated() {
		user, err := session.GetCurrentUser(ctx)
	}

# Refresh-on-401

Refresh is reactive, not proactive: requests go out with whatever access
token is stored, and only a 401 response triggers a refresh. For any one
invalidation event exactly one refresh call is issued; concurrent requests
that 401 during that window wait for the in-flight refresh and replay with
its result. A request is never retried more than once for authentication
reasons.

When the refresh call itself fails, every waiting request fails with
ErrAuthenticationExpired, stored credentials are cleared, and the hook
registered with WithAuthFailureHook fires. Navigating the user back to a
login screen is the embedding application's job; the SDK only signals.

# Error Handling

The SDK returns typed errors:

  - *APIError: any non-401 HTTP error, passed through verbatim (validation
    failures carry per-field messages)
  - *NetworkError: transport-level failures, which never trigger a refresh
  - *MFARequiredError: login requires a second factor, complete with LoginMFA
  - ErrAuthenticationExpired: the session's credentials are gone for good

# Thread Safety

Sessions are safe for concurrent use. Each Session owns its own credential
store and refresh coordinator, so independent sessions never share state.
*/
package sessionsdk
