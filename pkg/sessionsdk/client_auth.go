package sessionsdk

import (
	"context"
	"net/http"

	"github.com/lanternware/lantern-go/pkg/tokenstore"
)

// Login authenticates with a username-or-email identifier and a password and
// returns an authenticated Session.
//
// When remember is true the session's tokens are written to the client's
// configured store so they survive a restart; otherwise the session lives in
// a private in-memory store.
//
// If the account requires a second factor, Login returns *MFARequiredError;
// complete the challenge with LoginMFA.
func (c *Client) Login(ctx context.Context, identifier, password string, remember bool) (*Session, error) {
	if err := c.reserveLogin(); err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	err := c.postJSON(ctx, "/v1/auth/login",
		loginRequest{Identifier: identifier, Password: password},
		&tokenResp, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return c.newSessionFromTokens(ctx, &tokenResp, remember)
}

// LoginMFA completes a login that was challenged with *MFARequiredError.
// Method names one of the challenge's offered methods (e.g. "totp") and code
// is the one-time code for it.
func (c *Client) LoginMFA(
	ctx context.Context,
	challenge *MFARequiredError,
	method, code string,
	remember bool,
) (*Session, error) {
	if err := c.reserveLogin(); err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	err := c.postJSON(ctx, "/v1/auth/mfa",
		mfaLoginRequest{MFAToken: challenge.MFAToken, Method: method, Code: code},
		&tokenResp, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return c.newSessionFromTokens(ctx, &tokenResp, remember)
}

// Register creates a new account. The caller still logs in afterwards; the
// server sends the verification email as a side effect.
func (c *Client) Register(ctx context.Context, profile RegisterRequest) (*User, error) {
	var user User
	err := c.postJSON(ctx, "/v1/auth/register", profile, &user, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// RequestPasswordReset asks the server to email a reset token to the account
// matching identifier. Always returns success for unknown identifiers, the
// server does not disclose which accounts exist.
func (c *Client) RequestPasswordReset(ctx context.Context, identifier string) error {
	return c.postJSON(ctx, "/v1/auth/password/forgot",
		forgotPasswordRequest{Identifier: identifier},
		nil, http.StatusAccepted)
}

// ResetPassword sets a new password using a reset token from the email.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.postJSON(ctx, "/v1/auth/password/reset",
		resetPasswordRequest{Token: token, NewPassword: newPassword},
		nil, http.StatusNoContent)
}

// VerifyEmail confirms an email address using a verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.postJSON(ctx, "/v1/auth/email/verify",
		verifyEmailRequest{Token: token},
		nil, http.StatusNoContent)
}

// ResumeSession rebuilds a Session over whatever the configured store already
// holds, without a network call. If the stored access token has expired the
// first 401 triggers a normal refresh.
func (c *Client) ResumeSession() *Session {
	return newSession(c, c.store)
}

// newSessionFromTokens persists a token response and wraps it in a Session.
func (c *Client) newSessionFromTokens(
	ctx context.Context,
	tokenResp *TokenResponse,
	remember bool,
) (*Session, error) {
	store := c.store
	if !remember {
		store = tokenstore.NewMemory()
	}

	cred := tokenstore.Credential{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
	}
	if err := store.Set(ctx, cred); err != nil {
		return nil, err
	}

	c.logger.Info("session established", "remember", remember)
	return newSession(c, store), nil
}

// refreshGrant exchanges a refresh token for a new token pair. It goes
// straight to the refresh endpoint with no bearer header and no 401-retry
// handling; routing it through the authenticated pipeline would recurse.
func (c *Client) refreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var tokenResp TokenResponse
	err := c.postJSON(ctx, "/v1/auth/refresh",
		refreshRequest{RefreshToken: refreshToken},
		&tokenResp, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return &tokenResp, nil
}
