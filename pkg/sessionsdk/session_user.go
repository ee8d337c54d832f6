package sessionsdk

import (
	"context"
	"net/http"
)

// User operations - profile and account management for the authenticated user

// GetCurrentUser retrieves the authenticated user's profile.
func (s *Session) GetCurrentUser(ctx context.Context) (*User, error) {
	resp, body, err := s.do(ctx, http.MethodGet, "/v1/users/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, body, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the updated
// profile. Nil fields in update are left unchanged.
func (s *Session) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	resp, body, err := s.do(ctx, http.MethodPatch, "/v1/users/me", update)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, body, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// ChangePassword changes the authenticated user's password. The current
// password is re-verified server-side.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	resp, body, err := s.do(ctx, http.MethodPost, "/v1/auth/password",
		changePasswordRequest{CurrentPassword: current, NewPassword: next})
	if err != nil {
		return err
	}

	return decodeJSON(resp, body, nil, http.StatusNoContent)
}

// ResendEmailVerification asks the server to send a fresh verification email
// to the authenticated user's address.
func (s *Session) ResendEmailVerification(ctx context.Context) error {
	resp, body, err := s.do(ctx, http.MethodPost, "/v1/auth/email/resend", nil)
	if err != nil {
		return err
	}

	return decodeJSON(resp, body, nil, http.StatusAccepted)
}
