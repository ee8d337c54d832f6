package sessionsdk

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is returned from the login, MFA, and refresh endpoints.
type TokenResponse struct {
	// AccessToken is the short-lived JWT attached to API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is the opaque token used to obtain new access tokens.
	// The server may omit it when it chooses not to rotate.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type,omitempty"`

	// User is the authenticated user's profile (login and MFA only)
	User *User `json:"user,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// User is a Lantern user profile as returned by the API.
type User struct {
	// ID is the unique identifier for the user
	ID string `json:"id"`

	// Username is the user's login username
	Username string `json:"username"`

	// Email is the user's email address
	Email string `json:"email"`

	// Role is the name of the user's role (advisory, re-checked server-side)
	Role string `json:"role"`

	// EmailVerified indicates whether the email address has been confirmed
	EmailVerified bool `json:"email_verified"`

	// CreatedAt is the account creation timestamp (RFC3339 format)
	CreatedAt string `json:"created_at,omitempty"`
}

// RegisterRequest is the profile submitted when creating a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is a partial profile update. Nil fields are left unchanged.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// ============================================================================
// Internal Request Types (used for JSON marshaling)
// ============================================================================

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type mfaLoginRequest struct {
	MFAToken string `json:"mfa_token"`
	Method   string `json:"method"`
	Code     string `json:"code"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type forgotPasswordRequest struct {
	Identifier string `json:"identifier"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}
