package sessionsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	// Machine-readable error codes returned by the Lantern API
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeTokenExpired       = "token_expired"
	ErrorCodeMFARequired        = "mfa_required"
	ErrorCodeServerError        = "server_error"
)

// ErrAuthenticationExpired reports that a request's credentials could not be
// restored: a refresh was attempted and failed, or the request had already
// been retried once with a fresh token and was rejected again. It is terminal
// for that request and the session's credentials have been cleared.
var ErrAuthenticationExpired = errors.New("sessionsdk: authentication expired")

// ============================================================================
// APIError - business error responses
// ============================================================================

// APIError is a non-2xx response from a Lantern business endpoint. Statuses
// other than 401 pass through the SDK untouched as APIErrors so callers can
// surface them (validation failures carry per-field messages in Fields).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_credentials")
	Code string `json:"error"`

	// Message is a human-readable description of the error
	Message string `json:"message"`

	// Fields contains field-specific validation errors (field name: message)
	Fields map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ============================================================================
// NetworkError - transport failures
// ============================================================================

// NetworkError is a transport-level failure: the request never produced an
// HTTP status. It passes through the SDK untouched and never triggers a
// refresh.
type NetworkError struct {
	Op  string // e.g. "POST /v1/auth/login"
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("sessionsdk: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ============================================================================
// MFARequiredError - login challenge
// ============================================================================

// MFARequiredError is returned from Login when the account requires a second
// factor. Complete the challenge with Client.LoginMFA.
type MFARequiredError struct {
	// MFAToken is the token to present when completing the challenge
	MFAToken string `json:"mfa_token"`

	// Methods lists the available MFA methods (e.g. ["totp"])
	Methods []string `json:"mfa_methods"`
}

// Error implements the error interface.
func (e *MFARequiredError) Error() string {
	return fmt.Sprintf("MFA required: available methods=%v", e.Methods)
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx HTTP response into a typed error.
// Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// MFA challenge (409 Conflict)
	if resp.StatusCode == http.StatusConflict {
		var mfaResp struct {
			Error      string   `json:"error"`
			MFAToken   string   `json:"mfa_token"`
			MFAMethods []string `json:"mfa_methods"`
		}
		if err := json.Unmarshal(body, &mfaResp); err == nil {
			if mfaResp.Error == ErrorCodeMFARequired && mfaResp.MFAToken != "" {
				return &MFARequiredError{
					MFAToken: mfaResp.MFAToken,
					Methods:  mfaResp.MFAMethods,
				}
			}
		}
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	// Fallback: generic error from status code
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
