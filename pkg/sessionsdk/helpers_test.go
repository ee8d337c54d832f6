package sessionsdk_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/lanternware/lantern-go/pkg/tokenstore"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// mintToken produces a structurally valid access token. The signature is
// never verified client-side, so the signing key is irrelevant.
func mintToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "user-" + username,
		"username": username,
		"email":    username + "@example.com",
		"role":     "member",
		"exp":      exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func seedStore(t *testing.T, cred tokenstore.Credential) *tokenstore.Memory {
	t.Helper()

	store := tokenstore.NewMemory()
	require.NoError(t, store.Set(t.Context(), cred))
	return store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func bearer(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

func tokenBody(access, refresh string) map[string]any {
	return map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "Bearer",
	}
}
