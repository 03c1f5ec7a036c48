package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/storefrontlab/cart-widget-backend/internal/api/dto"
	"github.com/storefrontlab/cart-widget-backend/internal/session"
)

// TokenVerifier checks an anti-forgery token against a session ID.
type TokenVerifier interface {
	Verify(token, sessionID string) bool
}

// RequireToken returns middleware that rejects any request whose
// X-Cart-Token header does not verify against the session cookie. The
// check runs before any handler logic touches state.
func RequireToken(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := session.FromRequest(r)
			if !ok || !verifier.Verify(r.Header.Get(session.TokenHeader), sessionID) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(dto.ForbiddenError("invalid or missing cart token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
