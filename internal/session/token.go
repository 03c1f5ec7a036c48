// Package session issues and verifies the anti-forgery tokens that
// guard every cart operation. A token is an HS256 JWT bound to the
// caller's session ID; it proves the request originated from a page we
// bootstrapped for that session.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie set by the bootstrap endpoint.
const CookieName = "cw_session"

// TokenHeader is the request header carrying the anti-forgery token.
const TokenHeader = "X-Cart-Token"

// TokenIssuer mints and verifies session-bound tokens.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
}

// NewTokenIssuer creates an issuer. The key must be non-empty; TTL
// defaults to an hour when zero.
func NewTokenIssuer(key string, ttl time.Duration) (*TokenIssuer, error) {
	if key == "" {
		return nil, fmt.Errorf("token signing key is required")
	}
	if ttl == 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{key: []byte(key), ttl: ttl}, nil
}

// Issue mints a token bound to the given session ID.
func (i *TokenIssuer) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}

// Verify reports whether the token is valid, unexpired and bound to the
// given session ID.
func (i *TokenIssuer) Verify(token, sessionID string) bool {
	if token == "" || sessionID == "" {
		return false
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return i.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return false
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	return ok && claims.Subject == sessionID
}

// FromRequest extracts the session ID from the request cookie.
func FromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Ensure returns the request's session ID, creating one and setting the
// cookie when none exists yet.
func Ensure(w http.ResponseWriter, r *http.Request) string {
	if id, ok := FromRequest(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
