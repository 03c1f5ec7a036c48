package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/storefrontlab/cart-widget-backend/internal/api/dto"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
	"github.com/storefrontlab/cart-widget-backend/internal/session"
)

// Base provides shared functionality for all handlers.
type Base struct {
	engine commerce.Engine
}

// NewBase creates a new base handler with the given engine handle.
func NewBase(engine commerce.Engine) *Base {
	return &Base{engine: engine}
}

// Cart resolves the request session's authoritative cart. ok is false
// when the engine is unavailable in this request context or the request
// carries no session.
func (b *Base) Cart(r *http.Request) (commerce.Cart, bool) {
	sessionID, ok := session.FromRequest(r)
	if !ok {
		return nil, false
	}
	return b.engine.Cart(sessionID)
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}
