package dto

import (
	"time"

	"github.com/storefrontlab/cart-widget-backend/internal/cart"
	"github.com/storefrontlab/cart-widget-backend/internal/fragments"
	"github.com/storefrontlab/cart-widget-backend/internal/recommend"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// BootstrapResponse seeds the widget client: the anti-forgery token for
// subsequent calls plus static URLs and copy strings.
type BootstrapResponse struct {
	Token          string            `json:"token"`
	CartURL        string            `json:"cart_url"`
	CheckoutURL    string            `json:"checkout_url"`
	EmptyCartMsg   string            `json:"empty_cart_msg"`
	I18n           map[string]string `json:"i18n"`
	RecommendLimit int               `json:"recommend_limit"`
}

// WidgetResponse is the full page-load payload: the cart snapshot plus
// top recommended products.
type WidgetResponse struct {
	Cart     cart.Snapshot       `json:"cart"`
	Products []recommend.Product `json:"products"`
}

// MutationResponse is returned by successful mutations: the fresh
// snapshot and the fragment set for partial UI replacement.
type MutationResponse struct {
	Cart      cart.Snapshot `json:"cart"`
	Fragments fragments.Set `json:"fragments"`
}
