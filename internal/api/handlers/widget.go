package handlers

import (
	"log/slog"
	"net/http"

	"github.com/storefrontlab/cart-widget-backend/internal/api/dto"
	"github.com/storefrontlab/cart-widget-backend/internal/cart"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
	"github.com/storefrontlab/cart-widget-backend/internal/fragments"
	"github.com/storefrontlab/cart-widget-backend/internal/recommend"
	"github.com/storefrontlab/cart-widget-backend/internal/session"
)

// TokenIssuer mints anti-forgery tokens for the bootstrap payload.
type TokenIssuer interface {
	Issue(sessionID string) (string, error)
}

// WidgetHandler serves the widget bootstrap and the full page-load
// payload (cart snapshot plus top products).
type WidgetHandler struct {
	*Base
	projector *cart.Projector
	recommend *recommend.Client
	issuer    TokenIssuer
	copy      fragments.Copy
	topLimit  int
	logger    *slog.Logger
}

// NewWidgetHandler creates a widget handler.
func NewWidgetHandler(engine commerce.Engine, projector *cart.Projector, rec *recommend.Client,
	issuer TokenIssuer, copy fragments.Copy, topLimit int, logger *slog.Logger) *WidgetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if topLimit <= 0 {
		topLimit = 3
	}
	return &WidgetHandler{
		Base:      NewBase(engine),
		projector: projector,
		recommend: rec,
		issuer:    issuer,
		copy:      copy,
		topLimit:  topLimit,
		logger:    logger.With("component", "widget"),
	}
}

// Bootstrap handles GET /api/widget/bootstrap - establishes the session
// cookie and hands the client its anti-forgery token and static copy.
func (h *WidgetHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	sessionID := session.Ensure(w, r)

	token, err := h.issuer.Issue(sessionID)
	if err != nil {
		h.logger.Error("issuing cart token failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.BootstrapResponse{
		Token:        token,
		CartURL:      h.engine.CartURL(),
		CheckoutURL:  h.engine.CheckoutURL(),
		EmptyCartMsg: h.copy.EmptyCartMessage,
		I18n: map[string]string{
			"remove_item": h.copy.RemoveItemLabel,
			"quantity":    h.copy.QuantityLabel,
		},
		RecommendLimit: h.topLimit,
	})
}

// Widget handles GET /api/widget - the full page-load payload. The
// recommendation fetch is decorative: when it fails the payload simply
// carries zero products.
func (h *WidgetHandler) Widget(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Cart(r)
	if ok && c != nil {
		c.RecalculateTotals()
	} else {
		c = nil
	}

	products := h.recommend.FetchTopProducts(r.Context(), h.topLimit)
	if products == nil {
		products = []recommend.Product{}
	}

	h.WriteJSON(w, http.StatusOK, dto.WidgetResponse{
		Cart:     h.projector.Snapshot(c),
		Products: products,
	})
}
