package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storefrontlab/cart-widget-backend/internal/api/dto"
	"github.com/storefrontlab/cart-widget-backend/internal/cart"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
	"github.com/storefrontlab/cart-widget-backend/internal/fragments"
)

// CartHandler handles cart reads, the two supported mutations and
// fragment refreshes. Each mutation touches exactly one line; there is
// no batch endpoint.
type CartHandler struct {
	*Base
	projector *cart.Projector
	gateway   *cart.Gateway
	fragments *fragments.Builder
	logger    *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(engine commerce.Engine, projector *cart.Projector, gateway *cart.Gateway,
	builder *fragments.Builder, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		Base:      NewBase(engine),
		projector: projector,
		gateway:   gateway,
		fragments: builder,
		logger:    logger.With("component", "cart"),
	}
}

// Get handles GET /api/cart - returns the current snapshot. Never
// hard-fails: an unavailable engine yields an empty snapshot.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Cart(r)
	if ok && c != nil {
		c.RecalculateTotals()
	} else {
		c = nil
	}
	h.WriteJSON(w, http.StatusOK, h.projector.Snapshot(c))
}

// UpdateQuantity handles POST /api/cart/quantity.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req dto.QuantityUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.Key == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("invalid cart item key"))
		return
	}

	c, _ := h.Cart(r)
	result := h.gateway.SetQuantity(c, req.Key, req.Quantity)
	if !result.OK {
		h.WriteError(w, http.StatusUnprocessableEntity, dto.MutationError(result.Reason))
		return
	}

	h.writeMutationResponse(w, c)
}

// RemoveItem handles POST /api/cart/remove.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req dto.RemoveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.Key == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("invalid cart item key"))
		return
	}

	c, _ := h.Cart(r)
	result := h.gateway.RemoveLine(c, req.Key)
	if !result.OK {
		h.WriteError(w, http.StatusUnprocessableEntity, dto.MutationError(result.Reason))
		return
	}

	h.writeMutationResponse(w, c)
}

// Fragments handles GET /api/cart/fragments - the externally triggered
// refresh path (e.g. an add-to-cart elsewhere on the page).
func (h *CartHandler) Fragments(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Cart(r)
	if !ok {
		c = nil
	}
	h.WriteJSON(w, http.StatusOK, h.fragments.Build(c))
}

// writeMutationResponse packages the fresh snapshot and fragment set
// after a successful mutation. The fragment build recalculates totals
// and re-reads the cart, so the response reflects post-mutation state.
func (h *CartHandler) writeMutationResponse(w http.ResponseWriter, c commerce.Cart) {
	frags := h.fragments.Build(c)
	h.WriteJSON(w, http.StatusOK, dto.MutationResponse{
		Cart:      h.projector.Snapshot(c),
		Fragments: frags,
	})
}
