package cart

import (
	"log/slog"

	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
)

// Result is the outcome of a gateway mutation. OK distinguishes success
// from failure explicitly; Reason carries a human-readable explanation
// when OK is false.
type Result struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func failure(reason string) Result {
	return Result{Reason: reason}
}

// Gateway validates and applies mutations against the authoritative
// cart, one line per call. It performs no locking of its own; the engine
// is the synchronization point, and concurrent requests resolve
// last-write-wins there.
type Gateway struct {
	logger *slog.Logger
}

// NewGateway creates a mutation gateway.
func NewGateway(logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{logger: logger.With("component", "gateway")}
}

// SetQuantity sets a line's quantity, clamping negatives to zero. The
// key is checked against the cart's current lines on every call, and
// totals are always recalculated afterwards because the engine may not
// recompute them on a direct mutation. Quantity 0 passes through and
// takes the engine's own removal semantics.
func (g *Gateway) SetQuantity(c commerce.Cart, key string, quantity int) Result {
	if c == nil {
		g.logger.Error("cart unavailable for quantity update", "key", key)
		return failure("cart is not available")
	}

	if quantity < 0 {
		quantity = 0
	}
	g.logger.Debug("updating quantity", "key", key, "quantity", quantity)

	if !lineExists(c, key) {
		g.logger.Error("item not found in cart", "key", key)
		return failure("item not found in cart")
	}

	ok := c.SetQuantity(key, quantity)
	c.RecalculateTotals()

	if !ok {
		g.logger.Error("engine rejected quantity update", "key", key)
		return failure("failed to update quantity")
	}
	return Result{OK: true}
}

// RemoveLine removes a line, reporting the engine's verdict directly.
// There is no retry; a race with another request surfaces as a failure.
func (g *Gateway) RemoveLine(c commerce.Cart, key string) Result {
	if c == nil {
		g.logger.Error("cart unavailable for removal", "key", key)
		return failure("cart is not available")
	}

	if !c.RemoveLine(key) {
		g.logger.Error("engine declined removal", "key", key)
		return failure("failed to remove item")
	}
	return Result{OK: true}
}

func lineExists(c commerce.Cart, key string) bool {
	for _, l := range c.Lines() {
		if l.Key == key {
			return true
		}
	}
	return false
}
