// Package commerce defines the boundary to the authoritative commerce
// engine. The engine owns all cart state, pricing and totals; everything
// in this repo is a stateless view over it.
//
// The engine may not be initialized in every request context, so every
// access goes through Engine.Cart and checks the ok result before use.
package commerce

// Engine is an injected handle to the external commerce engine.
type Engine interface {
	// Cart returns the live cart for a session. ok is false when the
	// engine is not initialized in the current request context.
	Cart(sessionID string) (Cart, bool)

	Catalog() Catalog
	Taxonomy() Taxonomy

	// CartURL and CheckoutURL are the storefront pages the widget links to.
	CartURL() string
	CheckoutURL() string

	// RemoveURL builds the absolute non-AJAX removal fallback for a line.
	RemoveURL(key string) string
}

// Cart is a session's authoritative cart. Count, SubtotalDisplay and
// LineTotal reflect the engine's own totals, which may be stale until
// RecalculateTotals is called.
type Cart interface {
	Lines() []Line
	Count() int
	SubtotalDisplay() string
	LineTotal(key string) string

	// SetQuantity applies the engine's own zero-quantity semantics:
	// a quantity of 0 removes the line.
	SetQuantity(key string, quantity int) bool
	RemoveLine(key string) bool

	RecalculateTotals()
}

// Catalog resolves product references. Deleted products resolve false.
type Catalog interface {
	Product(ref string) (Product, bool)
	PlaceholderImage() string
}

// Taxonomy resolves variation dimensions to human-readable labels and
// term names.
type Taxonomy interface {
	Exists(name string) bool
	Label(name string) string
	TermName(name, slug string) (string, bool)
}
