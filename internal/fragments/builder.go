// Package fragments renders the named, independently replaceable
// regions of the cart widget. A fragment set is built fresh per call and
// always fully replaces its region on the client; nothing is diffed or
// remembered between calls.
package fragments

import (
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/storefrontlab/cart-widget-backend/internal/cart"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
)

// Region selectors the client replaces wholesale.
const (
	CountSelector    = ".cw-cart-count"
	SubtotalSelector = ".cw-cart-subtotal"
	ItemsSelector    = ".cw-cart-items-container"
)

// Set maps a region selector to its rendered markup.
type Set map[string]string

// Copy holds the static strings baked into rendered fragments.
type Copy struct {
	EmptyCartMessage string
	RemoveItemLabel  string
	QuantityLabel    string
}

// DefaultCopy returns the stock widget strings.
func DefaultCopy() Copy {
	return Copy{
		EmptyCartMessage: "Your cart is currently empty.",
		RemoveItemLabel:  "Remove this item",
		QuantityLabel:    "Quantity",
	}
}

const itemsTemplate = `<div class="cw-cart-items-container">
{{- if not .Snapshot.Lines}}<div class="cw-empty-cart">{{.Copy.EmptyCartMessage}}</div>
{{- else}}<ul class="cw-cart-items">
{{- range .Snapshot.Lines}}
<li class="cw-cart-item" data-key="{{.Key}}">
<div class="cw-cart-item-image"><a href="{{.ProductURL}}"><img src="{{.ImageURL}}" alt="{{.Name}}" /></a></div>
<div class="cw-cart-item-details">
<h4 class="cw-cart-item-title"><a href="{{.ProductURL}}">{{.Name}}</a></h4>
{{- if .Attributes}}
<div class="cw-cart-item-attributes">
{{- range .Attributes}}<span class="cw-cart-item-attribute">{{.Label}}: {{.Value}}</span>{{end}}
</div>
{{- end}}
<div class="cw-cart-item-price">{{.PriceDisplay}}</div>
</div>
<div class="cw-cart-item-quantity">
<div class="cw-quantity-controls" aria-label="{{$.Copy.QuantityLabel}}">
<button class="cw-qty-decrease">-</button>
<input type="number" class="cw-qty-input" value="{{.Quantity}}" min="0" max="99" step="1" />
<button class="cw-qty-increase">+</button>
</div>
</div>
<div class="cw-cart-item-subtotal">{{.LineTotal}}</div>
<a href="{{.RemoveURL}}" class="cw-cart-remove-item" data-key="{{.Key}}" aria-label="{{$.Copy.RemoveItemLabel}}">&times;</a>
</li>
{{- end}}
</ul>
{{- end}}
</div>`

// Builder renders fragment sets from the current authoritative state.
type Builder struct {
	projector *cart.Projector
	copy      Copy
	items     *template.Template
	logger    *slog.Logger
}

// NewBuilder creates a fragment builder. Empty copy fields fall back to
// the defaults.
func NewBuilder(projector *cart.Projector, copy Copy, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultCopy()
	if copy.EmptyCartMessage == "" {
		copy.EmptyCartMessage = defaults.EmptyCartMessage
	}
	if copy.RemoveItemLabel == "" {
		copy.RemoveItemLabel = defaults.RemoveItemLabel
	}
	if copy.QuantityLabel == "" {
		copy.QuantityLabel = defaults.QuantityLabel
	}
	return &Builder{
		projector: projector,
		copy:      copy,
		items:     template.Must(template.New("cart-items").Parse(itemsTemplate)),
		logger:    logger.With("component", "fragments"),
	}
}

// Build renders the full fragment set for the given cart. Totals are
// recalculated first: a concurrent add-to-cart elsewhere on the page may
// have changed state since the last read.
func (b *Builder) Build(c commerce.Cart) Set {
	if c != nil {
		c.RecalculateTotals()
	}
	snap := b.projector.Snapshot(c)

	set := Set{
		CountSelector: fmt.Sprintf(`<span class="cw-cart-count">%d</span>`, snap.Count),
		SubtotalSelector: fmt.Sprintf(`<span class="cw-cart-subtotal">%s</span>`,
			template.HTMLEscapeString(snap.SubtotalDisplay)),
		ItemsSelector: b.renderItems(snap),
	}

	b.logger.Debug("built cart fragments", "count", snap.Count, "lines", len(snap.Lines))
	return set
}

func (b *Builder) renderItems(snap cart.Snapshot) string {
	var sb strings.Builder
	data := struct {
		Snapshot cart.Snapshot
		Copy     Copy
	}{Snapshot: snap, Copy: b.copy}

	if err := b.items.Execute(&sb, data); err != nil {
		// Template execution over plain structs should not fail; degrade
		// to the empty-cart region if it somehow does.
		b.logger.Error("rendering cart items failed", "error", err)
		return fmt.Sprintf(`<div class="cw-cart-items-container"><div class="cw-empty-cart">%s</div></div>`,
			template.HTMLEscapeString(b.copy.EmptyCartMessage))
	}
	return sb.String()
}
