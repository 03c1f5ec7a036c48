// Package cart reconciles the authoritative engine's cart with the
// denormalized view model sent to the widget, and proxies the two
// supported mutations back to the engine.
package cart

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
)

// Attribute is one label/value pair shown under a line item.
type Attribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Line is a fully resolved cart line. Price and total strings come from
// the engine pre-formatted and are never recomputed here.
type Line struct {
	Key          string      `json:"key"`
	ProductRef   string      `json:"product_ref"`
	Name         string      `json:"name"`
	PriceDisplay string      `json:"price_display"`
	UnitPrice    float64     `json:"unit_price"`
	Quantity     int         `json:"quantity"`
	LineTotal    string      `json:"line_total"`
	ImageURL     string      `json:"image_url"`
	ProductURL   string      `json:"product_url"`
	Attributes   []Attribute `json:"attributes"`
	RemoveURL    string      `json:"remove_url"`
}

// Snapshot is the aggregate view of the cart, recomputed fresh on every
// read. Count and subtotal are the engine's totals, even when a line
// could not be displayed.
type Snapshot struct {
	Count           int    `json:"count"`
	SubtotalDisplay string `json:"subtotal"`
	Lines           []Line `json:"items"`
	CartURL         string `json:"cart_url"`
	CheckoutURL     string `json:"checkout_url"`
}

// Projector builds snapshots from the authoritative cart.
type Projector struct {
	engine commerce.Engine
	logger *slog.Logger
}

// NewProjector creates a projector bound to an engine handle.
func NewProjector(engine commerce.Engine, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projector{
		engine: engine,
		logger: logger.With("component", "projector"),
	}
}

// Snapshot projects the given cart. A nil cart (engine unavailable in
// this request context) yields an empty snapshot rather than an error.
func (p *Projector) Snapshot(c commerce.Cart) Snapshot {
	snap := Snapshot{
		SubtotalDisplay: "0.00",
		Lines:           []Line{},
		CartURL:         p.engine.CartURL(),
		CheckoutURL:     p.engine.CheckoutURL(),
	}
	if c == nil {
		return snap
	}

	for _, raw := range c.Lines() {
		line, ok := p.projectLine(c, raw)
		if !ok {
			// Product no longer resolves (deleted). The line is dropped
			// from the view but the engine's totals still include it.
			p.logger.Debug("skipping line with unresolvable product",
				"key", raw.Key, "product_ref", raw.ProductRef)
			continue
		}
		snap.Lines = append(snap.Lines, line)
	}

	snap.Count = c.Count()
	snap.SubtotalDisplay = c.SubtotalDisplay()
	return snap
}

// projectLine denormalizes one raw line. ok is false when the product
// reference no longer resolves.
func (p *Projector) projectLine(c commerce.Cart, raw commerce.Line) (Line, bool) {
	product, ok := p.engine.Catalog().Product(raw.ProductRef)
	if !ok {
		return Line{}, false
	}

	imageURL := product.ImageURL
	if imageURL == "" {
		imageURL = p.engine.Catalog().PlaceholderImage()
	}

	return Line{
		Key:          raw.Key,
		ProductRef:   raw.ProductRef,
		Name:         product.Name,
		PriceDisplay: product.PriceDisplay,
		UnitPrice:    product.UnitPrice,
		Quantity:     raw.Quantity,
		LineTotal:    c.LineTotal(raw.Key),
		ImageURL:     imageURL,
		ProductURL:   product.URL,
		Attributes:   p.lineAttributes(raw),
		RemoveURL:    p.engine.RemoveURL(raw.Key),
	}, true
}

// lineAttributes derives the ordered attribute list: variation
// selections first, then item metadata, both in engine order and
// without de-duplication.
func (p *Projector) lineAttributes(raw commerce.Line) []Attribute {
	attrs := []Attribute{}

	if raw.VariationID != "" && len(raw.Variation) > 0 {
		tax := p.engine.Taxonomy()
		for _, dim := range raw.Variation {
			if dim.Value == "" {
				continue
			}
			name := strings.TrimPrefix(dim.Name, "attribute_")
			value := dim.Value
			var label string
			if tax.Exists(name) {
				// Stored value is a term slug; show the display term when
				// it resolves, otherwise pass the raw value through.
				if term, ok := tax.TermName(name, value); ok && term != "" {
					value = term
				}
				label = tax.Label(name)
			} else {
				label = labelFromKey(name)
			}
			attrs = append(attrs, Attribute{Label: label, Value: value})
		}
	}

	for _, m := range raw.Meta {
		if m.ID == "" || m.Key == "" || m.Value == "" {
			continue
		}
		attrs = append(attrs, Attribute{Label: m.Key, Value: m.Value})
	}

	return attrs
}

// labelFromKey turns a custom dimension key like "gift-message" into
// "Gift Message".
func labelFromKey(key string) string {
	key = strings.NewReplacer("-", " ", "_", " ").Replace(key)
	words := strings.Fields(key)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
