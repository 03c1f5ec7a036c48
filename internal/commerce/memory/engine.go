// Package memory provides an in-memory commerce engine implementing the
// commerce interfaces. It backs tests and the development wiring in
// cmd/api; a production deployment swaps in a bridge to the real engine.
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
)

// Engine is an in-memory commerce engine. All carts share one lock,
// mirroring how the real engine serializes access per process.
type Engine struct {
	mu          sync.Mutex
	available   bool
	baseURL     string
	carts       map[string]*sessionCart
	products    map[string]commerce.Product
	taxonomies  map[string]*taxonomy
	placeholder string
}

type taxonomy struct {
	label string
	terms map[string]string
}

// NewEngine creates an available engine rooted at the given storefront URL.
func NewEngine(baseURL string) *Engine {
	return &Engine{
		available:   true,
		baseURL:     strings.TrimRight(baseURL, "/"),
		carts:       make(map[string]*sessionCart),
		products:    make(map[string]commerce.Product),
		taxonomies:  make(map[string]*taxonomy),
		placeholder: strings.TrimRight(baseURL, "/") + "/assets/placeholder.png",
	}
}

var _ commerce.Engine = (*Engine)(nil)

// SetAvailable toggles whether the engine appears initialized. Tests use
// this to model request contexts where the engine never loaded.
func (e *Engine) SetAvailable(available bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.available = available
}

// Cart returns the session's cart, creating an empty one on first use.
func (e *Engine) Cart(sessionID string) (commerce.Cart, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.available || sessionID == "" {
		return nil, false
	}
	c, ok := e.carts[sessionID]
	if !ok {
		c = &sessionCart{engine: e}
		e.carts[sessionID] = c
	}
	return c, true
}

func (e *Engine) Catalog() commerce.Catalog   { return e }
func (e *Engine) Taxonomy() commerce.Taxonomy { return e }

func (e *Engine) CartURL() string     { return e.baseURL + "/cart" }
func (e *Engine) CheckoutURL() string { return e.baseURL + "/checkout" }

func (e *Engine) RemoveURL(key string) string {
	return e.baseURL + "/cart/?remove_item=" + key
}

// Product implements commerce.Catalog.
func (e *Engine) Product(ref string) (commerce.Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.products[ref]
	return p, ok
}

func (e *Engine) PlaceholderImage() string { return e.placeholder }

// Exists implements commerce.Taxonomy.
func (e *Engine) Exists(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.taxonomies[name]
	return ok
}

func (e *Engine) Label(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.taxonomies[name]; ok {
		return t.label
	}
	return name
}

func (e *Engine) TermName(name, slug string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.taxonomies[name]
	if !ok {
		return "", false
	}
	display, ok := t.terms[slug]
	return display, ok
}

// AddProduct registers a catalog product.
func (e *Engine) AddProduct(ref string, p commerce.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.products[ref] = p
}

// RemoveProduct deletes a product from the catalog, leaving any cart
// lines that reference it dangling.
func (e *Engine) RemoveProduct(ref string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.products, ref)
}

// RegisterTaxonomy registers an attribute taxonomy with a display label.
func (e *Engine) RegisterTaxonomy(name, label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.taxonomies[name] = &taxonomy{label: label, terms: make(map[string]string)}
}

// AddTerm maps a stored slug to its display term within a taxonomy.
func (e *Engine) AddTerm(name, slug, display string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.taxonomies[name]; ok {
		t.terms[slug] = display
	}
}

// AddLine appends a line to a session's cart and refreshes totals, the
// way the real engine does on add-to-cart.
func (e *Engine) AddLine(sessionID string, line commerce.Line) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.carts[sessionID]
	if !ok {
		c = &sessionCart{engine: e}
		e.carts[sessionID] = c
	}
	c.lines = append(c.lines, line)
	c.recalculate()
}

// sessionCart is one session's cart. count and subtotal are cached and
// only refreshed by recalculate, so a direct SetQuantity leaves totals
// stale until the caller forces recalculation.
type sessionCart struct {
	engine   *Engine
	lines    []commerce.Line
	count    int
	subtotal float64
}

var _ commerce.Cart = (*sessionCart)(nil)

func (c *sessionCart) Lines() []commerce.Line {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	out := make([]commerce.Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *sessionCart) Count() int {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.count
}

func (c *sessionCart) SubtotalDisplay() string {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return fmt.Sprintf("%.2f", c.subtotal)
}

func (c *sessionCart) LineTotal(key string) string {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	for _, l := range c.lines {
		if l.Key == key {
			if p, ok := c.engine.products[l.ProductRef]; ok {
				return fmt.Sprintf("%.2f", p.UnitPrice*float64(l.Quantity))
			}
		}
	}
	return "0.00"
}

func (c *sessionCart) SetQuantity(key string, quantity int) bool {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Key != key {
			continue
		}
		if quantity == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

func (c *sessionCart) RemoveLine(key string) bool {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.recalculate()
			return true
		}
	}
	return false
}

func (c *sessionCart) RecalculateTotals() {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	c.recalculate()
}

// recalculate assumes the engine lock is held.
func (c *sessionCart) recalculate() {
	count := 0
	subtotal := 0.0
	for _, l := range c.lines {
		count += l.Quantity
		if p, ok := c.engine.products[l.ProductRef]; ok {
			subtotal += p.UnitPrice * float64(l.Quantity)
		}
	}
	c.count = count
	c.subtotal = subtotal
}
