package fragments_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontlab/cart-widget-backend/internal/cart"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce/memory"
	"github.com/storefrontlab/cart-widget-backend/internal/fragments"
)

const testSession = "session-1"

func newBuilder(engine *memory.Engine) *fragments.Builder {
	projector := cart.NewProjector(engine, nil)
	return fragments.NewBuilder(projector, fragments.DefaultCopy(), nil)
}

func seededEngine() *memory.Engine {
	engine := memory.NewEngine("https://shop.example.com")
	engine.AddProduct("prod-1", commerce.Product{
		Name:         "Classic Tee",
		UnitPrice:    10.00,
		PriceDisplay: "10.00",
		ImageURL:     "https://cdn.example.com/tee.png",
		URL:          "https://shop.example.com/product/tee",
	})
	return engine
}

func TestBuilderBuild(t *testing.T) {
	t.Run("produces all three regions", func(t *testing.T) {
		engine := seededEngine()
		engine.AddLine(testSession, commerce.Line{Key: "a", ProductRef: "prod-1", Quantity: 2})
		c, _ := engine.Cart(testSession)

		set := newBuilder(engine).Build(c)

		require.Contains(t, set, fragments.CountSelector)
		require.Contains(t, set, fragments.SubtotalSelector)
		require.Contains(t, set, fragments.ItemsSelector)
		assert.Equal(t, `<span class="cw-cart-count">2</span>`, set[fragments.CountSelector])
		assert.Equal(t, `<span class="cw-cart-subtotal">20.00</span>`, set[fragments.SubtotalSelector])
	})

	t.Run("items region fully re-renders current lines", func(t *testing.T) {
		engine := seededEngine()
		engine.RegisterTaxonomy("pa_color", "Color")
		engine.AddTerm("pa_color", "deep-blue", "Deep Blue")
		engine.AddLine(testSession, commerce.Line{
			Key: "a", ProductRef: "prod-1", Quantity: 2,
			VariationID: "var-1",
			Variation:   []commerce.Dimension{{Name: "attribute_pa_color", Value: "deep-blue"}},
		})
		c, _ := engine.Cart(testSession)

		items := newBuilder(engine).Build(c)[fragments.ItemsSelector]

		assert.True(t, strings.HasPrefix(items, `<div class="cw-cart-items-container">`))
		assert.Contains(t, items, `data-key="a"`)
		assert.Contains(t, items, "Classic Tee")
		assert.Contains(t, items, "Color: Deep Blue")
		assert.Contains(t, items, `value="2"`)
		assert.NotContains(t, items, "cw-empty-cart")
	})

	t.Run("recalculates totals before projecting", func(t *testing.T) {
		engine := seededEngine()
		engine.AddLine(testSession, commerce.Line{Key: "a", ProductRef: "prod-1", Quantity: 1})
		c, _ := engine.Cart(testSession)

		// Mutate behind the builder's back; the engine's cached totals
		// are stale until someone forces recalculation.
		require.True(t, c.SetQuantity("a", 5))
		assert.Equal(t, 1, c.Count())

		set := newBuilder(engine).Build(c)

		assert.Equal(t, `<span class="cw-cart-count">5</span>`, set[fragments.CountSelector])
	})

	t.Run("empty cart renders the empty message", func(t *testing.T) {
		engine := seededEngine()
		c, _ := engine.Cart(testSession)

		items := newBuilder(engine).Build(c)[fragments.ItemsSelector]

		assert.Contains(t, items, "cw-empty-cart")
		assert.Contains(t, items, "Your cart is currently empty.")
	})

	t.Run("degrades to empty-cart regions without a cart", func(t *testing.T) {
		engine := seededEngine()

		set := newBuilder(engine).Build(nil)

		assert.Equal(t, `<span class="cw-cart-count">0</span>`, set[fragments.CountSelector])
		assert.Equal(t, `<span class="cw-cart-subtotal">0.00</span>`, set[fragments.SubtotalSelector])
		assert.Contains(t, set[fragments.ItemsSelector], "cw-empty-cart")
	})

	t.Run("escapes product names in markup", func(t *testing.T) {
		engine := seededEngine()
		engine.AddProduct("prod-x", commerce.Product{
			Name: `<script>alert("x")</script>`, UnitPrice: 1, PriceDisplay: "1.00",
		})
		engine.AddLine(testSession, commerce.Line{Key: "x", ProductRef: "prod-x", Quantity: 1})
		c, _ := engine.Cart(testSession)

		items := newBuilder(engine).Build(c)[fragments.ItemsSelector]

		assert.NotContains(t, items, "<script>")
	})

	t.Run("custom copy overrides defaults", func(t *testing.T) {
		engine := seededEngine()
		projector := cart.NewProjector(engine, nil)
		builder := fragments.NewBuilder(projector, fragments.Copy{
			EmptyCartMessage: "Nada por aquí.",
		}, nil)
		c, _ := engine.Cart(testSession)

		items := builder.Build(c)[fragments.ItemsSelector]

		assert.Contains(t, items, "Nada por aquí.")
	})
}
