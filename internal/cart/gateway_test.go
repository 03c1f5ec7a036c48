package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontlab/cart-widget-backend/internal/cart"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
)

func TestGatewaySetQuantity(t *testing.T) {
	t.Run("updates quantity and recalculates totals", func(t *testing.T) {
		engine := newEngine()
		engine.AddLine(testSession, commerce.Line{Key: "a", ProductRef: "prod-1", Quantity: 1})
		c, _ := engine.Cart(testSession)

		result := cart.NewGateway(nil).SetQuantity(c, "a", 4)

		assert.True(t, result.OK)
		assert.Equal(t, 4, c.Count())
		assert.Equal(t, "40.00", c.SubtotalDisplay())
	})

	t.Run("negative quantity behaves like zero", func(t *testing.T) {
		gateway := cart.NewGateway(nil)

		engineA := newEngine()
		engineA.AddLine(testSession, commerce.Line{Key: "a", ProductRef: "prod-1", Quantity: 2})
		cartA, _ := engineA.Cart(testSession)
		resultA := gateway.SetQuantity(cartA, "a", -5)

		engineB := newEngine()
		engineB.AddLine(testSession, commerce.Line{Key: "a", ProductRef: "prod-1", Quantity: 2})
		cartB, _ := engineB.Cart(testSession)
		resultB := gateway.SetQuantity(cartB, "a", 0)

		assert.Equal(t, resultB, resultA)
		assert.Equal(t, cartB.Count(), cartA.Count())
		assert.Empty(t, cartA.Lines())
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		engine := newEngine()
		engine.AddLine(testSession, commerce.Line{Key: "a", ProductRef: "prod-1", Quantity: 2})
		c, _ := engine.Cart(testSession)

		result := cart.NewGateway(nil).SetQuantity(c, "a", 0)

		require.True(t, result.OK)
		snap := cart.NewProjector(engine, nil).Snapshot(c)
		assert.Equal(t, 0, snap.Count)
		assert.Empty(t, snap.Lines)
	})

	t.Run("unknown key fails without altering count", func(t *testing.T) {
		engine := newEngine()
		engine.AddLine(testSession, commerce.Line{Key: "a", ProductRef: "prod-1", Quantity: 2})
		c, _ := engine.Cart(testSession)

		result := cart.NewGateway(nil).SetQuantity(c, "nonexistent", 3)

		assert.False(t, result.OK)
		assert.NotEmpty(t, result.Reason)
		assert.Equal(t, 2, c.Count())
	})

	t.Run("nil cart fails", func(t *testing.T) {
		result := cart.NewGateway(nil).SetQuantity(nil, "a", 1)

		assert.False(t, result.OK)
		assert.Equal(t, "cart is not available", result.Reason)
	})
}

func TestGatewayRemoveLine(t *testing.T) {
	t.Run("removes an existing line", func(t *testing.T) {
		engine := newEngine()
		engine.AddLine(testSession, commerce.Line{Key: "a", ProductRef: "prod-1", Quantity: 2})
		c, _ := engine.Cart(testSession)

		result := cart.NewGateway(nil).RemoveLine(c, "a")

		require.True(t, result.OK)
		snap := cart.NewProjector(engine, nil).Snapshot(c)
		assert.Empty(t, snap.Lines)
		assert.Equal(t, 0, snap.Count)
	})

	t.Run("reports engine refusal for unknown key", func(t *testing.T) {
		engine := newEngine()
		c, _ := engine.Cart(testSession)

		result := cart.NewGateway(nil).RemoveLine(c, "missing")

		assert.False(t, result.OK)
	})

	t.Run("nil cart fails", func(t *testing.T) {
		result := cart.NewGateway(nil).RemoveLine(nil, "a")

		assert.False(t, result.OK)
	})
}
