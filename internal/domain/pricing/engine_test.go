package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func engine() *Engine {
	return NewEngineFromConfig(config.PricingConfig{FreeDeliveryAbove: 499, DeliveryFee: 40})
}

func TestDeliveryFee_Boundary(t *testing.T) {
	e := engine()

	tests := []struct {
		subtotal  string
		fee       string
		shortfall string
	}{
		{"498", "40", "1.01"},
		{"499", "40", "0.01"},
		{"499.01", "0", "0"},
		{"500", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			b := e.QuoteSubtotal(dec(tt.subtotal), decimal.Zero)
			assert.True(t, dec(tt.fee).Equal(b.DeliveryFee), "fee %s", b.DeliveryFee)
			assert.True(t, dec(tt.shortfall).Equal(b.FreeDeliveryShortfall), "shortfall %s", b.FreeDeliveryShortfall)
			assert.True(t, dec(tt.subtotal).Add(dec(tt.fee)).Equal(b.Total))
		})
	}
}

func TestQuote_DiscountNeverMakesTotalNegative(t *testing.T) {
	b := engine().QuoteSubtotal(dec("300"), dec("1000"))

	assert.True(t, dec("300").Equal(b.Discount))
	assert.True(t, dec("40").Equal(b.Total))
}

func TestQuote_Idempotent(t *testing.T) {
	e := engine()
	entries := []cart.Entry{
		{Product: catalog.Product{ID: "a", Price: dec("199.99")}, Quantity: 3},
		{Product: catalog.Product{ID: "b", Price: dec("49.50")}, Quantity: 1},
	}
	applied := &coupon.Applied{Code: "X", Discount: dec("25")}

	first := e.Quote(entries, applied)
	second := e.Quote(entries, applied)
	assert.Equal(t, first, second)
	assert.True(t, dec("649.47").Equal(first.Subtotal))
	assert.True(t, dec("624.47").Equal(first.Total))
	assert.Equal(t, "X", first.CouponCode)
}

func TestQuote_EndToEndWithSave10(t *testing.T) {
	ctx := context.Background()
	c := cart.NewStore(storage.NewMemoryStore(), "cart-storage:e2e", logger.Discard())
	require.NoError(t, c.AddItem(ctx, catalog.Product{ID: "p", Price: dec("1000")}, 2))

	validator := coupon.NewValidator(catalog.Default(time.Now()))
	applied, err := validator.Validate("SAVE10", c.Total())
	require.NoError(t, err)

	b := engine().Quote(c.Items(), applied)
	assert.True(t, dec("2000").Equal(b.Subtotal))
	assert.True(t, dec("200").Equal(b.Discount))
	assert.True(t, b.DeliveryFee.IsZero())
	assert.True(t, dec("1800").Equal(b.Total))
}
