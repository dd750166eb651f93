// Package pricing computes cart totals. Everything here is pure.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/coupon"
)

// MoneyPlaces is the precision amounts are rounded to
const MoneyPlaces = 2

var minorUnit = decimal.New(1, -MoneyPlaces)

// Breakdown is the priced view of a cart
type Breakdown struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Discount              decimal.Decimal `json:"discount"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	Total                 decimal.Decimal `json:"total"`
	FreeDeliveryShortfall decimal.Decimal `json:"free_delivery_shortfall"` // Smallest top-up that makes delivery free
	CouponCode            string          `json:"coupon_code,omitempty"`
}

// Engine applies the delivery rule: free when the subtotal is strictly above the threshold
type Engine struct {
	freeDeliveryAbove decimal.Decimal
	deliveryFee       decimal.Decimal
}

// NewEngine creates an engine with explicit delivery settings
func NewEngine(freeDeliveryAbove, deliveryFee decimal.Decimal) *Engine {
	return &Engine{freeDeliveryAbove: freeDeliveryAbove, deliveryFee: deliveryFee}
}

// NewEngineFromConfig creates an engine from the pricing configuration
func NewEngineFromConfig(cfg config.PricingConfig) *Engine {
	return NewEngine(decimal.NewFromFloat(cfg.FreeDeliveryAbove), decimal.NewFromFloat(cfg.DeliveryFee))
}

// FreeDeliveryAbove returns the threshold the subtotal must exceed
func (e *Engine) FreeDeliveryAbove() decimal.Decimal {
	return e.freeDeliveryAbove
}

// Quote prices cart entries with an optional applied coupon
func (e *Engine) Quote(entries []cart.Entry, applied *coupon.Applied) Breakdown {
	discount := decimal.Zero
	code := ""
	if applied != nil {
		discount = applied.Discount
		code = applied.Code
	}
	b := e.QuoteSubtotal(cart.Subtotal(entries), discount)
	b.CouponCode = code
	return b
}

// QuoteSubtotal prices a raw subtotal and discount
func (e *Engine) QuoteSubtotal(subtotal, discount decimal.Decimal) Breakdown {
	subtotal = subtotal.Round(MoneyPlaces)

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	discount = decimal.Min(discount.Round(MoneyPlaces), subtotal)

	fee := e.DeliveryFee(subtotal)
	shortfall := decimal.Zero
	if !fee.IsZero() {
		shortfall = e.freeDeliveryAbove.Add(minorUnit).Sub(subtotal)
	}

	return Breakdown{
		Subtotal:              subtotal,
		Discount:              discount,
		DeliveryFee:           fee,
		Total:                 decimal.Max(subtotal.Sub(discount), decimal.Zero).Add(fee).Round(MoneyPlaces),
		FreeDeliveryShortfall: shortfall.Round(MoneyPlaces),
	}
}

// DeliveryFee returns the fee charged for a subtotal
func (e *Engine) DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(e.freeDeliveryAbove) {
		return decimal.Zero
	}
	return e.deliveryFee.Round(MoneyPlaces)
}
