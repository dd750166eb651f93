package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType is how a coupon reduces the subtotal
type DiscountType string

const (
	DiscountFlat       DiscountType = "flat"
	DiscountPercentage DiscountType = "percentage"
)

// Product is a read-only catalog record
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Discount      *int             `json:"discount,omitempty"` // Percent off the original price
	Image         string           `json:"image,omitempty"`
	Images        []string         `json:"images,omitempty"`
	Category      string           `json:"category"`
	Brand         string           `json:"brand"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	InStock       bool             `json:"in_stock"`
	StockQuantity int              `json:"stock_quantity"`
	Tags          []string         `json:"tags,omitempty"`
}

// Available reports whether quantity units can be sold
func (p Product) Available(quantity int) bool {
	return p.InStock && quantity <= p.StockQuantity
}

// CanAdd reports whether quantity more units fit next to inCart already held.
// It compares against the remaining stock so large requests cannot wrap around.
func (p Product) CanAdd(inCart, quantity int) bool {
	return p.InStock && inCart >= 0 && quantity >= 0 && quantity <= p.StockQuantity-inCart
}

// Coupon is a read-only promotion definition
type Coupon struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	Title         string           `json:"title,omitempty"`
	DiscountType  DiscountType     `json:"discount_type"`
	DiscountValue decimal.Decimal  `json:"discount_value"`
	MinPurchase   *decimal.Decimal `json:"min_purchase,omitempty"`
	MaxDiscount   *decimal.Decimal `json:"max_discount,omitempty"` // Cap, percentage coupons only
	Expiry        time.Time        `json:"expiry"`
	Category      string           `json:"category,omitempty"`
	Description   string           `json:"description"`
}

// Minimum returns the minimum purchase, zero when unset
func (c Coupon) Minimum() decimal.Decimal {
	if c.MinPurchase == nil {
		return decimal.Zero
	}
	return *c.MinPurchase
}

// ExpiredAt reports whether the coupon is past its expiry at now
func (c Coupon) ExpiredAt(now time.Time) bool {
	return now.After(c.Expiry)
}

// Category groups products for browsing
type Category struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}
