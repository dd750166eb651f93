package coupon

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/catalog"
)

var (
	// ErrInvalidCode means no coupon has the code
	ErrInvalidCode = errors.New("invalid coupon code")
	// ErrExpired means the coupon is past its expiry
	ErrExpired = errors.New("coupon has expired")
)

// MinimumNotMetError means the subtotal is below the coupon's minimum purchase
type MinimumNotMetError struct {
	Code      string
	Required  decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *MinimumNotMetError) Error() string {
	return fmt.Sprintf("minimum purchase of %s required for %s, add %s more",
		e.Required.StringFixed(2), e.Code, e.Shortfall.StringFixed(2))
}

// Applied is a coupon accepted against a subtotal
type Applied struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

// Catalog is the coupon lookup the validator needs
type Catalog interface {
	Coupon(code string) (catalog.Coupon, bool)
	Coupons() []catalog.Coupon
}

// Validator checks coupon codes against a subtotal
type Validator struct {
	catalog Catalog
	now     func() time.Time
}

// NewValidator creates a validator using the wall clock
func NewValidator(c Catalog) *Validator {
	return &Validator{catalog: c, now: time.Now}
}

// WithClock returns a copy of the validator that reads time from now
func (v *Validator) WithClock(now func() time.Time) *Validator {
	return &Validator{catalog: v.catalog, now: now}
}

// Validate looks the code up ignoring case, then checks expiry and minimum
// purchase before computing the discount. Expired coupons report ErrExpired
// whatever the subtotal.
func (v *Validator) Validate(code string, subtotal decimal.Decimal) (*Applied, error) {
	c, ok := v.catalog.Coupon(code)
	if !ok {
		return nil, ErrInvalidCode
	}

	if c.ExpiredAt(v.now()) {
		return nil, ErrExpired
	}

	if minimum := c.Minimum(); subtotal.LessThan(minimum) {
		return nil, &MinimumNotMetError{
			Code:      c.Code,
			Required:  minimum,
			Shortfall: minimum.Sub(subtotal),
		}
	}

	return &Applied{Code: c.Code, Discount: Discount(c, subtotal)}, nil
}

// Revalidate re-applies a coupon after the subtotal changed. A nil applied coupon stays nil.
func (v *Validator) Revalidate(applied *Applied, subtotal decimal.Decimal) (*Applied, error) {
	if applied == nil {
		return nil, nil
	}
	return v.Validate(applied.Code, subtotal)
}

// Eligible lists unexpired coupons whose minimum purchase the subtotal meets.
// The list is for display; Validate still checks at apply time.
func (v *Validator) Eligible(subtotal decimal.Decimal) []catalog.Coupon {
	var out []catalog.Coupon
	for _, c := range v.Active() {
		if subtotal.GreaterThanOrEqual(c.Minimum()) {
			out = append(out, c)
		}
	}
	return out
}

// Active lists coupons that have not expired
func (v *Validator) Active() []catalog.Coupon {
	now := v.now()
	var out []catalog.Coupon
	for _, c := range v.catalog.Coupons() {
		if !c.ExpiredAt(now) {
			out = append(out, c)
		}
	}
	return out
}

// Now returns the validator's current time
func (v *Validator) Now() time.Time {
	return v.now()
}

// Discount computes a coupon's discount on subtotal. Percentage discounts
// are capped by MaxDiscount when set.
func Discount(c catalog.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch c.DiscountType {
	case catalog.DiscountFlat:
		d = c.DiscountValue
	case catalog.DiscountPercentage:
		d = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
		if c.MaxDiscount != nil && d.GreaterThan(*c.MaxDiscount) {
			d = *c.MaxDiscount
		}
	}
	return d.Round(2)
}
