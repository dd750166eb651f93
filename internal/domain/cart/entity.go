package cart

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/catalog"
)

var (
	// ErrInvalidQuantity is returned when adding fewer than one unit
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrNotPersisted wraps storage failures; the in-memory cart still holds the change
	ErrNotPersisted = errors.New("cart changes could not be saved")
)

// Entry is one product line in the cart
type Entry struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns price times quantity
func (e Entry) LineTotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}
