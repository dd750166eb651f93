package session

import (
	"sync"
	"time"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/wishlist"
)

// State is everything one browser session owns. The cart and wishlist are
// persisted; the applied coupon and the checkout live only in memory.
type State struct {
	ID       string
	Cart     *cart.Store
	Wishlist *wishlist.Store

	validator *coupon.Validator
	pricing   *pricing.Engine

	mu       sync.Mutex
	applied  *coupon.Applied
	checkout *checkout.Session
	lastSeen time.Time
}

// Quote is the cart's priced view plus any notice about the applied coupon
type Quote struct {
	Items   []cart.Entry      `json:"items"`
	Count   int               `json:"item_count"`
	Pricing pricing.Breakdown `json:"pricing"`
	Coupon  *coupon.Applied   `json:"coupon,omitempty"`
	Notice  string            `json:"notice,omitempty"`
}

// ApplyCoupon validates code against the current subtotal and keeps it on success.
// A failed attempt leaves any previously applied coupon in place.
func (s *State) ApplyCoupon(code string) (*coupon.Applied, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.validator.Validate(code, s.Cart.Total())
	if err != nil {
		return nil, err
	}
	s.applied = applied
	return applied, nil
}

// RemoveCoupon drops the applied coupon
func (s *State) RemoveCoupon() {
	s.mu.Lock()
	s.applied = nil
	s.mu.Unlock()
}

// AppliedCoupon returns the coupon currently applied, if any
func (s *State) AppliedCoupon() *coupon.Applied {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// Quote prices the cart. The applied coupon is re-checked against the
// current subtotal first: its discount is recomputed, or it is dropped with
// a notice when it no longer qualifies.
func (s *State) Quote() Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.Cart.Items()
	subtotal := cart.Subtotal(items)

	var notice string
	if s.applied != nil {
		updated, err := s.validator.Revalidate(s.applied, subtotal)
		if err != nil {
			notice = "Coupon " + s.applied.Code + " was removed: " + err.Error()
			s.applied = nil
		} else {
			s.applied = updated
		}
	}

	count := 0
	for _, e := range items {
		count += e.Quantity
	}

	return Quote{
		Items:   items,
		Count:   count,
		Pricing: s.pricing.Quote(items, s.applied),
		Coupon:  s.applied,
		Notice:  notice,
	}
}

// SetCheckout replaces the session's checkout
func (s *State) SetCheckout(c *checkout.Session) {
	s.mu.Lock()
	s.checkout = c
	s.mu.Unlock()
}

// Checkout returns the current checkout, if one was started
func (s *State) Checkout() (*checkout.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout, s.checkout != nil
}

// EndCheckout forgets the current checkout
func (s *State) EndCheckout() {
	s.mu.Lock()
	s.checkout = nil
	s.mu.Unlock()
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
