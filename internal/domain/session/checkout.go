package session

import (
	"context"
	"fmt"

	"github.com/your-org/storefront/internal/domain/address"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/pkg/auth"
	"golang.org/x/sync/errgroup"
)

// AddressBook lists the signed-in user's saved addresses
type AddressBook interface {
	List(ctx context.Context) ([]address.Address, error)
}

// Profiles reads the signed-in user's profile
type Profiles interface {
	GetProfile(ctx context.Context) (*user.Profile, error)
}

// StartCheckout opens a new checkout over the session's cart, replacing any
// previous one. Addresses and profile are fetched concurrently; a missing
// profile only degrades the payment prefill to the token's claims.
func (s *State) StartCheckout(ctx context.Context, id *auth.Identity, book AddressBook, profiles Profiles, deps checkout.Deps) (*checkout.Session, error) {
	if s.Cart.Len() == 0 {
		return nil, checkout.ErrEmptyCart
	}

	var (
		addrs   []address.Address
		profile *user.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := book.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to load addresses: %w", err)
		}
		addrs = list
		return nil
	})
	g.Go(func() error {
		p, err := profiles.GetProfile(gctx)
		if err != nil {
			deps.Log.WithError(err).Warn("Profile unavailable for checkout prefill")
			return nil
		}
		profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	buyer := checkout.Buyer{UserID: id.UserID, Name: id.Name, Email: id.Email}
	if profile != nil {
		if profile.Name != "" {
			buyer.Name = profile.Name
		}
		if profile.Email != "" {
			buyer.Email = profile.Email
		}
		buyer.Phone = profile.Mobile
		if buyer.UserID == "" {
			buyer.UserID = profile.ID
		}
	}

	// Re-check the coupon against the cart as it is now.
	applied := s.Quote().Coupon

	c, err := checkout.New(s.Cart, addrs, applied, buyer, deps)
	if err != nil {
		return nil, err
	}
	s.SetCheckout(c)
	return c, nil
}
