package wishlist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Store is a session's wishlist: a set of products keyed by id, kept in insertion order.
// Mutations are applied to the persisted blob atomically, like the cart.
type Store struct {
	mu       sync.Mutex
	products []catalog.Product
	dirty    bool
	blobs    storage.Store
	key      string
	log      logrus.FieldLogger
}

// NewStore creates an empty wishlist persisted under key
func NewStore(blobs storage.Store, key string, log logrus.FieldLogger) *Store {
	return &Store{
		blobs: blobs,
		key:   key,
		log:   log.WithField("store", key),
	}
}

// Restore replaces the in-memory wishlist with the persisted one.
// A missing or malformed blob leaves the wishlist empty.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = false
	return s.load(ctx)
}

// Refresh reloads the wishlist unless it holds changes storage has not accepted
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		return nil
	}
	return s.load(ctx)
}

// AddItem saves a product; adding one that is already saved does nothing
func (s *Store) AddItem(ctx context.Context, product catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(products []catalog.Product) []catalog.Product {
		if indexOf(products, product.ID) >= 0 {
			return products
		}
		return append(products, product)
	})
}

// RemoveItem drops a product; absent products are ignored
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(products []catalog.Product) []catalog.Product {
		if i := indexOf(products, productID); i >= 0 {
			return append(products[:i:i], products[i+1:]...)
		}
		return products
	})
}

// Contains reports whether the product is saved
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return indexOf(s.products, productID) >= 0
}

// Clear empties the wishlist
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func([]catalog.Product) []catalog.Product {
		return nil
	})
}

// Items returns a copy of the saved products
func (s *Store) Items() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len is the number of saved products
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.products)
}

// MoveToCart adds one unit of a saved product to the cart, then removes it from the wishlist
func (s *Store) MoveToCart(ctx context.Context, productID string, c *cart.Store) error {
	s.mu.Lock()
	i := indexOf(s.products, productID)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotInWishlist
	}
	product := s.products[i]
	s.mu.Unlock()

	if err := c.AddItem(ctx, product, 1); err != nil && !errors.Is(err, cart.ErrNotPersisted) {
		return err
	}
	return s.RemoveItem(ctx, productID)
}

func (s *Store) load(ctx context.Context) error {
	var saved []catalog.Product
	err := storage.LoadJSON(ctx, s.blobs, s.key, &saved)

	switch {
	case err == nil:
		s.products = dedupe(saved)
		return nil
	case errors.Is(err, storage.ErrNotFound):
		s.products = nil
		return nil
	case errors.Is(err, storage.ErrMalformed):
		s.log.WithError(err).Warn("Persisted wishlist is unreadable, starting empty")
		s.products = nil
		return nil
	default:
		return fmt.Errorf("failed to restore wishlist: %w", err)
	}
}

// mutate must be called with mu held; see cart.Store for the contract
func (s *Store) mutate(ctx context.Context, apply func([]catalog.Product) []catalog.Product) error {
	if s.dirty {
		s.products = apply(s.products)
		if err := storage.SaveJSON(ctx, s.blobs, s.key, nonNil(s.products)); err != nil {
			return fmt.Errorf("%w: %v", ErrNotPersisted, err)
		}
		s.dirty = false
		return nil
	}

	var next []catalog.Product
	err := storage.UpdateJSON(ctx, s.blobs, s.key, func(saved *[]catalog.Product) error {
		next = apply(dedupe(*saved))
		*saved = nonNil(next)
		return nil
	})
	if err != nil {
		s.products = apply(append([]catalog.Product(nil), s.products...))
		s.dirty = true
		return fmt.Errorf("%w: %v", ErrNotPersisted, err)
	}
	s.products = next
	return nil
}

func indexOf(products []catalog.Product, productID string) int {
	for i, p := range products {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func nonNil(products []catalog.Product) []catalog.Product {
	if products == nil {
		return []catalog.Product{}
	}
	return products
}

func dedupe(saved []catalog.Product) []catalog.Product {
	var out []catalog.Product
	seen := make(map[string]bool, len(saved))
	for _, p := range saved {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
