package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Store is a session's cart. Entries are unique by product id, keep insertion order
// and always hold a quantity of at least one. Every mutation is applied to the
// persisted blob in one atomic update, so other processes serving the same
// session do not lose their writes.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	dirty   bool // holds changes storage has not accepted yet
	blobs   storage.Store
	key     string
	log     logrus.FieldLogger
}

// NewStore creates an empty cart persisted under key
func NewStore(blobs storage.Store, key string, log logrus.FieldLogger) *Store {
	return &Store{
		blobs: blobs,
		key:   key,
		log:   log.WithField("store", key),
	}
}

// Restore replaces the in-memory cart with the persisted one. A missing or
// malformed blob leaves the cart empty; only transport failures are returned.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = false
	return s.load(ctx)
}

// Refresh picks up changes written by other processes. A cart holding
// unsaved changes keeps them instead.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		return nil
	}
	return s.load(ctx)
}

// AddItem adds quantity units of product, merging with an existing entry
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, product.ID)
		if i < 0 {
			return append(entries, Entry{Product: product, Quantity: quantity}), nil
		}
		if entries[i].Quantity > math.MaxInt-quantity {
			return nil, ErrInvalidQuantity
		}
		entries[i].Quantity += quantity
		return entries, nil
	})
}

// UpdateQuantity sets an entry's quantity; zero or less removes it.
// Unknown products are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, productID)
		switch {
		case i < 0:
			return entries, nil
		case quantity <= 0:
			return without(entries, i), nil
		default:
			entries[i].Quantity = quantity
			return entries, nil
		}
	})
}

// RemoveItem drops a product from the cart
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(entries []Entry) ([]Entry, error) {
		if i := indexOf(entries, productID); i >= 0 {
			return without(entries, i), nil
		}
		return entries, nil
	})
}

// RemovePurchased takes the purchased quantities out of the cart. Lines added
// or topped up after the purchase snapshot was taken stay.
func (s *Store) RemovePurchased(ctx context.Context, purchased []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(entries []Entry) ([]Entry, error) {
		for _, p := range purchased {
			i := indexOf(entries, p.Product.ID)
			if i < 0 {
				continue
			}
			if entries[i].Quantity <= p.Quantity {
				entries = without(entries, i)
			} else {
				entries[i].Quantity -= p.Quantity
			}
		}
		return entries, nil
	})
}

// Clear empties the cart
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func([]Entry) ([]Entry, error) {
		return nil, nil
	})
}

// Items returns a copy of the entries in insertion order
func (s *Store) Items() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Quantity returns how many units of a product are in the cart
func (s *Store) Quantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.entries, productID); i >= 0 {
		return s.entries[i].Quantity
	}
	return 0
}

// Total is the sum of price times quantity over all entries
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Subtotal(s.entries)
}

// ItemCount is the sum of quantities
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		n += e.Quantity
	}
	return n
}

// Len is the number of distinct products
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Subtotal sums the line totals of entries
func Subtotal(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

func (s *Store) load(ctx context.Context) error {
	var saved []Entry
	err := storage.LoadJSON(ctx, s.blobs, s.key, &saved)

	switch {
	case err == nil:
		s.entries = sanitize(saved)
		if dropped := len(saved) - len(s.entries); dropped > 0 {
			s.log.WithField("dropped", dropped).Warn("Discarded invalid cart entries on restore")
		}
		return nil
	case errors.Is(err, storage.ErrNotFound):
		s.entries = nil
		return nil
	case errors.Is(err, storage.ErrMalformed):
		s.log.WithError(err).Warn("Persisted cart is unreadable, starting empty")
		s.entries = nil
		return nil
	default:
		return fmt.Errorf("failed to restore cart: %w", err)
	}
}

// mutate must be called with mu held. apply runs on the persisted entries
// inside an atomic update; when storage fails it runs on the in-memory entries
// instead and the cart stays dirty until a later write succeeds. A dirty cart
// writes its own entries back whole.
func (s *Store) mutate(ctx context.Context, apply func([]Entry) ([]Entry, error)) error {
	if s.dirty {
		next, err := apply(s.entries)
		if err != nil {
			return err
		}
		s.entries = next
		if err := storage.SaveJSON(ctx, s.blobs, s.key, nonNil(next)); err != nil {
			return fmt.Errorf("%w: %v", ErrNotPersisted, err)
		}
		s.dirty = false
		return nil
	}

	var (
		next     []Entry
		applyErr error
	)
	err := storage.UpdateJSON(ctx, s.blobs, s.key, func(saved *[]Entry) error {
		next, applyErr = apply(sanitize(*saved))
		if applyErr != nil {
			return applyErr
		}
		*saved = nonNil(next)
		return nil
	})
	switch {
	case applyErr != nil:
		return applyErr
	case err == nil:
		s.entries = next
		return nil
	}

	local, applyErr := apply(append([]Entry(nil), s.entries...))
	if applyErr != nil {
		return applyErr
	}
	s.entries = local
	s.dirty = true
	return fmt.Errorf("%w: %v", ErrNotPersisted, err)
}

func indexOf(entries []Entry, productID string) int {
	for i, e := range entries {
		if e.Product.ID == productID {
			return i
		}
	}
	return -1
}

func without(entries []Entry, i int) []Entry {
	return append(entries[:i:i], entries[i+1:]...)
}

func nonNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}

// sanitize merges duplicate ids and drops entries without an id or with quantity below one
func sanitize(saved []Entry) []Entry {
	var out []Entry
	seen := make(map[string]int, len(saved))
	for _, e := range saved {
		if e.Product.ID == "" || e.Quantity < 1 {
			continue
		}
		if i, ok := seen[e.Product.ID]; ok {
			out[i].Quantity += e.Quantity
			continue
		}
		seen[e.Product.ID] = len(out)
		out = append(out, e)
	}
	return out
}
