package cart

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/logger"
)

const key = "cart-storage:test"

func product(id string, price int64) catalog.Product {
	return catalog.Product{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(price), InStock: true, StockQuantity: 100}
}

type brokenStore struct {
	*storage.MemoryStore
	saveErr error
	loadErr error
}

func (b *brokenStore) Save(ctx context.Context, key string, data []byte) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	return b.MemoryStore.Save(ctx, key, data)
}

func (b *brokenStore) Load(ctx context.Context, key string) ([]byte, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.MemoryStore.Load(ctx, key)
}

func (b *brokenStore) Update(ctx context.Context, key string, fn func([]byte, bool) ([]byte, error)) error {
	if b.loadErr != nil {
		return b.loadErr
	}
	if b.saveErr != nil {
		return b.saveErr
	}
	return b.MemoryStore.Update(ctx, key, fn)
}

func newStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	blobs := storage.NewMemoryStore()
	return NewStore(blobs, key, logger.Discard()), blobs
}

func TestAddItem_MergesAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.AddItem(ctx, product("a", 100), 1))
	require.NoError(t, s.AddItem(ctx, product("b", 250), 2))
	require.NoError(t, s.AddItem(ctx, product("a", 100), 3))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 6, s.ItemCount())
	assert.Equal(t, 2, s.Len())
	assert.True(t, decimal.NewFromInt(900).Equal(s.Total()))
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	s, _ := newStore(t)
	assert.ErrorIs(t, s.AddItem(context.Background(), product("a", 1), 0), ErrInvalidQuantity)
	assert.Equal(t, 0, s.Len())
}

func TestAddItem_RejectsQuantityOverflow(t *testing.T) {
	ctx := context.Background()
	s, blobs := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 1))

	assert.ErrorIs(t, s.AddItem(ctx, product("a", 100), math.MaxInt), ErrInvalidQuantity)
	assert.Equal(t, 1, s.Quantity("a"))
	assert.True(t, decimal.NewFromInt(100).Equal(s.Total()))

	reloaded := NewStore(blobs, key, logger.Discard())
	require.NoError(t, reloaded.Restore(ctx))
	assert.Equal(t, 1, reloaded.Quantity("a"))
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 1))

	require.NoError(t, s.UpdateQuantity(ctx, "a", 5))
	assert.Equal(t, 5, s.Quantity("a"))

	require.NoError(t, s.UpdateQuantity(ctx, "missing", 3))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.UpdateQuantity(ctx, "a", 0))
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Total().IsZero())
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 1))
	require.NoError(t, s.AddItem(ctx, product("b", 100), 1))

	require.NoError(t, s.RemoveItem(ctx, "a"))
	require.NoError(t, s.RemoveItem(ctx, "a"))
	assert.Equal(t, []string{"b"}, ids(s.Items()))

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Items())
}

func TestInvariantHoldsForRandomSequences(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	rng := rand.New(rand.NewSource(42))
	productIDs := []string{"a", "b", "c", "d"}

	for i := 0; i < 500; i++ {
		id := productIDs[rng.Intn(len(productIDs))]
		switch rng.Intn(3) {
		case 0:
			_ = s.AddItem(ctx, product(id, 10), rng.Intn(4))
		case 1:
			require.NoError(t, s.UpdateQuantity(ctx, id, rng.Intn(6)-2))
		case 2:
			require.NoError(t, s.RemoveItem(ctx, id))
		}

		seen := map[string]bool{}
		for _, e := range s.Items() {
			assert.GreaterOrEqual(t, e.Quantity, 1)
			assert.False(t, seen[e.Product.ID], "duplicate %s", e.Product.ID)
			seen[e.Product.ID] = true
		}
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, blobs := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 2))
	require.NoError(t, s.AddItem(ctx, product("b", 40), 1))

	reloaded := NewStore(blobs, key, logger.Discard())
	require.NoError(t, reloaded.Restore(ctx))

	assert.Equal(t, ids(s.Items()), ids(reloaded.Items()))
	assert.Equal(t, 2, reloaded.Quantity("a"))
	assert.True(t, s.Total().Equal(reloaded.Total()))
}

func TestRestore_ToleratesBadState(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		s, _ := newStore(t)
		require.NoError(t, s.Restore(ctx))
		assert.Zero(t, s.Len())
	})

	t.Run("malformed", func(t *testing.T) {
		s, blobs := newStore(t)
		require.NoError(t, blobs.Save(ctx, key, []byte(`{"items":`)))
		require.NoError(t, s.Restore(ctx))
		assert.Zero(t, s.Len())
	})

	t.Run("invalid entries", func(t *testing.T) {
		s, blobs := newStore(t)
		blob := `[
			{"product":{"id":"a","price":"10"},"quantity":1},
			{"product":{"id":"a","price":"10"},"quantity":2},
			{"product":{"id":"b","price":"10"},"quantity":0},
			{"product":{"id":"","price":"10"},"quantity":3}
		]`
		require.NoError(t, blobs.Save(ctx, key, []byte(blob)))
		require.NoError(t, s.Restore(ctx))

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("transport failure", func(t *testing.T) {
		blobs := &brokenStore{MemoryStore: storage.NewMemoryStore(), loadErr: errors.New("connection refused")}
		s := NewStore(blobs, key, logger.Discard())
		assert.Error(t, s.Restore(ctx))
	})
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	blobs := &brokenStore{MemoryStore: storage.NewMemoryStore(), saveErr: errors.New("disk full")}
	s := NewStore(blobs, key, logger.Discard())

	err := s.AddItem(ctx, product("a", 100), 1)
	assert.ErrorIs(t, err, ErrNotPersisted)
	assert.Equal(t, 1, s.ItemCount())

	blobs.saveErr = nil
	require.NoError(t, s.AddItem(ctx, product("b", 100), 1))

	reloaded := NewStore(blobs, key, logger.Discard())
	require.NoError(t, reloaded.Restore(ctx))
	assert.Equal(t, []string{"a", "b"}, ids(reloaded.Items()))
}

func TestSharedBlobKeepsWritesFromEveryStore(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStore()
	first := NewStore(blobs, key, logger.Discard())
	second := NewStore(blobs, key, logger.Discard())

	require.NoError(t, first.AddItem(ctx, product("p1", 10), 1))
	require.NoError(t, second.Restore(ctx))
	require.NoError(t, first.AddItem(ctx, product("p2", 10), 1))
	require.NoError(t, second.AddItem(ctx, product("p3", 10), 1))

	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(second.Items()))

	require.NoError(t, first.Refresh(ctx))
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(first.Items()))
}

func TestRefreshKeepsUnsavedChanges(t *testing.T) {
	ctx := context.Background()
	blobs := &brokenStore{MemoryStore: storage.NewMemoryStore(), saveErr: errors.New("disk full")}
	s := NewStore(blobs, key, logger.Discard())

	assert.ErrorIs(t, s.AddItem(ctx, product("a", 100), 1), ErrNotPersisted)
	require.NoError(t, s.Refresh(ctx))
	assert.Equal(t, 1, s.Quantity("a"))
}

func TestRemovePurchased(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 2))
	require.NoError(t, s.AddItem(ctx, product("b", 100), 1))
	purchased := s.Items()

	require.NoError(t, s.AddItem(ctx, product("a", 100), 1))
	require.NoError(t, s.AddItem(ctx, product("c", 100), 1))

	require.NoError(t, s.RemovePurchased(ctx, purchased))
	assert.Equal(t, []string{"a", "c"}, ids(s.Items()))
	assert.Equal(t, 1, s.Quantity("a"))
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Product.ID)
	}
	return out
}
