package wishlist

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func product(id string) catalog.Product {
	return catalog.Product{ID: id, Name: id, Price: decimal.NewFromInt(100), InStock: true}
}

func TestWishlist_SetSemantics(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore(), "wishlist-storage:s", logger.Discard())

	require.NoError(t, s.AddItem(ctx, product("a")))
	require.NoError(t, s.AddItem(ctx, product("b")))
	require.NoError(t, s.AddItem(ctx, product("a")))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))

	require.NoError(t, s.RemoveItem(ctx, "a"))
	require.NoError(t, s.RemoveItem(ctx, "missing"))
	assert.False(t, s.Contains("a"))

	require.NoError(t, s.Clear(ctx))
	assert.Zero(t, s.Len())
}

func TestWishlist_Restore(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStore()
	s := NewStore(blobs, "wishlist-storage:s", logger.Discard())
	require.NoError(t, s.AddItem(ctx, product("a")))
	require.NoError(t, s.AddItem(ctx, product("b")))

	reloaded := NewStore(blobs, "wishlist-storage:s", logger.Discard())
	require.NoError(t, reloaded.Restore(ctx))
	items := reloaded.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)

	require.NoError(t, blobs.Save(ctx, "wishlist-storage:s", []byte(`[{"id":"x"},{"id":"x"},{"id":""}]`)))
	require.NoError(t, reloaded.Restore(ctx))
	assert.Equal(t, 1, reloaded.Len())

	require.NoError(t, blobs.Save(ctx, "wishlist-storage:s", []byte(`nope`)))
	require.NoError(t, reloaded.Restore(ctx))
	assert.Zero(t, reloaded.Len())
}

func TestMoveToCart(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStore()
	w := NewStore(blobs, "wishlist-storage:s", logger.Discard())
	c := cart.NewStore(blobs, "cart-storage:s", logger.Discard())

	require.NoError(t, w.AddItem(ctx, product("a")))
	require.NoError(t, c.AddItem(ctx, product("a"), 2))

	require.NoError(t, w.MoveToCart(ctx, "a", c))
	assert.False(t, w.Contains("a"))
	assert.Equal(t, 3, c.Quantity("a"))

	assert.ErrorIs(t, w.MoveToCart(ctx, "a", c), ErrNotInWishlist)
}

func TestWishlist_SharedBlobKeepsWritesFromEveryStore(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStore()
	first := NewStore(blobs, "wishlist-storage:s", logger.Discard())
	second := NewStore(blobs, "wishlist-storage:s", logger.Discard())

	require.NoError(t, first.AddItem(ctx, product("a")))
	require.NoError(t, second.Restore(ctx))
	require.NoError(t, first.AddItem(ctx, product("b")))
	require.NoError(t, second.RemoveItem(ctx, "a"))

	assert.False(t, second.Contains("a"))
	assert.True(t, second.Contains("b"))

	require.NoError(t, first.Refresh(ctx))
	assert.Equal(t, 1, first.Len())
	assert.True(t, first.Contains("b"))
}
