package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/address"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/logger"
)

var stores = config.StorageConfig{CartStore: "cart-storage", WishlistStore: "wishlist-storage"}

func newManager(t *testing.T, blobs storage.Store) (*Manager, *catalog.Catalog) {
	t.Helper()
	cat := catalog.Default(time.Now())
	engine := pricing.NewEngine(decimal.NewFromInt(499), decimal.NewFromInt(40))
	return NewManager(blobs, stores, coupon.NewValidator(cat), engine, logger.Discard()), cat
}

func mustProduct(t *testing.T, cat *catalog.Catalog, id string) catalog.Product {
	t.Helper()
	p, ok := cat.Product(id)
	require.True(t, ok, id)
	return p
}

func TestManager_GetReturnsSameState(t *testing.T) {
	m, _ := newManager(t, storage.NewMemoryStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	states := make([]*State, 8)
	for i := range states {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := m.Get(ctx, "sid-1")
			require.NoError(t, err)
			states[i] = st
		}(i)
	}
	wg.Wait()

	for _, st := range states[1:] {
		assert.Same(t, states[0], st)
	}
	assert.Equal(t, 1, m.Len())
}

func TestManager_RestoresPersistedCollections(t *testing.T) {
	blobs := storage.NewMemoryStore()
	ctx := context.Background()

	m, cat := newManager(t, blobs)
	st, err := m.Get(ctx, "sid-2")
	require.NoError(t, err)
	require.NoError(t, st.Cart.AddItem(ctx, mustProduct(t, cat, "p-1001"), 2))
	require.NoError(t, st.Wishlist.AddItem(ctx, mustProduct(t, cat, "p-3001")))

	fresh, _ := newManager(t, blobs)
	restored, err := fresh.Get(ctx, "sid-2")
	require.NoError(t, err)
	assert.Equal(t, 2, restored.Cart.Quantity("p-1001"))
	assert.True(t, restored.Wishlist.Contains("p-3001"))

	other, err := fresh.Get(ctx, "sid-3")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Cart.Len())
}

func TestManager_ReplicasSharingStorageKeepEveryWrite(t *testing.T) {
	blobs := storage.NewMemoryStore()
	ctx := context.Background()
	replicaA, cat := newManager(t, blobs)
	replicaB, _ := newManager(t, blobs)

	a, err := replicaA.Get(ctx, "sid-4")
	require.NoError(t, err)
	require.NoError(t, a.Cart.AddItem(ctx, mustProduct(t, cat, "p-1001"), 1))

	b, err := replicaB.Get(ctx, "sid-4")
	require.NoError(t, err)

	require.NoError(t, a.Cart.AddItem(ctx, mustProduct(t, cat, "p-2001"), 1))
	require.NoError(t, b.Cart.AddItem(ctx, mustProduct(t, cat, "p-3001"), 1))

	fresh, _ := newManager(t, blobs)
	persisted, err := fresh.Get(ctx, "sid-4")
	require.NoError(t, err)
	assert.Equal(t, 3, persisted.Cart.Len())

	a, err = replicaA.Get(ctx, "sid-4")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Cart.Quantity("p-3001"))
}

func TestManager_Sweep(t *testing.T) {
	m, _ := newManager(t, storage.NewMemoryStore())
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	_, err := m.Get(context.Background(), "old")
	require.NoError(t, err)

	clock = clock.Add(2 * time.Hour)
	_, err = m.Get(context.Background(), "recent")
	require.NoError(t, err)

	assert.Equal(t, 1, m.Sweep(time.Hour))
	assert.Equal(t, 1, m.Len())
}

func TestState_ApplyCoupon(t *testing.T) {
	m, cat := newManager(t, storage.NewMemoryStore())
	ctx := context.Background()
	st, err := m.Get(ctx, "sid")
	require.NoError(t, err)

	require.NoError(t, st.Cart.AddItem(ctx, mustProduct(t, cat, "p-1001"), 1))

	applied, err := st.ApplyCoupon("save10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", applied.Code)

	q := st.Quote()
	assert.Equal(t, "199.9", q.Pricing.Discount.String())
	assert.True(t, q.Pricing.DeliveryFee.IsZero())
	assert.Equal(t, "1799.1", q.Pricing.Total.String())
	assert.Empty(t, q.Notice)

	_, err = st.ApplyCoupon("FESTIVE30")
	assert.ErrorIs(t, err, coupon.ErrExpired)
	require.NotNil(t, st.AppliedCoupon())
	assert.Equal(t, "SAVE10", st.AppliedCoupon().Code)

	st.RemoveCoupon()
	assert.Nil(t, st.AppliedCoupon())
	assert.True(t, st.Quote().Pricing.Discount.IsZero())
}

func TestState_QuoteDropsCouponThatNoLongerQualifies(t *testing.T) {
	m, cat := newManager(t, storage.NewMemoryStore())
	ctx := context.Background()
	st, err := m.Get(ctx, "sid")
	require.NoError(t, err)

	require.NoError(t, st.Cart.AddItem(ctx, mustProduct(t, cat, "p-2001"), 1))
	_, err = st.ApplyCoupon("WELCOME50")
	require.NoError(t, err)

	require.NoError(t, st.Cart.RemoveItem(ctx, "p-2001"))
	require.NoError(t, st.Cart.AddItem(ctx, mustProduct(t, cat, "p-4002"), 1))

	q := st.Quote()
	assert.Nil(t, q.Coupon)
	assert.Contains(t, q.Notice, "WELCOME50")
	assert.True(t, q.Pricing.Discount.IsZero())
	assert.Equal(t, "40", q.Pricing.DeliveryFee.String())
	assert.Nil(t, st.AppliedCoupon())
}

func TestState_QuoteRecomputesDiscount(t *testing.T) {
	m, cat := newManager(t, storage.NewMemoryStore())
	ctx := context.Background()
	st, err := m.Get(ctx, "sid")
	require.NoError(t, err)

	require.NoError(t, st.Cart.AddItem(ctx, mustProduct(t, cat, "p-1001"), 1))
	_, err = st.ApplyCoupon("SAVE10")
	require.NoError(t, err)

	require.NoError(t, st.Cart.UpdateQuantity(ctx, "p-1001", 2))
	q := st.Quote()
	assert.Equal(t, "399.8", q.Pricing.Discount.String())
	assert.Equal(t, 2, q.Count)
}

type fakeBook struct {
	addrs []address.Address
	err   error
}

func (f fakeBook) List(ctx context.Context) ([]address.Address, error) { return f.addrs, f.err }

type fakeProfiles struct {
	profile *user.Profile
	err     error
}

func (f fakeProfiles) GetProfile(ctx context.Context) (*user.Profile, error) { return f.profile, f.err }

func checkoutDeps() checkout.Deps {
	return checkout.Deps{
		Pricing: pricing.NewEngine(decimal.NewFromInt(499), decimal.NewFromInt(40)),
		Log:     logger.Discard(),
	}
}

func TestState_StartCheckout(t *testing.T) {
	m, cat := newManager(t, storage.NewMemoryStore())
	ctx := context.Background()
	st, err := m.Get(ctx, "sid")
	require.NoError(t, err)

	id := &auth.Identity{UserID: "u-1", Name: "token name"}
	book := fakeBook{addrs: []address.Address{{ID: "a-1"}, {ID: "a-2", IsDefault: true}}}

	_, err = st.StartCheckout(ctx, id, book, fakeProfiles{}, checkoutDeps())
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	_, ok := st.Checkout()
	assert.False(t, ok)

	require.NoError(t, st.Cart.AddItem(ctx, mustProduct(t, cat, "p-1001"), 1))
	_, err = st.ApplyCoupon("SAVE10")
	require.NoError(t, err)

	profiles := fakeProfiles{profile: &user.Profile{Name: "Asha Rao", Email: "asha@example.com", Mobile: "9876543210"}}
	c, err := st.StartCheckout(ctx, id, book, profiles, checkoutDeps())
	require.NoError(t, err)
	assert.Equal(t, "a-2", c.SelectedAddressID())
	assert.Equal(t, "199.9", c.Summary().Discount.String())

	current, ok := st.Checkout()
	require.True(t, ok)
	assert.Same(t, c, current)

	st.EndCheckout()
	_, ok = st.Checkout()
	assert.False(t, ok)
}

func TestState_StartCheckoutToleratesMissingProfile(t *testing.T) {
	m, cat := newManager(t, storage.NewMemoryStore())
	ctx := context.Background()
	st, err := m.Get(ctx, "sid")
	require.NoError(t, err)
	require.NoError(t, st.Cart.AddItem(ctx, mustProduct(t, cat, "p-3002"), 1))

	id := &auth.Identity{UserID: "u-1", Name: "Asha"}
	c, err := st.StartCheckout(ctx, id, fakeBook{}, fakeProfiles{err: errors.New("profile down")}, checkoutDeps())
	require.NoError(t, err)
	assert.Empty(t, c.SelectedAddressID())

	_, err = st.StartCheckout(ctx, id, fakeBook{err: errors.New("backend down")}, fakeProfiles{}, checkoutDeps())
	assert.Error(t, err)
}
