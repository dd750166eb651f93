package catalog

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Product{{ID: "a"}, {ID: "a"}}, nil)
	assert.Error(t, err)

	_, err = New(nil, []Coupon{
		{Code: "SAVE10", DiscountType: DiscountFlat},
		{Code: "save10", DiscountType: DiscountFlat},
	})
	assert.Error(t, err)

	_, err = New(nil, []Coupon{{Code: "ODD", DiscountType: "bogo"}})
	assert.Error(t, err)
}

func TestCoupon_CaseInsensitiveLookup(t *testing.T) {
	c := Default(time.Now())

	cp, ok := c.Coupon("save10")
	require.True(t, ok)
	assert.Equal(t, "SAVE10", cp.Code)

	_, ok = c.Coupon("SAVE11")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	c := Default(time.Now())

	electronics := c.Search(Filter{Category: "electronics"})
	assert.Len(t, electronics, 3)

	kitchen := c.Search(Filter{Category: "home-&-kitchen"})
	assert.Len(t, kitchen, 3)

	max := decimal.NewFromInt(400)
	cheap := c.Search(Filter{MaxPrice: &max, SortBy: SortPriceAsc})
	require.NotEmpty(t, cheap)
	for i := 1; i < len(cheap); i++ {
		assert.True(t, cheap[i-1].Price.LessThanOrEqual(cheap[i].Price))
	}
	for _, p := range cheap {
		assert.True(t, p.Price.LessThanOrEqual(max))
	}

	inStock := c.Search(Filter{Query: "jacket", InStockOnly: true})
	assert.Empty(t, inStock)

	byTag := c.Search(Filter{Query: "bluetooth"})
	require.Len(t, byTag, 1)
	assert.Equal(t, "p-1001", byTag[0].ID)
}

func TestCategories(t *testing.T) {
	c := Default(time.Now())
	cats := c.Categories()

	require.Len(t, cats, 4)
	assert.Equal(t, "electronics", cats[0].Slug)
	assert.Equal(t, 3, cats[0].ProductCount)
}

func TestCoupon_ExpiredAt(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	cp := Coupon{Expiry: now}

	assert.False(t, cp.ExpiredAt(now))
	assert.True(t, cp.ExpiredAt(now.Add(time.Second)))
	assert.True(t, cp.Minimum().IsZero())
}

func TestProduct_CanAdd(t *testing.T) {
	p := Product{ID: "p", InStock: true, StockQuantity: 10}

	assert.True(t, p.CanAdd(0, 10))
	assert.True(t, p.CanAdd(4, 6))
	assert.False(t, p.CanAdd(4, 7))
	assert.False(t, p.CanAdd(1, math.MaxInt))
	assert.False(t, p.CanAdd(0, -1))

	p.InStock = false
	assert.False(t, p.CanAdd(0, 1))
}
