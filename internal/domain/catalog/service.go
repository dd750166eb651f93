package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Sort orders accepted by Search
const (
	SortRelevance = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// Catalog holds the product and coupon reference data. It is immutable after New.
type Catalog struct {
	products []Product
	byID     map[string]int
	coupons  []Coupon
	byCode   map[string]int
}

// Filter narrows a product search
type Filter struct {
	Query       string
	Category    string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
	SortBy      string
}

// New creates a catalog; product ids and coupon codes must be unique
func New(products []Product, coupons []Coupon) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		coupons:  make([]Coupon, 0, len(coupons)),
		byCode:   make(map[string]int, len(coupons)),
	}

	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	for _, cp := range coupons {
		key := normalizeCode(cp.Code)
		if key == "" {
			return nil, fmt.Errorf("coupon %q has no code", cp.ID)
		}
		if _, dup := c.byCode[key]; dup {
			return nil, fmt.Errorf("duplicate coupon code %q", cp.Code)
		}
		if cp.DiscountType != DiscountFlat && cp.DiscountType != DiscountPercentage {
			return nil, fmt.Errorf("coupon %q has unknown discount type %q", cp.Code, cp.DiscountType)
		}
		c.byCode[key] = len(c.coupons)
		c.coupons = append(c.coupons, cp)
	}

	return c, nil
}

// Products returns every product in catalog order
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks a product up by id
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Coupons returns every coupon in catalog order
func (c *Catalog) Coupons() []Coupon {
	out := make([]Coupon, len(c.coupons))
	copy(out, c.coupons)
	return out
}

// Coupon looks a coupon up by code, ignoring case and surrounding spaces
func (c *Catalog) Coupon(code string) (Coupon, bool) {
	i, ok := c.byCode[normalizeCode(code)]
	if !ok {
		return Coupon{}, false
	}
	return c.coupons[i], true
}

// Search returns the products matching the filter
func (c *Catalog) Search(f Filter) []Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	var out []Product
	for _, p := range c.products {
		if category != "" && slugify(p.Category) != category && strings.ToLower(p.Category) != category {
			continue
		}
		if f.InStockOnly && !p.InStock {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		out = append(out, p)
	}

	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}

	return out
}

// Categories lists product categories with counts, in first-seen order
func (c *Catalog) Categories() []Category {
	var out []Category
	index := make(map[string]int)
	for _, p := range c.products {
		slug := slugify(p.Category)
		if i, ok := index[slug]; ok {
			out[i].ProductCount++
			continue
		}
		index[slug] = len(out)
		out = append(out, Category{Name: p.Category, Slug: slug, ProductCount: 1})
	}
	return out
}

func matches(p Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Category), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
