package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default returns the storefront's seeded catalog. Coupon expiries are relative to now.
func Default(now time.Time) *Catalog {
	c, err := New(seedProducts(), seedCoupons(now))
	if err != nil {
		// Seed data is static; a failure here is a programming error.
		panic(err)
	}
	return c
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func moneyPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func percent(v int) *int {
	return &v
}

func seedProducts() []Product {
	return []Product{
		{
			ID: "p-1001", Name: "Aurora Wireless Earbuds", Brand: "Sonique", Category: "Electronics",
			Price: money(1999), OriginalPrice: moneyPtr(3999), Discount: percent(50),
			Rating: 4.3, ReviewCount: 1287, InStock: true, StockQuantity: 120,
			Image: "/images/products/earbuds.jpg", Tags: []string{"audio", "bluetooth"},
			Description: "True wireless earbuds with 30 hour battery and noise isolation.",
		},
		{
			ID: "p-1002", Name: "Nimbus 14 Laptop", Brand: "Vertex", Category: "Electronics",
			Price: money(54990), OriginalPrice: moneyPtr(62990), Discount: percent(13),
			Rating: 4.5, ReviewCount: 342, InStock: true, StockQuantity: 15,
			Image: "/images/products/laptop.jpg", Tags: []string{"computer", "ultrabook"},
			Description: "14 inch thin and light laptop, 16 GB RAM, 512 GB SSD.",
		},
		{
			ID: "p-1003", Name: "Pulse Smartwatch", Brand: "Sonique", Category: "Electronics",
			Price: money(4499), OriginalPrice: moneyPtr(6999), Discount: percent(36),
			Rating: 4.1, ReviewCount: 876, InStock: true, StockQuantity: 40,
			Image: "/images/products/smartwatch.jpg", Tags: []string{"wearable", "fitness"},
			Description: "AMOLED smartwatch with heart-rate and SpO2 tracking.",
		},
		{
			ID: "p-2001", Name: "Classic Cotton Tee", Brand: "Threadline", Category: "Fashion",
			Price: money(399), OriginalPrice: moneyPtr(799), Discount: percent(50),
			Rating: 4.0, ReviewCount: 2301, InStock: true, StockQuantity: 500,
			Image: "/images/products/tee.jpg", Tags: []string{"men", "cotton"},
			Description: "Regular fit round-neck t-shirt in breathable cotton.",
		},
		{
			ID: "p-2002", Name: "Trailblazer Running Shoes", Brand: "Stride", Category: "Fashion",
			Price: money(2499), OriginalPrice: moneyPtr(4999), Discount: percent(50),
			Rating: 4.4, ReviewCount: 964, InStock: true, StockQuantity: 60,
			Image: "/images/products/shoes.jpg", Tags: []string{"sports", "footwear"},
			Description: "Lightweight mesh running shoes with cushioned sole.",
		},
		{
			ID: "p-2003", Name: "Denim Jacket", Brand: "Threadline", Category: "Fashion",
			Price: money(1799),
			Rating: 4.2, ReviewCount: 188, InStock: false, StockQuantity: 0,
			Image: "/images/products/jacket.jpg", Tags: []string{"denim", "winter"},
			Description: "Stonewashed denim jacket with button front.",
		},
		{
			ID: "p-3001", Name: "Ceramic Dinner Set", Brand: "Hearth", Category: "Home & Kitchen",
			Price: money(2199), OriginalPrice: moneyPtr(2999), Discount: percent(27),
			Rating: 4.6, ReviewCount: 412, InStock: true, StockQuantity: 25,
			Image: "/images/products/dinner-set.jpg", Tags: []string{"dining", "ceramic"},
			Description: "18 piece microwave-safe ceramic dinner set.",
		},
		{
			ID: "p-3002", Name: "Steel Water Bottle", Brand: "Hearth", Category: "Home & Kitchen",
			Price: money(349),
			Rating: 4.3, ReviewCount: 3120, InStock: true, StockQuantity: 800,
			Image: "/images/products/bottle.jpg", Tags: []string{"bottle", "steel"},
			Description: "1 litre insulated stainless steel bottle.",
		},
		{
			ID: "p-3003", Name: "Air Fryer 4L", Brand: "Kitchenly", Category: "Home & Kitchen",
			Price: money(5999), OriginalPrice: moneyPtr(8999), Discount: percent(33),
			Rating: 4.4, ReviewCount: 1530, InStock: true, StockQuantity: 30,
			Image: "/images/products/air-fryer.jpg", Tags: []string{"appliance", "cooking"},
			Description: "4 litre air fryer with 8 presets.",
		},
		{
			ID: "p-4001", Name: "The Pragmatic Storyteller", Brand: "Inkwell Press", Category: "Books",
			Price: money(299), OriginalPrice: moneyPtr(450), Discount: percent(34),
			Rating: 4.7, ReviewCount: 620, InStock: true, StockQuantity: 200,
			Image: "/images/products/book.jpg", Tags: []string{"fiction", "paperback"},
			Description: "Paperback novel.",
		},
		{
			ID: "p-4002", Name: "Notebook Set (Pack of 5)", Brand: "Inkwell Press", Category: "Books",
			Price: money(249),
			Rating: 4.2, ReviewCount: 95, InStock: true, StockQuantity: 300,
			Image: "/images/products/notebooks.jpg", Tags: []string{"stationery"},
			Description: "Ruled A5 notebooks, 200 pages each.",
		},
	}
}

func seedCoupons(now time.Time) []Coupon {
	return []Coupon{
		{
			ID: "c-1", Code: "SAVE10", Title: "10% off everything",
			DiscountType: DiscountPercentage, DiscountValue: money(10),
			Expiry:      now.AddDate(1, 0, 0),
			Category:    "All",
			Description: "Flat 10% off on your order.",
		},
		{
			ID: "c-2", Code: "WELCOME50", Title: "Welcome offer",
			DiscountType: DiscountFlat, DiscountValue: money(50),
			MinPurchase: moneyPtr(299),
			Expiry:      now.AddDate(0, 6, 0),
			Category:    "New Users",
			Description: "₹50 off on orders above ₹299.",
		},
		{
			ID: "c-3", Code: "MEGA20", Title: "Mega sale",
			DiscountType: DiscountPercentage, DiscountValue: money(20),
			MinPurchase: moneyPtr(999), MaxDiscount: moneyPtr(500),
			Expiry:      now.AddDate(0, 1, 0),
			Category:    "Sale",
			Description: "20% off up to ₹500 on orders above ₹999.",
		},
		{
			ID: "c-4", Code: "FLAT200", Title: "Big basket",
			DiscountType: DiscountFlat, DiscountValue: money(200),
			MinPurchase: moneyPtr(1499),
			Expiry:      now.AddDate(0, 3, 0),
			Category:    "All",
			Description: "₹200 off on orders above ₹1499.",
		},
		{
			ID: "c-5", Code: "TECH15", Title: "Gadget days",
			DiscountType: DiscountPercentage, DiscountValue: money(15),
			MinPurchase: moneyPtr(4999), MaxDiscount: moneyPtr(1500),
			Expiry:      now.AddDate(0, 0, 14),
			Category:    "Electronics",
			Description: "15% off up to ₹1500 on orders above ₹4999.",
		},
		{
			ID: "c-6", Code: "FESTIVE30", Title: "Festive special",
			DiscountType: DiscountPercentage, DiscountValue: money(30),
			MinPurchase: moneyPtr(1999), MaxDiscount: moneyPtr(750),
			Expiry:      now.AddDate(0, 0, -3),
			Category:    "Sale",
			Description: "30% off up to ₹750. Offer ended.",
		},
	}
}
