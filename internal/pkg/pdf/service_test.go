package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
)

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-ABCDEF12", InvoiceNumber("65f0c1e2abcdef12"))
	assert.Equal(t, "INV-A1", InvoiceNumber("a1"))
}

func TestInvoiceHTML(t *testing.T) {
	svc := NewService(config.InvoiceConfig{CompanyName: "ShopKart Retail", CompanyEmail: "help@shopkart.example", CompanyGSTIN: "29ABCDE1234F1Z5"})
	svc.now = func() time.Time { return time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC) }

	o := &order.Order{
		ID: "65f0c1e2abcdef12",
		Items: []order.Item{
			{Name: "Steel Water Bottle", Price: 349, Quantity: 2},
			{Name: "Notebook <Set>", Price: 249, Quantity: 1},
		},
		ShippingAddress: order.ShippingAddress{FullName: "Asha Rao", City: "Mysuru", State: "Karnataka", Pincode: "570001"},
		TotalAmount:     987,
		PaymentMethod:   "Razorpay",
		PaymentStatus:   order.PaymentCompleted,
		OrderStatus:     order.StatusDelivered,
		CreatedAt:       time.Date(2026, 3, 30, 10, 0, 0, 0, time.UTC),
	}

	html, err := svc.InvoiceHTML(o)
	require.NoError(t, err)

	assert.Contains(t, html, "INV-ABCDEF12")
	assert.Contains(t, html, "April 2, 2026")
	assert.Contains(t, html, "March 30, 2026")
	assert.Contains(t, html, "GSTIN: 29ABCDE1234F1Z5")
	assert.Contains(t, html, "₹698.00")
	assert.Contains(t, html, "₹947.00")
	assert.Contains(t, html, "₹40.00")
	assert.Contains(t, html, "₹987.00")
	assert.Contains(t, html, "Notebook &lt;Set&gt;")
	assert.Contains(t, html, "Asha Rao")
}
