package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/address"
)

// VerifySuccess is the only verdict that confirms a payment
const VerifySuccess = "success"

// Gateway is the backend side of a payment
type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (*RemoteOrder, error)
	Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error)
}

// Widget is the hosted checkout UI. Its outcome arrives later through the
// checkout's success and failure callbacks.
type Widget interface {
	Open(ctx context.Context, opts CheckoutOptions) error
}

// RemoteOrder is the gateway order created by the backend
type RemoteOrder struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"` // Minor units
	Currency string          `json:"currency"`
}

// Prefill is shopper data shown pre-filled in the widget
type Prefill struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact"`
}

// Theme styles the widget
type Theme struct {
	Color string `json:"color,omitempty"`
}

// CheckoutOptions opens the hosted widget for one remote order
type CheckoutOptions struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	OrderID     string  `json:"order_id"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

// Merchant holds the static widget settings
type Merchant struct {
	KeyID       string
	Name        string
	Description string
	LogoURL     string
	ThemeColor  string
}

// NewMerchant reads widget settings from configuration
func NewMerchant(cfg config.PaymentConfig) Merchant {
	return Merchant{
		KeyID:       cfg.KeyID,
		Name:        cfg.MerchantName,
		Description: cfg.Description,
		LogoURL:     cfg.LogoURL,
		ThemeColor:  cfg.ThemeColor,
	}
}

// Options builds the widget options for a remote order
func (m Merchant) Options(order *RemoteOrder, prefill Prefill) CheckoutOptions {
	return CheckoutOptions{
		Key:         m.KeyID,
		Amount:      order.Amount.IntPart(),
		Currency:    order.Currency,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.LogoURL,
		OrderID:     order.ID,
		Prefill:     prefill,
		Theme:       Theme{Color: m.ThemeColor},
	}
}

// GatewayResponse is what the widget reports on success
type GatewayResponse struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// OrderItem is one line of the order snapshot
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderSnapshot is the order the backend records once payment is verified
type OrderSnapshot struct {
	UserID          string           `json:"userId"`
	Items           []OrderItem      `json:"items"`
	ShippingAddress *address.Address `json:"shippingAddress"`
	TotalAmount     float64          `json:"totalAmount"`
	Subtotal        float64          `json:"subtotal"`
	Discount        float64          `json:"discount"`
	DeliveryFee     float64          `json:"deliveryFee"`
	CouponCode      string           `json:"couponCode,omitempty"`
}

// VerifyRequest asks the backend to check a gateway payment and record the order
type VerifyRequest struct {
	GatewayResponse
	OrderData OrderSnapshot `json:"orderData"`
}

// VerifyResult is the backend's verdict
type VerifyResult struct {
	Msg     string `json:"msg"`
	OrderID string `json:"orderId,omitempty"`
}

// Succeeded reports whether the payment was confirmed
func (r *VerifyResult) Succeeded() bool {
	return r != nil && r.Msg == VerifySuccess
}
