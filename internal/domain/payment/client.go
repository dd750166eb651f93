package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/infrastructure/backend"
)

// Client implements Gateway over the backend payment endpoints
type Client struct {
	api *backend.Client
}

// NewClient creates a payment client
func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

type createOrderRequest struct {
	Amount float64 `json:"amount"`
}

// CreateOrder creates a gateway order for amount, in major units
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal) (*RemoteOrder, error) {
	var order RemoteOrder
	if err := c.api.Post(ctx, "/api/payment/create-order", createOrderRequest{Amount: amount.InexactFloat64()}, &order); err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("failed to create payment order: response has no order id")
	}
	return &order, nil
}

// Verify submits the gateway response and order snapshot for verification
func (c *Client) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error) {
	var result VerifyResult
	if err := c.api.Post(ctx, "/api/payment/verify", req, &result); err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}
	return &result, nil
}
