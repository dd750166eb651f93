package order

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/backend"
)

// Service reads the user's orders and requests cancellations and returns
type Service struct {
	api *backend.Client
	log logrus.FieldLogger
}

// NewService creates an order service
func NewService(api *backend.Client, log logrus.FieldLogger) *Service {
	return &Service{api: api, log: log.WithField("component", "orders")}
}

// List returns the signed-in user's orders
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := s.api.Get(ctx, "/api/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one order
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := s.api.Get(ctx, "/api/orders/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel asks the backend to cancel an order still being processed or shipped
func (s *Service) Cancel(ctx context.Context, id string) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.CanCancel() {
		return nil, &EligibilityError{Action: "cancel", Status: o.OrderStatus}
	}
	return s.patch(ctx, id, "cancel")
}

// Return asks the backend to take back a delivered order
func (s *Service) Return(ctx context.Context, id string) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.CanReturn() {
		return nil, &EligibilityError{Action: "return", Status: o.OrderStatus}
	}
	return s.patch(ctx, id, "return")
}

func (s *Service) patch(ctx context.Context, id, action string) (*Order, error) {
	var out Order
	if err := s.api.Patch(ctx, "/api/orders/"+url.PathEscape(id)+"/"+action, nil, &out); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"order_id": id, "action": action, "status": out.OrderStatus}).Info("Order updated")
	return &out, nil
}
