// Package chat relays the help widget's conversation to the assistant
// backend and carries out the actions it returns.
package chat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/infrastructure/backend"
)

const ordersPath = "/orders"

// Agent completes a conversation
type Agent interface {
	Complete(ctx context.Context, req *Request) (*Completion, error)
}

// Products resolves product ids named by the assistant
type Products interface {
	Product(id string) (catalog.Product, bool)
}

// CouponApplier applies a coupon to the shopper's session
type CouponApplier interface {
	ApplyCoupon(code string) (*coupon.Applied, error)
}

// Target is the shopper state an action may change
type Target struct {
	Cart    *cart.Store
	Coupons CouponApplier
}

// Client implements Agent against the backend chat endpoint
type Client struct {
	api *backend.Client
}

// NewClient creates a chat client
func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

// Complete posts the transcript and context to the assistant
func (c *Client) Complete(ctx context.Context, req *Request) (*Completion, error) {
	var out Completion
	if err := c.api.Post(ctx, "/api/chat", req, &out); err != nil {
		return nil, fmt.Errorf("failed to reach assistant: %w", err)
	}
	return &out, nil
}

// Service runs chat turns
type Service struct {
	agent     Agent
	products  Products
	validator *coupon.Validator
	log       logrus.FieldLogger
}

// NewService creates a chat service
func NewService(agent Agent, products Products, validator *coupon.Validator, log logrus.FieldLogger) *Service {
	return &Service{
		agent:     agent,
		products:  products,
		validator: validator,
		log:       log.WithField("component", "chat"),
	}
}

// Send relays the transcript and performs the returned action against target.
// An unreachable assistant yields an apology reply rather than an error.
func (s *Service) Send(ctx context.Context, transcript []Message, page string, target Target) (*Reply, error) {
	if len(transcript) == 0 {
		return nil, ErrEmptyMessage
	}
	last := transcript[len(transcript)-1]
	if last.Role != RoleUser || strings.TrimSpace(last.Content) == "" {
		return nil, ErrEmptyMessage
	}

	req := &Request{
		Messages: transcript,
		Context: Context{
			Page:             page,
			CartItemCount:    target.Cart.Len(),
			AvailableCoupons: s.couponCodes(),
		},
	}

	completion, err := s.agent.Complete(ctx, req)
	if err != nil {
		s.log.WithError(err).Warn("Assistant unavailable")
		return assistant(unreachableText), nil
	}

	if completion.Action == "" {
		text := strings.TrimSpace(completion.Text)
		if text == "" {
			text = fallbackText
		}
		return assistant(text), nil
	}

	return s.dispatch(ctx, completion, target), nil
}

func (s *Service) dispatch(ctx context.Context, c *Completion, target Target) *Reply {
	log := s.log.WithField("action", c.Action)

	switch c.Action {
	case ActionNavigate:
		path := stringParam(c.Params, "path")
		if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
			log.WithField("path", path).Warn("Ignoring navigation outside the storefront")
			return assistant("I can't open that page, but you can find it from the menu.")
		}
		r := assistant(navigatedText)
		r.Action, r.Redirect = c.Action, path
		return r

	case ActionTrackOrder:
		r := assistant(doneText)
		if id := stringParam(c.Params, "orderId"); id != "" {
			r.Message.Content = "Here are your orders. Look for order " + id + " to see its status."
		}
		r.Action, r.Redirect = c.Action, ordersPath
		return r

	case ActionApplyCoupon:
		code := stringParam(c.Params, "code")
		applied, err := target.Coupons.ApplyCoupon(code)
		if err != nil {
			log.WithError(err).WithField("code", code).Info("Assistant coupon rejected")
			return assistant(fmt.Sprintf("I couldn't apply %s: %s.", strings.ToUpper(strings.TrimSpace(code)), err.Error()))
		}
		r := assistant(appliedText)
		r.Action, r.Coupon = c.Action, applied
		return r

	case ActionAddToCart:
		id := stringParam(c.Params, "productId", "product_id", "id")
		product, ok := s.products.Product(id)
		if !ok {
			return assistant("I couldn't find that product. Could you tell me which one you mean?")
		}
		quantity := intParam(c.Params, "quantity", 1)
		if !product.CanAdd(target.Cart.Quantity(id), quantity) {
			return assistant(product.Name + " is out of stock right now.")
		}
		if err := target.Cart.AddItem(ctx, product, quantity); err != nil && !errors.Is(err, cart.ErrNotPersisted) {
			log.WithError(err).Warn("Assistant add to cart failed")
			return assistant("I couldn't add that to your cart. Please try again.")
		}
		r := assistant(addedText)
		r.Action, r.CartAdd = c.Action, id
		return r

	default:
		log.Debug("Unhandled assistant action")
		return assistant(doneText)
	}
}

func (s *Service) couponCodes() []string {
	active := s.validator.Active()
	codes := make([]string, 0, len(active))
	for _, c := range active {
		codes = append(codes, c.Code)
	}
	return codes
}

func assistant(text string) *Reply {
	return &Reply{Message: Message{Role: RoleAssistant, Content: text}}
}

func stringParam(params map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := params[k]; ok {
			switch t := v.(type) {
			case string:
				if t != "" {
					return t
				}
			case float64:
				return fmt.Sprintf("%v", t)
			}
		}
	}
	return ""
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	v, ok := params[key].(float64)
	if !ok || v < 1 {
		return fallback
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
