// Package checkout drives one checkout attempt from address selection to payment.
package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/address"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/pricing"
)

// Cart is the part of the cart store a checkout uses
type Cart interface {
	Items() []cart.Entry
	RemovePurchased(ctx context.Context, purchased []cart.Entry) error
}

// Deps are the collaborators shared by every checkout
type Deps struct {
	Gateway  payment.Gateway
	Merchant payment.Merchant
	Pricing  *pricing.Engine
	Log      logrus.FieldLogger
}

// Session is one checkout attempt. It holds a snapshot of the cart taken at
// start and moves Address -> Review -> Payment. Success and failure are terminal.
type Session struct {
	mu sync.Mutex

	id        string
	step      Step
	outcome   Outcome
	addresses []address.Address
	selected  string
	items     []cart.Entry
	applied   *coupon.Applied
	buyer     Buyer

	inFlight bool
	pending  *payment.RemoteOrder
	orderID  string
	failure  string

	cart Cart
	deps Deps
	log  logrus.FieldLogger
}

// New starts a checkout. The cart must not be empty.
func New(c Cart, addresses []address.Address, applied *coupon.Applied, buyer Buyer, deps Deps) (*Session, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	id := uuid.NewString()
	s := &Session{
		id:        id,
		step:      StepAddress,
		outcome:   OutcomeInProgress,
		addresses: append([]address.Address(nil), addresses...),
		selected:  address.InitialSelection(addresses),
		items:     items,
		applied:   applied,
		buyer:     buyer,
		cart:      c,
		deps:      deps,
		log:       deps.Log.WithFields(logrus.Fields{"checkout_id": id, "user_id": buyer.UserID}),
	}
	s.log.WithField("items", len(items)).Info("Checkout started")
	return s, nil
}

// ID identifies the checkout
func (s *Session) ID() string {
	return s.id
}

// Step returns the current step
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Outcome returns whether the checkout is still running, succeeded or failed
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// SelectedAddressID returns the chosen delivery address
func (s *Session) SelectedAddressID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectAddress chooses one of the session's addresses
func (s *Session) SelectAddress(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if _, ok := address.Find(s.addresses, id); !ok {
		return ErrUnknownAddress
	}
	s.selected = id
	return nil
}

// AddAddress adds a newly created address and selects it
func (s *Session) AddAddress(a address.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if _, ok := address.Find(s.addresses, a.ID); !ok {
		s.addresses = append(s.addresses, a)
	}
	s.selected = a.ID
	return nil
}

// Next advances one step. Leaving the address step needs a selected address.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	switch s.step {
	case StepAddress:
		if s.selected == "" {
			return ErrAddressRequired
		}
		s.step = StepReview
	case StepReview:
		s.step = StepPayment
	default:
		return ErrNoNextStep
	}
	return nil
}

// Back returns to the previous step; at the first step it does nothing
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.step > StepAddress {
		s.step--
	}
	return nil
}

// GoTo jumps back to an earlier step or stays on the current one
func (s *Session) GoTo(step Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if step < StepAddress || step > s.step {
		return ErrInvalidStep
	}
	s.step = step
	return nil
}

// Summary prices the cart snapshot with the applied coupon
func (s *Session) Summary() pricing.Breakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary()
}

// Pay creates the remote order for the total and opens the widget.
// Only one payment request may run at a time.
func (s *Session) Pay(ctx context.Context, widget payment.Widget) (*payment.CheckoutOptions, error) {
	s.mu.Lock()
	if err := s.checkOpen(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.step != StepPayment {
		s.mu.Unlock()
		return nil, ErrNotAtPayment
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	s.inFlight = true
	total := s.summary().Total
	prefill := s.prefill()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	order, err := s.deps.Gateway.CreateOrder(ctx, total)
	if err != nil {
		s.log.WithError(err).Warn("Payment order creation failed")
		return nil, &GatewayInitError{Err: err}
	}

	opts := s.deps.Merchant.Options(order, prefill)
	if err := widget.Open(ctx, opts); err != nil {
		s.log.WithError(err).Warn("Payment widget failed to open")
		return nil, &GatewayInitError{Err: err}
	}

	s.mu.Lock()
	s.pending = order
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"payment_order_id": order.ID, "total": total.String()}).Info("Payment widget opened")
	return &opts, nil
}

// OnSuccess handles the widget's success callback. The callback must name the
// pending remote order. The backend must confirm the payment before the
// purchased lines leave the cart; anything else fails the checkout with a
// VerificationError and leaves the cart alone.
func (s *Session) OnSuccess(ctx context.Context, resp payment.GatewayResponse) error {
	s.mu.Lock()
	if err := s.checkOpen(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.pending == nil || resp.OrderID != s.pending.ID {
		s.mu.Unlock()
		return ErrNoPendingPayment
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrRequestInFlight
	}
	s.inFlight = true
	req := &payment.VerifyRequest{GatewayResponse: resp, OrderData: s.snapshot()}
	s.mu.Unlock()

	result, err := s.deps.Gateway.Verify(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil || !result.Succeeded() {
		verr := &VerificationError{Err: err}
		if result != nil {
			verr.Verdict = result.Msg
		}
		s.outcome = OutcomeFailed
		s.failure = verr.Error()
		s.log.WithFields(logrus.Fields{
			"payment_order_id": resp.OrderID,
			"payment_id":       resp.PaymentID,
		}).WithError(verr).Error("Payment verification failed, cart kept for reconciliation")
		return verr
	}

	s.outcome = OutcomeSuccess
	s.orderID = result.OrderID
	if err := s.cart.RemovePurchased(ctx, s.items); err != nil {
		s.log.WithError(err).Warn("Purchased items removed from cart but not persisted")
	}
	s.log.WithFields(logrus.Fields{"payment_id": resp.PaymentID, "order_id": result.OrderID}).Info("Payment verified")
	return nil
}

// OnFailure handles the widget's failure callback. The cart is not touched.
func (s *Session) OnFailure(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.step != StepPayment {
		return ErrNotAtPayment
	}
	if reason == "" {
		reason = "payment failed"
	}
	s.outcome = OutcomeFailed
	s.failure = reason
	s.log.WithField("reason", reason).Warn("Payment failed at gateway")
	return nil
}

// View returns a snapshot for display
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:                s.id,
		Step:              s.step,
		StepName:          s.step.String(),
		Outcome:           s.outcome,
		Addresses:         append([]address.Address(nil), s.addresses...),
		SelectedAddressID: s.selected,
		Items:             append([]cart.Entry(nil), s.items...),
		Summary:           s.summary(),
		OrderID:           s.orderID,
		FailureReason:     s.failure,
	}
	if s.pending != nil {
		v.PaymentOrderID = s.pending.ID
	}
	return v
}

func (s *Session) checkOpen() error {
	if s.outcome != OutcomeInProgress {
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) summary() pricing.Breakdown {
	return s.deps.Pricing.Quote(s.items, s.applied)
}

func (s *Session) prefill() payment.Prefill {
	p := payment.Prefill{Name: s.buyer.Name, Email: s.buyer.Email, Contact: s.buyer.Phone}
	if a, ok := address.Find(s.addresses, s.selected); ok {
		if p.Name == "" {
			p.Name = a.FullName
		}
		if p.Contact == "" {
			p.Contact = a.Phone
		}
	}
	return p
}

func (s *Session) snapshot() payment.OrderSnapshot {
	b := s.summary()

	items := make([]payment.OrderItem, 0, len(s.items))
	for _, e := range s.items {
		items = append(items, payment.OrderItem{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			Image:     e.Product.Image,
			Price:     e.Product.Price.InexactFloat64(),
			Quantity:  e.Quantity,
		})
	}

	var shipping *address.Address
	if a, ok := address.Find(s.addresses, s.selected); ok {
		shipping = &a
	}

	return payment.OrderSnapshot{
		UserID:          s.buyer.UserID,
		Items:           items,
		ShippingAddress: shipping,
		TotalAmount:     b.Total.InexactFloat64(),
		Subtotal:        b.Subtotal.InexactFloat64(),
		Discount:        b.Discount.InexactFloat64(),
		DeliveryFee:     b.DeliveryFee.InexactFloat64(),
		CouponCode:      b.CouponCode,
	}
}
