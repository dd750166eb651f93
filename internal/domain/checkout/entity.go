package checkout

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront/internal/domain/address"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/pricing"
)

// Step is a checkout page
type Step int

const (
	StepAddress Step = 1
	StepReview  Step = 2
	StepPayment Step = 3
)

// String returns the step label
func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepReview:
		return "review"
	case StepPayment:
		return "payment"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Outcome is where a checkout ended up
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeSuccess    Outcome = "success"
	OutcomeFailed     Outcome = "failed"
)

var (
	ErrEmptyCart        = errors.New("your cart is empty")
	ErrAddressRequired  = errors.New("please select a delivery address")
	ErrUnknownAddress   = errors.New("address not found")
	ErrNoNextStep       = errors.New("already at the payment step")
	ErrInvalidStep      = errors.New("can only go back to an earlier step")
	ErrNotAtPayment     = errors.New("payment is only possible from the payment step")
	ErrRequestInFlight  = errors.New("a payment request is already in progress")
	ErrNoPendingPayment = errors.New("no payment has been started")
	ErrSessionClosed    = errors.New("checkout has already finished, start a new one")
)

// GatewayInitError means the remote order could not be created or the widget could not open.
// The checkout stays at the payment step and the cart is untouched.
type GatewayInitError struct {
	Err error
}

func (e *GatewayInitError) Error() string {
	return fmt.Sprintf("payment initiation failed: %v", e.Err)
}

func (e *GatewayInitError) Unwrap() error { return e.Err }

// VerificationError means the gateway took the payment but the backend did not confirm it.
// The cart is kept so the order can be reconciled.
type VerificationError struct {
	Verdict string
	Err     error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment verification failed: %v", e.Err)
	}
	return fmt.Sprintf("payment verification failed: backend answered %q", e.Verdict)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// Buyer is the signed-in shopper paying for the order
type Buyer struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

// View is a read-only snapshot of a checkout
type View struct {
	ID                string            `json:"id"`
	Step              Step              `json:"step"`
	StepName          string            `json:"step_name"`
	Outcome           Outcome           `json:"outcome"`
	Addresses         []address.Address `json:"addresses"`
	SelectedAddressID string            `json:"selected_address_id,omitempty"`
	Items             []cart.Entry      `json:"items"`
	Summary           pricing.Breakdown `json:"summary"`
	PaymentOrderID    string            `json:"payment_order_id,omitempty"`
	OrderID           string            `json:"order_id,omitempty"`
	FailureReason     string            `json:"failure_reason,omitempty"`
}
