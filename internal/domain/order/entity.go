package order

import (
	"errors"
	"fmt"
	"time"
)

// Status is the fulfilment status the backend reports
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
	StatusReturned   Status = "Returned"
)

// PaymentStatus is the payment state the backend reports
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// ErrNotEligible is returned when an order cannot be cancelled or returned in its current status
var ErrNotEligible = errors.New("order is not eligible for this action")

// EligibilityError names the action and the blocking status
type EligibilityError struct {
	Action string
	Status Status
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("cannot %s an order that is %s", e.Action, e.Status)
}

func (e *EligibilityError) Unwrap() error { return ErrNotEligible }

// Item is a line of an order
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// LineTotal is price times quantity
func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// ShippingAddress is the address snapshot stored on the order
type ShippingAddress struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	AddressType  string `json:"addressType"`
}

// Dates tracks when the order reached each status
type Dates struct {
	Placed    *time.Time `json:"placed,omitempty"`
	Shipped   *time.Time `json:"shipped,omitempty"`
	Delivered *time.Time `json:"delivered,omitempty"`
	Cancelled *time.Time `json:"cancelled,omitempty"`
	Returned  *time.Time `json:"returned,omitempty"`
}

// Order is read-only; changes go through cancel and return requests
type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	Items           []Item          `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	OrderStatus     Status          `json:"orderStatus"`
	Dates           Dates           `json:"dates"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CanCancel reports whether the order may still be cancelled
func (o *Order) CanCancel() bool {
	return o.OrderStatus == StatusProcessing || o.OrderStatus == StatusShipped
}

// CanReturn reports whether the order may be returned
func (o *Order) CanReturn() bool {
	return o.OrderStatus == StatusDelivered
}

// ItemCount is the number of units ordered
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
