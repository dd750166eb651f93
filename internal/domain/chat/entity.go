package chat

import (
	"errors"

	"github.com/your-org/storefront/internal/domain/coupon"
)

// Role identifies who wrote a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Actions the assistant may ask the storefront to perform
const (
	ActionNavigate    = "navigate"
	ActionAddToCart   = "addToCart"
	ActionApplyCoupon = "applyCoupon"
	ActionTrackOrder  = "trackOrder"
)

// Canned assistant texts
const (
	Greeting        = "Hi! I'm your ShopKart AI Assistant. I'm here to help you with your order, returns, or finding the perfect product. How can I assist you?"
	fallbackText    = "I'm having trouble understanding that. Could you rephrase?"
	unreachableText = "Sorry, I'm having trouble connecting to the server. Please try again later."
	navigatedText   = "I've navigated to that page for you."
	addedText       = "I've added that to your cart."
	appliedText     = "I've applied that coupon for you."
	doneText        = "I've done that for you. Anything else?"
)

// Suggestions are the starter questions offered with the greeting
var Suggestions = []string{
	"Where is my order?",
	"Check my refund status",
	"Are there any coupons?",
	"How do I return an item?",
}

// ErrEmptyMessage means the transcript does not end with a user message
var ErrEmptyMessage = errors.New("message cannot be empty")

// Message is one chat turn
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Context describes where the shopper is when they ask
type Context struct {
	Page             string   `json:"page"`
	CartItemCount    int      `json:"cartItemCount"`
	AvailableCoupons []string `json:"availableCoupons"`
}

// Request is the payload relayed to the assistant backend
type Request struct {
	Messages []Message `json:"messages"`
	Context  Context   `json:"context"`
}

// Completion is the assistant backend's answer: either an action or plain text
type Completion struct {
	Action string                 `json:"action,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
	Text   string                 `json:"text,omitempty"`
}

// Reply is what the shopper sees after a turn
type Reply struct {
	Message  Message         `json:"message"`
	Action   string          `json:"action,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
	Coupon   *coupon.Applied `json:"coupon,omitempty"`
	CartAdd  string          `json:"added_product_id,omitempty"`
}
