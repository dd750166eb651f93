// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/address"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// SelectAddressRequest is the body of PUT /checkout/address
type SelectAddressRequest struct {
	AddressID string `json:"address_id" binding:"required"`
}

// GoToStepRequest is the body of PUT /checkout/step
type GoToStepRequest struct {
	Step int `json:"step" binding:"required,min=1,max=3"`
}

// CheckoutHandler handles the checkout flow
type CheckoutHandler struct {
	addresses *address.Client
	forms     *address.FormValidator
	profiles  session.Profiles
	deps      checkout.Deps
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(addresses *address.Client, profiles session.Profiles, deps checkout.Deps) *CheckoutHandler {
	return &CheckoutHandler{
		addresses: addresses,
		forms:     address.NewFormValidator(),
		profiles:  profiles,
		deps:      deps,
	}
}

// StartCheckout handles POST /checkout
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	st := middleware.GetSession(c)

	co, err := st.StartCheckout(c.Request.Context(), id, h.addresses, h.profiles, h.deps)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Checkout started", co.View())
}

// GetCheckout handles GET /checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	co, ok := h.current(c)
	if !ok {
		return
	}
	respondOK(c, "Checkout retrieved successfully", co.View())
}

// SelectAddress handles PUT /checkout/address
func (h *CheckoutHandler) SelectAddress(c *gin.Context) {
	var req SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	co, ok := h.current(c)
	if !ok {
		return
	}
	h.respondTransition(c, co, co.SelectAddress(req.AddressID), "Delivery address selected")
}

// AddAddress handles POST /checkout/addresses: the address is saved to the
// account and selected for this checkout.
func (h *CheckoutHandler) AddAddress(c *gin.Context) {
	var form address.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		bindError(c, err)
		return
	}
	if err := h.forms.Validate(&form); err != nil {
		respondError(c, err)
		return
	}

	co, ok := h.current(c)
	if !ok {
		return
	}

	created, err := h.addresses.Create(c.Request.Context(), &form)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTransition(c, co, co.AddAddress(*created), "Address added")
}

// Next handles POST /checkout/next
func (h *CheckoutHandler) Next(c *gin.Context) {
	co, ok := h.current(c)
	if !ok {
		return
	}
	h.respondTransition(c, co, co.Next(), "Moved to the next step")
}

// Back handles POST /checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	co, ok := h.current(c)
	if !ok {
		return
	}
	h.respondTransition(c, co, co.Back(), "Moved to the previous step")
}

// GoTo handles PUT /checkout/step
func (h *CheckoutHandler) GoTo(c *gin.Context) {
	var req GoToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	co, ok := h.current(c)
	if !ok {
		return
	}
	h.respondTransition(c, co, co.GoTo(checkout.Step(req.Step)), "Step changed")
}

// current returns the session's checkout or answers 404
func (h *CheckoutHandler) current(c *gin.Context) (*checkout.Session, bool) {
	co, ok := middleware.GetSession(c).Checkout()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "No checkout in progress",
			"redirect": "/cart",
		})
		return nil, false
	}
	return co, true
}

func (h *CheckoutHandler) respondTransition(c *gin.Context, co *checkout.Session, err error, message string) {
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, message, co.View())
}
