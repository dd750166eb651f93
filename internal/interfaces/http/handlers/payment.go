// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// PaymentFailureRequest is the body of POST /checkout/payment/failure
type PaymentFailureRequest struct {
	Reason string `json:"reason"`
	Code   string `json:"code"`
}

// browserWidget hands the options to the browser, which opens the hosted checkout
type browserWidget struct{}

func (browserWidget) Open(ctx context.Context, opts payment.CheckoutOptions) error {
	if opts.Key == "" {
		return errors.New("payment key is not configured")
	}
	return nil
}

// Pay handles POST /checkout/pay and returns the widget options
func (h *CheckoutHandler) Pay(c *gin.Context) {
	co, ok := h.current(c)
	if !ok {
		return
	}

	opts, err := co.Pay(c.Request.Context(), browserWidget{})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Payment initiated", gin.H{
		"options":  opts,
		"checkout": co.View(),
	})
}

// PaymentSuccess handles POST /checkout/payment/success, the widget's success callback
func (h *CheckoutHandler) PaymentSuccess(c *gin.Context) {
	var resp payment.GatewayResponse
	if err := c.ShouldBindJSON(&resp); err != nil {
		bindError(c, err)
		return
	}

	co, ok := h.current(c)
	if !ok {
		return
	}

	if err := co.OnSuccess(c.Request.Context(), resp); err != nil {
		respondError(c, err)
		return
	}

	middleware.GetSession(c).RemoveCoupon()
	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment successful",
		"redirect": "/payment-success",
		"data":     co.View(),
	})
}

// PaymentFailure handles POST /checkout/payment/failure, the widget's failure callback
func (h *CheckoutHandler) PaymentFailure(c *gin.Context) {
	var req PaymentFailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	co, ok := h.current(c)
	if !ok {
		return
	}

	if err := co.OnFailure(req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment failed",
		"redirect": "/payment-failure",
		"data":     co.View(),
	})
}
