// internal/interfaces/http/handlers/response.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/address"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/chat"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// respondError maps domain errors to a status and a user-facing message
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		minErr    *coupon.MinimumNotMetError
		formErr   *address.ValidationError
		eligErr   *order.EligibilityError
		initErr   *checkout.GatewayInitError
		verifyErr *checkout.VerificationError
		apiErr    *backend.APIError
	)

	switch {
	case errors.As(err, &formErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please correct the highlighted fields", "details": formErr.Fields})

	case errors.As(err, &minErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"required":  minErr.Required,
			"shortfall": minErr.Shortfall,
		})

	case errors.Is(err, coupon.ErrInvalidCode),
		errors.Is(err, coupon.ErrExpired),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, checkout.ErrAddressRequired),
		errors.Is(err, checkout.ErrUnknownAddress),
		errors.Is(err, checkout.ErrInvalidStep):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "redirect": "/cart"})

	case errors.As(err, &eligErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "status": eligErr.Status})

	case errors.Is(err, checkout.ErrNoNextStep),
		errors.Is(err, checkout.ErrNotAtPayment),
		errors.Is(err, checkout.ErrRequestInFlight),
		errors.Is(err, checkout.ErrNoPendingPayment),
		errors.Is(err, checkout.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, wishlist.ErrNotInWishlist), backend.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})

	case errors.Is(err, auth.ErrNoToken), errors.Is(err, auth.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please sign in to continue", "redirect": "/login"})

	case errors.As(err, &initErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not start the payment, please try again"})

	case errors.As(err, &verifyErr):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":    "Payment verification failed. If money was deducted it will be refunded.",
			"redirect": "/payment-failure",
		})

	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please sign in to continue", "redirect": "/login"})

	case errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
		c.JSON(http.StatusBadRequest, gin.H{"error": apiErr.Message})

	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "The request took too long, please try again"})

	case errors.As(err, &apiErr), errors.Is(err, backend.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service temporarily unavailable"})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// respondOK writes the standard success envelope
func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}

// bindError reports a malformed request body or query
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}
