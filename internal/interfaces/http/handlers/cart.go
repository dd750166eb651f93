// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

const notSavedWarning = "Your changes are applied but could not be saved yet"

// AddToCartRequest is the body of POST /cart/items
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

// UpdateCartItemRequest is the body of PUT /cart/items/:id
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ApplyCouponRequest is the body of POST /cart/coupon
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// CartHandler handles cart endpoints
type CartHandler struct {
	catalog *catalog.Catalog
	log     logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(c *catalog.Catalog, log logrus.FieldLogger) *CartHandler {
	return &CartHandler{catalog: c, log: log}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	st := middleware.GetSession(c)
	respondOK(c, "Cart retrieved successfully", st.Quote())
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	p, ok := h.catalog.Product(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	st := middleware.GetSession(c)
	if quantity >= 1 && !p.CanAdd(st.Cart.Quantity(p.ID), quantity) {
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock for " + p.Name})
		return
	}

	err := st.Cart.AddItem(c.Request.Context(), p, quantity)
	h.respondMutation(c, err, "Item added to cart successfully")
}

// UpdateCartItem handles PUT /cart/items/:id. A quantity of zero removes the item.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	st := middleware.GetSession(c)
	id := c.Param("id")
	if *req.Quantity > 0 {
		if p, ok := h.catalog.Product(id); ok && !p.Available(*req.Quantity) {
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock for " + p.Name})
			return
		}
	}

	err := st.Cart.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	h.respondMutation(c, err, "Cart item updated successfully")
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	st := middleware.GetSession(c)
	err := st.Cart.RemoveItem(c.Request.Context(), c.Param("id"))
	h.respondMutation(c, err, "Item removed from cart successfully")
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	st := middleware.GetSession(c)
	err := st.Cart.Clear(c.Request.Context())
	st.RemoveCoupon()
	h.respondMutation(c, err, "Cart cleared successfully")
}

// ApplyCoupon handles POST /cart/coupon
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	st := middleware.GetSession(c)
	applied, err := st.ApplyCoupon(req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Coupon "+applied.Code+" applied successfully", st.Quote())
}

// RemoveCoupon handles DELETE /cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	st := middleware.GetSession(c)
	st.RemoveCoupon()
	respondOK(c, "Coupon removed", st.Quote())
}

// respondMutation answers a cart change with the repriced cart. A storage
// failure still returns the cart, which holds the change, with a warning.
func (h *CartHandler) respondMutation(c *gin.Context, err error, message string) {
	st := middleware.GetSession(c)

	switch {
	case err == nil:
		respondOK(c, message, st.Quote())
	case errors.Is(err, cart.ErrNotPersisted), errors.Is(err, wishlist.ErrNotPersisted):
		h.log.WithError(err).WithField("session_id", st.ID).Warn("Session change not persisted")
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"warning": notSavedWarning,
			"data":    st.Quote(),
		})
	default:
		respondError(c, err)
	}
}
