// internal/interfaces/http/handlers/wishlist.go
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

// AddToWishlistRequest is the body of POST /wishlist/items
type AddToWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// WishlistResponse is the saved products
type WishlistResponse struct {
	Items []catalog.Product `json:"items"`
	Count int               `json:"count"`
}

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	catalog *catalog.Catalog
	log     logrus.FieldLogger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(c *catalog.Catalog, log logrus.FieldLogger) *WishlistHandler {
	return &WishlistHandler{catalog: c, log: log}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	respondOK(c, "Wishlist retrieved successfully", h.view(c))
}

// AddToWishlist handles POST /wishlist/items
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, ok := h.catalog.Product(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	st := middleware.GetSession(c)
	h.respondMutation(c, st.Wishlist.AddItem(c.Request.Context(), p), "Item added to wishlist successfully")
}

// RemoveFromWishlist handles DELETE /wishlist/items/:id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	st := middleware.GetSession(c)
	h.respondMutation(c, st.Wishlist.RemoveItem(c.Request.Context(), c.Param("id")), "Item removed from wishlist successfully")
}

// MoveToCart handles POST /wishlist/items/:id/move-to-cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	st := middleware.GetSession(c)
	id := c.Param("id")

	if p, ok := h.catalog.Product(id); ok && !p.CanAdd(st.Cart.Quantity(id), 1) {
		c.JSON(http.StatusConflict, gin.H{"error": p.Name + " is out of stock"})
		return
	}

	h.respondMutation(c, st.Wishlist.MoveToCart(c.Request.Context(), id, st.Cart), "Item moved to cart successfully")
}

// ClearWishlist handles DELETE /wishlist
func (h *WishlistHandler) ClearWishlist(c *gin.Context) {
	st := middleware.GetSession(c)
	h.respondMutation(c, st.Wishlist.Clear(c.Request.Context()), "Wishlist cleared successfully")
}

func (h *WishlistHandler) view(c *gin.Context) WishlistResponse {
	st := middleware.GetSession(c)
	items := st.Wishlist.Items()
	return WishlistResponse{Items: items, Count: len(items)}
}

func (h *WishlistHandler) respondMutation(c *gin.Context, err error, message string) {
	switch {
	case err == nil:
		respondOK(c, message, h.view(c))
	case errors.Is(err, wishlist.ErrNotPersisted), errors.Is(err, cart.ErrNotPersisted):
		h.log.WithError(err).Warn("Session change not persisted")
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"warning": notSavedWarning,
			"data":    h.view(c),
		})
	default:
		respondError(c, err)
	}
}
