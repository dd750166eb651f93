// internal/interfaces/http/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/order"
)

// OrderHandler handles order history endpoints
type OrderHandler struct {
	orders *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	list, err := h.orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []order.Order{}
	}
	respondOK(c, "Orders retrieved successfully", list)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Order retrieved successfully", o)
}

// CancelOrder handles PATCH /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	o, err := h.orders.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Order cancelled successfully", o)
}

// ReturnOrder handles PATCH /orders/:id/return
func (h *OrderHandler) ReturnOrder(c *gin.Context) {
	o, err := h.orders.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Return requested successfully", o)
}
