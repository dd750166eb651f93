// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// InvoiceRenderer renders order invoices
type InvoiceRenderer interface {
	GenerateInvoice(o *order.Order) (*bytes.Buffer, error)
	InvoiceHTML(o *order.Order) (string, error)
}

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	orders   *order.Service
	renderer InvoiceRenderer
	log      logrus.FieldLogger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orders *order.Service, renderer InvoiceRenderer, log logrus.FieldLogger) *InvoiceHandler {
	return &InvoiceHandler{orders: orders, renderer: renderer, log: log}
}

// GenerateInvoice handles GET /orders/:id/invoice. ?format=html returns the
// markup instead of a PDF.
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") == "html" {
		html, err := h.renderer.InvoiceHTML(o)
		if err != nil {
			h.log.WithError(err).WithField("order_id", o.ID).Error("Invoice rendering failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	buf, err := h.renderer.GenerateInvoice(o)
	if err != nil {
		h.log.WithError(err).WithField("order_id", o.ID).Error("Invoice PDF generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		return
	}

	filename := fmt.Sprintf("%s.pdf", pdf.InvoiceNumber(o.ID))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
