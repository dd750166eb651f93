// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// ProductListRequest is the query accepted by GET /products
type ProductListRequest struct {
	Query    string   `form:"q"`
	Category string   `form:"category"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,min=0"`
	InStock  bool     `form:"in_stock"`
	SortBy   string   `form:"sort" binding:"omitempty,oneof=price_asc price_desc rating"`
	Page     int      `form:"page" binding:"omitempty,min=1"`
	Limit    int      `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ProductListResponse is one page of products
type ProductListResponse struct {
	Products   []catalog.Product `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler creates a new product handler
func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	filter := catalog.Filter{
		Query:       req.Query,
		Category:    req.Category,
		InStockOnly: req.InStock,
		SortBy:      req.SortBy,
	}
	if req.MinPrice != nil {
		v := decimal.NewFromFloat(*req.MinPrice)
		filter.MinPrice = &v
	}
	if req.MaxPrice != nil {
		v := decimal.NewFromFloat(*req.MaxPrice)
		filter.MaxPrice = &v
	}

	all := h.catalog.Search(filter)
	start := (req.Page - 1) * req.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Limit
	if end > len(all) {
		end = len(all)
	}

	respondOK(c, "Products retrieved successfully", ProductListResponse{
		Products:   append([]catalog.Product{}, all[start:end]...),
		Total:      len(all),
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: (len(all) + req.Limit - 1) / req.Limit,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, ok := h.catalog.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	respondOK(c, "Product retrieved successfully", p)
}
