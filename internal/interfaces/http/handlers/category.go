// internal/interfaces/http/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	catalog *catalog.Catalog
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(c *catalog.Catalog) *CategoryHandler {
	return &CategoryHandler{catalog: c}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	respondOK(c, "Categories retrieved successfully", h.catalog.Categories())
}
