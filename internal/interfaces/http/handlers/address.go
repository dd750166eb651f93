package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/address"
)

// AddressHandler handles the signed-in user's saved addresses
type AddressHandler struct {
	addresses *address.Client
	forms     *address.FormValidator
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addresses *address.Client) *AddressHandler {
	return &AddressHandler{
		addresses: addresses,
		forms:     address.NewFormValidator(),
	}
}

// GetAddresses handles GET /addresses
func (h *AddressHandler) GetAddresses(c *gin.Context) {
	list, err := h.addresses.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []address.Address{}
	}
	respondOK(c, "Addresses retrieved successfully", list)
}

// CreateAddress handles POST /addresses
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	created, err := h.addresses.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    created,
	})
}

// UpdateAddress handles PUT /addresses/:id
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	updated, err := h.addresses.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Address updated successfully", updated)
}

// DeleteAddress handles DELETE /addresses/:id
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	if err := h.addresses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}

// SetDefaultAddress handles PATCH /addresses/:id/default
func (h *AddressHandler) SetDefaultAddress(c *gin.Context) {
	updated, err := h.addresses.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Default address updated", updated)
}

func (h *AddressHandler) bindForm(c *gin.Context) (*address.Form, bool) {
	var form address.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		bindError(c, err)
		return nil, false
	}
	if err := h.forms.Validate(&form); err != nil {
		respondError(c, err)
		return nil, false
	}
	return &form, true
}
