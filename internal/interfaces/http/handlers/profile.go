package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/user"
)

// ProfileHandler handles the signed-in user's profile
type ProfileHandler struct {
	users *user.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users *user.Service) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.users.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Profile retrieved successfully", p)
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.users.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Profile updated successfully", p)
}
