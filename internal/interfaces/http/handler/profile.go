package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shopngo/storefront/internal/application/identity"
	"github.com/shopngo/storefront/internal/interfaces/http/middleware"
)

// ProfileHandler handles user profile endpoints
type ProfileHandler struct {
	BaseHandler
	profiles *identityapp.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles *identityapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterRoutes registers profile routes; all of them require a session
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.Use(middleware.Session())
	profile.GET("", h.Get)
	profile.PUT("", h.Update)
}

// UpdateProfileRequest replaces the whole profile record
type UpdateProfileRequest struct {
	FullName        string `json:"full_name" binding:"max=200"`
	DeliveryAddress string `json:"delivery_address" binding:"max=500"`
	Phone           string `json:"phone" binding:"max=50"`
}

// Get returns the signed-in user's profile
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), middleware.SessionUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Update upserts the signed-in user's profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	p, err := h.profiles.Update(c.Request.Context(), middleware.SessionUserID(c),
		req.FullName, req.DeliveryAddress, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
