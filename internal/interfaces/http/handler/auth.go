package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shopngo/storefront/internal/application/identity"
	"github.com/shopngo/storefront/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	auth *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/sign-up", h.SignUp)
	auth.POST("/sign-in", h.SignIn)
	auth.POST("/sign-out", middleware.Session(), h.SignOut)
	auth.GET("/session", middleware.Session(), h.Session)
}

// CredentialsRequest carries an email/password pair
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignUp registers a new account and returns its session
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	session, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// SignIn authenticates and returns a session
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// SignOut revokes the current session
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Session revalidates the bearer token and returns the restored session
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.auth.Restore(c.Request.Context(), middleware.SessionToken(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}
