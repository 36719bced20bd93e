package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/shopngo/storefront/internal/application/cart"
	checkoutapp "github.com/shopngo/storefront/internal/application/checkout"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
	"github.com/shopngo/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the checkout and payment confirmation endpoints
type CheckoutHandler struct {
	BaseHandler
	checkout      *checkoutapp.Service
	confirmations *checkoutapp.ConfirmationService
	carts         *cartapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service, confirmations *checkoutapp.ConfirmationService, carts *cartapp.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:      checkout,
		confirmations: confirmations,
		carts:         carts,
	}
}

// RegisterRoutes registers checkout routes; all of them require a session
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	checkout.Use(middleware.Session())
	checkout.POST("", h.Begin)
	checkout.POST("/confirm", h.Confirm)
}

// Begin prices the current cart, records a pending order and mints a
// payment session. The cart is left intact.
func (h *CheckoutHandler) Begin(c *gin.Context) {
	email := middleware.SessionEmail(c)
	if email == "" {
		h.Unauthorized(c, "Session token carries no email")
		return
	}

	handoff, err := h.checkout.Begin(c.Request.Context(), email, h.carts.Snapshot())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, handoff)
}

// ConfirmRequest carries the payment handoff back for confirmation
type ConfirmRequest struct {
	OrderID       int64   `json:"order_id" binding:"required,min=1"`
	PaymentIntent string  `json:"paymentIntent" binding:"required"`
	EphemeralKey  string  `json:"ephemeralKey" binding:"required"`
	Customer      string  `json:"customer" binding:"required"`
	Total         float64 `json:"total"`
}

// Confirm drives the payment sheet for a handoff and reports its outcome
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	email := middleware.SessionEmail(c)

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.confirmations.Confirm(c.Request.Context(), &checkoutapp.Handoff{
		OrderID:       req.OrderID,
		PaymentIntent: req.PaymentIntent,
		EphemeralKey:  req.EphemeralKey,
		Customer:      req.Customer,
		Total:         valueobject.NewMoneyEURFromFloat(req.Total),
		PayerEmail:    email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
