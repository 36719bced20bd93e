package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	orderapp "github.com/shopngo/storefront/internal/application/order"
	"github.com/shopngo/storefront/internal/interfaces/http/middleware"
)

// OrderHandler handles order history endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers order routes; all of them require a session
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(middleware.Session())
	orders.GET("", h.List)
	orders.GET("/:id", h.GetByID)
	orders.DELETE("/:id", h.Delete)
	orders.POST("/delivery-address", h.AddDeliveryAddress)
}

// List returns the signed-in user's orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), middleware.SessionEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetByID returns a single order
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Delete removes an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddDeliveryAddressRequest carries the address for the latest order
type AddDeliveryAddressRequest struct {
	Address string `json:"address" binding:"required,min=1,max=500"`
}

// AddDeliveryAddress attaches a delivery address to the user's most recent
// order
func (h *OrderHandler) AddDeliveryAddress(c *gin.Context) {
	var req AddDeliveryAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	o, err := h.orders.AddDeliveryAddress(c.Request.Context(), middleware.SessionEmail(c), req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}
