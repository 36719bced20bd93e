package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	cartapp "github.com/shopngo/storefront/internal/application/cart"
	catalogapp "github.com/shopngo/storefront/internal/application/catalog"
	"github.com/shopngo/storefront/internal/domain/cart"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
	"github.com/shopngo/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	BaseHandler
	carts    *cartapp.Service
	products *catalogapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.Service, products *catalogapp.Service) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/cart")
	carts.GET("", h.Get)
	carts.POST("/items", h.AddItem)
	carts.PUT("/items/:id", h.UpdateQuantity)
	carts.DELETE("/items/:id", h.RemoveItem)
	carts.DELETE("", h.Clear)
}

// AddItemRequest adds a catalog product to the cart
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest replaces a line's quantity; zero or below removes
// the line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is one cart line in API responses
type CartItemResponse struct {
	Product  any               `json:"product"`
	Quantity int               `json:"quantity"`
	Subtotal valueobject.Money `json:"subtotal"`
}

// CartResponse is the cart view returned by every cart operation
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalPrice valueobject.Money  `json:"total_price"`
	ItemCount  int                `json:"item_count"`
}

func cartResponse(items []cart.Item, total valueobject.Money, count int) CartResponse {
	out := CartResponse{
		Items:      make([]CartItemResponse, 0, len(items)),
		TotalPrice: total,
		ItemCount:  count,
	}
	for _, item := range items {
		out.Items = append(out.Items, CartItemResponse{
			Product:  item.Product,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		})
	}
	return out
}

func (h *CartHandler) view() CartResponse {
	return cartResponse(h.carts.Items(), h.carts.TotalPrice(), h.carts.ItemCount())
}

// Get returns the current cart
func (h *CartHandler) Get(c *gin.Context) {
	h.Success(c, h.view())
}

// AddItem adds a product from the catalog cache to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product := h.products.FindByID(req.ProductID)
	if product == nil {
		h.NotFound(c, "Product not found in catalog")
		return
	}

	if err := h.carts.AddItem(c.Request.Context(), *product, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.view())
}

// UpdateQuantity replaces a line's quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), id, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.view())
}

// RemoveItem removes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.view())
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.view())
}
