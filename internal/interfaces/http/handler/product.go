package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopngo/storefront/internal/application/catalog"
	"github.com/shopngo/storefront/internal/domain/catalog"
	"github.com/shopngo/storefront/internal/interfaces/http/middleware"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.List)
	products.GET("/categories", h.Categories)
	products.GET("/:id", h.GetByID)
	products.POST("/refresh", h.Refresh)
}

// ListProductsRequest holds the derived-view query parameters
type ListProductsRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Sort     string `form:"sort" binding:"omitempty,oneof=price_asc price_desc rating"`
}

// List returns cached products, optionally filtered, searched and sorted
func (h *ProductHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var products []catalog.Product
	switch {
	case req.Search != "":
		products = h.products.Search(req.Search)
	case req.Category != "":
		products = h.products.FilterByCategory(req.Category)
	default:
		products = h.products.Products()
	}

	if req.Sort != "" {
		products = catalogapp.SortBy(products, catalogapp.SortKey(req.Sort))
	}
	h.Success(c, products)
}

// Categories returns the cached category list
func (h *ProductHandler) Categories(c *gin.Context) {
	h.Success(c, h.products.Categories())
}

// GetByID returns a single cached product
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	p := h.products.FindByID(id)
	if p == nil {
		h.NotFound(c, "Product not found")
		return
	}
	h.Success(c, p)
}

// Refresh re-fetches the catalog from the remote API
func (h *ProductHandler) Refresh(c *gin.Context) {
	if err := h.products.Refresh(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.products.RefreshCategories(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"products":   len(h.products.Products()),
		"categories": len(h.products.Categories()),
	})
}
