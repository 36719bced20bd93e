// Package catalog implements the public product catalog API client
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/catalog"
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
	"github.com/shopngo/storefront/internal/infrastructure/config"
)

// productPayload mirrors the catalog API's product JSON. Prices arrive as
// bare numbers and are converted to Money at the boundary.
type productPayload struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

// FakestoreClient is the HTTP client for the public catalog API. The API is
// read-only and unauthenticated; every call is a single round-trip.
type FakestoreClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFakestoreClient creates a catalog client from configuration
func NewFakestoreClient(cfg config.CatalogConfig, logger *zap.Logger) *FakestoreClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &FakestoreClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchAll retrieves the complete product list
func (c *FakestoreClient) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	return c.fetchProducts(ctx, "/products")
}

// FetchByCategory retrieves the products in a single category
func (c *FakestoreClient) FetchByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	return c.fetchProducts(ctx, "/products/category/"+url.PathEscape(category))
}

// FetchCategories retrieves the category name list
func (c *FakestoreClient) FetchCategories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/products/categories")
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		c.logger.Warn("catalog returned malformed category list", zap.Error(err))
		return nil, shared.ErrNetwork
	}
	return categories, nil
}

func (c *FakestoreClient) fetchProducts(ctx context.Context, path string) ([]catalog.Product, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var payloads []productPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		c.logger.Warn("catalog returned malformed product list",
			zap.String("path", path), zap.Error(err))
		return nil, shared.ErrNetwork
	}

	products := make([]catalog.Product, 0, len(payloads))
	for _, p := range payloads {
		product := catalog.Product{
			ID:          p.ID,
			Title:       p.Title,
			Price:       valueobject.NewMoneyEURFromFloat(p.Price),
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
			Rating:      catalog.Rating{Rate: p.Rating.Rate, Count: p.Rating.Count},
		}
		if err := product.Validate(); err != nil {
			// Skip records failing boundary validation rather than
			// poisoning the whole catalog fetch
			c.logger.Warn("skipping invalid catalog product",
				zap.Int64("product_id", p.ID), zap.Error(err))
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (c *FakestoreClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", zap.String("path", path), zap.Error(err))
		return nil, shared.ErrNetwork
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog returned non-OK status",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, shared.ErrNetwork
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, shared.ErrNetwork
	}
	return body, nil
}
