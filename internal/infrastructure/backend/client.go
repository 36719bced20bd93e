// Package backend implements the hosted backend service client covering
// auth, the orders collection and the profiles collection. The service
// speaks a PostgREST-style API: collections under /rest/v1 with filter
// query parameters, auth under /auth/v1.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/infrastructure/config"
)

// Client is the shared HTTP transport for all backend collections. Every
// request carries the project api key; authenticated requests additionally
// carry the user's bearer token.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend client from configuration
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	bearerToken string
	prefer      string
	body        any
}

// do executes a backend request and decodes the JSON response into out when
// out is non-nil. Transport failures map to NETWORK_ERROR; auth rejections
// map to UNAUTHORIZED.
func (c *Client) do(ctx context.Context, req request, out any) error {
	var bodyReader io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.bearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.bearerToken)
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", req.method), zap.String("path", req.path), zap.Error(err))
		return shared.ErrNetwork
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.Warn("backend returned error status",
			zap.String("method", req.method), zap.String("path", req.path),
			zap.Int("status", resp.StatusCode))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return shared.ErrUnauthorized
		case http.StatusNotFound:
			return shared.ErrNotFound
		default:
			return shared.ErrNetwork
		}
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return shared.ErrNetwork
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("backend returned malformed response",
			zap.String("path", req.path), zap.Error(err))
		return shared.ErrIntegration
	}
	return nil
}
