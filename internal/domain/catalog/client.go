package catalog

import "context"

// Client reads products and categories from the remote catalog API.
// Every call is a single network round-trip with no retry; implementations
// report transport failures and malformed responses as NETWORK_ERROR.
type Client interface {
	FetchAll(ctx context.Context) ([]Product, error)
	FetchCategories(ctx context.Context) ([]string, error)
	FetchByCategory(ctx context.Context, category string) ([]Product, error)
}
