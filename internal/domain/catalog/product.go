package catalog

import (
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

// Rating holds the aggregate review score for a product
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents a catalog product. Products are sourced entirely from
// the remote catalog and are immutable once fetched; the client never
// mutates them.
type Product struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Price       valueobject.Money `json:"price"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Image       string            `json:"image"`
	Rating      Rating            `json:"rating"`
}

// Validate checks that a product decoded from a remote response is
// well-formed. Products failing validation must never enter the cache or
// the cart.
func (p *Product) Validate() error {
	if p.ID <= 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID must be positive")
	}
	if p.Title == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product title cannot be empty")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
	}
	return nil
}
