package cart

import (
	"github.com/shopngo/storefront/internal/domain/catalog"
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

// Item pairs a product with a positive quantity. At most one Item per
// product id may exist within a cart.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price * quantity for this line
func (i Item) Subtotal() valueobject.Money {
	return i.Product.Price.MultiplyByInt(int64(i.Quantity))
}

// Cart is an ordered sequence of items owned exclusively by the client
// process. All transitions are pure: existing item order is preserved and
// new items append at the end.
type Cart struct {
	Items []Item `json:"items"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem adds quantity units of the product. If an item for the product
// already exists its quantity is incremented in place; otherwise a new item
// is appended at the end.
func (c *Cart) AddItem(product catalog.Product, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if err := product.Validate(); err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}
	c.Items = append(c.Items, Item{Product: product, Quantity: quantity})
	return nil
}

// RemoveItem removes the item for the given product id. Removing an absent
// product is a no-op, not an error.
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the item for the given product id.
// A quantity of zero or less is equivalent to RemoveItem.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear resets the cart to an empty sequence
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// IsEmpty returns true when the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalPrice returns the sum of price * quantity over all items
func (c *Cart) TotalPrice() valueobject.Money {
	total := valueobject.ZeroEUR()
	for _, item := range c.Items {
		total = total.MustAdd(item.Subtotal())
	}
	return total
}

// ItemCount returns the sum of quantities over all items
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
