package order

import (
	"time"

	"github.com/shopngo/storefront/internal/domain/cart"
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The only modeled transition is pending -> success; marking an order that
// is already successful as successful again is allowed so reconciliation
// stays idempotent.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return target == PaymentStatusSuccess
	case PaymentStatusSuccess:
		return target == PaymentStatusSuccess
	}
	return false
}

// Item is a denormalized snapshot of a purchased product taken at order
// creation time. It is decoupled from the live catalog so later catalog
// changes never retroactively alter order history.
type Item struct {
	ProductID int64             `json:"product_id"`
	Title     string            `json:"title"`
	Price     valueobject.Money `json:"price"`
	Quantity  int               `json:"quantity"`
	Image     string            `json:"image"`
}

// Order is a server-recorded purchase transaction. It is created by the
// checkout flow, its status is updated by payment reconciliation, and it is
// deleted only by explicit user action.
type Order struct {
	ID              int64             `json:"id"`
	UserEmail       string            `json:"user_email"`
	TotalPrice      valueobject.Money `json:"total_price"`
	Items           []Item            `json:"items"`
	PaymentStatus   PaymentStatus     `json:"payment_status"`
	CreatedAt       time.Time         `json:"created_at"`
	DeliveryAddress string            `json:"delivery_address,omitempty"`
}

// NewFromCart snapshots the given cart into a pending order. The total must
// equal the cart subtotal plus the shipping surcharge; the caller computes
// shipping, NewFromCart enforces the invariant.
func NewFromCart(userEmail string, c *cart.Cart, shipping valueobject.Money) (*Order, error) {
	if userEmail == "" {
		return nil, shared.ErrMissingIdentity
	}
	if c == nil || c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	items := make([]Item, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, Item{
			ProductID: line.Product.ID,
			Title:     line.Product.Title,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Image:     line.Product.Image,
		})
	}

	total, err := c.TotalPrice().Add(shipping)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOTAL", err.Error())
	}

	return &Order{
		UserEmail:     userEmail,
		TotalPrice:    total,
		Items:         items,
		PaymentStatus: PaymentStatusPending,
	}, nil
}

// ItemsTotal returns the sum of price * quantity over the item snapshot
func (o *Order) ItemsTotal() valueobject.Money {
	total := valueobject.ZeroEUR()
	for _, item := range o.Items {
		total = total.MustAdd(item.Price.MultiplyByInt(int64(item.Quantity)))
	}
	return total
}

// MarkPaid transitions the order to the success status. Calling MarkPaid on
// an already successful order is a no-op.
func (o *Order) MarkPaid() error {
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusSuccess) {
		return shared.ErrInvalidState
	}
	o.PaymentStatus = PaymentStatusSuccess
	return nil
}

// SetDeliveryAddress attaches a delivery address to the order
func (o *Order) SetDeliveryAddress(address string) error {
	if address == "" {
		return shared.ErrEmptyAddress
	}
	o.DeliveryAddress = address
	return nil
}
