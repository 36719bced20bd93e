package checkout

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/cart"
	"github.com/shopngo/storefront/internal/domain/order"
	"github.com/shopngo/storefront/internal/domain/payment"
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

// Orders strictly above the threshold carry the flat shipping surcharge;
// smaller orders ship free
var (
	shippingThreshold = decimal.NewFromInt(100)
	shippingSurcharge = decimal.RequireFromString("5.99")
)

// Handoff carries everything the payment sheet needs to take over after
// the order has been recorded and the gateway session minted
type Handoff struct {
	OrderID       int64             `json:"order_id"`
	PaymentIntent string            `json:"paymentIntent"`
	EphemeralKey  string            `json:"ephemeralKey"`
	Customer      string            `json:"customer"`
	Total         valueobject.Money `json:"total"`
	PayerEmail    string            `json:"payer_email"`
}

// Service orchestrates the checkout flow: price the cart, record a pending
// order, mint a payment session, and hand the result to the payment sheet.
// The cart is deliberately left untouched so an abandoned payment does not
// cost the user their cart contents.
type Service struct {
	orders   order.Store
	payments payment.SessionClient
	logger   *zap.Logger
}

// NewService creates a checkout service
func NewService(orders order.Store, payments payment.SessionClient, logger *zap.Logger) *Service {
	return &Service{
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

// Begin runs the checkout flow for the given cart on behalf of the given
// user. The pending order is recorded before the gateway is contacted; if
// the order cannot be recorded the flow aborts and the gateway is never
// called.
func (s *Service) Begin(ctx context.Context, userEmail string, c *cart.Cart) (*Handoff, error) {
	if userEmail == "" {
		return nil, shared.ErrMissingIdentity
	}
	if c == nil || c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	shipping, err := ShippingFor(c.TotalPrice())
	if err != nil {
		return nil, err
	}

	pending, err := order.NewFromCart(userEmail, c, shipping)
	if err != nil {
		return nil, err
	}

	recorded, err := s.orders.Create(ctx, pending)
	if err != nil {
		s.logger.Error("failed to record pending order, aborting checkout",
			zap.String("user_email", userEmail), zap.Error(err))
		return nil, err
	}
	s.logger.Info("pending order recorded",
		zap.Int64("order_id", recorded.ID),
		zap.String("total", recorded.TotalPrice.StringFixed(2)))

	session, err := s.payments.CreateSession(ctx, recorded.TotalPrice, userEmail)
	if err != nil {
		s.logger.Error("payment session request failed",
			zap.Int64("order_id", recorded.ID), zap.Error(err))
		return nil, err
	}
	if !session.Complete() {
		s.logger.Error("payment gateway returned incomplete session",
			zap.Int64("order_id", recorded.ID))
		return nil, shared.ErrIntegration
	}

	return &Handoff{
		OrderID:       recorded.ID,
		PaymentIntent: session.PaymentIntent,
		EphemeralKey:  session.EphemeralKey,
		Customer:      session.Customer,
		Total:         recorded.TotalPrice,
		PayerEmail:    userEmail,
	}, nil
}

// ShippingFor returns the shipping surcharge for a cart subtotal: 5.99
// for subtotals strictly above 100, free otherwise.
func ShippingFor(subtotal valueobject.Money) (valueobject.Money, error) {
	if subtotal.Amount().GreaterThan(shippingThreshold) {
		return valueobject.NewMoney(shippingSurcharge, subtotal.Currency())
	}
	return valueobject.Zero(subtotal.Currency()), nil
}
