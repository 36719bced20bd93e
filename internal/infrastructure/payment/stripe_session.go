// Package payment implements the payment gateway integration: session
// minting and payment collection over Stripe, plus an in-process stub
// collector for development.
package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/customer"
	"github.com/stripe/stripe-go/v81/ephemeralkey"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/payment"
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
	"github.com/shopngo/storefront/internal/infrastructure/config"
)

// Mobile payment sheet compatibility version for ephemeral keys
const stripeAPIVersion = "2024-06-20"

var minorUnitFactor = decimal.NewFromInt(100)

// StripeSessionClient mints payment sessions against the Stripe API. Each
// checkout produces a fresh customer, an ephemeral key scoped to it, and a
// payment intent for the order total.
type StripeSessionClient struct {
	currency string
	logger   *zap.Logger
}

// NewStripeSessionClient creates a session client and sets the global
// Stripe API key
func NewStripeSessionClient(cfg config.PaymentConfig, logger *zap.Logger) *StripeSessionClient {
	stripe.Key = cfg.SecretKey
	return &StripeSessionClient{
		currency: cfg.Currency,
		logger:   logger,
	}
}

// CreateSession mints the three payment credentials for a checkout. The
// payment intent request carries a fresh idempotency key so a transport
// retry can never double-charge.
func (c *StripeSessionClient) CreateSession(ctx context.Context, amount valueobject.Money, payerEmail string) (*payment.Session, error) {
	custParams := &stripe.CustomerParams{
		Email: stripe.String(payerEmail),
	}
	custParams.Context = ctx

	cust, err := customer.New(custParams)
	if err != nil {
		c.logger.Error("failed to create gateway customer",
			zap.String("payer_email", payerEmail), zap.Error(err))
		return nil, shared.ErrNetwork
	}

	keyParams := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(cust.ID),
		StripeVersion: stripe.String(stripeAPIVersion),
	}
	keyParams.Context = ctx

	key, err := ephemeralkey.New(keyParams)
	if err != nil {
		c.logger.Error("failed to mint ephemeral key",
			zap.String("customer_id", cust.ID), zap.Error(err))
		return nil, shared.ErrNetwork
	}

	intentParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(amount)),
		Currency: stripe.String(c.currency),
		Customer: stripe.String(cust.ID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intentParams.Context = ctx
	intentParams.SetIdempotencyKey(uuid.New().String())

	intent, err := paymentintent.New(intentParams)
	if err != nil {
		c.logger.Error("failed to create payment intent",
			zap.String("customer_id", cust.ID), zap.Error(err))
		return nil, shared.ErrNetwork
	}

	session := &payment.Session{
		PaymentIntent: intent.ClientSecret,
		EphemeralKey:  key.Secret,
		Customer:      cust.ID,
	}
	if !session.Complete() {
		c.logger.Error("gateway returned incomplete session",
			zap.String("customer_id", cust.ID))
		return nil, shared.ErrIntegration
	}

	c.logger.Info("payment session minted",
		zap.String("customer_id", cust.ID),
		zap.String("amount", amount.StringFixed(2)))
	return session, nil
}

// minorUnits converts a Money amount to the gateway's integer minor units
func minorUnits(m valueobject.Money) int64 {
	return m.Amount().Mul(minorUnitFactor).Round(0).IntPart()
}

// intentIDFromClientSecret extracts the payment intent id from its client
// secret ("pi_xxx_secret_yyy" -> "pi_xxx")
func intentIDFromClientSecret(clientSecret string) string {
	if i := strings.Index(clientSecret, "_secret_"); i > 0 {
		return clientSecret[:i]
	}
	return clientSecret
}
