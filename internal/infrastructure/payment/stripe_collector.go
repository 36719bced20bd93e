package payment

import (
	"context"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/payment"
	"github.com/shopngo/storefront/internal/domain/shared"
)

// StripeCollector reports the outcome of a payment collected through the
// gateway's hosted sheet. It holds no per-payment state; the session is
// passed to every call, so a single collector serves concurrent
// confirmations.
type StripeCollector struct {
	logger *zap.Logger
}

// NewStripeCollector creates a collector
func NewStripeCollector(logger *zap.Logger) *StripeCollector {
	return &StripeCollector{logger: logger}
}

// Initialize validates the session's credentials before presentation
func (c *StripeCollector) Initialize(ctx context.Context, session *payment.Session, merchantName string) error {
	if !session.Complete() {
		return shared.ErrIntegration
	}
	return nil
}

// Present queries the session's payment intent and maps its status to a
// sheet outcome
func (c *StripeCollector) Present(ctx context.Context, session *payment.Session) (*payment.Result, error) {
	if !session.Complete() {
		return nil, shared.ErrIntegration
	}
	intentID := intentIDFromClientSecret(session.PaymentIntent)

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(intentID, params)
	if err != nil {
		c.logger.Error("failed to read payment intent status",
			zap.String("intent_id", intentID), zap.Error(err))
		return nil, shared.ErrNetwork
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return &payment.Result{Outcome: payment.OutcomeCompleted}, nil
	case stripe.PaymentIntentStatusCanceled:
		return &payment.Result{Outcome: payment.OutcomeCancelled}, nil
	default:
		if intent.LastPaymentError != nil {
			return &payment.Result{
				Outcome: payment.OutcomeFailed,
				Reason:  string(intent.LastPaymentError.Code),
			}, nil
		}
		// Still awaiting a payment method: the sheet was dismissed
		return &payment.Result{Outcome: payment.OutcomeCancelled}, nil
	}
}
