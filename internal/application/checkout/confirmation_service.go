package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/payment"
	"github.com/shopngo/storefront/internal/domain/shared"
)

// ConfirmationService drives the payment sheet for a checkout handoff and
// reconciles the order record when the user completes payment. Reconcile
// is only attempted for the completed outcome; a cancelled or failed sheet
// leaves the pending order untouched.
type ConfirmationService struct {
	collector    payment.Collector
	orders       Reconciler
	merchantName string
	logger       *zap.Logger
}

// Reconciler marks an order as paid. It must be idempotent for orders
// already marked successful.
type Reconciler interface {
	Reconcile(ctx context.Context, orderID int64) error
}

// NewConfirmationService creates a confirmation service
func NewConfirmationService(collector payment.Collector, orders Reconciler, merchantName string, logger *zap.Logger) *ConfirmationService {
	return &ConfirmationService{
		collector:    collector,
		orders:       orders,
		merchantName: merchantName,
		logger:       logger,
	}
}

// Confirm initializes the payment sheet from the handoff credentials,
// presents it, and reconciles the order on completion. The returned result
// reports the sheet's terminal outcome even when reconciliation fails; the
// reconciliation error is returned alongside so the caller can retry it.
func (s *ConfirmationService) Confirm(ctx context.Context, handoff *Handoff) (*payment.Result, error) {
	if handoff == nil {
		return nil, shared.ErrInvalidInput
	}
	session := &payment.Session{
		PaymentIntent: handoff.PaymentIntent,
		EphemeralKey:  handoff.EphemeralKey,
		Customer:      handoff.Customer,
	}
	if !session.Complete() {
		return nil, shared.ErrIntegration
	}

	if err := s.collector.Initialize(ctx, session, s.merchantName); err != nil {
		s.logger.Error("payment sheet initialization failed",
			zap.Int64("order_id", handoff.OrderID), zap.Error(err))
		return nil, err
	}

	result, err := s.collector.Present(ctx, session)
	if err != nil {
		s.logger.Error("payment sheet presentation failed",
			zap.Int64("order_id", handoff.OrderID), zap.Error(err))
		return nil, err
	}

	switch result.Outcome {
	case payment.OutcomeCompleted:
		if err := s.orders.Reconcile(ctx, handoff.OrderID); err != nil {
			s.logger.Error("payment collected but order reconciliation failed",
				zap.Int64("order_id", handoff.OrderID), zap.Error(err))
			return result, err
		}
		s.logger.Info("payment completed",
			zap.Int64("order_id", handoff.OrderID),
			zap.String("total", handoff.Total.StringFixed(2)))
	case payment.OutcomeCancelled:
		s.logger.Info("payment sheet dismissed",
			zap.Int64("order_id", handoff.OrderID))
	case payment.OutcomeFailed:
		s.logger.Warn("payment failed",
			zap.Int64("order_id", handoff.OrderID),
			zap.String("reason", result.Reason))
	}
	return result, nil
}
