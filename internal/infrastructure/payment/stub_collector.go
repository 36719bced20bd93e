package payment

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/payment"
	"github.com/shopngo/storefront/internal/domain/shared"
)

// StubCollector is an in-process collector for development and tests. It
// accepts any complete session and reports a fixed outcome without talking
// to the gateway. Like the real collector it keeps no per-payment state.
type StubCollector struct {
	Outcome payment.Outcome
	Reason  string
	logger  *zap.Logger
}

// NewStubCollector creates a stub collector that completes every payment
func NewStubCollector(logger *zap.Logger) *StubCollector {
	return &StubCollector{
		Outcome: payment.OutcomeCompleted,
		logger:  logger,
	}
}

// Initialize validates the session like the real collector would
func (c *StubCollector) Initialize(ctx context.Context, session *payment.Session, merchantName string) error {
	if !session.Complete() {
		return shared.ErrIntegration
	}
	c.logger.Debug("stub payment sheet initialized",
		zap.String("merchant", merchantName))
	return nil
}

// Present reports the configured outcome for the given session
func (c *StubCollector) Present(ctx context.Context, session *payment.Session) (*payment.Result, error) {
	if !session.Complete() {
		return nil, shared.ErrIntegration
	}
	return &payment.Result{Outcome: c.Outcome, Reason: c.Reason}, nil
}
