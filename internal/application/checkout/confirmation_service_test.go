package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/payment"
	"github.com/shopngo/storefront/internal/domain/shared"
)

// MockCollector is a mock implementation of payment.Collector
type MockCollector struct {
	mock.Mock
}

func (m *MockCollector) Initialize(ctx context.Context, session *payment.Session, merchantName string) error {
	args := m.Called(ctx, session, merchantName)
	return args.Error(0)
}

func (m *MockCollector) Present(ctx context.Context, session *payment.Session) (*payment.Result, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Result), args.Error(1)
}

// MockReconciler is a mock implementation of Reconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func testHandoff(t *testing.T) *Handoff {
	return &Handoff{
		OrderID:       21,
		PaymentIntent: "pi_secret_123",
		EphemeralKey:  "ek_456",
		Customer:      "cus_789",
		Total:         eur(t, "125.99"),
		PayerEmail:    "jane@example.com",
	}
}

func TestConfirm_CompletedReconcilesOrder(t *testing.T) {
	collector := new(MockCollector)
	reconciler := new(MockReconciler)
	svc := NewConfirmationService(collector, reconciler, "Shopngo Store", zap.NewNop())

	collector.On("Initialize", mock.Anything, mock.MatchedBy(func(s *payment.Session) bool {
		return s.PaymentIntent == "pi_secret_123"
	}), "Shopngo Store").Return(nil)
	collector.On("Present", mock.Anything, mock.Anything).Return(&payment.Result{Outcome: payment.OutcomeCompleted}, nil)
	reconciler.On("Reconcile", mock.Anything, int64(21)).Return(nil)

	result, err := svc.Confirm(context.Background(), testHandoff(t))
	require.NoError(t, err)
	assert.Equal(t, payment.OutcomeCompleted, result.Outcome)
	reconciler.AssertExpectations(t)
}

func TestConfirm_CancelledLeavesOrderPending(t *testing.T) {
	collector := new(MockCollector)
	reconciler := new(MockReconciler)
	svc := NewConfirmationService(collector, reconciler, "Shopngo Store", zap.NewNop())

	collector.On("Initialize", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	collector.On("Present", mock.Anything, mock.Anything).Return(&payment.Result{Outcome: payment.OutcomeCancelled}, nil)

	result, err := svc.Confirm(context.Background(), testHandoff(t))
	require.NoError(t, err)
	assert.Equal(t, payment.OutcomeCancelled, result.Outcome)
	reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestConfirm_FailedLeavesOrderPending(t *testing.T) {
	collector := new(MockCollector)
	reconciler := new(MockReconciler)
	svc := NewConfirmationService(collector, reconciler, "Shopngo Store", zap.NewNop())

	collector.On("Initialize", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	collector.On("Present", mock.Anything, mock.Anything).Return(&payment.Result{Outcome: payment.OutcomeFailed, Reason: "card declined"}, nil)

	result, err := svc.Confirm(context.Background(), testHandoff(t))
	require.NoError(t, err)
	assert.Equal(t, payment.OutcomeFailed, result.Outcome)
	assert.Equal(t, "card declined", result.Reason)
	reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestConfirm_ReconcileFailureReturnsResultAndError(t *testing.T) {
	collector := new(MockCollector)
	reconciler := new(MockReconciler)
	svc := NewConfirmationService(collector, reconciler, "Shopngo Store", zap.NewNop())

	collector.On("Initialize", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	collector.On("Present", mock.Anything, mock.Anything).Return(&payment.Result{Outcome: payment.OutcomeCompleted}, nil)
	reconciler.On("Reconcile", mock.Anything, int64(21)).Return(shared.ErrNetwork)

	result, err := svc.Confirm(context.Background(), testHandoff(t))
	assert.ErrorIs(t, err, shared.ErrNetwork)
	require.NotNil(t, result, "sheet outcome must still be reported")
	assert.Equal(t, payment.OutcomeCompleted, result.Outcome)
}

func TestConfirm_IncompleteHandoff(t *testing.T) {
	collector := new(MockCollector)
	reconciler := new(MockReconciler)
	svc := NewConfirmationService(collector, reconciler, "Shopngo Store", zap.NewNop())

	h := testHandoff(t)
	h.EphemeralKey = ""
	_, err := svc.Confirm(context.Background(), h)
	assert.ErrorIs(t, err, shared.ErrIntegration)
	collector.AssertNotCalled(t, "Initialize", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_InitializeFailure(t *testing.T) {
	collector := new(MockCollector)
	reconciler := new(MockReconciler)
	svc := NewConfirmationService(collector, reconciler, "Shopngo Store", zap.NewNop())

	collector.On("Initialize", mock.Anything, mock.Anything, mock.Anything).Return(shared.ErrNetwork)

	_, err := svc.Confirm(context.Background(), testHandoff(t))
	assert.ErrorIs(t, err, shared.ErrNetwork)
	collector.AssertNotCalled(t, "Present", mock.Anything, mock.Anything)
}

// sessionOutcomeCollector reports an outcome keyed by the session it is
// asked to present, like the gateway reporting each intent's own status
type sessionOutcomeCollector struct {
	outcomes map[string]payment.Outcome
}

func (c *sessionOutcomeCollector) Initialize(ctx context.Context, session *payment.Session, merchantName string) error {
	if !session.Complete() {
		return shared.ErrIntegration
	}
	return nil
}

func (c *sessionOutcomeCollector) Present(ctx context.Context, session *payment.Session) (*payment.Result, error) {
	return &payment.Result{Outcome: c.outcomes[session.PaymentIntent]}, nil
}

func TestConfirm_ConcurrentConfirmationsKeepTheirOwnPayments(t *testing.T) {
	collector := &sessionOutcomeCollector{outcomes: map[string]payment.Outcome{
		"pi_paid":   payment.OutcomeCompleted,
		"pi_unpaid": payment.OutcomeCancelled,
	}}
	reconciler := new(MockReconciler)
	svc := NewConfirmationService(collector, reconciler, "Shopngo Store", zap.NewNop())

	paid := testHandoff(t)
	paid.OrderID = 1
	paid.PaymentIntent = "pi_paid"
	unpaid := testHandoff(t)
	unpaid.OrderID = 2
	unpaid.PaymentIntent = "pi_unpaid"

	reconciler.On("Reconcile", mock.Anything, int64(1)).Return(nil)

	var wg sync.WaitGroup
	for _, h := range []*Handoff{paid, unpaid} {
		wg.Add(1)
		go func(h *Handoff) {
			defer wg.Done()
			result, err := svc.Confirm(context.Background(), h)
			assert.NoError(t, err)
			assert.Equal(t, collector.outcomes[h.PaymentIntent], result.Outcome)
		}(h)
	}
	wg.Wait()

	reconciler.AssertNumberOfCalls(t, "Reconcile", 1)
	reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, int64(2))
}
