package payment

import (
	"context"

	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

// Session is the trio of opaque credentials minted by the payment gateway
// for a single payment attempt. All three are required before a payment
// sheet can be presented.
type Session struct {
	PaymentIntent string `json:"paymentIntent"`
	EphemeralKey  string `json:"ephemeralKey"`
	Customer      string `json:"customer"`
}

// Complete reports whether every credential is present
func (s *Session) Complete() bool {
	return s != nil && s.PaymentIntent != "" && s.EphemeralKey != "" && s.Customer != ""
}

// SessionClient mints payment sessions from the gateway. Implementations
// must return an integration error when any of the three credentials is
// missing from the gateway response.
type SessionClient interface {
	CreateSession(ctx context.Context, amount valueobject.Money, payerEmail string) (*Session, error)
}

// Outcome is the terminal state of a presented payment sheet
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Result is what the payment sheet reports back after the user dismisses
// it. Reason is only set for the failed outcome.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// Collector drives the gateway's payment collection UI for an already
// minted session. Implementations hold no per-payment state: the session
// is passed to every call so one collector can serve concurrent
// confirmations without one payment reading another's status.
type Collector interface {
	Initialize(ctx context.Context, session *Session, merchantName string) error
	Present(ctx context.Context, session *Session) (*Result, error)
}
