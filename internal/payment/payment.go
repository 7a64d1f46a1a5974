// Package payment isolates the payment provider behind small interfaces so
// the booking and reconciliation logic never touches provider SDK types.
package payment

import "context"

// EventType classifies the provider events this service reacts to.  Any
// other event type maps to EventIgnored and is acknowledged without action.
type EventType string

const (
	EventCheckoutCompleted EventType = "checkout.completed"
	EventChargeRefunded    EventType = "charge.refunded"
	EventIgnored           EventType = "ignored"
)

// Event is the provider-neutral form of a verified webhook event.  Only the
// fields relevant to the handled event type are populated.
type Event struct {
	ID              string    // provider event id, used for dedupe
	Type            EventType
	ReservationID   uint64 // from checkout metadata (checkout completed)
	PaymentIntentID string
	RefundID        string // refund id (charge refunded)
}

// CheckoutParams describes the hosted checkout session to create for a
// reservation.  UnitAmountCents is the per-seat price; the provider
// multiplies by Quantity.
type CheckoutParams struct {
	ReservationID   uint64
	ProductName     string
	UnitAmountCents int64
	Quantity        int64
	SuccessURL      string
	CancelURL       string
}

// CheckoutSession is the created hosted checkout session.
type CheckoutSession struct {
	ID  string
	URL string
}

// Provider creates checkout sessions and refund requests.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (CheckoutSession, error)
	CreateRefund(ctx context.Context, paymentIntentID string) error
}

// Verifier checks a raw webhook payload against its signature header and
// maps it onto an Event.  Verification failures must be returned as errors
// before anything is mutated.
type Verifier interface {
	Verify(payload []byte, sigHeader string) (Event, error)
}
