package model

import "time"

// Status enumerates the lifecycle states of a reservation.
type Status string

const (
	StatusPending   Status = "PENDING"   // created, payment not yet captured
	StatusPaid      Status = "PAID"      // checkout completed
	StatusCanceled  Status = "CANCELED"  // canceled before any payment; terminal
	StatusRefunding Status = "REFUNDING" // refund requested, provider not yet confirmed
	StatusRefunded  Status = "REFUNDED"  // refund confirmed by the provider; terminal
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCanceled, StatusRefunding, StatusRefunded:
		return true
	}
	return false
}

// Occupies reports whether a reservation in this state still holds seats.
// This is the single capacity rule used everywhere: canceled and refunded
// reservations free their seats, everything else counts against capacity.
func (s Status) Occupies() bool {
	switch s {
	case StatusPending, StatusPaid, StatusRefunding:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave this state.
func (s Status) Terminal() bool {
	return s == StatusCanceled || s == StatusRefunded
}

// Reservation is a customer's claim on a number of seats in a session.
// Payment-provider identifiers are filled in as the checkout and refund
// flows progress.
//
// Fields:
//  ID                – primary key identifier.
//  SessionID         – session being booked.
//  Name              – customer name.
//  Email             – customer email, target of notification emails.
//  Quantity          – seats requested (1..10).
//  Status            – current lifecycle state.
//  CheckoutSessionID – hosted checkout session id (nullable).
//  PaymentIntentID   – provider payment intent id (nullable).
//  RefundID          – provider refund id once refunded (nullable).
//  CreatedAt         – creation timestamp.
//  CanceledAt        – set when an admin cancels the reservation (nullable).
type Reservation struct {
	ID                uint64     `json:"id"`
	SessionID         uint64     `json:"session_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Quantity          int        `json:"quantity"`
	Status            Status     `json:"status"`
	CheckoutSessionID *string    `json:"checkout_session_id,omitempty"`
	PaymentIntentID   *string    `json:"payment_intent_id,omitempty"`
	RefundID          *string    `json:"refund_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	CanceledAt        *time.Time `json:"canceled_at,omitempty"`
}
