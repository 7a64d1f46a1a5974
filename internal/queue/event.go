// Package queue decouples customer notifications from the request path.
// State transitions publish an event after they commit; a background
// consumer renders and sends the email.  Publishing is best-effort, so a
// broker outage never blocks a booking or a webhook acknowledgment.
package queue

// Kind names the customer-facing outcome a notification reports.
type Kind string

const (
	KindConfirmation    Kind = "confirmation"     // payment captured, booking confirmed
	KindCanceled        Kind = "canceled"         // canceled before payment
	KindRefundInitiated Kind = "refund_initiated" // admin canceled a paid booking
	KindRefundCompleted Kind = "refund_completed" // provider confirmed the refund
)

// NotificationEvent carries everything the consumer needs to write the
// email without querying the primary database.
type NotificationEvent struct {
	ID            string `json:"id"` // unique event id for log correlation
	Kind          Kind   `json:"kind"`
	ReservationID uint64 `json:"reservation_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Quantity      int    `json:"quantity"`
	Workshop      string `json:"workshop"` // category name
	Date          string `json:"date"`     // human-readable session date
	Start         string `json:"start"`    // human-readable start time
}
