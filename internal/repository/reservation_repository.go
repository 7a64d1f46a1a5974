package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/evharten/workshop-booking/internal/model"
)

// occupyingStatuses is the SQL fragment matching model.Status.Occupies:
// reservations in these states hold seats against a session's capacity.
const occupyingStatuses = `('PENDING','PAID','REFUNDING')`

// ReservationRepo provides persistence for reservations, including the
// atomic capacity-checked insert used by the booking flow and the status
// transitions driven by payment events.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, session_id, name, email, quantity, status,
	checkout_session_id, payment_intent_id, refund_id, created_at, canceled_at`

func scanReservation(row interface{ Scan(...any) error }, res *model.Reservation) error {
	return row.Scan(&res.ID, &res.SessionID, &res.Name, &res.Email, &res.Quantity, &res.Status,
		&res.CheckoutSessionID, &res.PaymentIntentID, &res.RefundID, &res.CreatedAt, &res.CanceledAt)
}

// CreateIfCapacity inserts a PENDING reservation only if the requested
// quantity fits in the session's remaining seats.  The session row is
// locked with FOR UPDATE and the active quantity sum is recomputed inside
// the same transaction, so two concurrent bookings for the last seats
// serialize at the store and cannot jointly overbook.  Returns
// ErrSessionNotFound or ErrCapacityExceeded; on success the generated id,
// status and timestamps are populated on res.
func (r *ReservationRepo) CreateIfCapacity(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var capacity int
	const lock = `SELECT capacity FROM sessions WHERE id = ? FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lock, res.SessionID).Scan(&capacity); err != nil {
		if err == sql.ErrNoRows {
			return ErrSessionNotFound
		}
		return err
	}

	var reserved int
	const sum = `SELECT COALESCE(SUM(quantity), 0) FROM reservations
		WHERE session_id = ? AND status IN ` + occupyingStatuses
	if err := tx.QueryRowContext(ctx, sum, res.SessionID).Scan(&reserved); err != nil {
		return err
	}
	if res.Quantity > capacity-reserved {
		return ErrCapacityExceeded
	}

	const ins = `INSERT INTO reservations (session_id, name, email, quantity, status) VALUES (?, ?, ?, ?, 'PENDING')`
	result, err := tx.ExecContext(ctx, ins, res.SessionID, res.Name, res.Email, res.Quantity)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	if err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID), res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns the reservation with the given id or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if err == sql.ErrNoRows {
			return model.Reservation{}, ErrReservationNotFound
		}
		return model.Reservation{}, err
	}
	return res, nil
}

// ActiveQuantities returns, for each of the given session ids, the summed
// quantity of reservations that still occupy seats.  Sessions without
// active reservations are absent from the map.
func (r *ReservationRepo) ActiveQuantities(ctx context.Context, sessionIDs []uint64) (map[uint64]int, error) {
	out := make(map[uint64]int, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return out, nil
	}
	q := `SELECT session_id, COALESCE(SUM(quantity), 0) FROM reservations
		WHERE status IN ` + occupyingStatuses + ` AND session_id IN (?` + strings.Repeat(",?", len(sessionIDs)-1) + `)
		GROUP BY session_id`
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var qty int
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, err
		}
		out[id] = qty
	}
	return out, rows.Err()
}

// SetCheckoutSession stores the hosted checkout session id on a reservation.
func (r *ReservationRepo) SetCheckoutSession(ctx context.Context, id uint64, checkoutSessionID string) error {
	const q = `UPDATE reservations SET checkout_session_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, checkoutSessionID, id)
	return err
}

// MarkPaid transitions a reservation to PAID and records the payment
// intent.  The update is deliberately idempotent: replaying it leaves the
// row unchanged, and the caller decides whether this was the first
// transition for notification purposes.
func (r *ReservationRepo) MarkPaid(ctx context.Context, id uint64, paymentIntentID string) error {
	const q = `UPDATE reservations SET status = 'PAID', payment_intent_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, paymentIntentID, id)
	return err
}

// MarkRefunding transitions a reservation to REFUNDING after a refund
// request was accepted by the payment provider.
func (r *ReservationRepo) MarkRefunding(ctx context.Context, id uint64, canceledAt time.Time) error {
	const q = `UPDATE reservations SET status = 'REFUNDING', canceled_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, canceledAt, id)
	return err
}

// MarkCanceled transitions a never-paid reservation to the terminal
// CANCELED state.
func (r *ReservationRepo) MarkCanceled(ctx context.Context, id uint64, canceledAt time.Time) error {
	const q = `UPDATE reservations SET status = 'CANCELED', canceled_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, canceledAt, id)
	return err
}

// ListByPaymentIntent returns all reservations sharing a payment intent.
// Normally one, but the refund flow updates every match to stay consistent
// with whatever the provider refunded.
func (r *ReservationRepo) ListByPaymentIntent(ctx context.Context, paymentIntentID string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE payment_intent_id = ?`
	rows, err := r.db.QueryContext(ctx, q, paymentIntentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// MarkRefundedByIntent transitions every reservation carrying the payment
// intent to the terminal REFUNDED state and records the refund id.
func (r *ReservationRepo) MarkRefundedByIntent(ctx context.Context, paymentIntentID, refundID string) error {
	const q = `UPDATE reservations SET status = 'REFUNDED', refund_id = ? WHERE payment_intent_id = ?`
	_, err := r.db.ExecContext(ctx, q, refundID, paymentIntentID)
	return err
}
