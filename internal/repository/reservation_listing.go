package repository

import (
	"context"
	"time"

	"github.com/evharten/workshop-booking/internal/model"
)

// ReservationFilter narrows and orders the admin reservation listing.
// Zero values mean "no filter".
type ReservationFilter struct {
	Status     model.Status // exact status match
	CategoryID uint64       // reservations whose session belongs to this category
	Query      string       // substring match against customer name or email
	Sort       string       // "newest" (default), "oldest" or "status"
	Limit      int
	Offset     int
}

// ReservationDetail is a reservation joined with its session and category
// for display in the admin listing.
type ReservationDetail struct {
	model.Reservation
	SessionDate  time.Time `json:"session_date"`
	SessionStart time.Time `json:"session_start"`
	SessionEnd   time.Time `json:"session_end"`
	PriceCents   int       `json:"price_cents"`
	CategoryID   uint64    `json:"category_id"`
	CategoryName string    `json:"category_name"`
}

// List returns a page of reservations matching the filter together with the
// total number of matches (for pagination).
func (r *ReservationRepo) List(ctx context.Context, f ReservationFilter) ([]ReservationDetail, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		where += ` AND r.status = ?`
		args = append(args, f.Status)
	}
	if f.CategoryID != 0 {
		where += ` AND s.category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Query != "" {
		where += ` AND (r.name LIKE ? OR r.email LIKE ?)`
		like := "%" + f.Query + "%"
		args = append(args, like, like)
	}

	const from = ` FROM reservations r
		JOIN sessions s ON s.id = r.session_id
		JOIN categories c ON c.id = s.category_id`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := ` ORDER BY r.created_at DESC`
	switch f.Sort {
	case "oldest":
		order = ` ORDER BY r.created_at ASC`
	case "status":
		order = ` ORDER BY r.status ASC, r.created_at DESC`
	}

	q := `SELECT r.id, r.session_id, r.name, r.email, r.quantity, r.status,
		r.checkout_session_id, r.payment_intent_id, r.refund_id, r.created_at, r.canceled_at,
		s.date, s.start_time, s.end_time, s.price_cents, c.id, c.name` +
		from + where + order + ` LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []ReservationDetail
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.SessionID, &d.Name, &d.Email, &d.Quantity, &d.Status,
			&d.CheckoutSessionID, &d.PaymentIntentID, &d.RefundID, &d.CreatedAt, &d.CanceledAt,
			&d.SessionDate, &d.SessionStart, &d.SessionEnd, &d.PriceCents, &d.CategoryID, &d.CategoryName); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}
