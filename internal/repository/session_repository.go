package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/evharten/workshop-booking/internal/model"
)

// SessionRepo provides CRUD operations for bookable workshop sessions.
// All timestamp fields are stored in UTC.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a new SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

const sessionCols = `id, category_id, date, start_time, end_time, capacity, price_cents, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }, s *model.Session) error {
	return row.Scan(&s.ID, &s.CategoryID, &s.Date, &s.StartTime, &s.EndTime,
		&s.Capacity, &s.PriceCents, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new session and populates the generated id and
// timestamps on the provided record.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const q = `INSERT INTO sessions (category_id, date, start_time, end_time, capacity, price_cents)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.CategoryID, s.Date, s.StartTime, s.EndTime, s.Capacity, s.PriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	return scanSession(r.db.QueryRowContext(ctx, sel, s.ID), s)
}

// GetByID returns the session with the given id or ErrSessionNotFound.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	var s model.Session
	if err := scanSession(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if err == sql.ErrNoRows {
			return model.Session{}, ErrSessionNotFound
		}
		return model.Session{}, err
	}
	return s, nil
}

// ListInRange returns all sessions of a category whose date falls inside
// [from, to], ordered by start time.  Used by the availability aggregator
// with a whole calendar month as the range.
func (r *SessionRepo) ListInRange(ctx context.Context, categoryID uint64, from, to time.Time) ([]model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions
		WHERE category_id = ? AND date >= ? AND date <= ?
		ORDER BY start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, categoryID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Session
	for rows.Next() {
		var s model.Session
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// List returns sessions ordered by start time descending, optionally
// filtered by category (categoryID == 0 means all).
func (r *SessionRepo) List(ctx context.Context, categoryID uint64) ([]model.Session, error) {
	q := `SELECT ` + sessionCols + ` FROM sessions`
	args := []any{}
	if categoryID != 0 {
		q += ` WHERE category_id = ?`
		args = append(args, categoryID)
	}
	q += ` ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Session
	for rows.Next() {
		var s model.Session
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a session.  Returns
// ErrSessionNotFound when the id does not exist.  The finished-session edit
// guard lives in the handler, where "now" is known.
func (r *SessionRepo) Update(ctx context.Context, s *model.Session) error {
	const q = `UPDATE sessions SET category_id = ?, date = ?, start_time = ?, end_time = ?, capacity = ?, price_cents = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.CategoryID, s.Date, s.StartTime, s.EndTime, s.Capacity, s.PriceCents, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a session.  It refuses with ErrConflict while any
// reservation references the session, regardless of reservation status:
// canceled reservations are kept as history and still block deletion.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	var reservations int
	const cnt = `SELECT COUNT(*) FROM reservations WHERE session_id = ?`
	if err := r.db.QueryRowContext(ctx, cnt, id).Scan(&reservations); err != nil {
		return err
	}
	if reservations > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM sessions WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
