// Package service implements the booking domain logic: availability
// aggregation, capacity-checked reservation writes, checkout initiation and
// payment-event reconciliation.  Services depend on narrow store interfaces
// implemented by the repositories so the logic tests against in-memory
// fakes.
package service

import (
	"context"
	"time"

	"github.com/evharten/workshop-booking/internal/model"
)

// SessionRangeLister lists the sessions of a category inside a date range.
type SessionRangeLister interface {
	ListInRange(ctx context.Context, categoryID uint64, from, to time.Time) ([]model.Session, error)
}

// ActiveQuantitySummer sums the seat-occupying reservation quantities per
// session.
type ActiveQuantitySummer interface {
	ActiveQuantities(ctx context.Context, sessionIDs []uint64) (map[uint64]int, error)
}

// Timeslot is one bookable session within a day of the availability
// calendar.
type Timeslot struct {
	ID         uint64    `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	PriceCents int       `json:"price_cents"`
	Remaining  int       `json:"remaining"`
	SoldOut    bool      `json:"sold_out"`
}

// DayAvailability aggregates the timeslots of one calendar day.  Remaining
// is the sum over the day's timeslots and never goes negative.
type DayAvailability struct {
	Remaining int        `json:"remaining"`
	Times     []Timeslot `json:"times"`
}

// dayKeyLayout formats the map keys of a month's availability (ISO dates).
const dayKeyLayout = "2006-01-02"

// AvailabilityService computes remaining seats per session and per day.
type AvailabilityService struct {
	sessions     SessionRangeLister
	reservations ActiveQuantitySummer
}

// NewAvailabilityService wires the aggregator to its stores.
func NewAvailabilityService(sessions SessionRangeLister, reservations ActiveQuantitySummer) *AvailabilityService {
	return &AvailabilityService{sessions: sessions, reservations: reservations}
}

// Month returns the availability calendar of a category for one month,
// keyed by ISO day.  Every session in range is included: sold-out sessions
// carry remaining=0 and sold_out=true so clients can render them disabled
// instead of hiding them.  Reserved seats are counted with the single
// occupancy rule (model.Status.Occupies), so canceled and refunded
// reservations free their seats everywhere consistently.
func (s *AvailabilityService) Month(ctx context.Context, categoryID uint64, year int, month time.Month) (map[string]DayAvailability, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1) // last day of the month

	sessions, err := s.sessions.ListInRange(ctx, categoryID, from, to)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}
	reserved, err := s.reservations.ActiveQuantities(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[string]DayAvailability, len(sessions))
	for _, sess := range sessions {
		remaining := sess.Capacity - reserved[sess.ID]
		if remaining < 0 {
			// Capacity is enforced at write time, but a shrunk capacity edit
			// can leave historic oversubscription; never report negative.
			remaining = 0
		}
		key := sess.Date.UTC().Format(dayKeyLayout)
		day := out[key]
		day.Remaining += remaining
		day.Times = append(day.Times, Timeslot{
			ID:         sess.ID,
			Start:      sess.StartTime,
			End:        sess.EndTime,
			PriceCents: sess.PriceCents,
			Remaining:  remaining,
			SoldOut:    remaining == 0,
		})
		out[key] = day
	}
	return out, nil
}
