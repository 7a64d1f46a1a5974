package model

import "time"

// Session is one scheduled, dated occurrence of a workshop category with a
// fixed seat capacity and a price per seat.  A session becomes read-only for
// admins once it has finished, and cannot be deleted while reservations
// reference it.
//
// Fields:
//  ID         – primary key identifier.
//  CategoryID – category this session belongs to.
//  Date       – calendar day of the workshop.
//  StartTime  – when the workshop begins.
//  EndTime    – when the workshop ends (must be after StartTime).
//  Capacity   – total number of seats (>= 1).
//  PriceCents – price per seat in minor currency units.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Session struct {
	ID         uint64    `json:"id"`
	CategoryID uint64    `json:"category_id"`
	Date       time.Time `json:"date"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Capacity   int       `json:"capacity"`
	PriceCents int       `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Finished reports whether the session has already ended relative to now.
func (s Session) Finished(now time.Time) bool {
	return s.EndTime.Before(now)
}
