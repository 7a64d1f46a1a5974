package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/evharten/workshop-booking/internal/model"
)

// Quantity bounds for a single reservation.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// ValidationError describes a rejected input field.  Handlers map it onto
// an HTTP 400 response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BookingStore performs the atomic capacity-checked reservation insert.
// The implementation (ReservationRepo.CreateIfCapacity) locks the session
// row and re-sums active quantities inside the transaction, which is what
// keeps concurrent bookings from jointly overbooking a session.
type BookingStore interface {
	CreateIfCapacity(ctx context.Context, res *model.Reservation) error
}

// CreateReservationInput is a booking submission.
type CreateReservationInput struct {
	SessionID uint64 `json:"session_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Quantity  int    `json:"quantity"`
}

// BookingService validates booking submissions and writes reservations.
type BookingService struct {
	store BookingStore
}

// NewBookingService wires the writer to its store.
func NewBookingService(store BookingStore) *BookingService {
	return &BookingService{store: store}
}

// Create validates the input and inserts a PENDING reservation if the
// session has enough remaining seats.  Returns *ValidationError for bad
// input, repository.ErrSessionNotFound for an unknown session and
// repository.ErrCapacityExceeded when the quantity does not fit.
func (s *BookingService) Create(ctx context.Context, in CreateReservationInput) (model.Reservation, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Reservation{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return model.Reservation{}, &ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	if in.Quantity < MinQuantity || in.Quantity > MaxQuantity {
		return model.Reservation{}, &ValidationError{
			Field:  "quantity",
			Reason: fmt.Sprintf("must be between %d and %d", MinQuantity, MaxQuantity),
		}
	}
	if in.SessionID == 0 {
		return model.Reservation{}, &ValidationError{Field: "session_id", Reason: "is required"}
	}

	res := model.Reservation{
		SessionID: in.SessionID,
		Name:      name,
		Email:     email,
		Quantity:  in.Quantity,
		Status:    model.StatusPending,
	}
	if err := s.store.CreateIfCapacity(ctx, &res); err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}
