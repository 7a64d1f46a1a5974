package service

import (
	"context"
	"fmt"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/payment"
)

// ReservationGetter loads a reservation by id.
type ReservationGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
}

// SessionGetter loads a session by id.
type SessionGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Session, error)
}

// CategoryGetter loads a category by id.
type CategoryGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Category, error)
}

// CheckoutSessionSetter stores the hosted checkout session id on a
// reservation.
type CheckoutSessionSetter interface {
	SetCheckoutSession(ctx context.Context, id uint64, checkoutSessionID string) error
}

// CheckoutStore is the slice of the reservation repository the checkout
// flow needs.
type CheckoutStore interface {
	ReservationGetter
	CheckoutSessionSetter
}

// CheckoutService creates hosted checkout sessions for reservations.
type CheckoutService struct {
	reservations CheckoutStore
	sessions     SessionGetter
	categories   CategoryGetter
	provider     payment.Provider
	appURL       string
}

// NewCheckoutService wires the checkout flow.
func NewCheckoutService(reservations CheckoutStore, sessions SessionGetter, categories CategoryGetter, provider payment.Provider, appURL string) *CheckoutService {
	return &CheckoutService{
		reservations: reservations,
		sessions:     sessions,
		categories:   categories,
		provider:     provider,
		appURL:       appURL,
	}
}

// Start creates a hosted checkout session priced at the workshop's seat
// price times the reserved quantity, with the reservation id embedded as
// correlation metadata, records the checkout session id on the reservation
// and returns the redirect URL.
func (s *CheckoutService) Start(ctx context.Context, reservationID uint64) (string, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return "", err
	}
	sess, err := s.sessions.GetByID(ctx, res.SessionID)
	if err != nil {
		return "", err
	}
	cat, err := s.categories.GetByID(ctx, sess.CategoryID)
	if err != nil {
		return "", err
	}

	checkout, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		ReservationID:   res.ID,
		ProductName:     fmt.Sprintf("%s %s", cat.Name, sess.Date.Format("Mon Jan 2 2006")),
		UnitAmountCents: int64(sess.PriceCents),
		Quantity:        int64(res.Quantity),
		SuccessURL:      s.appURL + "/reserve/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       s.appURL + "/reserve/cancel",
	})
	if err != nil {
		return "", err
	}
	if err := s.reservations.SetCheckoutSession(ctx, res.ID, checkout.ID); err != nil {
		return "", err
	}
	return checkout.URL, nil
}
