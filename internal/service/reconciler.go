package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/payment"
	"github.com/evharten/workshop-booking/internal/queue"
	"github.com/evharten/workshop-booking/internal/repository"
)

// ReconcilerStore is the slice of the reservation repository driven by
// payment events and admin cancellations.
type ReconcilerStore interface {
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	MarkPaid(ctx context.Context, id uint64, paymentIntentID string) error
	MarkRefunding(ctx context.Context, id uint64, canceledAt time.Time) error
	MarkCanceled(ctx context.Context, id uint64, canceledAt time.Time) error
	ListByPaymentIntent(ctx context.Context, paymentIntentID string) ([]model.Reservation, error)
	MarkRefundedByIntent(ctx context.Context, paymentIntentID, refundID string) error
}

// Notifier queues a customer notification.  *queue.Publisher satisfies
// this, including its nil no-op form.
type Notifier interface {
	Publish(ctx context.Context, ev queue.NotificationEvent) error
}

// Refunder issues refund requests to the payment provider.
type Refunder interface {
	CreateRefund(ctx context.Context, paymentIntentID string) error
}

// Reconciler applies payment-provider outcomes and admin cancellations to
// reservation state.  Every customer-facing transition queues a
// notification after the state change is committed; notification failures
// are logged and never undo or fail the transition.
type Reconciler struct {
	store      ReconcilerStore
	sessions   SessionGetter
	categories CategoryGetter
	refunder   Refunder
	notifier   Notifier
	log        *zap.Logger
}

// NewReconciler wires the reconciler.
func NewReconciler(store ReconcilerStore, sessions SessionGetter, categories CategoryGetter, refunder Refunder, notifier Notifier, log *zap.Logger) *Reconciler {
	return &Reconciler{
		store:      store,
		sessions:   sessions,
		categories: categories,
		refunder:   refunder,
		notifier:   notifier,
		log:        log,
	}
}

// HandleEvent dispatches a verified provider event.  Unknown event types
// are acknowledged without any state change.
func (r *Reconciler) HandleEvent(ctx context.Context, ev payment.Event) error {
	switch ev.Type {
	case payment.EventCheckoutCompleted:
		return r.CheckoutCompleted(ctx, ev.ReservationID, ev.PaymentIntentID)
	case payment.EventChargeRefunded:
		return r.ChargeRefunded(ctx, ev.PaymentIntentID, ev.RefundID)
	}
	return nil
}

// CheckoutCompleted transitions PENDING -> PAID.  Redelivered events are
// harmless: the status update is idempotent and the confirmation email is
// only queued when the reservation was not already PAID with a stored
// payment intent.
func (r *Reconciler) CheckoutCompleted(ctx context.Context, reservationID uint64, paymentIntentID string) error {
	if reservationID == 0 {
		// Checkout session without our metadata; nothing to reconcile.
		return nil
	}
	res, err := r.store.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	firstPaid := !(res.Status == model.StatusPaid && res.PaymentIntentID != nil)
	if err := r.store.MarkPaid(ctx, reservationID, paymentIntentID); err != nil {
		return err
	}
	if firstPaid {
		res.Status = model.StatusPaid
		r.notify(ctx, res, queue.KindConfirmation)
	}
	return nil
}

// ChargeRefunded transitions every reservation sharing the payment intent
// (normally one) to the terminal REFUNDED state and records the refund id.
func (r *Reconciler) ChargeRefunded(ctx context.Context, paymentIntentID, refundID string) error {
	if paymentIntentID == "" {
		return nil
	}
	reservations, err := r.store.ListByPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return err
	}
	if err := r.store.MarkRefundedByIntent(ctx, paymentIntentID, refundID); err != nil {
		return err
	}
	for _, res := range reservations {
		if res.Email == "" {
			continue
		}
		res.Status = model.StatusRefunded
		r.notify(ctx, res, queue.KindRefundCompleted)
	}
	return nil
}

// Cancel is the admin-initiated cancellation.  With a captured payment a
// refund is requested first and the reservation becomes REFUNDING only
// after the provider accepted the request; a provider failure propagates
// and leaves the status untouched.  Without a payment intent the
// reservation goes straight to the terminal CANCELED state.
func (r *Reconciler) Cancel(ctx context.Context, reservationID uint64) error {
	res, err := r.store.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.Status.Terminal() || res.Status == model.StatusRefunding {
		return repository.ErrConflict
	}

	now := time.Now().UTC()
	if res.PaymentIntentID != nil && *res.PaymentIntentID != "" {
		if err := r.refunder.CreateRefund(ctx, *res.PaymentIntentID); err != nil {
			return err
		}
		if err := r.store.MarkRefunding(ctx, reservationID, now); err != nil {
			return err
		}
		res.Status = model.StatusRefunding
		r.notify(ctx, res, queue.KindRefundInitiated)
		return nil
	}

	if err := r.store.MarkCanceled(ctx, reservationID, now); err != nil {
		return err
	}
	res.Status = model.StatusCanceled
	r.notify(ctx, res, queue.KindCanceled)
	return nil
}

// notify queues a notification for a committed transition.  Session and
// category details enrich the email but are optional; any failure here is
// logged and swallowed.
func (r *Reconciler) notify(ctx context.Context, res model.Reservation, kind queue.Kind) {
	ev := queue.NotificationEvent{
		ID:            uuid.NewString(),
		Kind:          kind,
		ReservationID: res.ID,
		Name:          res.Name,
		Email:         res.Email,
		Quantity:      res.Quantity,
	}
	if sess, err := r.sessions.GetByID(ctx, res.SessionID); err == nil {
		ev.Date = sess.Date.Format("Mon Jan 2 2006")
		ev.Start = sess.StartTime.Format("15:04")
		if cat, err := r.categories.GetByID(ctx, sess.CategoryID); err == nil {
			ev.Workshop = cat.Name
		}
	}
	if err := r.notifier.Publish(ctx, ev); err != nil {
		r.log.Warn("notification publish failed",
			zap.String("kind", string(kind)),
			zap.Uint64("reservation_id", res.ID),
			zap.Error(err))
	}
}
