package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/payment"
	"github.com/evharten/workshop-booking/internal/queue"
	"github.com/evharten/workshop-booking/internal/repository"
)

type fakeReconcilerStore struct {
	reservations map[uint64]*model.Reservation
}

func newFakeReconcilerStore(rs ...*model.Reservation) *fakeReconcilerStore {
	s := &fakeReconcilerStore{reservations: map[uint64]*model.Reservation{}}
	for _, r := range rs {
		s.reservations[r.ID] = r
	}
	return s
}

func (s *fakeReconcilerStore) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return *r, nil
}

func (s *fakeReconcilerStore) MarkPaid(_ context.Context, id uint64, paymentIntentID string) error {
	r, ok := s.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.Status = model.StatusPaid
	r.PaymentIntentID = &paymentIntentID
	return nil
}

func (s *fakeReconcilerStore) MarkRefunding(_ context.Context, id uint64, canceledAt time.Time) error {
	r, ok := s.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.Status = model.StatusRefunding
	r.CanceledAt = &canceledAt
	return nil
}

func (s *fakeReconcilerStore) MarkCanceled(_ context.Context, id uint64, canceledAt time.Time) error {
	r, ok := s.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.Status = model.StatusCanceled
	r.CanceledAt = &canceledAt
	return nil
}

func (s *fakeReconcilerStore) ListByPaymentIntent(_ context.Context, paymentIntentID string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.PaymentIntentID != nil && *r.PaymentIntentID == paymentIntentID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReconcilerStore) MarkRefundedByIntent(_ context.Context, paymentIntentID, refundID string) error {
	for _, r := range s.reservations {
		if r.PaymentIntentID != nil && *r.PaymentIntentID == paymentIntentID {
			r.Status = model.StatusRefunded
			r.RefundID = &refundID
		}
	}
	return nil
}

type fakeNotifier struct {
	events []queue.NotificationEvent
	err    error
}

func (n *fakeNotifier) Publish(_ context.Context, ev queue.NotificationEvent) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, ev)
	return nil
}

type fakeRefunder struct {
	intents []string
	err     error
}

func (r *fakeRefunder) CreateRefund(_ context.Context, paymentIntentID string) error {
	if r.err != nil {
		return r.err
	}
	r.intents = append(r.intents, paymentIntentID)
	return nil
}

type fakeSessionGetter struct{ session model.Session }

func (f *fakeSessionGetter) GetByID(_ context.Context, _ uint64) (model.Session, error) {
	if f.session.ID == 0 {
		return model.Session{}, repository.ErrSessionNotFound
	}
	return f.session, nil
}

type fakeCategoryGetter struct{ category model.Category }

func (f *fakeCategoryGetter) GetByID(_ context.Context, _ uint64) (model.Category, error) {
	if f.category.ID == 0 {
		return model.Category{}, repository.ErrCategoryNotFound
	}
	return f.category, nil
}

func pendingReservation(id uint64) *model.Reservation {
	return &model.Reservation{
		ID:        id,
		SessionID: 1,
		Name:      "Eva de Vries",
		Email:     "eva@example.com",
		Quantity:  2,
		Status:    model.StatusPending,
	}
}

func newTestReconciler(store *fakeReconcilerStore, refunder *fakeRefunder, notifier *fakeNotifier) *Reconciler {
	sessions := &fakeSessionGetter{session: model.Session{
		ID:         1,
		CategoryID: 1,
		Date:       time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
		StartTime:  time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC),
	}}
	categories := &fakeCategoryGetter{category: model.Category{ID: 1, Name: "Pottery"}}
	return NewReconciler(store, sessions, categories, refunder, notifier, zap.NewNop())
}

func TestCheckoutCompletedMarksPaidAndNotifiesOnce(t *testing.T) {
	store := newFakeReconcilerStore(pendingReservation(1))
	notifier := &fakeNotifier{}
	rec := newTestReconciler(store, &fakeRefunder{}, notifier)
	ctx := context.Background()

	require.NoError(t, rec.CheckoutCompleted(ctx, 1, "pi_123"))
	assert.Equal(t, model.StatusPaid, store.reservations[1].Status)
	require.NotNil(t, store.reservations[1].PaymentIntentID)
	assert.Equal(t, "pi_123", *store.reservations[1].PaymentIntentID)

	require.Len(t, notifier.events, 1)
	ev := notifier.events[0]
	assert.Equal(t, queue.KindConfirmation, ev.Kind)
	assert.Equal(t, "eva@example.com", ev.Email)
	assert.Equal(t, "Pottery", ev.Workshop)

	// Redelivered event: idempotent, no second confirmation.
	require.NoError(t, rec.CheckoutCompleted(ctx, 1, "pi_123"))
	assert.Equal(t, model.StatusPaid, store.reservations[1].Status)
	assert.Len(t, notifier.events, 1)
}

func TestCheckoutCompletedWithoutReservationMetadata(t *testing.T) {
	store := newFakeReconcilerStore()
	notifier := &fakeNotifier{}
	rec := newTestReconciler(store, &fakeRefunder{}, notifier)

	require.NoError(t, rec.CheckoutCompleted(context.Background(), 0, "pi_123"))
	assert.Empty(t, notifier.events)
}

func TestCancelWithoutPayment(t *testing.T) {
	store := newFakeReconcilerStore(pendingReservation(1))
	notifier := &fakeNotifier{}
	refunder := &fakeRefunder{}
	rec := newTestReconciler(store, refunder, notifier)

	require.NoError(t, rec.Cancel(context.Background(), 1))
	assert.Equal(t, model.StatusCanceled, store.reservations[1].Status)
	assert.NotNil(t, store.reservations[1].CanceledAt)
	assert.Empty(t, refunder.intents)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, queue.KindCanceled, notifier.events[0].Kind)
}

func TestCancelPaidRequestsRefundFirst(t *testing.T) {
	res := pendingReservation(1)
	intent := "pi_123"
	res.Status = model.StatusPaid
	res.PaymentIntentID = &intent
	store := newFakeReconcilerStore(res)
	notifier := &fakeNotifier{}
	refunder := &fakeRefunder{}
	rec := newTestReconciler(store, refunder, notifier)

	require.NoError(t, rec.Cancel(context.Background(), 1))
	assert.Equal(t, []string{"pi_123"}, refunder.intents)
	assert.Equal(t, model.StatusRefunding, store.reservations[1].Status)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, queue.KindRefundInitiated, notifier.events[0].Kind)
}

func TestCancelKeepsStatusWhenRefundFails(t *testing.T) {
	res := pendingReservation(1)
	intent := "pi_123"
	res.Status = model.StatusPaid
	res.PaymentIntentID = &intent
	store := newFakeReconcilerStore(res)
	notifier := &fakeNotifier{}
	boom := errors.New("provider unavailable")
	rec := newTestReconciler(store, &fakeRefunder{err: boom}, notifier)

	err := rec.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, model.StatusPaid, store.reservations[1].Status)
	assert.Empty(t, notifier.events)
}

func TestCancelRejectsTerminalAndRefunding(t *testing.T) {
	for _, status := range []model.Status{model.StatusCanceled, model.StatusRefunded, model.StatusRefunding} {
		res := pendingReservation(1)
		res.Status = status
		store := newFakeReconcilerStore(res)
		rec := newTestReconciler(store, &fakeRefunder{}, &fakeNotifier{})

		err := rec.Cancel(context.Background(), 1)
		assert.ErrorIs(t, err, repository.ErrConflict, "status %s", status)
		assert.Equal(t, status, store.reservations[1].Status)
	}
}

func TestCancelUnknownReservation(t *testing.T) {
	rec := newTestReconciler(newFakeReconcilerStore(), &fakeRefunder{}, &fakeNotifier{})
	err := rec.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrReservationNotFound)
}

func TestChargeRefundedCompletesRefund(t *testing.T) {
	res := pendingReservation(1)
	intent := "pi_123"
	res.Status = model.StatusRefunding
	res.PaymentIntentID = &intent
	store := newFakeReconcilerStore(res)
	notifier := &fakeNotifier{}
	rec := newTestReconciler(store, &fakeRefunder{}, notifier)

	ev := payment.Event{Type: payment.EventChargeRefunded, PaymentIntentID: "pi_123", RefundID: "re_1"}
	require.NoError(t, rec.HandleEvent(context.Background(), ev))

	assert.Equal(t, model.StatusRefunded, store.reservations[1].Status)
	require.NotNil(t, store.reservations[1].RefundID)
	assert.Equal(t, "re_1", *store.reservations[1].RefundID)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, queue.KindRefundCompleted, notifier.events[0].Kind)
}

func TestChargeRefundedWithoutIntentIsIgnored(t *testing.T) {
	notifier := &fakeNotifier{}
	rec := newTestReconciler(newFakeReconcilerStore(), &fakeRefunder{}, notifier)
	require.NoError(t, rec.ChargeRefunded(context.Background(), "", "re_1"))
	assert.Empty(t, notifier.events)
}

func TestNotifyFailureDoesNotUndoTransition(t *testing.T) {
	store := newFakeReconcilerStore(pendingReservation(1))
	notifier := &fakeNotifier{err: errors.New("broker down")}
	rec := newTestReconciler(store, &fakeRefunder{}, notifier)

	require.NoError(t, rec.Cancel(context.Background(), 1))
	assert.Equal(t, model.StatusCanceled, store.reservations[1].Status)
}

func TestHandleEventIgnoresUnknownTypes(t *testing.T) {
	rec := newTestReconciler(newFakeReconcilerStore(), &fakeRefunder{}, &fakeNotifier{})
	assert.NoError(t, rec.HandleEvent(context.Background(), payment.Event{Type: payment.EventIgnored}))
}
