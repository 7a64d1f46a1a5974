package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evharten/workshop-booking/internal/payment"
)

type fakeVerifier struct {
	ev  payment.Event
	err error
}

func (f *fakeVerifier) Verify(_ []byte, _ string) (payment.Event, error) {
	return f.ev, f.err
}

type fakeEventReconciler struct {
	events []payment.Event
	err    error
}

func (f *fakeEventReconciler) HandleEvent(_ context.Context, ev payment.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func postWebhook(h *WebhookHandler) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", strings.NewReader(`{}`))
	req.Header.Set(signatureHeader, "t=1,v1=sig")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.Handle(c)
	return rec
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	reconciler := &fakeEventReconciler{}
	h := NewWebhookHandler(&fakeVerifier{err: errors.New("bad signature")}, reconciler, nil, zap.NewNop())

	rec := postWebhook(h)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, reconciler.events)
}

func TestWebhookAcknowledgesIgnoredEvents(t *testing.T) {
	reconciler := &fakeEventReconciler{}
	h := NewWebhookHandler(&fakeVerifier{ev: payment.Event{ID: "evt_1", Type: payment.EventIgnored}}, reconciler, nil, zap.NewNop())

	rec := postWebhook(h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, reconciler.events)
}

func TestWebhookDispatchesVerifiedEvent(t *testing.T) {
	reconciler := &fakeEventReconciler{}
	ev := payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, ReservationID: 7, PaymentIntentID: "pi_1"}
	h := NewWebhookHandler(&fakeVerifier{ev: ev}, reconciler, nil, zap.NewNop())

	rec := postWebhook(h)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, reconciler.events, 1)
	assert.Equal(t, ev, reconciler.events[0])
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
}

func TestWebhookReturns500ForRedelivery(t *testing.T) {
	reconciler := &fakeEventReconciler{err: errors.New("db down")}
	ev := payment.Event{ID: "evt_1", Type: payment.EventChargeRefunded, PaymentIntentID: "pi_1"}
	h := NewWebhookHandler(&fakeVerifier{ev: ev}, reconciler, nil, zap.NewNop())

	rec := postWebhook(h)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func testRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestWebhookSkipsDuplicateEvents(t *testing.T) {
	reconciler := &fakeEventReconciler{}
	ev := payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, ReservationID: 7, PaymentIntentID: "pi_1"}
	h := NewWebhookHandler(&fakeVerifier{ev: ev}, reconciler, testRedis(t), zap.NewNop())

	rec := postWebhook(h)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same event id again: acknowledged without reprocessing.
	rec = postWebhook(h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, reconciler.events, 1)
}

func TestWebhookReprocessesRedeliveryAfterFailure(t *testing.T) {
	// A transient reconciliation failure must not poison the dedupe guard:
	// the 500 makes the provider redeliver, and the redelivery has to reach
	// the reconciler instead of being skipped as a duplicate.
	reconciler := &fakeEventReconciler{err: errors.New("db down")}
	ev := payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, ReservationID: 7, PaymentIntentID: "pi_1"}
	h := NewWebhookHandler(&fakeVerifier{ev: ev}, reconciler, testRedis(t), zap.NewNop())

	rec := postWebhook(h)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	reconciler.err = nil
	rec = postWebhook(h)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, reconciler.events, 1)
	assert.Equal(t, ev, reconciler.events[0])

	// And once processed, further redeliveries are duplicates again.
	rec = postWebhook(h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, reconciler.events, 1)
}
