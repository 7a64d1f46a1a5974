package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/evharten/workshop-booking/internal/payment"
)

// signatureHeader is the header carrying the provider's payload signature.
const signatureHeader = "Stripe-Signature"

// eventDedupeTTL bounds how long processed event ids are remembered.
// Stripe retries failed deliveries for up to three days; one day covers
// the overwhelming majority of duplicate deliveries while the reconciler
// itself stays idempotent for the rest.
const eventDedupeTTL = 24 * time.Hour

// eventReconciler is implemented by service.Reconciler.
type eventReconciler interface {
	HandleEvent(ctx context.Context, ev payment.Event) error
}

// WebhookHandler receives asynchronous payment-provider events.
type WebhookHandler struct {
	verifier   payment.Verifier
	reconciler eventReconciler
	rdb        *redis.Client // optional event-id dedupe; nil disables it
	log        *zap.Logger
}

// NewWebhookHandler constructs the handler.  rdb may be nil.
func NewWebhookHandler(verifier payment.Verifier, reconciler eventReconciler, rdb *redis.Client, log *zap.Logger) *WebhookHandler {
	if verifier == nil || reconciler == nil {
		panic("nil dependency passed to NewWebhookHandler")
	}
	return &WebhookHandler{verifier: verifier, reconciler: reconciler, rdb: rdb, log: log}
}

// Handle processes POST /v1/payments/webhook.  The raw body is verified
// against the signature header before anything is mutated; verification
// failure is a 400 with no state change.  Verified events are deduped by
// event id, dispatched to the reconciler, and acknowledged.  Unknown event
// types are acknowledged untouched.  Reconciliation errors return 500 so
// the provider redelivers; only successfully processed events keep their
// dedupe claim, a failed one releases it so the redelivery goes through.
func (h *WebhookHandler) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
	}

	ev, err := h.verifier.Verify(body, c.Request().Header.Get(signatureHeader))
	if err != nil {
		h.log.Warn("webhook rejected", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "signature verification failed"})
	}
	if ev.Type == payment.EventIgnored {
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}

	ctx := c.Request().Context()
	var dedupeKey string
	if h.rdb != nil && ev.ID != "" {
		key := "webhook:event:" + ev.ID
		first, err := h.rdb.SetNX(ctx, key, 1, eventDedupeTTL).Result()
		if err == nil && !first {
			h.log.Info("webhook duplicate skipped", zap.String("event_id", ev.ID))
			return c.JSON(http.StatusOK, echo.Map{"received": true})
		}
		if err == nil {
			dedupeKey = key
		}
		// On a Redis error fall through without a claim: the reconciler
		// handles replays.
	}

	if err := h.reconciler.HandleEvent(ctx, ev); err != nil {
		// Release the dedupe claim so the provider's redelivery is
		// reprocessed instead of skipped as a duplicate.  Detached context:
		// a canceled request must not leave the claim behind.
		if dedupeKey != "" {
			_ = h.rdb.Del(context.Background(), dedupeKey).Err()
		}
		h.log.Error("webhook processing failed",
			zap.String("event_id", ev.ID),
			zap.String("type", string(ev.Type)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "event processing failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
