package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// metadataReservationID is the checkout metadata key correlating provider
// events back to a reservation.
const metadataReservationID = "reservation_id"

// StripeClient implements Provider and Verifier on top of the Stripe SDK.
type StripeClient struct {
	api           *client.API
	webhookSecret string
	currency      string
}

// NewStripeClient builds a client from the API secret key and the webhook
// signing secret.  Prices are charged in euros, matching how session prices
// are stored.
func NewStripeClient(secretKey, webhookSecret string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api, webhookSecret: webhookSecret, currency: string(stripe.CurrencyEUR)}
}

// CreateCheckoutSession creates a hosted checkout session priced at the
// session's seat price times the reserved quantity, carrying the
// reservation id as metadata.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(p.UnitAmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ProductName),
					},
				},
				Quantity: stripe.Int64(p.Quantity),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataReservationID, strconv.FormatUint(p.ReservationID, 10))

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// CreateRefund asks Stripe to refund the full charge behind a payment
// intent.  The reconciler only marks the reservation REFUNDING after this
// succeeds; the terminal REFUNDED state arrives later via webhook.
func (c *StripeClient) CreateRefund(ctx context.Context, paymentIntentID string) error {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(paymentIntentID)}
	params.Context = ctx
	if _, err := c.api.Refunds.New(params); err != nil {
		return fmt.Errorf("create refund: %w", err)
	}
	return nil
}

// Verify checks the payload signature with the shared webhook secret and
// maps the two event types we act on; every other type comes back as
// EventIgnored so the handler can acknowledge it untouched.
func (c *StripeClient) Verify(payload []byte, sigHeader string) (Event, error) {
	ev, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
	if err != nil {
		return Event{}, fmt.Errorf("verify webhook signature: %w", err)
	}

	switch ev.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
			return Event{}, fmt.Errorf("decode checkout session: %w", err)
		}
		out := Event{ID: ev.ID, Type: EventCheckoutCompleted}
		if raw, ok := cs.Metadata[metadataReservationID]; ok {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				out.ReservationID = id
			}
		}
		if cs.PaymentIntent != nil {
			out.PaymentIntentID = cs.PaymentIntent.ID
		}
		return out, nil

	case "charge.refunded":
		var ch stripe.Charge
		if err := json.Unmarshal(ev.Data.Raw, &ch); err != nil {
			return Event{}, fmt.Errorf("decode charge: %w", err)
		}
		out := Event{ID: ev.ID, Type: EventChargeRefunded}
		if ch.PaymentIntent != nil {
			out.PaymentIntentID = ch.PaymentIntent.ID
		}
		if ch.Refunds != nil && len(ch.Refunds.Data) > 0 {
			out.RefundID = ch.Refunds.Data[0].ID
		}
		return out, nil
	}

	return Event{ID: ev.ID, Type: EventIgnored}, nil
}
