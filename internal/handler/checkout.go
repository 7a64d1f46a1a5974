package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/repository"
)

// checkoutStarter is implemented by service.CheckoutService.
type checkoutStarter interface {
	Start(ctx context.Context, reservationID uint64) (string, error)
}

// CheckoutHandler starts the hosted payment flow for a reservation.
type CheckoutHandler struct {
	checkout checkoutStarter
}

// NewCheckoutHandler constructs the handler.
func NewCheckoutHandler(checkout checkoutStarter) *CheckoutHandler {
	if checkout == nil {
		panic("nil checkout service passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{checkout: checkout}
}

// Start handles POST /v1/checkout with body {"reservation_id": ...}.  It
// returns the hosted checkout redirect URL.  A provider failure surfaces
// as 502 so the client can offer a retry; nothing was charged.
func (h *CheckoutHandler) Start(c echo.Context) error {
	var body struct {
		ReservationID uint64 `json:"reservation_id"`
	}
	if err := c.Bind(&body); err != nil || body.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	url, err := h.checkout.Start(c.Request().Context(), body.ReservationID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrSessionNotFound), errors.Is(err, repository.ErrCategoryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "checkout could not be started"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
