package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/repository"
	"github.com/evharten/workshop-booking/internal/service"
)

// reservationCreator is implemented by service.BookingService.
type reservationCreator interface {
	Create(ctx context.Context, in service.CreateReservationInput) (model.Reservation, error)
}

// ReservationHandler accepts public booking submissions.
type ReservationHandler struct {
	bookings reservationCreator
}

// NewReservationHandler constructs the handler.
func NewReservationHandler(bookings reservationCreator) *ReservationHandler {
	if bookings == nil {
		panic("nil booking service passed to NewReservationHandler")
	}
	return &ReservationHandler{bookings: bookings}
}

// Create handles POST /v1/reservations.  The body carries session_id,
// name, email and quantity (1..10).  Responses: 201 with the created
// PENDING reservation, 400 on validation failure, 404 for an unknown
// session and 409 when the quantity exceeds the remaining seats.
func (h *ReservationHandler) Create(c echo.Context) error {
	var in service.CreateReservationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res, err := h.bookings.Create(c.Request().Context(), in)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
		case errors.Is(err, repository.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		case errors.Is(err, repository.ErrCapacityExceeded):
			return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, res)
}
