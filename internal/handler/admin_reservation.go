package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/repository"
)

// reservationCanceler is the admin-cancellation entry point of the payment
// reconciler.
type reservationCanceler interface {
	Cancel(ctx context.Context, reservationID uint64) error
}

// AdminReservationHandler serves the admin reservation listing and the
// cancel action.
type AdminReservationHandler struct {
	reservations *repository.ReservationRepo
	canceler     reservationCanceler
}

// NewAdminReservationHandler constructs the handler.
func NewAdminReservationHandler(reservations *repository.ReservationRepo, canceler reservationCanceler) *AdminReservationHandler {
	if reservations == nil || canceler == nil {
		panic("nil dependency passed to NewAdminReservationHandler")
	}
	return &AdminReservationHandler{reservations: reservations, canceler: canceler}
}

// allowed page sizes for the listing
var perPageChoices = map[int]bool{10: true, 20: true, 50: true}

// List handles GET /v1/admin/reservations.
//
// Query parameters: status, categoryId, q (name/email substring), sort
// (newest|oldest|status), page (1-based) and per_page (10, 20 or 50).
func (h *AdminReservationHandler) List(c echo.Context) error {
	var f repository.ReservationFilter

	if raw := c.QueryParam("status"); raw != "" {
		st := model.Status(strings.ToUpper(raw))
		if !st.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
		f.Status = st
	}
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid categoryId"})
		}
		f.CategoryID = id
	}
	f.Query = strings.TrimSpace(c.QueryParam("q"))

	switch sort := c.QueryParam("sort"); sort {
	case "", "newest", "oldest", "status":
		f.Sort = sort
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sort"})
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
		}
		page = n
	}
	perPage := 20
	if raw := c.QueryParam("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !perPageChoices[n] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "per_page must be 10, 20 or 50"})
		}
		perPage = n
	}
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	items, total, err := h.reservations.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if items == nil {
		items = []repository.ReservationDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// Cancel handles POST /v1/admin/reservations/:id/cancel.  Paid
// reservations get a refund request first; the reservation only leaves its
// current state once the provider accepted it.
func (h *AdminReservationHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.canceler.Cancel(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already canceled or refunded"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "cancellation could not be completed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"canceled": true})
}
