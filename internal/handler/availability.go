package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/service"
)

// monthAvailability is implemented by service.AvailabilityService.
type monthAvailability interface {
	Month(ctx context.Context, categoryID uint64, year int, month time.Month) (map[string]service.DayAvailability, error)
}

// AvailabilityHandler exposes the public availability calendar.
type AvailabilityHandler struct {
	availability monthAvailability
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(availability monthAvailability) *AvailabilityHandler {
	if availability == nil {
		panic("nil availability service passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{availability: availability}
}

// Month handles GET /v1/availability?categoryId=&month=&year=.  Month runs
// 1..12.  The response maps ISO day keys to the day's total remaining
// seats and per-session timeslots; sold-out sessions are included with
// sold_out=true so clients can render them disabled.
func (h *AvailabilityHandler) Month(c echo.Context) error {
	categoryID, err := strconv.ParseUint(c.QueryParam("categoryId"), 10, 64)
	if err != nil || categoryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid categoryId"})
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month"})
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 2000 || year > 2200 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
	}

	days, err := h.availability.Month(c.Request().Context(), categoryID, year, time.Month(month))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, days)
}
