// Package handler implements the HTTP endpoints of the booking API.
// Handlers translate repository and service errors onto JSON responses:
// validation failures become 400, missing records 404, dependent-state and
// capacity conflicts 409, provider failures 502.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health responds to liveness probes.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
