package router

import (
	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/handler"
	"github.com/evharten/workshop-booking/internal/middleware"
)

// Admin bundles the handlers behind the authenticated admin surface.
type Admin struct {
	Categories   *handler.AdminCategoryHandler
	Sessions     *handler.AdminSessionHandler
	Reservations *handler.AdminReservationHandler
	Settings     *handler.AdminSettingsHandler
}

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.  All
// routes require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, a Admin, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Categories ----
	g.GET("/categories", a.Categories.List)
	g.POST("/categories", a.Categories.Create)
	g.PUT("/categories/:id", a.Categories.Update)
	g.DELETE("/categories/:id", a.Categories.Delete)

	// ---- Sessions ----
	g.GET("/sessions", a.Sessions.List)
	g.POST("/sessions", a.Sessions.Create)
	g.PUT("/sessions/:id", a.Sessions.Update)
	g.DELETE("/sessions/:id", a.Sessions.Delete)

	// ---- Reservations ----
	g.GET("/reservations", a.Reservations.List)
	g.POST("/reservations/:id/cancel", a.Reservations.Cancel)

	// ---- Settings ----
	g.GET("/settings", a.Settings.Get)
	g.PUT("/settings", a.Settings.Update)
}
