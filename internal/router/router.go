// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/evharten/workshop-booking/internal/config"
	"github.com/evharten/workshop-booking/internal/handler"
	"github.com/evharten/workshop-booking/internal/middleware"
)

// Public bundles the handlers behind the unauthenticated API surface.
type Public struct {
	Categories    *handler.CategoryHandler
	Availability  *handler.AvailabilityHandler
	Reservations  *handler.ReservationHandler
	Checkout      *handler.CheckoutHandler
	Settings      *handler.SettingsHandler
	Webhook       *handler.WebhookHandler
	Auth          *handler.AuthHandler
	RateLimit     config.RateLimitConfig
	ResponseCache config.CacheConfig
	Redis         *redis.Client
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the guest-facing endpoints under /v1.  Browse
// GETs sit behind the rate limiter and the Redis response cache, write
// endpoints behind the rate limiter only.  The webhook bypasses both so
// that provider retries are never throttled away.
func RegisterPublic(e *echo.Echo, p Public) {
	limited := e.Group("/v1", middleware.RateLimit(p.RateLimit, p.Redis))

	cached := limited.Group("", middleware.CacheGET(p.ResponseCache, p.Redis))
	cached.GET("/categories", p.Categories.List)
	cached.GET("/categories/:slug", p.Categories.GetBySlug)
	cached.GET("/availability", p.Availability.Month)
	cached.GET("/settings", p.Settings.Get)

	limited.POST("/reservations", p.Reservations.Create)
	limited.POST("/checkout", p.Checkout.Start)
	limited.POST("/admin/login", p.Auth.Login)

	e.POST("/v1/payments/webhook", p.Webhook.Handle)
}
