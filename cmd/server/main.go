package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/evharten/workshop-booking/internal/config"
	"github.com/evharten/workshop-booking/internal/database"
	"github.com/evharten/workshop-booking/internal/handler"
	"github.com/evharten/workshop-booking/internal/logger"
	"github.com/evharten/workshop-booking/internal/mailer"
	"github.com/evharten/workshop-booking/internal/payment"
	"github.com/evharten/workshop-booking/internal/queue"
	"github.com/evharten/workshop-booking/internal/repository"
	"github.com/evharten/workshop-booking/internal/router"
	"github.com/evharten/workshop-booking/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync() //nolint:errcheck

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatal("migrations failed", zap.Error(err))
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting, response cache and webhook dedupe disabled")
	} else {
		defer rdb.Close()
	}

	// Repositories.
	categories := repository.NewCategoryRepo(db)
	sessions := repository.NewSessionRepo(db)
	reservations := repository.NewReservationRepo(db)
	settings := repository.NewSettingsRepo(db)

	// Payment provider and notification pipeline.
	stripeClient := payment.NewStripeClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	publisher := queue.NewPublisher(cfg.RabbitURL, log)

	var sender mailer.Sender
	if cfg.ResendAPIKey != "" && cfg.MailFrom != "" {
		sender = mailer.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, log)
	} else {
		sender = mailer.NewNoopSender(log)
	}
	if cfg.RabbitURL != "" {
		consumer := queue.NewConsumer(cfg.RabbitURL, sender, log)
		go func() { _ = consumer.Start(context.Background()) }()
	} else {
		log.Warn("RABBITMQ_URL not set; notification emails disabled")
	}

	// Services.
	availability := service.NewAvailabilityService(sessions, reservations)
	booking := service.NewBookingService(reservations)
	checkout := service.NewCheckoutService(reservations, sessions, categories, stripeClient, cfg.AppURL)
	reconciler := service.NewReconciler(reservations, sessions, categories, stripeClient, publisher, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterPublic(e, router.Public{
		Categories:    handler.NewCategoryHandler(categories),
		Availability:  handler.NewAvailabilityHandler(availability),
		Reservations:  handler.NewReservationHandler(booking),
		Checkout:      handler.NewCheckoutHandler(checkout),
		Settings:      handler.NewSettingsHandler(settings),
		Webhook:       handler.NewWebhookHandler(stripeClient, reconciler, rdb, log),
		Auth:          handler.NewAuthHandler(cfg.AdminEmail, cfg.AdminPassHash, cfg.JWTSecret, cfg.AccessTTLMin),
		RateLimit:     config.LoadRateLimitConfig(),
		ResponseCache: config.LoadCacheConfig(),
		Redis:         rdb,
	})
	router.RegisterAdmin(e, router.Admin{
		Categories:   handler.NewAdminCategoryHandler(categories),
		Sessions:     handler.NewAdminSessionHandler(sessions, categories),
		Reservations: handler.NewAdminReservationHandler(reservations, reconciler),
		Settings:     handler.NewAdminSettingsHandler(settings),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
