package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/api/handler"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/api/middleware"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/database"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/notification"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/repository"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/validation"
)

type Dependencies struct {
	UserRepo       *repository.UserRepository
	CheckInRepo    *repository.CheckInRepository
	ValidationRepo *repository.ValidationRepository
	Annotator      annotation.Annotator
	ScoringConfig  validation.Config
	Dispatcher     *notification.Dispatcher
	DB             *pgxpool.Pool
}

type Router struct {
	app              *fiber.App
	logger           *slog.Logger
	deps             *Dependencies
	cancelDispatcher context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Aviva Check-In Validation API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check endpoints (no auth required)
	var healthChecker handler.HealthChecker
	if r.deps != nil && r.deps.DB != nil {
		healthChecker = database.NewHealthCheck(r.deps.DB)
	}
	healthHandler := handler.NewHealthHandler(healthChecker)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group with authentication
	v1 := r.app.Group("/v1")

	// Only configure authenticated routes if dependencies were provided
	if r.deps != nil {
		if r.deps.Dispatcher != nil {
			ctx, cancel := context.WithCancel(context.Background())
			r.cancelDispatcher = cancel
			go r.deps.Dispatcher.Run(ctx)
		}

		v1.Use(middleware.Auth(r.deps.UserRepo))

		notifier := notification.NewService(r.deps.DB)

		engine := validation.NewEngine(
			r.deps.CheckInRepo,
			r.deps.ValidationRepo,
			r.deps.Annotator,
			notifier,
			r.deps.ScoringConfig,
			r.logger,
		)

		validationHandler := handler.NewValidationHandler(engine, r.deps.ValidationRepo, r.logger)

		// Triggering validation and applying review require a reviewing
		// role on top of authentication; reading the record does not
		v1.Post("/checkins/:id/validate", middleware.RequireReviewer(), validationHandler.Validate)
		v1.Get("/checkins/:id/validation", validationHandler.Get)
		v1.Post("/checkins/:id/review", middleware.RequireReviewer(), validationHandler.Review)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	if r.cancelDispatcher != nil {
		r.cancelDispatcher()
	}

	return r.app.Shutdown()
}
