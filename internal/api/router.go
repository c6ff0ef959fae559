package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/kyc-labs/facematch/internal/api/docs"
	"github.com/kyc-labs/facematch/internal/api/handler"
	"github.com/kyc-labs/facematch/internal/api/middleware"
	"github.com/kyc-labs/facematch/internal/config"
	"github.com/kyc-labs/facematch/internal/imaging"
	"github.com/kyc-labs/facematch/internal/provider"
	"github.com/kyc-labs/facematch/internal/service"
)

type Dependencies struct {
	FaceDetector     provider.FaceDetector
	VerificationRepo service.AuditRecorder
	DB               *pgxpool.Pool
}

type Router struct {
	app         *fiber.App
	cfg         *config.Config
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(cfg *config.Config, logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "FaceMatch API",
		BodyLimit:    int(cfg.MaxImageBytes) + 1024*1024,
	})

	return &Router{
		app:    app,
		cfg:    cfg,
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
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-API-Key",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints (no auth required)
	var db *pgxpool.Pool
	if r.deps != nil {
		db = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(db)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group
	v1 := r.app.Group("/v1")

	// Only configure verification routes if dependencies were provided
	if r.deps != nil {
		v1.Use(middleware.APIKeyAuth(r.cfg.APIKey))

		// Rate limiting (per client IP)
		r.rateLimiter = middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
		v1.Use(r.rateLimiter.Handler())

		// Reference image fetcher
		fetcher := imaging.NewFetcher(r.cfg.FetchTimeout, r.cfg.MaxImageBytes)

		// Verification service
		verificationService := service.NewVerificationService(
			r.deps.FaceDetector,
			fetcher,
			r.deps.VerificationRepo,
			r.cfg,
			r.logger,
		)

		// Verification handler
		verifyHandler := handler.NewVerifyHandler(verificationService, r.cfg.MaxImageBytes, r.logger)

		// Verification routes
		v1.Post("/verify", verifyHandler.Verify)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
