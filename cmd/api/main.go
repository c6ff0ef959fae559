package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kyc-labs/facematch/internal/api"
	"github.com/kyc-labs/facematch/internal/config"
	"github.com/kyc-labs/facematch/internal/database"
	"github.com/kyc-labs/facematch/internal/face"
	"github.com/kyc-labs/facematch/internal/repository"
	"github.com/kyc-labs/facematch/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting FaceMatch API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("provider", cfg.ProviderType),
	)

	// Database is optional: without it verifications still run, they are
	// just not audited.
	var audit service.AuditRecorder
	deps := &api.Dependencies{}
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		audit = repository.NewVerificationRepository(pool)
		deps.DB = pool
	} else {
		logger.Warn("DATABASE_URL not set, verification audit log disabled")
	}
	deps.VerificationRepo = audit

	// Face detection provider
	detector, err := face.NewFaceDetector(cfg)
	if err != nil {
		return fmt.Errorf("failed to create face detector: %w", err)
	}
	deps.FaceDetector = detector

	// Setup router
	router := api.NewRouter(cfg, logger, deps)
	router.Setup()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
