package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation/mock"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation/rekognition"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/api"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/audit"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/config"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/database"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/notification"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/repository"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting check-in validation API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("scoring_profile", cfg.ScoringProfile),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	annotator, err := newAnnotator(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create annotator: %w", err)
	}

	scoringCfg, err := validation.ProfileConfig(cfg.ScoringProfile)
	if err != nil {
		return fmt.Errorf("invalid scoring profile: %w", err)
	}

	var dispatcher *notification.Dispatcher
	if cfg.NotifyEndpoint != "" {
		dispatcher = notification.NewDispatcher(pool, cfg.NotifyEndpoint, cfg.NotifySecret, cfg.NotifyInterval, logger)
	}

	deps := &api.Dependencies{
		UserRepo:       repository.NewUserRepository(pool),
		CheckInRepo:    repository.NewCheckInRepository(pool),
		ValidationRepo: repository.NewValidationRepository(pool),
		Annotator:      annotator,
		ScoringConfig:  scoringCfg,
		Dispatcher:     dispatcher,
		DB:             pool,
	}

	router := api.NewRouter(logger, deps)
	router.Setup()

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

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

func newAnnotator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (annotation.Annotator, error) {
	switch cfg.AnnotatorType {
	case "rekognition":
		rekCfg := rekognition.DefaultConfig()
		rekCfg.Region = cfg.AWSRegion
		return rekognition.New(ctx, rekCfg,
			rekognition.WithAuditLogger(audit.NewSlogLogger(logger)),
		)
	case "mock":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown annotator type: %s", cfg.AnnotatorType)
	}
}
