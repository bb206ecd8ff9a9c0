package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/matchasource/backend/config"
	httpDelivery "github.com/matchasource/backend/internal/delivery/http"
	"github.com/matchasource/backend/internal/infrastructure/cache"
	"github.com/matchasource/backend/internal/infrastructure/catalog"
	"github.com/matchasource/backend/internal/logger"
	"github.com/matchasource/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting matchasource backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.String("catalog_url", cfg.Catalog.BaseURL),
	)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	catalogClient := catalog.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL, cfg.Catalog.Timeout, log)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		catalogClient,
		memoryCache,
		usecase.SearchServiceConfig{
			CacheTTL:     cfg.Cache.TTL,
			DefaultLimit: cfg.Search.DefaultLimit,
			MaxLimit:     cfg.Search.MaxLimit,
			Overfetch:    cfg.Search.Overfetch,
			Weights: usecase.ScoringWeights{
				RegionMatch:        cfg.Scoring.RegionMatch,
				GradeMatch:         cfg.Scoring.GradeMatch,
				CertificationMatch: cfg.Scoring.CertificationMatch,
				MOQFit:             cfg.Scoring.MOQFit,
				LeadTimeFit:        cfg.Scoring.LeadTimeFit,
				PriceFit:           cfg.Scoring.PriceFit,
				KeywordMatch:       cfg.Scoring.KeywordMatch,
				VerifiedSeller:     cfg.Scoring.VerifiedSeller,
				Recency:            cfg.Scoring.Recency,
				RecencyWindowDays:  cfg.Scoring.RecencyWindowDays,
			},
		},
		log,
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, log)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
