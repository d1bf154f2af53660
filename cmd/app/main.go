package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/bootstrap"
	"github.com/chris/ad-rewards-wallet/pkg/config"
	"github.com/chris/ad-rewards-wallet/pkg/handlers"
	"github.com/chris/ad-rewards-wallet/pkg/metrics"
	"github.com/chris/ad-rewards-wallet/pkg/middleware"
	"github.com/chris/ad-rewards-wallet/pkg/rewards"
	"github.com/chris/ad-rewards-wallet/pkg/scheduler"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := bootstrap.Logger(cfg)
	slog.SetDefault(logger)

	deps, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialise dependencies", "error", err)
		os.Exit(1)
	}

	rewardSvc := rewards.NewService(deps.Store, rewards.Config{
		OncePerAd:   cfg.WatchOncePerAd,
		MaxAttempts: cfg.SettlementAttempts,
	}, logger)

	// Create our handler
	handler := handlers.NewApiHandler(deps.Store, deps.Settlement, rewardSvc, logger)

	var reconciler *scheduler.CronReconciler
	if cfg.ReconcileEnabled() {
		reconciler, err = scheduler.NewCronReconciler(cfg.ReconcileSchedule, deps.Settlement, cfg.StuckThreshold(), logger)
		if err != nil {
			logger.Error("failed to schedule reconciliation", "error", err)
			os.Exit(1)
		}
		reconciler.Start()
		logger.Info("scheduled deposit reconciliation", "schedule", cfg.ReconcileSchedule)
	}

	watchLimiter := middleware.NewRateLimiter(cfg.WatchRatePerSecond, cfg.WatchRateBurst, logger)
	stopCleanup := make(chan struct{})
	watchLimiter.StartCleanup(time.Minute, stopCleanup)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimw.Recoverer)
	router.Use(middleware.Metrics)

	router.Handle("/metrics", metrics.Handler())

	// Use the generated function to mount our handler on the router
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter: router,
		RouteMiddlewares: map[string][]func(http.Handler) http.Handler{
			"POST /watch-ad": {watchLimiter.Handler},
		},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// A deposit may wait for the full gateway timeout before settling.
		WriteTimeout: cfg.GatewayTimeout() + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if reconciler != nil {
		select {
		case <-reconciler.Stop().Done():
		case <-shutdownCtx.Done():
		}
	}
	logger.Info("server stopped")
}
