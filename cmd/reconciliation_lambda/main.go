package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/ad-rewards-wallet/pkg/bootstrap"
	"github.com/chris/ad-rewards-wallet/pkg/config"
)

type reconciler interface {
	Reconcile(ctx context.Context, maxAge time.Duration) (int, error)
}

type reconcileHandler struct {
	svc       reconciler
	threshold time.Duration
	logger    *slog.Logger
}

// HandleRequest is triggered by an EventBridge Schedule.
func (h *reconcileHandler) HandleRequest(ctx context.Context) error {
	h.logger.Info("starting reconciliation of stuck deposits", "threshold", h.threshold.String())

	handled, err := h.svc.Reconcile(ctx, h.threshold)
	if err != nil {
		// Deposits that failed stay PENDING and are picked up by the next run.
		h.logger.Error("reconciliation finished with errors", "handled", handled, "error", err)
		return err
	}

	h.logger.Info("reconciliation finished", "handled", handled)
	return nil
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := bootstrap.Logger(cfg)
	deps, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise dependencies: %v", err)
	}

	h := &reconcileHandler{svc: deps.Settlement, threshold: cfg.StuckThreshold(), logger: logger}
	lambda.Start(h.HandleRequest)
}
