package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Reconciler is the settlement operation the cron job drives.
type Reconciler interface {
	Reconcile(ctx context.Context, maxAge time.Duration) (int, error)
}

// CronReconciler periodically re-checks deposits stuck in PENDING from inside the
// API process. It covers deployments without the reconciliation lambda.
type CronReconciler struct {
	cron       *cron.Cron
	reconciler Reconciler
	maxAge     time.Duration
	timeout    time.Duration
	logger     *slog.Logger
}

// NewCronReconciler registers the reconciliation job on spec, a standard cron
// expression or a descriptor such as "@every 5m".
func NewCronReconciler(spec string, reconciler Reconciler, maxAge time.Duration, logger *slog.Logger) (*CronReconciler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))

	r := &CronReconciler{
		// SkipIfStillRunning keeps a slow run from overlapping the next one.
		cron:       cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		reconciler: reconciler,
		maxAge:     maxAge,
		timeout:    time.Minute,
		logger:     logger,
	}
	if _, err := r.cron.AddFunc(spec, r.Run); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", spec, err)
	}
	return r, nil
}

// Run performs one reconciliation pass.
func (r *CronReconciler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	handled, err := r.reconciler.Reconcile(ctx, r.maxAge)
	if err != nil {
		r.logger.Error("scheduled reconciliation failed", "handled", handled, "error", err)
		return
	}
	if handled > 0 {
		r.logger.Info("scheduled reconciliation finished", "handled", handled)
	}
}

// Start starts the cron scheduler in the background.
func (r *CronReconciler) Start() {
	r.cron.Start()
}

// Stop stops the scheduler. The returned context is done once a running job finishes.
func (r *CronReconciler) Stop() context.Context {
	return r.cron.Stop()
}
