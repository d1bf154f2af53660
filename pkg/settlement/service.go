// Package settlement credits confirmed gateway payments to accounts exactly once.
//
// A deposit is recorded as PENDING before the gateway is called, the call runs
// with a timeout and without any account lock, and the credit is a single
// conditional write keyed by the gateway's confirmation id. Outcomes the gateway
// cannot decide in time are re-checked asynchronously.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/ad-rewards-wallet/pkg/gateway"
	"github.com/chris/ad-rewards-wallet/pkg/metrics"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/scheduler"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

// Config holds the settlement tunables.
type Config struct {
	Currency      string
	MaxAttempts   int
	RecheckDelay  time.Duration
	PendingExpiry time.Duration
}

// Service implements deposits and their settlement.
type Service struct {
	store     storage.SettlementStore
	gateway   gateway.Gateway
	scheduler scheduler.Scheduler
	cfg       Config
	logger    *slog.Logger
}

// NewService creates a new settlement service. sched may be nil, in which case
// undecided deposits are left for Reconcile.
func NewService(store storage.SettlementStore, gw gateway.Gateway, sched scheduler.Scheduler, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		gateway:   gw,
		scheduler: sched,
		cfg:       cfg,
		logger:    logger,
	}
}

// Deposit charges amount (minor units) through the gateway and credits it to the
// account. It returns the account after the credit.
func (s *Service) Deposit(ctx context.Context, email string, amount int64) (*models.Account, error) {
	if amount <= 0 {
		metrics.RecordDeposit("invalid")
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	account, err := s.store.GetAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	deposit, err := s.store.CreateDeposit(ctx, &models.Deposit{
		Email:    email,
		Amount:   amount,
		Currency: s.cfg.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	conf, gwErr := s.gateway.ConfirmPayment(ctx, gateway.PaymentRequest{
		Reference: deposit.Id,
		Email:     email,
		PayID:     account.PaymentID,
		Amount:    amount,
		Currency:  s.cfg.Currency,
	})

	// The payer may have been charged by now; finish the bookkeeping even if the caller went away.
	ctx = context.WithoutCancel(ctx)

	if gwErr != nil {
		if errors.Is(gwErr, gateway.ErrRejected) {
			s.fail(ctx, deposit.Id, gwErr.Error())
			metrics.RecordDeposit("declined")
			return nil, fmt.Errorf("%w: %w", ErrGatewayRejected, gwErr)
		}
		s.logger.Warn("gateway outcome unknown, deposit left pending",
			"deposit_id", deposit.Id, "email", email, "error", gwErr)
		s.scheduleRecheck(ctx, deposit.Id)
		metrics.RecordDeposit("unavailable")
		return nil, &PendingError{DepositID: deposit.Id, Cause: ErrGatewayUnavailable, Err: gwErr}
	}

	if conf.Status != gateway.StatusConfirmed {
		s.logger.Info("payment accepted but not confirmed yet", "deposit_id", deposit.Id, "email", email)
		s.scheduleRecheck(ctx, deposit.Id)
		metrics.RecordDeposit("pending")
		return nil, &PendingError{DepositID: deposit.Id, Cause: ErrPaymentPending}
	}

	return s.applyConfirmation(ctx, deposit, conf)
}

// applyConfirmation settles a deposit from a gateway confirmation.
// Replaying the same confirmation does not credit twice.
func (s *Service) applyConfirmation(ctx context.Context, deposit *models.Deposit, conf *gateway.Confirmation) (*models.Account, error) {
	if conf == nil || conf.Status != gateway.StatusConfirmed {
		return nil, fmt.Errorf("deposit %s: %w", deposit.Id, ErrNotConfirmed)
	}
	if conf.ID == "" {
		// The merchant trade number is unique per deposit.
		confirmed := *conf
		confirmed.ID = deposit.Id
		conf = &confirmed
	}
	return s.settle(ctx, deposit, conf)
}

// Recheck asks the gateway about a PENDING deposit and settles or fails it.
// Deposits in any other state are left alone. It returns the resulting status.
func (s *Service) Recheck(ctx context.Context, depositID string) (models.DepositStatus, error) {
	deposit, err := s.store.GetDeposit(ctx, depositID)
	if err != nil {
		return "", err
	}
	if deposit.Status != models.PENDING {
		s.logger.Info("deposit already settled, skipping recheck", "deposit_id", depositID, "status", deposit.Status)
		return deposit.Status, nil
	}

	conf, err := s.gateway.QueryPayment(ctx, depositID)
	switch {
	case errors.Is(err, gateway.ErrRejected):
		s.fail(ctx, depositID, err.Error())
		metrics.RecordDeposit("declined")
		return models.FAILED, nil
	case err != nil:
		return s.stillPending(ctx, deposit, &PendingError{DepositID: depositID, Cause: ErrGatewayUnavailable, Err: err})
	case conf.Status != gateway.StatusConfirmed:
		return s.stillPending(ctx, deposit, &PendingError{DepositID: depositID, Cause: ErrPaymentPending})
	}

	if _, err := s.applyConfirmation(ctx, deposit, conf); err != nil {
		return models.PENDING, err
	}
	return models.COMPLETED, nil
}

// Reconcile re-enqueues deposits that have been PENDING for longer than maxAge and
// were not re-checked within maxAge either; those still have a live re-check queued.
// Without a scheduler the deposits are re-checked inline. It returns how many were handled.
func (s *Service) Reconcile(ctx context.Context, maxAge time.Duration) (int, error) {
	stuck, err := s.store.GetStuckDeposits(ctx, maxAge)
	if err != nil {
		return 0, fmt.Errorf("failed to get stuck deposits: %w", err)
	}

	var errs []error
	handled, skipped := 0, 0
	for _, deposit := range stuck {
		if time.Since(deposit.UpdatedAt) < maxAge {
			skipped++
			continue
		}
		if s.scheduler != nil {
			err = s.scheduler.ScheduleRecheck(ctx, deposit.Id, 0)
		} else {
			_, err = s.Recheck(ctx, deposit.Id)
			var pending *PendingError
			if errors.As(err, &pending) {
				err = nil
			}
		}
		if err != nil {
			s.logger.Error("failed to reconcile deposit", "deposit_id", deposit.Id, "error", err)
			errs = append(errs, err)
			continue
		}
		handled++
	}

	s.logger.Info("reconciliation finished", "stuck", len(stuck), "handled", handled, "recently_checked", skipped)
	return handled, errors.Join(errs...)
}

// settle runs the optimistic read-apply loop for a confirmed deposit.
func (s *Service) settle(ctx context.Context, deposit *models.Deposit, conf *gateway.Confirmation) (*models.Account, error) {
	if conf.Amount != 0 && conf.Amount != deposit.Amount {
		s.logger.Warn("confirmed amount differs from requested amount",
			"deposit_id", deposit.Id, "requested", deposit.Amount, "confirmed", conf.Amount)
	}

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		account, err := s.store.GetAccount(ctx, deposit.Email)
		if err != nil {
			return nil, s.deferCredit(ctx, deposit, fmt.Errorf("failed to load account for settlement: %w", err))
		}

		updated, err := s.store.ApplyDeposit(ctx, account, deposit, conf.ID)
		switch {
		case err == nil:
			s.logger.Info("deposit settled",
				"deposit_id", deposit.Id, "email", deposit.Email, "confirmation_id", conf.ID,
				"amount", deposit.Amount, "attempt", attempt)
			metrics.RecordDeposit("completed")
			return updated, nil
		case errors.Is(err, storage.ErrVersionConflict):
			metrics.RecordVersionConflict("deposit")
			continue
		case errors.Is(err, storage.ErrConfirmationApplied):
			s.logger.Info("confirmation already applied", "deposit_id", deposit.Id, "confirmation_id", conf.ID)
			return s.store.GetAccount(ctx, deposit.Email)
		case errors.Is(err, storage.ErrDepositNotPending):
			return s.alreadySettled(ctx, deposit)
		default:
			return nil, s.deferCredit(ctx, deposit, fmt.Errorf("failed to apply deposit: %w", err))
		}
	}

	return nil, s.deferCredit(ctx, deposit, fmt.Errorf("%w after %d attempts", ErrTooManyConflicts, s.cfg.MaxAttempts))
}

// deferCredit leaves a confirmed deposit PENDING for the re-check to credit.
// The payer has been charged, so the caller gets the deposit id instead of a retry hint.
func (s *Service) deferCredit(ctx context.Context, deposit *models.Deposit, err error) error {
	s.logger.Error("confirmed deposit not credited, deferring to recheck",
		"deposit_id", deposit.Id, "email", deposit.Email, "error", err)
	if errors.Is(err, ErrTooManyConflicts) {
		metrics.RecordDeposit("conflicted")
	} else {
		metrics.RecordDeposit("deferred")
	}
	s.recheckLater(ctx, deposit.Id)
	return &PendingError{DepositID: deposit.Id, Cause: ErrCreditDeferred, Err: err}
}

// alreadySettled treats a COMPLETED deposit as success and anything else as an error.
func (s *Service) alreadySettled(ctx context.Context, deposit *models.Deposit) (*models.Account, error) {
	current, err := s.store.GetDeposit(ctx, deposit.Id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.COMPLETED {
		return nil, fmt.Errorf("deposit %s is %s: %w", deposit.Id, current.Status, storage.ErrDepositNotPending)
	}
	return s.store.GetAccount(ctx, deposit.Email)
}

func (s *Service) stillPending(ctx context.Context, deposit *models.Deposit, pending *PendingError) (models.DepositStatus, error) {
	if s.cfg.PendingExpiry > 0 && time.Since(deposit.CreatedAt) > s.cfg.PendingExpiry {
		s.fail(ctx, deposit.Id, "expired without confirmation")
		metrics.RecordDeposit("expired")
		return models.FAILED, nil
	}
	s.recheckLater(ctx, deposit.Id)
	return models.PENDING, pending
}

// recheckLater stamps the deposit as just checked, so Reconcile leaves it to
// the follow-up re-check, and queues that follow-up.
func (s *Service) recheckLater(ctx context.Context, depositID string) {
	if err := s.store.MarkDepositChecked(ctx, depositID); err != nil && !errors.Is(err, storage.ErrDepositNotPending) {
		s.logger.Warn("failed to stamp deposit recheck", "deposit_id", depositID, "error", err)
	}
	s.scheduleRecheck(ctx, depositID)
}

func (s *Service) fail(ctx context.Context, depositID, reason string) {
	if err := s.store.MarkDepositFailed(ctx, depositID, reason); err != nil && !errors.Is(err, storage.ErrDepositNotPending) {
		s.logger.Error("failed to mark deposit as failed", "deposit_id", depositID, "error", err)
	}
}

func (s *Service) scheduleRecheck(ctx context.Context, depositID string) {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.ScheduleRecheck(ctx, depositID, s.cfg.RecheckDelay); err != nil {
		// Reconcile picks it up once it is old enough.
		s.logger.Error("failed to schedule deposit recheck", "deposit_id", depositID, "error", err)
	}
}
