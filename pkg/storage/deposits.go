package storage

import (
	"context"
	"time"

	"github.com/chris/ad-rewards-wallet/pkg/models"
)

// DepositStore defines the interface for deposit records.
type DepositStore interface {
	// CreateDeposit stores a new PENDING deposit.
	CreateDeposit(ctx context.Context, deposit *models.Deposit) (*models.Deposit, error)

	// GetDeposit retrieves a deposit by its ID.
	GetDeposit(ctx context.Context, id string) (*models.Deposit, error)

	// MarkDepositFailed moves a PENDING deposit to FAILED. It returns ErrDepositNotPending otherwise.
	MarkDepositFailed(ctx context.Context, id, reason string) error

	// MarkDepositChecked records that a PENDING deposit was just re-checked by bumping updated_at.
	// It returns ErrDepositNotPending otherwise.
	MarkDepositChecked(ctx context.Context, id string) error

	// GetStuckDeposits retrieves deposits that are PENDING for longer than maxAge.
	GetStuckDeposits(ctx context.Context, maxAge time.Duration) ([]models.Deposit, error)
}
