package storage

import (
	"context"

	"github.com/chris/ad-rewards-wallet/pkg/models"
)

// BalanceWriter defines the only operations that change an account balance.
// Both are single atomic writes conditioned on account.Version, so callers read the
// account, call the writer, and retry on ErrVersionConflict.
type BalanceWriter interface {
	// ApplyDeposit credits deposit.Amount to the account, records the ledger entry
	// for confirmationID and marks the deposit COMPLETED.
	// It returns ErrConfirmationApplied when the confirmation was already credited,
	// ErrDepositNotPending when the deposit is no longer PENDING, and
	// ErrVersionConflict when the account changed since it was read.
	ApplyDeposit(ctx context.Context, account *models.Account, deposit *models.Deposit, confirmationID string) (*models.Account, error)

	// ApplyReward credits ad.Reward to the account and increments its watch count.
	// With once set, a second reward for the same account and ad fails with ErrAdAlreadyWatched.
	// It returns ErrAdNotFound if the ad was deleted and ErrVersionConflict on a stale account.
	ApplyReward(ctx context.Context, account *models.Account, ad *models.Ad, once bool) (*models.Account, error)
}
