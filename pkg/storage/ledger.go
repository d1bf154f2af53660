package storage

import (
	"context"

	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/google/uuid"
)

// LedgerReader defines the interface for reading ledger data.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries for an account.
	ListLedgerEntries(ctx context.Context, email string, limit int32) ([]models.LedgerEntry, error)
}

// DepositEntryID is the ledger key for a payment confirmation. It is the same for
// every replay of the confirmation, which is what makes crediting it idempotent.
func DepositEntryID(confirmationID string) string {
	return "deposit#" + confirmationID
}

// WatchEntryID is the ledger key for an ad reward. With once set it is fixed per
// account and ad; otherwise every watch gets a fresh key.
func WatchEntryID(email, adID string, once bool) string {
	if once {
		return "watch#" + email + "#" + adID
	}
	return "watch#" + email + "#" + adID + "#" + uuid.NewString()
}
