package storage

import (
	"context"

	"github.com/chris/ad-rewards-wallet/pkg/models"
)

// AccountStore defines the interface for managing accounts.
type AccountStore interface {
	// CreateAccount creates a new account. It fails with ErrAccountExists if the email is taken.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetAccount retrieves an account by email.
	GetAccount(ctx context.Context, email string) (*models.Account, error)
}
