// Package memory provides an in-process implementation of the storage interfaces.
// It mirrors the conditional-write semantics of the DynamoDB store so services behave
// the same against either backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
	"github.com/google/uuid"
)

// Store is an in-memory implementation of storage.Storage. It is safe for
// concurrent use and is intended for tests and local development.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	ads      map[string]models.Ad
	deposits map[string]models.Deposit
	ledger   map[string]models.LedgerEntry
}

var _ storage.Storage = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[string]models.Account),
		ads:      make(map[string]models.Ad),
		deposits: make(map[string]models.Deposit),
		ledger:   make(map[string]models.LedgerEntry),
	}
}

// AccountStore implementation -------------------------------------------------

func (s *Store) CreateAccount(_ context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Email]; exists {
		return nil, fmt.Errorf("account for %s: %w", account.Email, storage.ErrAccountExists)
	}

	now := time.Now().UTC()
	account.Version = 1
	account.CreatedAt = now
	account.UpdatedAt = now

	s.accounts[account.Email] = *account
	out := *account
	return &out, nil
}

func (s *Store) GetAccount(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[email]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", email, storage.ErrAccountNotFound)
	}
	return &account, nil
}

// AdStore implementation ------------------------------------------------------

func (s *Store) CreateAd(_ context.Context, ad *models.Ad) (*models.Ad, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	ad.Id = uuid.New().String()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	s.ads[ad.Id] = *ad
	out := *ad
	return &out, nil
}

func (s *Store) GetAd(_ context.Context, id string) (*models.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ad, ok := s.ads[id]
	if !ok {
		return nil, fmt.Errorf("ad %s: %w", id, storage.ErrAdNotFound)
	}
	return &ad, nil
}

// ListAds returns all ads in creation order.
func (s *Store) ListAds(_ context.Context) ([]models.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ads := make([]models.Ad, 0, len(s.ads))
	for _, ad := range s.ads {
		ads = append(ads, ad)
	}
	sort.Slice(ads, func(i, j int) bool {
		if ads[i].CreatedAt.Equal(ads[j].CreatedAt) {
			return ads[i].Id < ads[j].Id
		}
		return ads[i].CreatedAt.Before(ads[j].CreatedAt)
	})
	return ads, nil
}

func (s *Store) UpdateAd(_ context.Context, ad *models.Ad) (*models.Ad, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.ads[ad.Id]
	if !ok {
		return nil, fmt.Errorf("ad %s: %w", ad.Id, storage.ErrAdNotFound)
	}

	existing.Title = ad.Title
	existing.URL = ad.URL
	existing.Reward = ad.Reward
	existing.UpdatedAt = time.Now().UTC()

	s.ads[ad.Id] = existing
	return &existing, nil
}

func (s *Store) DeleteAd(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ads[id]; !ok {
		return fmt.Errorf("ad %s: %w", id, storage.ErrAdNotFound)
	}
	delete(s.ads, id)
	return nil
}

// DepositStore implementation -------------------------------------------------

func (s *Store) CreateDeposit(_ context.Context, deposit *models.Deposit) (*models.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deposit.Id == "" {
		deposit.Id = uuid.New().String()
	} else if _, exists := s.deposits[deposit.Id]; exists {
		return nil, fmt.Errorf("deposit %s already exists", deposit.Id)
	}

	now := time.Now().UTC()
	deposit.Status = models.PENDING
	deposit.CreatedAt = now
	deposit.UpdatedAt = now

	s.deposits[deposit.Id] = *deposit
	out := *deposit
	return &out, nil
}

func (s *Store) GetDeposit(_ context.Context, id string) (*models.Deposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deposit, ok := s.deposits[id]
	if !ok {
		return nil, fmt.Errorf("deposit %s: %w", id, storage.ErrDepositNotFound)
	}
	return &deposit, nil
}

func (s *Store) MarkDepositFailed(_ context.Context, id, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deposit, ok := s.deposits[id]
	if !ok || deposit.Status != models.PENDING {
		return fmt.Errorf("deposit %s: %w", id, storage.ErrDepositNotPending)
	}

	deposit.Status = models.FAILED
	deposit.FailureReason = reason
	deposit.UpdatedAt = time.Now().UTC()
	s.deposits[id] = deposit
	return nil
}

func (s *Store) MarkDepositChecked(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deposit, ok := s.deposits[id]
	if !ok || deposit.Status != models.PENDING {
		return fmt.Errorf("deposit %s: %w", id, storage.ErrDepositNotPending)
	}

	deposit.UpdatedAt = time.Now().UTC()
	s.deposits[id] = deposit
	return nil
}

func (s *Store) GetStuckDeposits(_ context.Context, maxAge time.Duration) ([]models.Deposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().UTC().Add(-maxAge)
	var stuck []models.Deposit
	for _, deposit := range s.deposits {
		if deposit.Status == models.PENDING && deposit.CreatedAt.Before(cutoff) {
			stuck = append(stuck, deposit)
		}
	}
	sort.Slice(stuck, func(i, j int) bool { return stuck[i].CreatedAt.Before(stuck[j].CreatedAt) })
	return stuck, nil
}

// BalanceWriter implementation ------------------------------------------------

// ApplyDeposit checks every condition before mutating anything, so a failed call
// leaves the store untouched, like a cancelled DynamoDB transaction.
func (s *Store) ApplyDeposit(_ context.Context, account *models.Account, deposit *models.Deposit, confirmationID string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID := storage.DepositEntryID(confirmationID)
	if _, exists := s.ledger[entryID]; exists {
		return nil, storage.ErrConfirmationApplied
	}
	current, ok := s.deposits[deposit.Id]
	if !ok || current.Status != models.PENDING {
		return nil, storage.ErrDepositNotPending
	}
	stored, ok := s.accounts[account.Email]
	if !ok || stored.Version != account.Version {
		return nil, storage.ErrVersionConflict
	}

	now := time.Now().UTC()
	stored.Balance += current.Amount
	stored.Version++
	stored.UpdatedAt = now
	s.accounts[stored.Email] = stored

	current.Status = models.COMPLETED
	current.ConfirmationId = confirmationID
	current.UpdatedAt = now
	s.deposits[current.Id] = current

	s.ledger[entryID] = models.LedgerEntry{
		EntryID:     entryID,
		AccountID:   stored.Email,
		Kind:        models.KindDeposit,
		Reference:   current.Id,
		Credit:      current.Amount,
		Description: fmt.Sprintf("Deposit %s confirmed as %s", current.Id, confirmationID),
		Timestamp:   now,
	}

	return &stored, nil
}

func (s *Store) ApplyReward(_ context.Context, account *models.Account, ad *models.Ad, once bool) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID := storage.WatchEntryID(account.Email, ad.Id, once)
	if _, exists := s.ledger[entryID]; exists {
		return nil, storage.ErrAdAlreadyWatched
	}
	if _, ok := s.ads[ad.Id]; !ok {
		return nil, fmt.Errorf("ad %s: %w", ad.Id, storage.ErrAdNotFound)
	}
	stored, ok := s.accounts[account.Email]
	if !ok || stored.Version != account.Version {
		return nil, storage.ErrVersionConflict
	}

	now := time.Now().UTC()
	stored.Balance += ad.Reward
	stored.WatchedAds++
	stored.Version++
	stored.UpdatedAt = now
	s.accounts[stored.Email] = stored

	s.ledger[entryID] = models.LedgerEntry{
		EntryID:     entryID,
		AccountID:   stored.Email,
		Kind:        models.KindReward,
		Reference:   ad.Id,
		Credit:      ad.Reward,
		Description: fmt.Sprintf("Reward for watching %q", ad.Title),
		Timestamp:   now,
	}

	return &stored, nil
}

// LedgerReader implementation -------------------------------------------------

func (s *Store) ListLedgerEntries(_ context.Context, email string, limit int32) ([]models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []models.LedgerEntry
	for _, entry := range s.ledger {
		if entry.AccountID == email {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	if limit > 0 && len(entries) > int(limit) {
		entries = entries[:limit]
	}
	return entries, nil
}
