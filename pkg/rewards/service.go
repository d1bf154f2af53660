// Package rewards credits ad rewards to accounts.
package rewards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chris/ad-rewards-wallet/pkg/metrics"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

// ErrTooManyConflicts is returned when the account kept changing under every attempt.
var ErrTooManyConflicts = errors.New("too many concurrent account updates")

// Config holds the reward tunables.
type Config struct {
	// OncePerAd limits every account to one reward per ad.
	OncePerAd   bool
	MaxAttempts int
}

// Service implements watching ads.
type Service struct {
	store  storage.RewardStore
	cfg    Config
	logger *slog.Logger
}

// NewService creates a new reward service.
func NewService(store storage.RewardStore, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, cfg: cfg, logger: logger}
}

// WatchAd credits the ad's reward to the account and increments its watch count.
// It returns the updated account.
func (s *Service) WatchAd(ctx context.Context, email, adID string) (*models.Account, error) {
	account, err := s.store.GetAccount(ctx, email)
	if err != nil {
		return nil, err
	}
	ad, err := s.store.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		updated, err := s.store.ApplyReward(ctx, account, ad, s.cfg.OncePerAd)
		switch {
		case err == nil:
			s.logger.Info("ad reward credited", "email", email, "ad_id", adID, "reward", ad.Reward, "watched_ads", updated.WatchedAds)
			metrics.RecordWatch("rewarded")
			return updated, nil
		case errors.Is(err, storage.ErrVersionConflict):
			metrics.RecordVersionConflict("reward")
			if account, err = s.store.GetAccount(ctx, email); err != nil {
				return nil, fmt.Errorf("failed to reload account: %w", err)
			}
		case errors.Is(err, storage.ErrAdAlreadyWatched):
			metrics.RecordWatch("duplicate")
			return nil, fmt.Errorf("%s watching %s: %w", email, adID, err)
		case errors.Is(err, storage.ErrAdNotFound):
			metrics.RecordWatch("ad_removed")
			return nil, err
		default:
			return nil, fmt.Errorf("failed to apply reward: %w", err)
		}
	}

	metrics.RecordWatch("conflicted")
	return nil, ErrTooManyConflicts
}
