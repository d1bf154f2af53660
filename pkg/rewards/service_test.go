package rewards

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/chris/ad-rewards-wallet/pkg/gateway"
	gatewaymocks "github.com/chris/ad-rewards-wallet/pkg/gateway/mocks"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/settlement"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
	"github.com/chris/ad-rewards-wallet/pkg/storage/memory"
	storagemocks "github.com/chris/ad-rewards-wallet/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const email = "test@example.com"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T, once bool) (*memory.Store, *models.Ad, *Service) {
	t.Helper()
	store := memory.New()
	_, err := store.CreateAccount(context.Background(), &models.Account{Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	ad, err := store.CreateAd(context.Background(), &models.Ad{Title: "Shoes", URL: "https://ads.example.com/shoes", Reward: 500})
	require.NoError(t, err)
	return store, ad, NewService(store, Config{OncePerAd: once}, quietLogger())
}

func TestWatchAd(t *testing.T) {
	ctx := context.Background()

	t.Run("Credits Reward", func(t *testing.T) {
		_, ad, svc := setup(t, true)

		account, err := svc.WatchAd(ctx, email, ad.Id)

		require.NoError(t, err)
		assert.Equal(t, int64(500), account.Balance)
		assert.Equal(t, int64(1), account.WatchedAds)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		_, ad, svc := setup(t, true)

		_, err := svc.WatchAd(ctx, "nobody@example.com", ad.Id)

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})

	t.Run("Unknown Ad", func(t *testing.T) {
		store, _, svc := setup(t, true)

		_, err := svc.WatchAd(ctx, email, "missing")

		assert.ErrorIs(t, err, storage.ErrAdNotFound)
		account, _ := store.GetAccount(ctx, email)
		assert.Zero(t, account.Balance)
		assert.Zero(t, account.WatchedAds)
	})

	t.Run("Second Watch Of The Same Ad Is Rejected", func(t *testing.T) {
		store, ad, svc := setup(t, true)

		_, err := svc.WatchAd(ctx, email, ad.Id)
		require.NoError(t, err)
		_, err = svc.WatchAd(ctx, email, ad.Id)

		assert.ErrorIs(t, err, storage.ErrAdAlreadyWatched)
		account, _ := store.GetAccount(ctx, email)
		assert.Equal(t, int64(500), account.Balance)
		assert.Equal(t, int64(1), account.WatchedAds)
	})

	t.Run("Repeat Watches Allowed When Not Limited", func(t *testing.T) {
		_, ad, svc := setup(t, false)

		_, err := svc.WatchAd(ctx, email, ad.Id)
		require.NoError(t, err)
		account, err := svc.WatchAd(ctx, email, ad.Id)

		require.NoError(t, err)
		assert.Equal(t, int64(1000), account.Balance)
		assert.Equal(t, int64(2), account.WatchedAds)
	})

	t.Run("Concurrent Duplicate Watch Credits Once", func(t *testing.T) {
		store, ad, svc := setup(t, true)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.WatchAd(ctx, email, ad.Id)
			}()
		}
		wg.Wait()

		account, _ := store.GetAccount(ctx, email)
		assert.Equal(t, int64(500), account.Balance)
		assert.Equal(t, int64(1), account.WatchedAds)
	})

	t.Run("Gives Up After Repeated Conflicts", func(t *testing.T) {
		store := new(storagemocks.Storage)
		svc := NewService(store, Config{OncePerAd: true, MaxAttempts: 2}, quietLogger())
		ad := &models.Ad{Id: "ad-1", Reward: 500}
		store.On("GetAccount", mock.Anything, email).Return(&models.Account{Email: email, Version: 1}, nil)
		store.On("GetAd", mock.Anything, "ad-1").Return(ad, nil)
		store.On("ApplyReward", mock.Anything, mock.Anything, ad, true).Return(nil, storage.ErrVersionConflict).Times(2)

		_, err := svc.WatchAd(ctx, email, "ad-1")

		assert.ErrorIs(t, err, ErrTooManyConflicts)
		store.AssertExpectations(t)
	})
}

// A new account deposits 50 and watches a 5 reward ad: balance 55, one watch.
func TestDepositThenWatch(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateAccount(ctx, &models.Account{Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	ad, err := store.CreateAd(ctx, &models.Ad{Title: "Shoes", URL: "https://ads.example.com/shoes", Reward: 500})
	require.NoError(t, err)

	gw := new(gatewaymocks.Gateway)
	gw.On("ConfirmPayment", mock.Anything, mock.Anything).Return(&gateway.Confirmation{ID: "conf-1", Status: gateway.StatusConfirmed}, nil)
	deposits := settlement.NewService(store, gw, nil, settlement.Config{Currency: "USDT"}, quietLogger())
	watches := NewService(store, Config{OncePerAd: true}, quietLogger())

	account, err := deposits.Deposit(ctx, email, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), account.Balance)

	account, err = watches.WatchAd(ctx, email, ad.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(5500), account.Balance)
	assert.Equal(t, int64(1), account.WatchedAds)
}
