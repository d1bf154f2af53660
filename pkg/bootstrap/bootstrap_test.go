package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/chris/ad-rewards-wallet/pkg/config"
	"github.com/chris/ad-rewards-wallet/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("Configured level", func(t *testing.T) {
		logger := Logger(config.Config{LogLevel: "warn"})
		assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
		assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		logger := Logger(config.Config{LogLevel: "chatty"})
		assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
	})
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Memory backend needs no AWS", func(t *testing.T) {
		deps, err := New(context.Background(), config.Config{
			StorageBackend:     config.BackendMemory,
			BinanceAPIBaseURL:  "http://localhost",
			BinanceAPIKey:      "key",
			PaymentCurrency:    "USDT",
			GatewayTimeoutSecs: 1,
		}, logger)

		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, deps.Store)
		assert.NotNil(t, deps.Settlement)
	})

	t.Run("Unknown backend", func(t *testing.T) {
		_, err := New(context.Background(), config.Config{StorageBackend: "postgres"}, logger)
		assert.Error(t, err)
	})
}
