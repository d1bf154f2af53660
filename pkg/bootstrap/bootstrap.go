// Package bootstrap builds the shared dependencies of the API server and the lambdas
// from a loaded Config.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/ad-rewards-wallet/pkg/config"
	"github.com/chris/ad-rewards-wallet/pkg/gateway"
	"github.com/chris/ad-rewards-wallet/pkg/scheduler"
	"github.com/chris/ad-rewards-wallet/pkg/settlement"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
	dydbstore "github.com/chris/ad-rewards-wallet/pkg/storage/dynamodb"
	"github.com/chris/ad-rewards-wallet/pkg/storage/memory"
)

// Logger returns a JSON slog logger at the configured level. Unknown levels fall back to info.
func Logger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Deps holds everything the entrypoints share.
type Deps struct {
	Store      storage.Storage
	Settlement *settlement.Service
}

// New builds the store, the payment gateway, the re-check scheduler and the
// settlement service. The AWS SDK is only configured when something needs it.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Deps, error) {
	var awsCfg aws.Config
	if cfg.StorageBackend == config.BackendDynamoDB || cfg.SQSQueueURL != "" {
		var err error
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to load SDK config: %w", err)
		}
	}

	store, err := newStore(cfg, awsCfg)
	if err != nil {
		return nil, err
	}

	gw := gateway.NewBinanceClient(cfg.BinanceAPIBaseURL, cfg.BinanceAPIKey, cfg.GatewayTimeout(), logger)

	var sched scheduler.Scheduler
	if cfg.SQSQueueURL != "" {
		sched = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
	} else {
		logger.Warn("SQS_QUEUE_URL not set, pending deposits are only re-checked by reconciliation")
	}

	svc := settlement.NewService(store, gw, sched, settlement.Config{
		Currency:      cfg.PaymentCurrency,
		MaxAttempts:   cfg.SettlementAttempts,
		RecheckDelay:  cfg.RecheckDelay(),
		PendingExpiry: cfg.PendingExpiry(),
	}, logger)

	return &Deps{Store: store, Settlement: svc}, nil
}

func newStore(cfg config.Config, awsCfg aws.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendDynamoDB:
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
			}
		})
		return dydbstore.New(client, cfg.AccountsTableName, cfg.AdsTableName, cfg.DepositsTableName, cfg.LedgerTableName), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
