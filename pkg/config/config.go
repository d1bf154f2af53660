// Package config loads the process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config stores all configuration for the application.
// The values are read by viper from environment variables, with .env as a fallback.
type Config struct {
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	StorageBackend      string   `mapstructure:"STORAGE_BACKEND"`
	DynamoDBEndpoint    string   `mapstructure:"DYNAMODB_ENDPOINT"`
	AccountsTableName   string   `mapstructure:"DYNAMODB_ACCOUNTS_TABLE_NAME"`
	AdsTableName        string   `mapstructure:"DYNAMODB_ADS_TABLE_NAME"`
	DepositsTableName   string   `mapstructure:"DYNAMODB_DEPOSITS_TABLE_NAME"`
	LedgerTableName     string   `mapstructure:"DYNAMODB_LEDGER_TABLE_NAME"`
	SQSQueueURL         string   `mapstructure:"SQS_QUEUE_URL"`
	BinanceAPIBaseURL   string   `mapstructure:"BINANCE_API_BASE_URL"`
	BinanceAPIKey       string   `mapstructure:"BINANCE_API_KEY"`
	PaymentCurrency     string   `mapstructure:"PAYMENT_CURRENCY"`
	GatewayTimeoutSecs  int      `mapstructure:"GATEWAY_TIMEOUT_SECONDS"`
	SettlementAttempts  int      `mapstructure:"SETTLEMENT_MAX_ATTEMPTS"`
	RecheckDelaySecs    int      `mapstructure:"DEPOSIT_RECHECK_DELAY_SECONDS"`
	PendingExpiryHours  int      `mapstructure:"DEPOSIT_PENDING_EXPIRY_HOURS"`
	StuckThresholdMins  int      `mapstructure:"STUCK_DEPOSIT_THRESHOLD_MINUTES"`
	ReconcileSchedule   string   `mapstructure:"RECONCILE_SCHEDULE"`
	WatchOncePerAd      bool     `mapstructure:"WATCH_ONCE_PER_AD"`
	WatchRatePerSecond  float64  `mapstructure:"WATCH_AD_RATE_PER_SECOND"`
	WatchRateBurst      int      `mapstructure:"WATCH_AD_RATE_BURST"`
	ShutdownTimeoutSecs int      `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
	CORSAllowedOrigins  []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"PORT":                            "5000",
	"LOG_LEVEL":                       "info",
	"STORAGE_BACKEND":                 BackendDynamoDB,
	"BINANCE_API_BASE_URL":            "https://api.binance.com",
	"PAYMENT_CURRENCY":                "USDT",
	"GATEWAY_TIMEOUT_SECONDS":         10,
	"SETTLEMENT_MAX_ATTEMPTS":         5,
	"DEPOSIT_RECHECK_DELAY_SECONDS":   60,
	"DEPOSIT_PENDING_EXPIRY_HOURS":    24,
	"STUCK_DEPOSIT_THRESHOLD_MINUTES": 20,
	"RECONCILE_SCHEDULE":              "@every 5m",
	"WATCH_ONCE_PER_AD":               true,
	"WATCH_AD_RATE_PER_SECOND":        2.0,
	"WATCH_AD_RATE_BURST":             5,
	"SHUTDOWN_TIMEOUT_SECONDS":        15,
	"CORS_ALLOWED_ORIGINS":            []string{"*"},
}

// Keys without a default still have to be bound so viper sees them in the environment.
var unsetKeys = []string{
	"DYNAMODB_ENDPOINT",
	"DYNAMODB_ACCOUNTS_TABLE_NAME",
	"DYNAMODB_ADS_TABLE_NAME",
	"DYNAMODB_DEPOSITS_TABLE_NAME",
	"DYNAMODB_LEDGER_TABLE_NAME",
	"SQS_QUEUE_URL",
	"BINANCE_API_KEY",
}

// LoadConfig reads configuration from the environment. A .env file in dir, if
// present, fills in variables the environment does not set.
func LoadConfig(dir string) (Config, error) {
	var cfg Config

	envFile := filepath.Join(dir, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range unsetKeys {
		_ = v.BindEnv(key)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return cfg, nil
}

// Validate reports settings the process cannot start without.
func (c Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case BackendMemory:
	case BackendDynamoDB:
		if c.AccountsTableName == "" || c.AdsTableName == "" || c.DepositsTableName == "" || c.LedgerTableName == "" {
			errs = append(errs, errors.New("one or more DynamoDB table name environment variables are not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}
	if c.BinanceAPIKey == "" {
		errs = append(errs, errors.New("BINANCE_API_KEY environment variable not set"))
	}
	if c.GatewayTimeoutSecs <= 0 {
		errs = append(errs, errors.New("GATEWAY_TIMEOUT_SECONDS must be positive"))
	}
	// Reconciliation skips deposits re-checked within the threshold, so live re-check chains must run more often.
	if c.StuckThreshold() > 0 && c.RecheckDelay() >= c.StuckThreshold() {
		errs = append(errs, errors.New("DEPOSIT_RECHECK_DELAY_SECONDS must be shorter than STUCK_DEPOSIT_THRESHOLD_MINUTES"))
	}
	return errors.Join(errs...)
}

func (c Config) GatewayTimeout() time.Duration {
	return time.Duration(c.GatewayTimeoutSecs) * time.Second
}

func (c Config) RecheckDelay() time.Duration {
	return time.Duration(c.RecheckDelaySecs) * time.Second
}

func (c Config) PendingExpiry() time.Duration {
	return time.Duration(c.PendingExpiryHours) * time.Hour
}

func (c Config) StuckThreshold() time.Duration {
	return time.Duration(c.StuckThresholdMins) * time.Minute
}

// ReconcileEnabled reports whether the API process runs the reconciliation job.
// RECONCILE_SCHEDULE=off disables it.
func (c Config) ReconcileEnabled() bool {
	return c.ReconcileSchedule != "" && !strings.EqualFold(c.ReconcileSchedule, "off")
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}
