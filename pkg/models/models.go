package models

import (
	"time"
)

// DepositStatus defines the possible states of a deposit.
type DepositStatus string

const (
	PENDING   DepositStatus = "PENDING"
	COMPLETED DepositStatus = "COMPLETED"
	FAILED    DepositStatus = "FAILED"
)

// LedgerKind classifies a ledger entry by the event that produced it.
type LedgerKind string

const (
	KindDeposit LedgerKind = "DEPOSIT"
	KindReward  LedgerKind = "REWARD"
)

// Account represents the internal domain model for a registered user.
// Balance is held in minor units (cents).
type Account struct {
	Email        string    `dynamodbav:"email"`
	PasswordHash string    `dynamodbav:"password_hash"`
	Balance      int64     `dynamodbav:"balance"`
	PaymentID    string    `dynamodbav:"payment_id,omitempty"`
	WatchedAds   int64     `dynamodbav:"watched_ads"`
	Version      int64     `dynamodbav:"version"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
	UpdatedAt    time.Time `dynamodbav:"updated_at"`
}

// Ad represents a watchable advertisement. Reward is held in minor units.
type Ad struct {
	Id        string    `dynamodbav:"id"`
	Title     string    `dynamodbav:"title"`
	URL       string    `dynamodbav:"url"`
	Reward    int64     `dynamodbav:"reward"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

// Deposit records a single attempt to fund an account through the payment gateway.
// Its Id is sent to the gateway as the merchant trade number.
type Deposit struct {
	Id             string        `dynamodbav:"id"`
	Email          string        `dynamodbav:"email"`
	Amount         int64         `dynamodbav:"amount"`
	Currency       string        `dynamodbav:"currency"`
	Status         DepositStatus `dynamodbav:"status"`
	ConfirmationId string        `dynamodbav:"confirmation_id,omitempty"`
	FailureReason  string        `dynamodbav:"failure_reason,omitempty"`
	CreatedAt      time.Time     `dynamodbav:"created_at"`
	UpdatedAt      time.Time     `dynamodbav:"updated_at"`
}

// LedgerEntry represents a single credit applied to an account.
// EntryID is deterministic for idempotent events so a replay collides with the original.
type LedgerEntry struct {
	EntryID     string     `dynamodbav:"entry_id"`
	AccountID   string     `dynamodbav:"account_id"`
	Kind        LedgerKind `dynamodbav:"kind"`
	Reference   string     `dynamodbav:"reference"`
	Credit      int64      `dynamodbav:"credit"`
	Description string     `dynamodbav:"description"`
	Timestamp   time.Time  `dynamodbav:"timestamp"`
}
