package storage

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on the
// more granular interfaces (AccountStore, BalanceWriter, etc.) instead of this one.
type Storage interface {
	AccountStore
	AdStore
	DepositStore
	BalanceWriter
	LedgerReader
}

// SettlementStore is the slice of storage the settlement service needs.
type SettlementStore interface {
	AccountStore
	DepositStore
	BalanceWriter
}

// RewardStore is the slice of storage the reward service needs.
type RewardStore interface {
	AccountStore
	AdStore
	BalanceWriter
}
