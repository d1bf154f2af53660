package ledger

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/mapping"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

const (
	defaultLimit int32 = 25
	maxLimit     int32 = 100
)

// Store is what the history handler reads from.
type Store interface {
	storage.AccountStore
	storage.LedgerReader
}

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Store  Store
	Logger *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store Store, logger *slog.Logger) *LedgerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerHandler{Store: store, Logger: logger}
}

// GetBalanceHistory lists the credits applied to an account, newest first.
func (h *LedgerHandler) GetBalanceHistory(w http.ResponseWriter, r *http.Request, email string, params api.GetBalanceHistoryParams) {
	limit := defaultLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	if limit < 1 || limit > maxLimit {
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "limit must be between 1 and 100", Code: "invalid_parameter"})
		return
	}

	if _, err := h.Store.GetAccount(r.Context(), email); err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			api.WriteError(w, http.StatusNotFound, api.Error{Message: "User not found", Code: "account_not_found"})
			return
		}
		h.Logger.ErrorContext(r.Context(), "failed to get account", "email", email, "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to retrieve history", Code: "internal"})
		return
	}

	entries, err := h.Store.ListLedgerEntries(r.Context(), email, limit)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to list ledger entries", "email", email, "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to retrieve history", Code: "internal"})
		return
	}

	apiEntries := make([]api.LedgerEntry, len(entries))
	for i := range entries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entries[i])
	}

	api.WriteJSON(w, http.StatusOK, apiEntries)
}
