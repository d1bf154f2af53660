package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/handlers/accounts"
	"github.com/chris/ad-rewards-wallet/pkg/handlers/ads"
	"github.com/chris/ad-rewards-wallet/pkg/handlers/deposits"
	"github.com/chris/ad-rewards-wallet/pkg/handlers/ledger"
	"github.com/chris/ad-rewards-wallet/pkg/handlers/rewards"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*accounts.AccountsHandler
	*deposits.DepositsHandler
	*ads.AdsHandler
	*rewards.RewardsHandler
	*ledger.LedgerHandler
}

// NewApiHandler wires every handler group to its dependencies.
func NewApiHandler(store storage.Storage, depositor deposits.Depositor, watcher rewards.Watcher, logger *slog.Logger) *ApiHandler {
	return &ApiHandler{
		AccountsHandler: accounts.NewAccountsHandler(store, logger),
		DepositsHandler: deposits.NewDepositsHandler(depositor, logger),
		AdsHandler:      ads.NewAdsHandler(store, logger),
		RewardsHandler:  rewards.NewRewardsHandler(watcher, logger),
		LedgerHandler:   ledger.NewLedgerHandler(store, logger),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// Healthz reports liveness.
func (h *ApiHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, api.Health{Status: "ok"})
}
