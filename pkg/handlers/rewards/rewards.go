package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/money"
	"github.com/chris/ad-rewards-wallet/pkg/rewards"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

// Watcher is the part of the reward service the handler needs.
type Watcher interface {
	WatchAd(ctx context.Context, email, adID string) (*models.Account, error)
}

// RewardsHandler holds the dependencies for the watch-ad handler.
type RewardsHandler struct {
	Rewards Watcher
	Logger  *slog.Logger
}

// NewRewardsHandler creates a new RewardsHandler.
func NewRewardsHandler(svc Watcher, logger *slog.Logger) *RewardsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RewardsHandler{Rewards: svc, Logger: logger}
}

// WatchAd handles the logic for crediting an ad reward.
func (h *RewardsHandler) WatchAd(w http.ResponseWriter, r *http.Request) {
	var req api.WatchAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid request body", Code: "invalid_request"})
		return
	}
	req.AdId = strings.TrimSpace(req.AdId)
	if req.Email == "" || req.AdId == "" {
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Email and adId are required", Code: "invalid_request"})
		return
	}

	account, err := h.Rewards.WatchAd(r.Context(), string(req.Email), req.AdId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAccountNotFound):
			api.WriteError(w, http.StatusNotFound, api.Error{Message: "User not found", Code: "account_not_found"})
		case errors.Is(err, storage.ErrAdNotFound):
			api.WriteError(w, http.StatusNotFound, api.Error{Message: "Ad not found", Code: "ad_not_found"})
		case errors.Is(err, storage.ErrAdAlreadyWatched):
			api.WriteError(w, http.StatusConflict, api.Error{Message: "Ad already watched", Code: "ad_already_watched"})
		case errors.Is(err, rewards.ErrTooManyConflicts):
			api.WriteError(w, http.StatusConflict, api.Error{Message: "Account is busy, try again", Code: "version_conflict", Retryable: true})
		default:
			h.Logger.ErrorContext(r.Context(), "watch ad failed", "email", req.Email, "ad_id", req.AdId, "error", err)
			api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to reward ad", Code: "internal"})
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, api.WatchAdResponse{
		Message:    "Ad watched successfully",
		Balance:    money.Number(account.Balance),
		WatchedAds: account.WatchedAds,
	})
}
