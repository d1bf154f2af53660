package ads

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/mapping"
	"github.com/chris/ad-rewards-wallet/pkg/money"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

// AdsHandler holds the dependencies for the ad catalog handlers.
type AdsHandler struct {
	Store  storage.AdStore
	Logger *slog.Logger
}

// NewAdsHandler creates a new AdsHandler.
func NewAdsHandler(store storage.AdStore, logger *slog.Logger) *AdsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdsHandler{Store: store, Logger: logger}
}

// ListAds handles the logic for retrieving the whole catalog.
func (h *AdsHandler) ListAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.Store.ListAds(r.Context())
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to list ads", "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to retrieve ads", Code: "internal"})
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiAds(ads))
}

// AddAd handles the logic for creating an ad.
func (h *AdsHandler) AddAd(w http.ResponseWriter, r *http.Request) {
	newAd, ok := decodeAd(w, r)
	if !ok {
		return
	}

	created, err := h.Store.CreateAd(r.Context(), mapping.ToDomainNewAd(newAd))
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to create ad", "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to add ad", Code: "internal"})
		return
	}

	h.Logger.InfoContext(r.Context(), "ad created", "ad_id", created.Id, "reward", created.Reward)
	api.WriteJSON(w, http.StatusOK, api.AdCreated{Message: "Ad added successfully", Id: created.Id})
}

// UpdateAd handles the logic for replacing an ad's title, url and reward.
func (h *AdsHandler) UpdateAd(w http.ResponseWriter, r *http.Request, id string) {
	newAd, ok := decodeAd(w, r)
	if !ok {
		return
	}

	ad := mapping.ToDomainNewAd(newAd)
	ad.Id = id
	if _, err := h.Store.UpdateAd(r.Context(), ad); err != nil {
		if errors.Is(err, storage.ErrAdNotFound) {
			api.WriteError(w, http.StatusNotFound, api.Error{Message: "Ad not found", Code: "ad_not_found"})
			return
		}
		h.Logger.ErrorContext(r.Context(), "failed to update ad", "ad_id", id, "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to update ad", Code: "internal"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Message{Message: "Ad updated successfully"})
}

// DeleteAd handles the logic for removing an ad.
func (h *AdsHandler) DeleteAd(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Store.DeleteAd(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrAdNotFound) {
			api.WriteError(w, http.StatusNotFound, api.Error{Message: "Ad not found", Code: "ad_not_found"})
			return
		}
		h.Logger.ErrorContext(r.Context(), "failed to delete ad", "ad_id", id, "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to delete ad", Code: "internal"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Message{Message: "Ad deleted successfully"})
}

// decodeAd reads and validates an ad body, writing a 400 on failure.
func decodeAd(w http.ResponseWriter, r *http.Request) (*api.NewAd, bool) {
	var newAd api.NewAd
	if err := json.NewDecoder(r.Body).Decode(&newAd); err != nil {
		if errors.Is(err, money.ErrInvalidAmount) {
			api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid reward", Code: "invalid_reward"})
			return nil, false
		}
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid request body", Code: "invalid_request"})
		return nil, false
	}

	newAd.Title = strings.TrimSpace(newAd.Title)
	newAd.Url = strings.TrimSpace(newAd.Url)

	switch {
	case newAd.Title == "":
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Title is required", Code: "invalid_title"})
	case !validURL(newAd.Url):
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "URL must be an absolute http or https URL", Code: "invalid_url"})
	case !newAd.Reward.IsSet() || newAd.Reward.Minor < 0:
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Reward must be a non-negative amount", Code: "invalid_reward"})
	default:
		return &newAd, true
	}
	return nil, false
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
