package accounts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/money"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"golang.org/x/crypto/bcrypt"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Store  storage.AccountStore
	Logger *slog.Logger

	// HashCost is the bcrypt cost used for new passwords.
	HashCost int
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(store storage.AccountStore, logger *slog.Logger) *AccountsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountsHandler{Store: store, Logger: logger, HashCost: bcrypt.DefaultCost}
}

// Register handles the logic for creating a new account.
func (h *AccountsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, openapi_types.ErrValidationEmail) {
			api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid email", Code: "invalid_email"})
			return
		}
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid request body", Code: "invalid_request"})
		return
	}
	if req.Email == "" {
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Email is required", Code: "invalid_email"})
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Password is required", Code: "invalid_password"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.HashCost)
	if err != nil {
		// bcrypt rejects passwords longer than 72 bytes.
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Password is not acceptable", Code: "invalid_password"})
		return
	}

	account := &models.Account{
		Email:        string(req.Email),
		PasswordHash: string(hash),
	}
	if req.BinancePayId != nil {
		account.PaymentID = *req.BinancePayId
	}

	if _, err := h.Store.CreateAccount(r.Context(), account); err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			api.WriteError(w, http.StatusBadRequest, api.Error{Message: "User already exists", Code: "account_exists"})
			return
		}
		h.Logger.ErrorContext(r.Context(), "failed to create account", "email", account.Email, "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to register user", Code: "internal"})
		return
	}

	h.Logger.InfoContext(r.Context(), "account registered", "email", account.Email)
	api.WriteJSON(w, http.StatusOK, api.Message{Message: "User registered successfully"})
}

// GetBalance handles the logic for retrieving an account balance.
func (h *AccountsHandler) GetBalance(w http.ResponseWriter, r *http.Request, email string) {
	account, err := h.Store.GetAccount(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			api.WriteError(w, http.StatusNotFound, api.Error{Message: "User not found", Code: "account_not_found"})
			return
		}
		h.Logger.ErrorContext(r.Context(), "failed to get account", "email", email, "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Failed to retrieve balance", Code: "internal"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.BalanceResponse{Balance: money.Number(account.Balance)})
}
