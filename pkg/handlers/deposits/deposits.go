package deposits

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/money"
	"github.com/chris/ad-rewards-wallet/pkg/settlement"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
)

// Depositor is the part of the settlement service the handler needs.
type Depositor interface {
	Deposit(ctx context.Context, email string, amount int64) (*models.Account, error)
}

// DepositsHandler holds the dependencies for deposit-related handlers.
type DepositsHandler struct {
	Settlement Depositor
	Logger     *slog.Logger
}

// NewDepositsHandler creates a new DepositsHandler.
func NewDepositsHandler(svc Depositor, logger *slog.Logger) *DepositsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DepositsHandler{Settlement: svc, Logger: logger}
}

// Deposit handles the logic for funding an account through the payment gateway.
func (h *DepositsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req api.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, money.ErrInvalidAmount) {
			api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid amount", Code: "invalid_amount"})
			return
		}
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid request body", Code: "invalid_request"})
		return
	}
	if req.Email == "" {
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Email is required", Code: "invalid_email"})
		return
	}
	if !req.Amount.IsSet() {
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid amount", Code: "invalid_amount"})
		return
	}

	account, err := h.Settlement.Deposit(r.Context(), string(req.Email), req.Amount.Minor)
	if err != nil {
		h.writeDepositError(w, r, string(req.Email), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.DepositResponse{
		Message: "Deposit successful",
		Balance: money.Number(account.Balance),
	})
}

func (h *DepositsHandler) writeDepositError(w http.ResponseWriter, r *http.Request, email string, err error) {
	var pending *settlement.PendingError

	switch {
	case errors.Is(err, settlement.ErrInvalidAmount):
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Invalid amount", Code: "invalid_amount"})
	case errors.Is(err, storage.ErrAccountNotFound):
		api.WriteError(w, http.StatusNotFound, api.Error{Message: "User not found", Code: "account_not_found"})
	case errors.Is(err, settlement.ErrGatewayRejected):
		api.WriteError(w, http.StatusBadRequest, api.Error{Message: "Deposit failed", Code: "gateway_declined"})
	case errors.As(err, &pending) && errors.Is(err, settlement.ErrPaymentPending):
		api.WriteJSON(w, http.StatusAccepted, api.DepositPending{
			Message:   "Deposit pending confirmation",
			DepositId: pending.DepositID,
			Status:    string(models.PENDING),
		})
	case errors.As(err, &pending) && errors.Is(err, settlement.ErrCreditDeferred):
		// Already charged. A new deposit would charge again, so the client polls the balance instead.
		h.Logger.WarnContext(r.Context(), "deposit credit deferred", "email", email, "deposit_id", pending.DepositID, "error", err)
		api.WriteError(w, http.StatusServiceUnavailable, api.Error{
			Message:   "Deposit confirmed, balance update pending",
			Code:      "settlement_deferred",
			DepositId: pending.DepositID,
		})
	case errors.As(err, &pending):
		// The deposit stays PENDING and is settled by the re-check, not by a client retry.
		api.WriteError(w, http.StatusInternalServerError, api.Error{
			Message:   "Binance Pay error",
			Code:      "gateway_unavailable",
			Retryable: true,
			DepositId: pending.DepositID,
		})
	default:
		h.Logger.ErrorContext(r.Context(), "deposit failed", "email", email, "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.Error{Message: "Deposit failed", Code: "internal"})
	}
}
