// Package api holds the HTTP wire types and the route binding for the service.
package api

import (
	"encoding/json"
	"time"

	"github.com/chris/ad-rewards-wallet/pkg/money"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email        openapi_types.Email `json:"email"`
	Password     string              `json:"password"`
	BinancePayId *string             `json:"binancePayId,omitempty"`
}

// DepositRequest is the body of POST /deposit. Amount is in major units.
type DepositRequest struct {
	Email  openapi_types.Email `json:"email"`
	Amount money.Amount        `json:"amount"`
}

// WatchAdRequest is the body of POST /watch-ad.
type WatchAdRequest struct {
	Email openapi_types.Email `json:"email"`
	AdId  string              `json:"adId"`
}

// NewAd is the body of POST /admin/add-ad and PUT /admin/update-ad/{id}.
type NewAd struct {
	Title  string       `json:"title"`
	Url    string       `json:"url"`
	Reward money.Amount `json:"reward"`
}

// Ad is an entry of GET /ads.
type Ad struct {
	Id     string      `json:"id"`
	Title  string      `json:"title"`
	Url    string      `json:"url"`
	Reward json.Number `json:"reward"`
}

// LedgerEntry is an entry of GET /balance/{email}/history.
type LedgerEntry struct {
	EntryId     string      `json:"entryId"`
	Kind        string      `json:"kind"`
	Reference   string      `json:"reference"`
	Credit      json.Number `json:"credit"`
	Description string      `json:"description"`
	Timestamp   time.Time   `json:"timestamp"`
}

// GetBalanceHistoryParams defines parameters for GetBalanceHistory.
type GetBalanceHistoryParams struct {
	Limit *int32 `json:"limit,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

type DepositResponse struct {
	Message string      `json:"message"`
	Balance json.Number `json:"balance"`
}

// DepositPending is returned with 202 while the gateway has not confirmed the payment.
type DepositPending struct {
	Message   string `json:"message"`
	DepositId string `json:"depositId"`
	Status    string `json:"status"`
}

type BalanceResponse struct {
	Balance json.Number `json:"balance"`
}

type WatchAdResponse struct {
	Message    string      `json:"message"`
	Balance    json.Number `json:"balance"`
	WatchedAds int64       `json:"watchedAds"`
}

type AdCreated struct {
	Message string `json:"message"`
	Id      string `json:"id"`
}

type Health struct {
	Status string `json:"status"`
}

// Error is the body of every failed request. Code is a stable machine-readable token.
type Error struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
	DepositId string `json:"depositId,omitempty"`
}
