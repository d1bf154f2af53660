package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/gateway"
	gatewaymocks "github.com/chris/ad-rewards-wallet/pkg/gateway/mocks"
	"github.com/chris/ad-rewards-wallet/pkg/rewards"
	"github.com/chris/ad-rewards-wallet/pkg/settlement"
	"github.com/chris/ad-rewards-wallet/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*httptest.Server, *gatewaymocks.Gateway) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	gw := new(gatewaymocks.Gateway)

	settlementSvc := settlement.NewService(store, gw, nil, settlement.Config{Currency: "USDT", MaxAttempts: 3, RecheckDelay: time.Minute}, logger)
	rewardSvc := rewards.NewService(store, rewards.Config{OncePerAd: true, MaxAttempts: 3}, logger)

	h := NewApiHandler(store, settlementSvc, rewardSvc, logger)
	h.AccountsHandler.HashCost = bcrypt.MinCost

	srv := httptest.NewServer(api.Handler(h))
	t.Cleanup(srv.Close)
	return srv, gw
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestRewardsJourney(t *testing.T) {
	srv, gw := newTestServer(t)
	gw.On("ConfirmPayment", mock.Anything, mock.Anything).Return(
		func(_ context.Context, req gateway.PaymentRequest) (*gateway.Confirmation, error) {
			return &gateway.Confirmation{ID: "conf-" + req.Reference, Status: gateway.StatusConfirmed, Amount: req.Amount}, nil
		})

	status, _ := do(t, http.MethodPost, srv.URL+"/register", `{"email":"test@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, http.MethodPost, srv.URL+"/register", `{"email":"test@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "User already exists")

	status, body = do(t, http.MethodPost, srv.URL+"/deposit", `{"email":"test@example.com","amount":50}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Deposit successful","balance":50}`, body)

	status, body = do(t, http.MethodPost, srv.URL+"/admin/add-ad", `{"title":"Ad","url":"https://example.com/ad","reward":5}`)
	require.Equal(t, http.StatusOK, status)
	var created api.AdCreated
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(t, created.Id)

	status, body = do(t, http.MethodGet, srv.URL+"/ads", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, created.Id)

	status, body = do(t, http.MethodPost, srv.URL+"/watch-ad", `{"email":"test@example.com","adId":"`+created.Id+`"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Ad watched successfully","balance":55,"watchedAds":1}`, body)

	status, body = do(t, http.MethodGet, srv.URL+"/balance/test%40example.com", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"balance":55}`, body)

	status, body = do(t, http.MethodGet, srv.URL+"/balance/test@example.com/history?limit=10", "")
	require.Equal(t, http.StatusOK, status)
	var history []api.LedgerEntry
	require.NoError(t, json.Unmarshal([]byte(body), &history))
	assert.Len(t, history, 2)

	status, _ = do(t, http.MethodDelete, srv.URL+"/admin/delete-ad/"+created.Id, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, http.MethodDelete, srv.URL+"/admin/delete-ad/"+created.Id, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestUnknownUserBalance(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/balance/nobody@example.com", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "User not found")
}
