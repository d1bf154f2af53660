package accounts_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/handlers/accounts"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
	"github.com/chris/ad-rewards-wallet/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHandler(store storage.AccountStore) *accounts.AccountsHandler {
	h := accounts.NewAccountsHandler(store, nil)
	h.HashCost = bcrypt.MinCost
	return h
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) api.Error {
	t.Helper()
	var body api.Error
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *models.Account) bool {
			return a.Email == "alice@example.com" &&
				a.PaymentID == "pay-123" &&
				bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("s3cret")) == nil
		})).Return(&models.Account{Email: "alice@example.com"}, nil)

		body := `{"email":"alice@example.com","password":"s3cret","binancePayId":"pay-123"}`
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
		rr := httptest.NewRecorder()

		newHandler(mockStorage).Register(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var msg api.Message
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
		assert.Equal(t, "User registered successfully", msg.Message)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateAccount", mock.Anything, mock.Anything).
			Return(nil, storage.ErrAccountExists)

		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"alice@example.com","password":"x"}`))
		rr := httptest.NewRecorder()

		newHandler(mockStorage).Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "User already exists", decodeError(t, rr).Message)
	})

	t.Run("Rejects bad input before touching the store", func(t *testing.T) {
		cases := map[string]string{
			"malformed json": `{"email":`,
			"invalid email":  `{"email":"not-an-email","password":"x"}`,
			"missing email":  `{"password":"x"}`,
			"empty password": `{"email":"alice@example.com","password":""}`,
			"blank password": `{"email":"alice@example.com","password":"   "}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				mockStorage := new(mocks.Storage)
				req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
				rr := httptest.NewRecorder()

				newHandler(mockStorage).Register(rr, req)

				assert.Equal(t, http.StatusBadRequest, rr.Code)
				mockStorage.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Store failure", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateAccount", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"alice@example.com","password":"x"}`))
		rr := httptest.NewRecorder()

		newHandler(mockStorage).Register(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "alice@example.com").
			Return(&models.Account{Email: "alice@example.com", Balance: 5550}, nil)

		req := httptest.NewRequest(http.MethodGet, "/balance/alice@example.com", nil)
		rr := httptest.NewRecorder()

		newHandler(mockStorage).GetBalance(rr, req, "alice@example.com")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"balance":55.5}`, rr.Body.String())
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown account", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "nobody@example.com").
			Return(nil, storage.ErrAccountNotFound)

		req := httptest.NewRequest(http.MethodGet, "/balance/nobody@example.com", nil)
		rr := httptest.NewRecorder()

		newHandler(mockStorage).GetBalance(rr, req, "nobody@example.com")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		body := decodeError(t, rr)
		assert.Equal(t, "User not found", body.Message)
		assert.Equal(t, "account_not_found", body.Code)
	})
}
