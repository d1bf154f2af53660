package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type recordingServer struct {
	called string
	email  string
	id     string
	limit  *int32
}

func (s *recordingServer) Register(w http.ResponseWriter, r *http.Request) { s.called = "Register" }
func (s *recordingServer) Deposit(w http.ResponseWriter, r *http.Request) { s.called = "Deposit" }
func (s *recordingServer) GetBalance(w http.ResponseWriter, r *http.Request, email string) {
	s.called, s.email = "GetBalance", email
}
func (s *recordingServer) GetBalanceHistory(w http.ResponseWriter, r *http.Request, email string, params GetBalanceHistoryParams) {
	s.called, s.email, s.limit = "GetBalanceHistory", email, params.Limit
}
func (s *recordingServer) ListAds(w http.ResponseWriter, r *http.Request) { s.called = "ListAds" }
func (s *recordingServer) WatchAd(w http.ResponseWriter, r *http.Request) { s.called = "WatchAd" }
func (s *recordingServer) AddAd(w http.ResponseWriter, r *http.Request) { s.called = "AddAd" }
func (s *recordingServer) DeleteAd(w http.ResponseWriter, r *http.Request, id string) {
	s.called, s.id = "DeleteAd", id
}
func (s *recordingServer) UpdateAd(w http.ResponseWriter, r *http.Request, id string) {
	s.called, s.id = "UpdateAd", id
}
func (s *recordingServer) Healthz(w http.ResponseWriter, r *http.Request) { s.called = "Healthz" }

func TestHandlerFromMux(t *testing.T) {
	serve := func(method, target string) (*recordingServer, *httptest.ResponseRecorder) {
		si := &recordingServer{}
		router := chi.NewRouter()
		HandlerFromMux(si, router)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
		return si, rr
	}

	t.Run("Routes", func(t *testing.T) {
		cases := map[string][2]string{
			"Register": {http.MethodPost, "/register"},
			"Deposit":  {http.MethodPost, "/deposit"},
			"ListAds":  {http.MethodGet, "/ads"},
			"WatchAd":  {http.MethodPost, "/watch-ad"},
			"AddAd":    {http.MethodPost, "/admin/add-ad"},
			"DeleteAd": {http.MethodDelete, "/admin/delete-ad/ad-1"},
			"UpdateAd": {http.MethodPut, "/admin/update-ad/ad-1"},
			"Healthz":  {http.MethodGet, "/healthz"},
		}
		for name, c := range cases {
			si, _ := serve(c[0], c[1])
			assert.Equal(t, name, si.called)
		}
	})

	t.Run("Escaped Email Path Parameter", func(t *testing.T) {
		si, _ := serve(http.MethodGet, "/balance/test%40example.com")

		assert.Equal(t, "GetBalance", si.called)
		assert.Equal(t, "test@example.com", si.email)
	})

	t.Run("History Limit", func(t *testing.T) {
		si, _ := serve(http.MethodGet, "/balance/test@example.com/history?limit=10")

		assert.Equal(t, "GetBalanceHistory", si.called)
		if assert.NotNil(t, si.limit) {
			assert.Equal(t, int32(10), *si.limit)
		}
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		si, rr := serve(http.MethodGet, "/balance/test@example.com/history?limit=ten")

		assert.Empty(t, si.called)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid_parameter")
	})
}
