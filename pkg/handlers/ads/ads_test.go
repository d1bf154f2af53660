package ads_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/handlers/ads"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/storage"
	"github.com/chris/ad-rewards-wallet/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListAds(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListAds", mock.Anything).Return([]models.Ad{
			{Id: "ad-1", Title: "Coffee", URL: "https://example.com/coffee", Reward: 150},
		}, nil)

		h := ads.NewAdsHandler(mockStorage, nil)
		req := httptest.NewRequest(http.MethodGet, "/ads", nil)
		rr := httptest.NewRecorder()

		h.ListAds(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"id":"ad-1","title":"Coffee","url":"https://example.com/coffee","reward":1.5}]`, rr.Body.String())
		mockStorage.AssertExpectations(t)
	})

	t.Run("Empty catalog", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListAds", mock.Anything).Return([]models.Ad{}, nil)

		h := ads.NewAdsHandler(mockStorage, nil)
		rr := httptest.NewRecorder()

		h.ListAds(rr, httptest.NewRequest(http.MethodGet, "/ads", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("Store failure", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListAds", mock.Anything).Return(nil, errors.New("boom"))

		h := ads.NewAdsHandler(mockStorage, nil)
		rr := httptest.NewRecorder()

		h.ListAds(rr, httptest.NewRequest(http.MethodGet, "/ads", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestAddAd(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateAd", mock.Anything, mock.MatchedBy(func(ad *models.Ad) bool {
			return ad.Title == "Coffee" && ad.URL == "https://example.com/coffee" && ad.Reward == 250
		})).Return(&models.Ad{Id: "ad-new", Title: "Coffee", Reward: 250}, nil)

		h := ads.NewAdsHandler(mockStorage, nil)
		body := `{"title":" Coffee ","url":"https://example.com/coffee","reward":2.5}`
		req := httptest.NewRequest(http.MethodPost, "/admin/add-ad", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.AddAd(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var created api.AdCreated
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.Equal(t, "Ad added successfully", created.Message)
		assert.Equal(t, "ad-new", created.Id)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Zero reward is allowed", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateAd", mock.Anything, mock.Anything).Return(&models.Ad{Id: "ad-free"}, nil)

		h := ads.NewAdsHandler(mockStorage, nil)
		req := httptest.NewRequest(http.MethodPost, "/admin/add-ad", strings.NewReader(`{"title":"Free","url":"http://example.com","reward":0}`))
		rr := httptest.NewRecorder()

		h.AddAd(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Validation", func(t *testing.T) {
		cases := map[string]string{
			"invalid_title":   `{"title":"  ","url":"https://example.com","reward":1}`,
			"invalid_url":     `{"title":"A","url":"example.com/no-scheme","reward":1}`,
			"invalid_reward":  `{"title":"A","url":"https://example.com","reward":-1}`,
			"invalid_request": `{"title":`,
		}
		for code, body := range cases {
			t.Run(code, func(t *testing.T) {
				mockStorage := new(mocks.Storage)
				h := ads.NewAdsHandler(mockStorage, nil)
				rr := httptest.NewRecorder()

				h.AddAd(rr, httptest.NewRequest(http.MethodPost, "/admin/add-ad", strings.NewReader(body)))

				assert.Equal(t, http.StatusBadRequest, rr.Code)
				var apiErr api.Error
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
				assert.Equal(t, code, apiErr.Code)
				mockStorage.AssertNotCalled(t, "CreateAd", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Missing reward", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := ads.NewAdsHandler(mockStorage, nil)
		rr := httptest.NewRecorder()

		h.AddAd(rr, httptest.NewRequest(http.MethodPost, "/admin/add-ad", strings.NewReader(`{"title":"A","url":"https://example.com"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateAd(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateAd", mock.Anything, mock.MatchedBy(func(ad *models.Ad) bool {
			return ad.Id == "ad-1" && ad.Title == "New" && ad.Reward == 300
		})).Return(&models.Ad{Id: "ad-1"}, nil)

		h := ads.NewAdsHandler(mockStorage, nil)
		req := httptest.NewRequest(http.MethodPut, "/admin/update-ad/ad-1", strings.NewReader(`{"title":"New","url":"https://example.com","reward":"3"}`))
		rr := httptest.NewRecorder()

		h.UpdateAd(rr, req, "ad-1")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Ad updated successfully"}`, rr.Body.String())
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown ad", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateAd", mock.Anything, mock.Anything).Return(nil, storage.ErrAdNotFound)

		h := ads.NewAdsHandler(mockStorage, nil)
		req := httptest.NewRequest(http.MethodPut, "/admin/update-ad/missing", strings.NewReader(`{"title":"New","url":"https://example.com","reward":1}`))
		rr := httptest.NewRecorder()

		h.UpdateAd(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteAd(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("DeleteAd", mock.Anything, "ad-1").Return(nil)

		h := ads.NewAdsHandler(mockStorage, nil)
		rr := httptest.NewRecorder()

		h.DeleteAd(rr, httptest.NewRequest(http.MethodDelete, "/admin/delete-ad/ad-1", nil), "ad-1")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Ad deleted successfully"}`, rr.Body.String())
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown ad", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("DeleteAd", mock.Anything, "missing").Return(storage.ErrAdNotFound)

		h := ads.NewAdsHandler(mockStorage, nil)
		rr := httptest.NewRecorder()

		h.DeleteAd(rr, httptest.NewRequest(http.MethodDelete, "/admin/delete-ad/missing", nil), "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var apiErr api.Error
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
		assert.Equal(t, "Ad not found", apiErr.Message)
	})
}
