package mapping

import (
	"github.com/chris/ad-rewards-wallet/pkg/api"
	"github.com/chris/ad-rewards-wallet/pkg/models"
	"github.com/chris/ad-rewards-wallet/pkg/money"
)

// ToApiAd converts a domain Ad model to an API Ad model.
func ToApiAd(ad *models.Ad) api.Ad {
	return api.Ad{
		Id:     ad.Id,
		Title:  ad.Title,
		Url:    ad.URL,
		Reward: money.Number(ad.Reward),
	}
}

// ToApiAds converts a list of domain ads, never returning nil so the response is a JSON array.
func ToApiAds(ads []models.Ad) []api.Ad {
	out := make([]api.Ad, len(ads))
	for i := range ads {
		out[i] = ToApiAd(&ads[i])
	}
	return out
}

// ToDomainNewAd converts an API NewAd model to a domain Ad model.
// The id and timestamps are assigned by the store.
func ToDomainNewAd(newAd *api.NewAd) *models.Ad {
	return &models.Ad{
		Title:  newAd.Title,
		URL:    newAd.Url,
		Reward: newAd.Reward.Minor,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) api.LedgerEntry {
	return api.LedgerEntry{
		EntryId:     entry.EntryID,
		Kind:        string(entry.Kind),
		Reference:   entry.Reference,
		Credit:      money.Number(entry.Credit),
		Description: entry.Description,
		Timestamp:   entry.Timestamp,
	}
}
