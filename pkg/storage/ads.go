package storage

import (
	"context"

	"github.com/chris/ad-rewards-wallet/pkg/models"
)

// AdStore defines the interface for the advertisement catalog.
type AdStore interface {
	CreateAd(ctx context.Context, ad *models.Ad) (*models.Ad, error)
	GetAd(ctx context.Context, id string) (*models.Ad, error)
	ListAds(ctx context.Context) ([]models.Ad, error)

	// UpdateAd replaces title, url and reward. It fails with ErrAdNotFound for unknown ids.
	UpdateAd(ctx context.Context, ad *models.Ad) (*models.Ad, error)

	// DeleteAd removes an ad. It fails with ErrAdNotFound for unknown ids.
	DeleteAd(ctx context.Context, id string) error
}
