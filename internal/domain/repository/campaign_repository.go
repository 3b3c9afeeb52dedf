package repository

import (
	"context"

	"fad/internal/domain/entity"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	Delete(ctx context.Context, id string) error
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.Campaign, error)
}
