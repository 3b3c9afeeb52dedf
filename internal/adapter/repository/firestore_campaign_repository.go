package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/errors"
)

type firestoreCampaignRepository struct {
	client *firestore.Client
}

func NewFirestoreCampaignRepository(client *firestore.Client) repository.CampaignRepository {
	return &firestoreCampaignRepository{
		client: client,
	}
}

func (r *firestoreCampaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	campaign.CreatedAt = time.Now()

	_, err := r.client.Collection("campaigns").Doc(campaign.ID).Set(ctx, campaign)
	if err != nil {
		return errors.Internal("Failed to create campaign", err)
	}

	return nil
}

func (r *firestoreCampaignRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("campaigns").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete campaign", err)
	}

	return nil
}

func (r *firestoreCampaignRepository) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Campaign, error) {
	query := r.client.Collection("campaigns").
		Where("vendorId", "==", vendorID).
		OrderBy("createdAt", firestore.Desc)

	return collect[entity.Campaign](ctx, query, "Campaigns")
}
