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

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return getDoc[entity.Listing](ctx, r.client.Collection("listings").Doc(id), "Listing")
}

func (r *firestoreListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	query := r.client.Collection("listings").Query
	if filter.VendorID != "" {
		query = query.Where("vendorId", "==", filter.VendorID)
	}
	query = whereStatuses(query, "moderationStatus", filter.Statuses)
	query = query.OrderBy("createdAt", firestore.Desc)

	return collect[entity.Listing](ctx, query, "Listings")
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing, expected *time.Time) error {
	ref := r.client.Collection("listings").Doc(listing.ID)
	return setIfUnchanged(ctx, r.client, ref, listing, expected, "Listing")
}

func (r *firestoreListingRepository) CountByStatus(ctx context.Context, moderationStatus string) (int64, error) {
	n, err := count(ctx, r.client.Collection("listings").Where("moderationStatus", "==", moderationStatus))
	if err != nil {
		return 0, errors.Internal("Failed to count listings", err)
	}
	return n, nil
}
