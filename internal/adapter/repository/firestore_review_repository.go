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

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return getDoc[entity.Review](ctx, r.client.Collection("reviews").Doc(id), "Review")
}

func (r *firestoreReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]*entity.Review, error) {
	query := r.client.Collection("reviews").Query
	if filter.VendorID != "" {
		query = query.Where("vendorId", "==", filter.VendorID)
	}
	if filter.FlaggedOnly {
		query = query.Where("isFlagged", "==", true)
	}
	query = whereStatuses(query, "moderationStatus", filter.Statuses)
	query = query.OrderBy("createdAt", firestore.Desc)

	return collect[entity.Review](ctx, query, "Reviews")
}

func (r *firestoreReviewRepository) Update(ctx context.Context, review *entity.Review, expected *time.Time) error {
	ref := r.client.Collection("reviews").Doc(review.ID)
	return setIfUnchanged(ctx, r.client, ref, review, expected, "Review")
}

func (r *firestoreReviewRepository) CountFlagged(ctx context.Context) (int64, error) {
	n, err := count(ctx, r.client.Collection("reviews").Where("isFlagged", "==", true))
	if err != nil {
		return 0, errors.Internal("Failed to count flagged reviews", err)
	}
	return n, nil
}
