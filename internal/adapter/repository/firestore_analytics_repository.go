package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
)

type firestoreAnalyticsRepository struct {
	client *firestore.Client
}

func NewFirestoreAnalyticsRepository(client *firestore.Client) repository.AnalyticsRepository {
	return &firestoreAnalyticsRepository{
		client: client,
	}
}

func (r *firestoreAnalyticsRepository) ListDeliveryMetrics(ctx context.Context, vendorID string) ([]*entity.DeliveryMetric, error) {
	query := r.client.Collection("seller_delivery_metrics").
		Where("vendorId", "==", vendorID).
		OrderBy("weekStart", firestore.Asc)

	return collect[entity.DeliveryMetric](ctx, query, "Delivery metrics")
}

// ListDripScoreHistory returns the newest limit points in chronological order.
func (r *firestoreAnalyticsRepository) ListDripScoreHistory(ctx context.Context, vendorID string, limit int) ([]*entity.DripScorePoint, error) {
	query := r.client.Collection("seller_dripscore_history").
		Where("vendorId", "==", vendorID).
		OrderBy("recordedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	points, err := collect[entity.DripScorePoint](ctx, query, "DripScore history")
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}
