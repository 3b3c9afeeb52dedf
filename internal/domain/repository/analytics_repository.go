package repository

import (
	"context"

	"fad/internal/domain/entity"
)

// AnalyticsRepository reads the seller metric series written by the data pipeline.
type AnalyticsRepository interface {
	ListDeliveryMetrics(ctx context.Context, vendorID string) ([]*entity.DeliveryMetric, error)
	ListDripScoreHistory(ctx context.Context, vendorID string, limit int) ([]*entity.DripScorePoint, error)
}
