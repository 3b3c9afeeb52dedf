package repository

import (
	"context"

	"fad/internal/domain/entity"
)

type SubscriptionRepository interface {
	// ListActivePlans returns active plans ordered by monthly price.
	ListActivePlans(ctx context.Context) ([]*entity.Plan, error)
	GetPlan(ctx context.Context, id string) (*entity.Plan, error)
	GetByVendorID(ctx context.Context, vendorID string) (*entity.Subscription, error)
	Upsert(ctx context.Context, sub *entity.Subscription) error
	GetROIReport(ctx context.Context, vendorID string) (*entity.ROIReport, error)
}
