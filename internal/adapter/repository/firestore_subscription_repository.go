package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/errors"
)

type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

func NewFirestoreSubscriptionRepository(client *firestore.Client) repository.SubscriptionRepository {
	return &firestoreSubscriptionRepository{
		client: client,
	}
}

func (r *firestoreSubscriptionRepository) ListActivePlans(ctx context.Context) ([]*entity.Plan, error) {
	query := r.client.Collection("plans").
		Where("isActive", "==", true).
		OrderBy("priceMonthly", firestore.Asc)

	return collect[entity.Plan](ctx, query, "Plans")
}

func (r *firestoreSubscriptionRepository) GetPlan(ctx context.Context, id string) (*entity.Plan, error) {
	return getDoc[entity.Plan](ctx, r.client.Collection("plans").Doc(id), "Plan")
}

func (r *firestoreSubscriptionRepository) GetByVendorID(ctx context.Context, vendorID string) (*entity.Subscription, error) {
	return getDoc[entity.Subscription](ctx, r.client.Collection("seller_subscriptions").Doc(vendorID), "Subscription")
}

func (r *firestoreSubscriptionRepository) Upsert(ctx context.Context, sub *entity.Subscription) error {
	sub.ID = sub.VendorID
	sub.UpdatedAt = time.Now()

	_, err := r.client.Collection("seller_subscriptions").Doc(sub.VendorID).Set(ctx, sub)
	if err != nil {
		return errors.Internal("Failed to save subscription", err)
	}

	return nil
}

func (r *firestoreSubscriptionRepository) GetROIReport(ctx context.Context, vendorID string) (*entity.ROIReport, error) {
	doc, err := r.client.Collection("seller_roi_reports").Doc(vendorID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &entity.ROIReport{VendorID: vendorID}, nil
		}
		return nil, errors.Internal("Failed to get ROI report", err)
	}

	var report entity.ROIReport
	if err := doc.DataTo(&report); err != nil {
		return nil, errors.Internal("Failed to parse ROI report data", err)
	}
	report.VendorID = vendorID

	return &report, nil
}
