package usecase

import (
	"context"
	"fmt"
	"strings"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

type SubscriptionUseCase struct {
	subscriptionRepo repository.SubscriptionRepository
	vendorRepo       repository.VendorRepository
	activity         *ActivityUseCase
}

func NewSubscriptionUseCase(
	subscriptionRepo repository.SubscriptionRepository,
	vendorRepo repository.VendorRepository,
	activity *ActivityUseCase,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		vendorRepo:       vendorRepo,
		activity:         activity,
	}
}

type UpdateSubscriptionInput struct {
	PlanID           string
	Promotions       entity.Promotions
	CustomNote       string
	DiscountCode     string
	BillingReference string
}

func (uc *SubscriptionUseCase) Plans(ctx context.Context) ([]*entity.Plan, error) {
	plans, err := uc.subscriptionRepo.ListActivePlans(ctx)
	if err != nil {
		logger.LogReadDegraded("plans", err)
		return []*entity.Plan{}, nil
	}
	return plans, nil
}

// SellerSubscription returns nil without error when the vendor has no
// subscription.
func (uc *SubscriptionUseCase) SellerSubscription(ctx context.Context, vendorID string) (*entity.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByVendorID(ctx, vendorID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			logger.LogReadDegraded("subscription", err)
		}
		return nil, nil
	}

	if plan, err := uc.subscriptionRepo.GetPlan(ctx, sub.PlanID); err == nil {
		sub.Plan = plan
	}
	return sub, nil
}

func (uc *SubscriptionUseCase) UpdateSubscription(ctx context.Context, session *entity.Session, vendorID string, input UpdateSubscriptionInput) (*entity.Subscription, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, errors.NotFound("Vendor", err)
	}

	plan, err := uc.subscriptionRepo.GetPlan(ctx, input.PlanID)
	if err != nil {
		return nil, errors.NotFound("Plan", err)
	}
	if !plan.IsActive {
		return nil, errors.BadRequest(fmt.Sprintf("Plan %s is not available", plan.Name), nil)
	}

	sub := &entity.Subscription{
		ID:               vendorID,
		VendorID:         vendorID,
		PlanID:           plan.ID,
		Promotions:       input.Promotions,
		CustomNote:       strings.TrimSpace(input.CustomNote),
		DiscountCode:     strings.TrimSpace(input.DiscountCode),
		BillingReference: strings.TrimSpace(input.BillingReference),
		UpdatedAt:        timeNow(),
	}
	if err := uc.subscriptionRepo.Upsert(ctx, sub); err != nil {
		return nil, errors.Internal("Failed to update subscription", err)
	}
	sub.Plan = plan

	uc.activity.Record(ctx, session, entity.ActionUpdateSubscription, vendorID,
		fmt.Sprintf("Updated subscription for %s to %s", vendor.DisplayName(), plan.Name))

	return sub, nil
}

func (uc *SubscriptionUseCase) ROIReport(ctx context.Context, vendorID string) (*entity.ROIReport, error) {
	report, err := uc.subscriptionRepo.GetROIReport(ctx, vendorID)
	if err != nil {
		logger.LogReadDegraded("roi report", err)
		return &entity.ROIReport{VendorID: vendorID}, nil
	}
	return report, nil
}

// HasPaidPlan reports whether the vendor is subscribed to a plan other than
// the free tier.
func (uc *SubscriptionUseCase) HasPaidPlan(ctx context.Context, vendorID string) bool {
	sub, _ := uc.SellerSubscription(ctx, vendorID)
	return sub != nil && sub.PlanID != "" && sub.PlanID != entity.FreePlanID
}
