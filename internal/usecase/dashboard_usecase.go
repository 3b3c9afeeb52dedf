package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/workflow"
	"fad/pkg/logger"
)

type DashboardUseCase struct {
	vendorRepo    repository.VendorRepository
	listingRepo   repository.ListingRepository
	reviewRepo    repository.ReviewRepository
	complaintRepo repository.ComplaintRepository
	activity      *ActivityUseCase
	statsCache    StatsCache
}

func NewDashboardUseCase(
	vendorRepo repository.VendorRepository,
	listingRepo repository.ListingRepository,
	reviewRepo repository.ReviewRepository,
	complaintRepo repository.ComplaintRepository,
	activity *ActivityUseCase,
	statsCache StatsCache,
) *DashboardUseCase {
	return &DashboardUseCase{
		vendorRepo:    vendorRepo,
		listingRepo:   listingRepo,
		reviewRepo:    reviewRepo,
		complaintRepo: complaintRepo,
		activity:      activity,
		statsCache:    statsCache,
	}
}

// Dashboard returns the admin overview. Counts come from the cache when it
// is warm. A failed count shows as zero.
func (uc *DashboardUseCase) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	stats, err := uc.Stats(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := uc.activity.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return &entity.Dashboard{
		Stats:          *stats,
		RecentActivity: recent,
		GeneratedAt:    timeNow(),
	}, nil
}

func (uc *DashboardUseCase) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	var generation int64
	if uc.statsCache != nil {
		cached, gen, ok := uc.statsCache.GetStats(ctx)
		if ok {
			return cached, nil
		}
		generation = gen
	}

	var stats entity.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	countInto := func(name string, dst *int64, count func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := count(gctx)
			if err != nil {
				logger.LogReadDegraded(name, err)
				return nil
			}
			*dst = n
			return nil
		})
	}

	countInto("pending verifications", &stats.PendingVerifications, func(ctx context.Context) (int64, error) {
		return uc.vendorRepo.CountByStatus(ctx, workflow.VendorPending)
	})
	countInto("pending listings", &stats.PendingListings, func(ctx context.Context) (int64, error) {
		return uc.listingRepo.CountByStatus(ctx, workflow.ListingPendingReview)
	})
	countInto("flagged reviews", &stats.FlaggedReviews, uc.reviewRepo.CountFlagged)
	countInto("open complaints", &stats.OpenComplaints, func(ctx context.Context) (int64, error) {
		return uc.complaintRepo.CountByStatus(ctx, workflow.ComplaintOpen)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if uc.statsCache != nil {
		uc.statsCache.SetStats(ctx, &stats, generation)
	}
	return &stats, nil
}
