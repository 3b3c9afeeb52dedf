package usecase

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/workflow"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

const (
	dripScoreHistoryLimit = 10
	defaultLatestScore    = 4.5
)

type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	certRepo      repository.CertificationRepository
	complaintRepo repository.ComplaintRepository
	vendorRepo    repository.VendorRepository
	classifier    *workflow.Classifier
}

func NewAnalyticsUseCase(
	analyticsRepo repository.AnalyticsRepository,
	certRepo repository.CertificationRepository,
	complaintRepo repository.ComplaintRepository,
	vendorRepo repository.VendorRepository,
	classifier *workflow.Classifier,
) *AnalyticsUseCase {
	if classifier == nil {
		classifier = workflow.DefaultClassifier()
	}
	return &AnalyticsUseCase{
		analyticsRepo: analyticsRepo,
		certRepo:      certRepo,
		complaintRepo: complaintRepo,
		vendorRepo:    vendorRepo,
		classifier:    classifier,
	}
}

// SellerAnalytics builds the seller insight page. Each source is read
// independently and a failed read leaves its section empty.
func (uc *AnalyticsUseCase) SellerAnalytics(ctx context.Context, vendorID string) (*entity.SellerAnalytics, error) {
	if _, err := uc.vendorRepo.GetByID(ctx, vendorID); err != nil {
		return nil, errors.NotFound("Vendor", err)
	}

	var (
		cert     *entity.Certification
		tickets  []*entity.ComplaintTicket
		delivery []*entity.DeliveryMetric
		history  []*entity.DripScorePoint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := uc.certRepo.GetByVendorID(gctx, vendorID)
		if err == nil {
			cert = c
		}
		return nil
	})
	g.Go(func() error {
		t, err := uc.complaintRepo.List(gctx, repository.ComplaintFilter{VendorID: vendorID})
		if err != nil {
			logger.LogReadDegraded("seller complaints", err)
			return nil
		}
		tickets = t
		return nil
	})
	g.Go(func() error {
		d, err := uc.analyticsRepo.ListDeliveryMetrics(gctx, vendorID)
		if err != nil {
			logger.LogReadDegraded("delivery metrics", err)
			return nil
		}
		delivery = d
		return nil
	})
	g.Go(func() error {
		h, err := uc.analyticsRepo.ListDripScoreHistory(gctx, vendorID, dripScoreHistoryLimit)
		if err != nil {
			logger.LogReadDegraded("drip score history", err)
			return nil
		}
		history = h
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := timeNow()
	out := &entity.SellerAnalytics{
		VerificationStatus: "Unverified",
		RenewalStatus:      workflow.DerivedCertificationStatus(cert, now),
		ComplaintTypes:     uc.complaintTypes(tickets),
		DeliveryTime:       make([]entity.SeriesPoint, 0, len(delivery)),
		DripScoreHistory:   make([]entity.SeriesPoint, 0, len(history)),
		ResponseRate:       responseRate(tickets),
	}
	if cert != nil {
		out.VerificationStatus = "Verified"
	}

	for _, t := range tickets {
		if t.Status == workflow.ComplaintOpen || t.Status == workflow.ComplaintInReview {
			out.ActiveComplaints++
		}
	}
	for _, d := range delivery {
		out.DeliveryTime = append(out.DeliveryTime, entity.SeriesPoint{Name: d.WeekLabel, Value: d.AvgDeliveryDays})
	}
	for _, h := range history {
		out.DripScoreHistory = append(out.DripScoreHistory, entity.SeriesPoint{Name: h.PeriodLabel, Value: h.Score})
	}

	latest := defaultLatestScore
	if len(history) > 0 {
		latest = history[len(history)-1].Score
	}
	out.Satisfaction = int(math.Round(latest / 5 * 100))

	return out, nil
}

// complaintTypes counts tickets per classifier label, in display order. Only
// the issue summary is classified.
func (uc *AnalyticsUseCase) complaintTypes(tickets []*entity.ComplaintTicket) []entity.SeriesPoint {
	counts := make(map[string]int)
	for _, t := range tickets {
		counts[uc.classifier.Classify(t.IssueSummary)]++
	}

	out := make([]entity.SeriesPoint, 0, len(counts))
	for _, label := range uc.classifier.Labels() {
		out = append(out, entity.SeriesPoint{Name: label, Value: float64(counts[label])})
	}
	return out
}

// responseRate is the share of tickets that left Open, as a percentage.
func responseRate(tickets []*entity.ComplaintTicket) int {
	if len(tickets) == 0 {
		return 100
	}
	answered := 0
	for _, t := range tickets {
		if t.Status != workflow.ComplaintOpen {
			answered++
		}
	}
	return int(math.Round(float64(answered) / float64(len(tickets)) * 100))
}
