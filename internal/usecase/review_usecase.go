package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/workflow"
	"fad/internal/infrastructure/ratelimit"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

const ReviewFilterFlagged = "flagged"

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	vendorRepo  repository.VendorRepository
	profileRepo repository.ProfileRepository
	limiter     ActionLimiter
	activity    *ActivityUseCase
	autoPublish bool
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	vendorRepo repository.VendorRepository,
	profileRepo repository.ProfileRepository,
	limiter ActionLimiter,
	activity *ActivityUseCase,
	autoPublish bool,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		vendorRepo:  vendorRepo,
		profileRepo: profileRepo,
		limiter:     limiter,
		activity:    activity,
		autoPublish: autoPublish,
	}
}

type SubmitReviewInput struct {
	VendorID      string
	Rating        int
	Body          string
	DetailRatings map[string]int
	Images        []string
}

func allow(limiter ActionLimiter, key, action string) error {
	if limiter == nil {
		return nil
	}
	if ok, wait := limiter.Allow(key, action); !ok {
		return errors.TooManyRequests(fmt.Sprintf("Too many requests, try again in %s", wait.Round(time.Second)))
	}
	return nil
}

func (uc *ReviewUseCase) SubmitReview(ctx context.Context, session *entity.Session, input SubmitReviewInput) (*entity.Review, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	for aspect, r := range input.DetailRatings {
		if r < 1 || r > 5 {
			return nil, errors.BadRequest(fmt.Sprintf("Rating for %s must be between 1 and 5", aspect), nil)
		}
	}
	if err := allow(uc.limiter, session.UID, ratelimit.ActionSubmitReview); err != nil {
		return nil, err
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, errors.NotFound("Vendor", err)
	}

	reviewerName := "Anonymous"
	if profile, err := uc.profileRepo.GetByID(ctx, session.UID); err == nil {
		if profile.Username != "" {
			reviewerName = profile.Username
		} else if profile.FullName != "" {
			reviewerName = profile.FullName
		}
	}

	status := workflow.ReviewPending
	if uc.autoPublish {
		status = workflow.ReviewPublished
	}

	now := timeNow()
	review := &entity.Review{
		ID:               uuid.New().String(),
		VendorID:         vendor.ID,
		ReviewerID:       session.UID,
		ReviewerName:     reviewerName,
		Rating:           input.Rating,
		Body:             strings.TrimSpace(input.Body),
		DetailRatings:    input.DetailRatings,
		Images:           input.Images,
		ModerationStatus: status,
		CreatedAt:        now,
		UpdatedAt:        now,
		VendorName:       vendor.DisplayName(),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Internal("Failed to submit review", err)
	}

	if status == workflow.ReviewPublished {
		uc.recomputeRating(ctx, vendor.ID)
	}
	uc.activity.InvalidateDashboard(ctx)

	return review, nil
}

// VendorReviews returns the reviews shown on a vendor page, newest first.
func (uc *ReviewUseCase) VendorReviews(ctx context.Context, vendorID string) ([]*entity.Review, error) {
	reviews, err := uc.reviewRepo.List(ctx, repository.ReviewFilter{
		VendorID: vendorID,
		Statuses: []string{workflow.ReviewPublished, workflow.ReviewRemoved},
	})
	if err != nil {
		logger.LogReadDegraded("reviews", err)
		return []*entity.Review{}, nil
	}
	return reviews, nil
}

// ModerationQueue lists reviews for moderators. The filter is "flagged",
// "all" or a review status.
func (uc *ReviewUseCase) ModerationQueue(ctx context.Context, filter string) ([]*entity.Review, error) {
	var repoFilter repository.ReviewFilter
	if filter == ReviewFilterFlagged {
		repoFilter.FlaggedOnly = true
	} else {
		statuses, err := workflow.ReviewStatus.StorageFilter(filter)
		if err != nil {
			return nil, errors.BadRequest(err.Error(), err)
		}
		repoFilter.Statuses = statuses
	}

	reviews, err := uc.reviewRepo.List(ctx, repoFilter)
	if err != nil {
		logger.LogReadDegraded("reviews", err)
		return []*entity.Review{}, nil
	}

	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.VendorID)
	}
	names := vendorNames(ctx, uc.vendorRepo, ids)
	for _, r := range reviews {
		r.VendorName = names[r.VendorID]
	}
	return reviews, nil
}

// FlagReview records a report against a review. It does not change the
// moderation status.
func (uc *ReviewUseCase) FlagReview(ctx context.Context, session *entity.Session, id, reason string) (*entity.Review, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errors.BadRequest("Flag reason is required", nil)
	}

	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Review", err)
	}

	stored := review.UpdatedAt
	review.IsFlagged = true
	review.FlagReason = reason
	review.UpdatedAt = timeNow()
	if err := uc.reviewRepo.Update(ctx, review, &stored); err != nil {
		return nil, err
	}

	uc.activity.InvalidateDashboard(ctx)
	return review, nil
}

func (uc *ReviewUseCase) PublishReview(ctx context.Context, session *entity.Session, id string, expected *time.Time) (*entity.Review, error) {
	return uc.moderate(ctx, session, id, expected, reviewMove{
		target: workflow.ReviewPublished,
		action: entity.ActionPublishReview,
		verb:   "Published",
	})
}

func (uc *ReviewUseCase) RemoveReview(ctx context.Context, session *entity.Session, id string, expected *time.Time) (*entity.Review, error) {
	return uc.moderate(ctx, session, id, expected, reviewMove{
		target:    workflow.ReviewRemoved,
		action:    entity.ActionRemoveReview,
		verb:      "Removed",
		clearFlag: true,
	})
}

func (uc *ReviewUseCase) RestoreReview(ctx context.Context, session *entity.Session, id string, expected *time.Time) (*entity.Review, error) {
	return uc.moderate(ctx, session, id, expected, reviewMove{
		target: workflow.ReviewPublished,
		action: entity.ActionRestoreReview,
		verb:   "Restored",
		from:   []string{workflow.ReviewRemoved, workflow.ReviewPublished},
	})
}

// MarkSafe publishes the review and clears its flag.
func (uc *ReviewUseCase) MarkSafe(ctx context.Context, session *entity.Session, id string, expected *time.Time) (*entity.Review, error) {
	return uc.moderate(ctx, session, id, expected, reviewMove{
		target:    workflow.ReviewPublished,
		action:    entity.ActionMarkReviewSafe,
		verb:      "Marked safe",
		clearFlag: true,
	})
}

type reviewMove struct {
	target    string
	action    string
	verb      string
	clearFlag bool
	// from restricts the starting statuses beyond the transition table.
	from []string
}

func (uc *ReviewUseCase) moderate(ctx context.Context, session *entity.Session, id string, expected *time.Time, move reviewMove) (*entity.Review, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Review", err)
	}
	if err := checkFresh("Review", expected, review.UpdatedAt, review); err != nil {
		return nil, err
	}

	from := review.ModerationStatus
	if !workflow.ReviewTransitions.CanTransition(from, move.target) || (move.from != nil && !contains(move.from, from)) {
		return nil, errors.InvalidTransition("review", from, move.target)
	}

	changed := from != move.target || (move.clearFlag && (review.IsFlagged || review.FlagReason != ""))
	if changed {
		stored := review.UpdatedAt
		review.ModerationStatus = move.target
		if move.clearFlag {
			review.IsFlagged = false
			review.FlagReason = ""
		}
		review.UpdatedAt = timeNow()
		if err := uc.reviewRepo.Update(ctx, review, &stored); err != nil {
			return nil, err
		}
	}

	if from != move.target && (from == workflow.ReviewPublished || move.target == workflow.ReviewPublished) {
		uc.recomputeRating(ctx, review.VendorID)
	}

	uc.activity.Record(ctx, session, move.action, id,
		fmt.Sprintf("%s review by %s", move.verb, review.ReviewerName))

	return review, nil
}

// recomputeRating refreshes the vendor's aggregate from its published
// reviews. Failures leave the previous aggregate in place.
func (uc *ReviewUseCase) recomputeRating(ctx context.Context, vendorID string) {
	reviews, err := uc.reviewRepo.List(ctx, repository.ReviewFilter{
		VendorID: vendorID,
		Statuses: []string{workflow.ReviewPublished},
	})
	if err != nil {
		logger.LogSideEffectError("recompute_rating", vendorID, err)
		return
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		logger.LogSideEffectError("recompute_rating", vendorID, err)
		return
	}

	stored := vendor.UpdatedAt
	vendor.Rating, vendor.ReviewCount = averageRating(reviews)
	vendor.UpdatedAt = timeNow()
	if err := uc.vendorRepo.Update(ctx, vendor, &stored); err != nil {
		logger.LogSideEffectError("recompute_rating", vendorID, err)
	}
}

// averageRating is rounded to one decimal.
func averageRating(reviews []*entity.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return math.Round(avg*10) / 10, len(reviews)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
