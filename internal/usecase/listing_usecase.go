package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/workflow"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	vendorRepo  repository.VendorRepository
	activity    *ActivityUseCase
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	vendorRepo repository.VendorRepository,
	activity *ActivityUseCase,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		vendorRepo:  vendorRepo,
		activity:    activity,
	}
}

type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Images      []string
}

// vendorNames resolves display names for a set of vendor ids. Missing
// vendors get the unknown label.
func vendorNames(ctx context.Context, repo repository.VendorRepository, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if _, ok := names[id]; ok {
			continue
		}
		vendor, err := repo.GetByID(ctx, id)
		if err != nil {
			vendor = nil
		}
		names[id] = vendor.DisplayName()
	}
	return names
}

// ListListings returns listings for a UI filter, each with its seller name.
func (uc *ListingUseCase) ListListings(ctx context.Context, status string) ([]*entity.Listing, error) {
	statuses, err := workflow.ListingStatus.StorageFilter(status)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	return uc.list(ctx, repository.ListingFilter{Statuses: statuses}), nil
}

func (uc *ListingUseCase) PendingListings(ctx context.Context) ([]*entity.Listing, error) {
	return uc.list(ctx, repository.ListingFilter{Statuses: []string{workflow.ListingPendingReview}}), nil
}

func (uc *ListingUseCase) list(ctx context.Context, filter repository.ListingFilter) []*entity.Listing {
	listings, err := uc.listingRepo.List(ctx, filter)
	if err != nil {
		logger.LogReadDegraded("listings", err)
		return []*entity.Listing{}
	}

	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.VendorID)
	}
	names := vendorNames(ctx, uc.vendorRepo, ids)
	for _, l := range listings {
		l.SellerName = names[l.VendorID]
	}
	return listings
}

func (uc *ListingUseCase) ApproveListing(ctx context.Context, session *entity.Session, id string, expected *time.Time) (*entity.Listing, error) {
	return uc.moderate(ctx, session, id, workflow.ListingApproved, "", expected)
}

func (uc *ListingUseCase) RejectListing(ctx context.Context, session *entity.Session, id, reason string, expected *time.Time) (*entity.Listing, error) {
	return uc.moderate(ctx, session, id, workflow.ListingRejected, strings.TrimSpace(reason), expected)
}

func (uc *ListingUseCase) moderate(ctx context.Context, session *entity.Session, id, target, notes string, expected *time.Time) (*entity.Listing, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Listing", err)
	}
	if err := checkFresh("Listing", expected, listing.UpdatedAt, listing); err != nil {
		return nil, err
	}
	if !workflow.ListingTransitions.CanTransition(listing.ModerationStatus, target) {
		return nil, errors.InvalidTransition("listing", listing.ModerationStatus, target)
	}

	if !workflow.ListingTransitions.IsNoop(listing.ModerationStatus, target) || (notes != "" && notes != listing.AdminNotes) {
		stored := listing.UpdatedAt
		listing.ModerationStatus = target
		if notes != "" {
			listing.AdminNotes = notes
		}
		listing.UpdatedAt = timeNow()
		if err := uc.listingRepo.Update(ctx, listing, &stored); err != nil {
			return nil, err
		}
	}

	action := entity.ActionApproveListing
	details := fmt.Sprintf("Approved listing: %s", listing.Title)
	if target == workflow.ListingRejected {
		action = entity.ActionRejectListing
		details = fmt.Sprintf("Rejected listing: %s", listing.Title)
		if notes != "" {
			details += ". Reason: " + notes
		}
	}
	uc.activity.Record(ctx, session, action, id, details)

	return listing, nil
}

// CreateListing submits a listing for review. Only vendors can list items.
func (uc *ListingUseCase) CreateListing(ctx context.Context, session *entity.Session, input CreateListingInput) (*entity.Listing, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, session.UID)
	if err != nil {
		return nil, errors.Forbidden("Only vendors can create listings", err)
	}

	now := timeNow()
	listing := &entity.Listing{
		ID:               uuid.New().String(),
		VendorID:         vendor.ID,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		Price:            input.Price,
		Category:         input.Category,
		Images:           input.Images,
		ModerationStatus: workflow.ListingPendingReview,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, errors.Internal("Failed to create listing", err)
	}
	listing.SellerName = vendor.DisplayName()

	uc.activity.InvalidateDashboard(ctx)
	return listing, nil
}

func (uc *ListingUseCase) MyListings(ctx context.Context, session *entity.Session) ([]*entity.Listing, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	return uc.list(ctx, repository.ListingFilter{VendorID: session.UID}), nil
}
