package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/workflow"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

const (
	defaultTopRated = 6
	filterAllLabel  = "All"
)

type VendorUseCase struct {
	vendorRepo    repository.VendorRepository
	certRepo      repository.CertificationRepository
	reviewRepo    repository.ReviewRepository
	complaintRepo repository.ComplaintRepository
	files         *FileUseCase
	activity      *ActivityUseCase
}

func NewVendorUseCase(
	vendorRepo repository.VendorRepository,
	certRepo repository.CertificationRepository,
	reviewRepo repository.ReviewRepository,
	complaintRepo repository.ComplaintRepository,
	files *FileUseCase,
	activity *ActivityUseCase,
) *VendorUseCase {
	return &VendorUseCase{
		vendorRepo:    vendorRepo,
		certRepo:      certRepo,
		reviewRepo:    reviewRepo,
		complaintRepo: complaintRepo,
		files:         files,
		activity:      activity,
	}
}

// DiscoverFilter narrows the public vendor directory. Empty or "All" values
// do not filter. Score is compared with the rounded DripScore.
type DiscoverFilter struct {
	Query    string
	Category string
	Location string
	Score    string
}

type DiscoverFacets struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

func (uc *VendorUseCase) listAll(ctx context.Context, filter repository.VendorFilter) []*entity.Vendor {
	vendors, err := uc.vendorRepo.List(ctx, filter)
	if err != nil {
		logger.LogReadDegraded("vendors", err)
		return []*entity.Vendor{}
	}
	return vendors
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, filterAllLabel)
}

// Discover returns vendors newest first. The query and every filter must
// match.
func (uc *VendorUseCase) Discover(ctx context.Context, filter DiscoverFilter) ([]*entity.Vendor, error) {
	score := -1
	if !isAll(filter.Score) {
		s, err := strconv.Atoi(filter.Score)
		if err != nil {
			return nil, errors.BadRequest("Score filter must be a whole number", err)
		}
		score = s
	}

	vendors := uc.listAll(ctx, repository.VendorFilter{})
	sort.SliceStable(vendors, func(i, j int) bool {
		return vendors[i].CreatedAt.After(vendors[j].CreatedAt)
	})

	query := strings.ToLower(filter.Query)
	out := make([]*entity.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if query != "" &&
			!strings.Contains(strings.ToLower(v.DisplayName()), query) &&
			!strings.Contains(strings.ToLower(v.InstagramHandle), query) {
			continue
		}
		if !isAll(filter.Category) && v.Category != filter.Category {
			continue
		}
		if !isAll(filter.Location) && v.Location != filter.Location {
			continue
		}
		if score >= 0 && int(math.Round(v.DripScore)) != score {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Facets lists the distinct categories and locations, each led by "All".
func (uc *VendorUseCase) Facets(ctx context.Context) (*DiscoverFacets, error) {
	vendors := uc.listAll(ctx, repository.VendorFilter{})

	categories := map[string]bool{}
	locations := map[string]bool{}
	for _, v := range vendors {
		if v.Category != "" {
			categories[v.Category] = true
		}
		if v.Location != "" {
			locations[v.Location] = true
		}
	}

	return &DiscoverFacets{
		Categories: withAll(categories),
		Locations:  withAll(locations),
	}, nil
}

func withAll(set map[string]bool) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{filterAllLabel}, values...)
}

func (uc *VendorUseCase) TopRated(ctx context.Context, limit int) ([]*entity.Vendor, error) {
	if limit <= 0 {
		limit = defaultTopRated
	}

	vendors := uc.listAll(ctx, repository.VendorFilter{})
	sort.SliceStable(vendors, func(i, j int) bool {
		return vendors[i].DripScore > vendors[j].DripScore
	})
	if len(vendors) > limit {
		vendors = vendors[:limit]
	}
	return vendors, nil
}

func (uc *VendorUseCase) GetVendor(ctx context.Context, id string) (*entity.Vendor, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Vendor", err)
	}
	return vendor, nil
}

// VendorProfile assembles the public vendor page.
func (uc *VendorUseCase) VendorProfile(ctx context.Context, id string) (*entity.VendorProfile, error) {
	vendor, err := uc.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &entity.VendorProfile{
		Vendor:              vendor,
		CertificationStatus: workflow.CertNotCertified,
		Reviews:             []*entity.Review{},
	}

	if cert, err := uc.certRepo.GetByVendorID(ctx, id); err == nil {
		profile.CertificationStatus = workflow.DerivedCertificationStatus(cert, timeNow())
	}

	reviews, err := uc.reviewRepo.List(ctx, repository.ReviewFilter{
		VendorID: id,
		Statuses: []string{workflow.ReviewPublished, workflow.ReviewRemoved},
	})
	if err != nil {
		logger.LogReadDegraded("vendor reviews", err)
	} else {
		profile.Reviews = reviews
	}

	tickets, err := uc.complaintRepo.List(ctx, repository.ComplaintFilter{VendorID: id})
	if err != nil {
		logger.LogReadDegraded("vendor complaints", err)
	}
	for _, t := range tickets {
		if t.Status == workflow.ComplaintResolved {
			profile.ResolvedComplaints++
		} else {
			profile.OpenComplaints++
		}
	}

	return profile, nil
}

// GetVerifications lists the verification queue, oldest submission first.
// The all filter leaves out vendors that never submitted documents.
func (uc *VendorUseCase) GetVerifications(ctx context.Context, status string) ([]*entity.Vendor, error) {
	statuses, err := workflow.VendorStatus.StorageFilter(status)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	if statuses == nil {
		statuses = []string{workflow.VendorPending, workflow.VendorVerified, workflow.VendorRejected}
	}

	vendors := uc.listAll(ctx, repository.VendorFilter{Statuses: statuses})
	sort.SliceStable(vendors, func(i, j int) bool {
		return submittedAt(vendors[i]).Before(submittedAt(vendors[j]))
	})
	return vendors, nil
}

func submittedAt(v *entity.Vendor) time.Time {
	if v.VerificationSubmittedAt != nil {
		return *v.VerificationSubmittedAt
	}
	return v.CreatedAt
}

// transitionVendor loads the vendor and checks the move. It returns the
// vendor and whether the move is a no-op.
func (uc *VendorUseCase) transitionVendor(ctx context.Context, id, target string, expected *time.Time) (*entity.Vendor, bool, error) {
	vendor, err := uc.GetVendor(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if err := checkFresh("Vendor", expected, vendor.UpdatedAt, vendor); err != nil {
		return nil, false, err
	}
	if !workflow.VendorTransitions.CanTransition(vendor.VerificationStatus, target) {
		return nil, false, errors.InvalidTransition("vendor", vendor.VerificationStatus, target)
	}
	return vendor, workflow.VendorTransitions.IsNoop(vendor.VerificationStatus, target), nil
}

// ApproveVendor verifies the vendor and issues its certification if it has
// none. Repeated approvals change nothing but are still logged.
func (uc *VendorUseCase) ApproveVendor(ctx context.Context, session *entity.Session, id string, expected *time.Time) (*entity.Vendor, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	vendor, noop, err := uc.transitionVendor(ctx, id, workflow.VendorVerified, expected)
	if err != nil {
		return nil, err
	}

	previous := *vendor
	now := timeNow()
	certifiedOn, expiresOn := workflow.RenewalWindow(now)
	cert := &entity.Certification{
		ID:          id,
		VendorID:    id,
		CertifiedOn: certifiedOn,
		ExpiresOn:   expiresOn,
		Status:      workflow.CertificationActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saga := NewSaga("approve_vendor")
	if !noop {
		saga.Step("update_vendor", func(ctx context.Context) error {
			vendor.VerificationStatus = workflow.VendorVerified
			vendor.RejectionReason = ""
			vendor.UpdatedAt = now
			return uc.vendorRepo.Update(ctx, vendor, &previous.UpdatedAt)
		}, func(ctx context.Context) error {
			return uc.vendorRepo.Update(ctx, &previous, &now)
		})
	}
	saga.Step("ensure_certification", func(ctx context.Context) error {
		_, err := uc.certRepo.CreateIfAbsent(ctx, cert)
		return err
	}, nil)

	if err := saga.Execute(ctx); err != nil {
		return nil, sagaFailure(err)
	}

	uc.activity.Record(ctx, session, entity.ActionVerifyVendor, id,
		fmt.Sprintf("Verified vendor: %s", vendor.DisplayName()))

	return vendor, nil
}

func (uc *VendorUseCase) RejectVendor(ctx context.Context, session *entity.Session, id, reason string, expected *time.Time) (*entity.Vendor, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errors.BadRequest("Rejection reason is required", nil)
	}

	vendor, noop, err := uc.transitionVendor(ctx, id, workflow.VendorRejected, expected)
	if err != nil {
		return nil, err
	}

	if !noop || vendor.RejectionReason != reason {
		stored := vendor.UpdatedAt
		vendor.VerificationStatus = workflow.VendorRejected
		vendor.RejectionReason = reason
		vendor.UpdatedAt = timeNow()
		if err := uc.vendorRepo.Update(ctx, vendor, &stored); err != nil {
			return nil, err
		}
	}

	uc.activity.Record(ctx, session, entity.ActionRejectVendor, id,
		fmt.Sprintf("Rejected vendor: %s. Reason: %s", vendor.DisplayName(), reason))

	return vendor, nil
}

// SubmitDocuments attaches verification documents to the caller's vendor
// and puts it in the verification queue.
func (uc *VendorUseCase) SubmitDocuments(ctx context.Context, session *entity.Session, files []FileInput, expected *time.Time) (*entity.Vendor, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.BadRequest("At least one document is required", nil)
	}

	vendor, err := uc.GetVendor(ctx, session.UID)
	if err != nil {
		return nil, err
	}
	if err := checkFresh("Vendor", expected, vendor.UpdatedAt, vendor); err != nil {
		return nil, err
	}
	if !workflow.VendorTransitions.CanTransition(vendor.VerificationStatus, workflow.VendorPending) {
		return nil, errors.InvalidTransition("vendor", vendor.VerificationStatus, workflow.VendorPending)
	}

	uploaded := make([]*entity.FileMetadata, 0, len(files))
	discard := func() {
		for _, f := range uploaded {
			uc.files.Discard(ctx, f)
		}
	}

	for _, file := range files {
		metadata, err := uc.files.Store(ctx, session, file, entity.FileEntityVendorDocument, vendor.ID,
			"vendor-documents/"+vendor.ID, "")
		if err != nil {
			discard()
			return nil, err
		}
		uploaded = append(uploaded, metadata)
		vendor.Documents = append(vendor.Documents, entity.VendorDocument{
			Name: metadata.Filename,
			Type: metadata.FileType,
			URL:  metadata.URL,
		})
	}

	stored := vendor.UpdatedAt
	now := timeNow()
	vendor.VerificationStatus = workflow.VendorPending
	vendor.VerificationSubmittedAt = &now
	vendor.RejectionReason = ""
	vendor.UpdatedAt = now

	if err := uc.vendorRepo.Update(ctx, vendor, &stored); err != nil {
		discard()
		return nil, err
	}

	uc.activity.InvalidateDashboard(ctx)
	return vendor, nil
}

// VendorDocuments lists the stored uploads behind a vendor's documents,
// including object names and sizes the vendor record does not carry.
func (uc *VendorUseCase) VendorDocuments(ctx context.Context, id string) ([]*entity.FileMetadata, error) {
	if _, err := uc.GetVendor(ctx, id); err != nil {
		return nil, err
	}
	return uc.files.ListFiles(ctx, entity.FileEntityVendorDocument, id)
}

func summaries(vendors []*entity.Vendor) []entity.VendorSummary {
	out := make([]entity.VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, entity.VendorSummary{ID: v.ID, Name: v.DisplayName()})
	}
	return out
}

// SubscriptionSellers lists every vendor newest first for the plan editor.
func (uc *VendorUseCase) SubscriptionSellers(ctx context.Context) ([]entity.VendorSummary, error) {
	vendors := uc.listAll(ctx, repository.VendorFilter{})
	sort.SliceStable(vendors, func(i, j int) bool {
		return vendors[i].CreatedAt.After(vendors[j].CreatedAt)
	})
	return summaries(vendors), nil
}

// AnalyticsSellers lists every vendor by name for the analytics picker.
func (uc *VendorUseCase) AnalyticsSellers(ctx context.Context) ([]entity.VendorSummary, error) {
	out := summaries(uc.listAll(ctx, repository.VendorFilter{}))
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
