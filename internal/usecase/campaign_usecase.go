package usecase

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/workflow"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

const (
	CampaignActive = "Active"

	defaultStoreName    = "My Store"
	defaultSellerName   = "Seller"
	defaultCampaignName = "Untitled Campaign"
)

var (
	campaignGoals     = []string{"Visits", "Followers", "Sales"}
	campaignDurations = []int{3, 7, 14, 30}
)

// CampaignUseCase covers seller onboarding and promotion campaigns. Both
// write across profiles, vendors and campaigns as compensated sagas.
type CampaignUseCase struct {
	campaignRepo  repository.CampaignRepository
	profileRepo   repository.ProfileRepository
	vendorRepo    repository.VendorRepository
	subscriptions *SubscriptionUseCase
}

func NewCampaignUseCase(
	campaignRepo repository.CampaignRepository,
	profileRepo repository.ProfileRepository,
	vendorRepo repository.VendorRepository,
	subscriptions *SubscriptionUseCase,
) *CampaignUseCase {
	return &CampaignUseCase{
		campaignRepo:  campaignRepo,
		profileRepo:   profileRepo,
		vendorRepo:    vendorRepo,
		subscriptions: subscriptions,
	}
}

type OnboardInput struct {
	FullName        string
	BusinessName    string
	InstagramHandle string
	Category        string
	Location        string
	Phone           string
	Description     string
}

type LaunchCampaignInput struct {
	OnboardInput
	Name         string
	DailyBudget  float64
	DurationDays int
	Goal         string
}

// storeDefaults fills the vendor fields a seller may leave blank.
func storeDefaults(session *entity.Session, input OnboardInput) (name, handle, gstin string) {
	name = strings.TrimSpace(input.BusinessName)
	if name == "" {
		name = strings.TrimSpace(input.FullName)
	}
	if name == "" {
		if at := strings.Index(session.Email, "@"); at > 0 {
			name = session.Email[:at]
		}
	}
	if name == "" {
		name = defaultStoreName
	}

	handle = strings.TrimSpace(input.InstagramHandle)
	if handle == "" {
		handle = strings.ToLower(strings.ReplaceAll(name, " ", ""))
	}
	handle = strings.TrimPrefix(handle, "@")

	var b strings.Builder
	for _, r := range session.UID {
		if b.Len() == 10 {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	gstin = "GSTIN-" + strings.ToUpper(b.String())

	return name, handle, gstin
}

// profileStep makes sure the caller has a vendor profile. Only changes made
// here are undone.
func (uc *CampaignUseCase) profileStep(session *entity.Session, input OnboardInput) (func(context.Context) error, func(context.Context) error) {
	var (
		created  bool
		previous *entity.Profile
	)

	run := func(ctx context.Context) error {
		existing, err := uc.profileRepo.GetByID(ctx, session.UID)
		if err != nil {
			if !errors.Is(err, errors.CodeNotFound) {
				return err
			}
			fullName := strings.TrimSpace(input.FullName)
			if fullName == "" {
				fullName = defaultSellerName
			}
			now := timeNow()
			if err := uc.profileRepo.Create(ctx, &entity.Profile{
				ID:        session.UID,
				Email:     session.Email,
				FullName:  fullName,
				Role:      entity.RoleVendor,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
			created = true
			return nil
		}

		if existing.Role == entity.RoleVendor || existing.Role == entity.RoleAdmin {
			return nil
		}
		snapshot := *existing
		previous = &snapshot
		existing.Role = entity.RoleVendor
		return uc.profileRepo.Update(ctx, existing)
	}

	compensate := func(ctx context.Context) error {
		switch {
		case created:
			return uc.profileRepo.Delete(ctx, session.UID)
		case previous != nil:
			return uc.profileRepo.Update(ctx, previous)
		}
		return nil
	}

	return run, compensate
}

// vendorStep makes sure the caller has a vendor row and stores it in out.
func (uc *CampaignUseCase) vendorStep(session *entity.Session, input OnboardInput, out **entity.Vendor) (func(context.Context) error, func(context.Context) error) {
	var created bool

	run := func(ctx context.Context) error {
		existing, err := uc.vendorRepo.GetByID(ctx, session.UID)
		if err == nil {
			*out = existing
			return nil
		}
		if !errors.Is(err, errors.CodeNotFound) {
			return err
		}

		name, handle, gstin := storeDefaults(session, input)
		now := timeNow()
		vendor := &entity.Vendor{
			ID:                 session.UID,
			BusinessName:       name,
			InstagramHandle:    handle,
			InstagramURL:       "https://instagram.com/" + handle,
			Email:              session.Email,
			Phone:              strings.TrimSpace(input.Phone),
			GSTIN:              gstin,
			Category:           strings.TrimSpace(input.Category),
			Location:           strings.TrimSpace(input.Location),
			Description:        strings.TrimSpace(input.Description),
			VerificationStatus: workflow.VendorUnverified,
			Documents:          []entity.VendorDocument{},
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := uc.vendorRepo.Create(ctx, vendor); err != nil {
			return err
		}
		created = true
		*out = vendor
		return nil
	}

	compensate := func(ctx context.Context) error {
		if !created {
			return nil
		}
		return uc.vendorRepo.Delete(ctx, session.UID)
	}

	return run, compensate
}

// Onboard turns the caller into a seller: a vendor profile and an
// unverified vendor row.
func (uc *CampaignUseCase) Onboard(ctx context.Context, session *entity.Session, input OnboardInput) (*entity.Vendor, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	var vendor *entity.Vendor
	profileRun, profileUndo := uc.profileStep(session, input)
	vendorRun, vendorUndo := uc.vendorStep(session, input, &vendor)

	err := NewSaga("onboard").
		Step("ensure_profile", profileRun, profileUndo).
		Step("ensure_vendor", vendorRun, vendorUndo).
		Execute(ctx)
	if err != nil {
		return nil, sagaFailure(err)
	}
	return vendor, nil
}

func validateCampaign(input LaunchCampaignInput) error {
	if !contains(campaignGoals, input.Goal) {
		return errors.BadRequest("Goal must be one of Visits, Followers or Sales", nil)
	}
	valid := false
	for _, d := range campaignDurations {
		if input.DurationDays == d {
			valid = true
			break
		}
	}
	if !valid {
		return errors.BadRequest("Duration must be 3, 7, 14 or 30 days", nil)
	}
	if input.DailyBudget <= 0 {
		return errors.BadRequest("Daily budget must be positive", nil)
	}
	return nil
}

// LaunchCampaign starts a promotion for the caller's store, creating the
// profile and vendor first when needed. The seller must be verified or on a
// paid plan.
func (uc *CampaignUseCase) LaunchCampaign(ctx context.Context, session *entity.Session, input LaunchCampaignInput) (*entity.Campaign, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validateCampaign(input); err != nil {
		return nil, err
	}

	verified := false
	if existing, err := uc.vendorRepo.GetByID(ctx, session.UID); err == nil {
		verified = existing.VerificationStatus == workflow.VendorVerified
	}
	if !verified && !uc.subscriptions.HasPaidPlan(ctx, session.UID) {
		return nil, errors.Forbidden("Campaigns require a verified store or a paid plan", nil)
	}

	var (
		vendor   *entity.Vendor
		campaign *entity.Campaign
	)
	profileRun, profileUndo := uc.profileStep(session, input.OnboardInput)
	vendorRun, vendorUndo := uc.vendorStep(session, input.OnboardInput, &vendor)

	err := NewSaga("launch_campaign").
		Step("ensure_profile", profileRun, profileUndo).
		Step("ensure_vendor", vendorRun, vendorUndo).
		Step("create_campaign", func(ctx context.Context) error {
			name := strings.TrimSpace(input.Name)
			if name == "" {
				name = defaultCampaignName
			}
			now := timeNow()
			campaign = &entity.Campaign{
				ID:           uuid.New().String(),
				VendorID:     vendor.ID,
				Name:         name,
				Status:       CampaignActive,
				DailyBudget:  input.DailyBudget,
				DurationDays: input.DurationDays,
				Goal:         input.Goal,
				SpendAmount:  0,
				StartDate:    now,
				EndsAt:       now.AddDate(0, 0, input.DurationDays),
				CreatedAt:    now,
			}
			return uc.campaignRepo.Create(ctx, campaign)
		}, nil).
		Execute(ctx)
	if err != nil {
		return nil, sagaFailure(err)
	}

	return campaign, nil
}

func (uc *CampaignUseCase) MyCampaigns(ctx context.Context, session *entity.Session) ([]*entity.Campaign, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	campaigns, err := uc.campaignRepo.ListByVendor(ctx, session.UID)
	if err != nil {
		logger.LogReadDegraded("campaigns", err)
		return []*entity.Campaign{}, nil
	}
	return campaigns, nil
}
