package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"fad/internal/domain/entity"
	"fad/internal/usecase"
	"fad/pkg/errors"
	"fad/pkg/response"
	"fad/pkg/utils"
)

var (
	authHandler         *AuthHandler
	vendorHandler       *VendorHandler
	certificateHandler  *CertificateHandler
	listingHandler      *ListingHandler
	reviewHandler       *ReviewHandler
	complaintHandler    *ComplaintHandler
	subscriptionHandler *SubscriptionHandler
	campaignHandler     *CampaignHandler
	dashboardHandler    *DashboardHandler
	analyticsHandler    *AnalyticsHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	vendorUseCase *usecase.VendorUseCase,
	certificationUseCase *usecase.CertificationUseCase,
	listingUseCase *usecase.ListingUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	complaintUseCase *usecase.ComplaintUseCase,
	subscriptionUseCase *usecase.SubscriptionUseCase,
	campaignUseCase *usecase.CampaignUseCase,
	dashboardUseCase *usecase.DashboardUseCase,
	activityUseCase *usecase.ActivityUseCase,
	analyticsUseCase *usecase.AnalyticsUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	vendorHandler = NewVendorHandler(vendorUseCase)
	certificateHandler = NewCertificateHandler(certificationUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	complaintHandler = NewComplaintHandler(complaintUseCase)
	subscriptionHandler = NewSubscriptionHandler(subscriptionUseCase)
	campaignHandler = NewCampaignHandler(campaignUseCase)
	dashboardHandler = NewDashboardHandler(dashboardUseCase, activityUseCase)
	analyticsHandler = NewAnalyticsHandler(analyticsUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetVendorHandler() *VendorHandler {
	return vendorHandler
}

func GetCertificateHandler() *CertificateHandler {
	return certificateHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetComplaintHandler() *ComplaintHandler {
	return complaintHandler
}

func GetSubscriptionHandler() *SubscriptionHandler {
	return subscriptionHandler
}

func GetCampaignHandler() *CampaignHandler {
	return campaignHandler
}

func GetDashboardHandler() *DashboardHandler {
	return dashboardHandler
}

func GetAnalyticsHandler() *AnalyticsHandler {
	return analyticsHandler
}

// sessionFrom returns the session set by the auth middleware, or nil on
// public routes.
func sessionFrom(c echo.Context) *entity.Session {
	session, _ := usecase.SessionFrom(c.Request().Context())
	return session
}

// guardedRequest carries the optimistic concurrency token of a write.
type guardedRequest struct {
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at"`
}

// expectedUpdatedAt prefers the body value and falls back to the
// expected_updated_at query parameter.
func expectedUpdatedAt(c echo.Context, fromBody *time.Time) (*time.Time, error) {
	if fromBody != nil {
		return fromBody, nil
	}

	raw := strings.TrimSpace(c.QueryParam("expected_updated_at"))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, errors.BadRequest("expected_updated_at must be an RFC 3339 timestamp", err)
	}
	return &t, nil
}

// bindOptional binds a request body that may be empty.
func bindOptional(c echo.Context, req interface{}) error {
	if c.Request().ContentLength == 0 {
		return nil
	}
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Invalid request body", err)
	}
	return nil
}

// respondList writes items as a plain array unless the caller asked for a
// page with ?page= or ?limit=.
func respondList[T any](c echo.Context, items []T) error {
	if c.QueryParam("page") == "" && c.QueryParam("limit") == "" {
		return response.Success(c, items)
	}
	params := utils.GetPaginationParams(c)
	return response.Paginated(c, utils.Paginate(items, params), int64(len(items)), params.Page, params.PageSize)
}
