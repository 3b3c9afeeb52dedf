package handler

import (
	"github.com/labstack/echo/v4"

	"fad/internal/usecase"
	"fad/pkg/response"
)

type CampaignHandler struct {
	campaignUseCase *usecase.CampaignUseCase
}

func NewCampaignHandler(campaignUseCase *usecase.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{
		campaignUseCase: campaignUseCase,
	}
}

type onboardRequest struct {
	FullName        string `json:"full_name"`
	BusinessName    string `json:"business_name" validate:"max=80"`
	InstagramHandle string `json:"instagram_handle" validate:"max=40"`
	Category        string `json:"category"`
	Location        string `json:"location"`
	Phone           string `json:"phone"`
	Description     string `json:"description" validate:"max=1000"`
}

func (r onboardRequest) input() usecase.OnboardInput {
	return usecase.OnboardInput{
		FullName:        r.FullName,
		BusinessName:    r.BusinessName,
		InstagramHandle: r.InstagramHandle,
		Category:        r.Category,
		Location:        r.Location,
		Phone:           r.Phone,
		Description:     r.Description,
	}
}

type launchCampaignRequest struct {
	onboardRequest
	Name         string  `json:"name"`
	DailyBudget  float64 `json:"daily_budget" validate:"gt=0"`
	DurationDays int     `json:"duration_days" validate:"required"`
	Goal         string  `json:"goal" validate:"required"`
}

func (h *CampaignHandler) Onboard(c echo.Context) error {
	var req onboardRequest
	if err := bindOptional(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	vendor, err := h.campaignUseCase.Onboard(c.Request().Context(), sessionFrom(c), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendor)
}

func (h *CampaignHandler) LaunchCampaign(c echo.Context) error {
	var req launchCampaignRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	campaign, err := h.campaignUseCase.LaunchCampaign(c.Request().Context(), sessionFrom(c), usecase.LaunchCampaignInput{
		OnboardInput: req.input(),
		Name:         req.Name,
		DailyBudget:  req.DailyBudget,
		DurationDays: req.DurationDays,
		Goal:         req.Goal,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, campaign)
}

func (h *CampaignHandler) MyCampaigns(c echo.Context) error {
	campaigns, err := h.campaignUseCase.MyCampaigns(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, campaigns)
}
