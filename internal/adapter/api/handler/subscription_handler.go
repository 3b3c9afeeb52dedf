package handler

import (
	"github.com/labstack/echo/v4"

	"fad/internal/domain/entity"
	"fad/internal/usecase"
	"fad/pkg/response"
)

type SubscriptionHandler struct {
	subscriptionUseCase *usecase.SubscriptionUseCase
}

func NewSubscriptionHandler(subscriptionUseCase *usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
	}
}

type updateSubscriptionRequest struct {
	PlanID           string            `json:"plan_id" validate:"required"`
	Promotions       entity.Promotions `json:"promotions"`
	CustomNote       string            `json:"custom_note" validate:"max=500"`
	DiscountCode     string            `json:"discount_code" validate:"max=40"`
	BillingReference string            `json:"billing_reference"`
}

func (h *SubscriptionHandler) Plans(c echo.Context) error {
	plans, err := h.subscriptionUseCase.Plans(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, plans)
}

func (h *SubscriptionHandler) GetSubscription(c echo.Context) error {
	sub, err := h.subscriptionUseCase.SellerSubscription(c.Request().Context(), c.Param("vendorId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sub)
}

func (h *SubscriptionHandler) MySubscription(c echo.Context) error {
	sub, err := h.subscriptionUseCase.SellerSubscription(c.Request().Context(), sessionFrom(c).UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sub)
}

func (h *SubscriptionHandler) UpdateSubscription(c echo.Context) error {
	var req updateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sub, err := h.subscriptionUseCase.UpdateSubscription(c.Request().Context(), sessionFrom(c), c.Param("vendorId"), usecase.UpdateSubscriptionInput{
		PlanID:           req.PlanID,
		Promotions:       req.Promotions,
		CustomNote:       req.CustomNote,
		DiscountCode:     req.DiscountCode,
		BillingReference: req.BillingReference,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sub)
}

func (h *SubscriptionHandler) ROIReport(c echo.Context) error {
	report, err := h.subscriptionUseCase.ROIReport(c.Request().Context(), c.Param("vendorId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}
