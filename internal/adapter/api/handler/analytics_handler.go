package handler

import (
	"github.com/labstack/echo/v4"

	"fad/internal/usecase"
	"fad/pkg/response"
)

type AnalyticsHandler struct {
	analyticsUseCase *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(analyticsUseCase *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUseCase: analyticsUseCase,
	}
}

func (h *AnalyticsHandler) SellerAnalytics(c echo.Context) error {
	analytics, err := h.analyticsUseCase.SellerAnalytics(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, analytics)
}

func (h *AnalyticsHandler) MyAnalytics(c echo.Context) error {
	analytics, err := h.analyticsUseCase.SellerAnalytics(c.Request().Context(), sessionFrom(c).UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, analytics)
}
