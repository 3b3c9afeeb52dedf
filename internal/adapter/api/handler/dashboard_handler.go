package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"fad/internal/usecase"
	"fad/pkg/response"
)

type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
	activityUseCase  *usecase.ActivityUseCase
}

func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase, activityUseCase *usecase.ActivityUseCase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
		activityUseCase:  activityUseCase,
	}
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.dashboardUseCase.Dashboard(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dashboard)
}

// RecentActivity ignores a malformed limit and falls back to the default.
func (h *DashboardHandler) RecentActivity(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.activityUseCase.RecentActivity(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, entries)
}
