package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/handler"
	"fad/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	dashboardHandler := handler.GetDashboardHandler()
	analyticsHandler := handler.GetAnalyticsHandler()
	feedHandler := handler.GetFeedHandler()

	admin := adminGroup(e, authMiddleware, adminMiddleware)

	admin.GET("/dashboard", dashboardHandler.Dashboard)
	admin.GET("/activity", dashboardHandler.RecentActivity)
	admin.GET("/analytics/sellers/:id", analyticsHandler.SellerAnalytics)
	admin.GET("/ws", feedHandler.HandleWebSocket)
}
