package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/handler"
	"fad/internal/adapter/api/middleware"
)

func SetupSubscriptionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	subscriptionHandler := handler.GetSubscriptionHandler()

	// Public routes
	e.GET("/v1/plans", subscriptionHandler.Plans)

	// Admin routes
	admin := adminGroup(e, authMiddleware, adminMiddleware)

	admin.GET("/subscriptions/:vendorId", subscriptionHandler.GetSubscription)
	admin.PUT("/subscriptions/:vendorId", subscriptionHandler.UpdateSubscription)
	admin.GET("/subscriptions/:vendorId/roi", subscriptionHandler.ROIReport)
}
