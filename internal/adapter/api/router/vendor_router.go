package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/handler"
	"fad/internal/adapter/api/middleware"
)

func SetupVendorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	vendorHandler := handler.GetVendorHandler()
	reviewHandler := handler.GetReviewHandler()

	// Public routes
	vendors := e.Group("/v1/vendors")
	vendors.GET("", vendorHandler.Discover)
	vendors.GET("/facets", vendorHandler.Facets)
	vendors.GET("/top", vendorHandler.TopRated)
	vendors.GET("/:id", vendorHandler.GetVendorProfile)
	vendors.GET("/:id/reviews", reviewHandler.VendorReviews)

	// Admin routes
	admin := adminGroup(e, authMiddleware, adminMiddleware)

	admin.GET("/verifications", vendorHandler.GetVerifications)
	admin.GET("/vendors/:id/documents", vendorHandler.GetVendorDocuments)
	admin.POST("/vendors/:id/approve", vendorHandler.ApproveVendor)
	admin.POST("/vendors/:id/reject", vendorHandler.RejectVendor)
	admin.GET("/subscriptions/sellers", vendorHandler.SubscriptionSellers)
	admin.GET("/analytics/sellers", vendorHandler.AnalyticsSellers)
}
