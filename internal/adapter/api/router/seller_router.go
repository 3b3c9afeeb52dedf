package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/handler"
	"fad/internal/adapter/api/middleware"
)

// SetupSellerRouter wires the seller workspace. Every route acts on the
// caller's own store.
func SetupSellerRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	vendorHandler := handler.GetVendorHandler()
	listingHandler := handler.GetListingHandler()
	complaintHandler := handler.GetComplaintHandler()
	campaignHandler := handler.GetCampaignHandler()
	subscriptionHandler := handler.GetSubscriptionHandler()
	analyticsHandler := handler.GetAnalyticsHandler()

	seller := e.Group("/v1/seller")
	seller.Use(authMiddleware.Authenticate)

	seller.POST("/onboarding", campaignHandler.Onboard)
	seller.POST("/documents", vendorHandler.SubmitDocuments)

	seller.GET("/listings", listingHandler.MyListings)
	seller.POST("/listings", listingHandler.CreateListing)

	seller.GET("/complaints", complaintHandler.SellerComplaints)
	seller.POST("/complaints/:id/resolve", complaintHandler.Resolve)

	seller.GET("/campaigns", campaignHandler.MyCampaigns)
	seller.POST("/campaigns", campaignHandler.LaunchCampaign)

	seller.GET("/subscription", subscriptionHandler.MySubscription)
	seller.GET("/analytics", analyticsHandler.MyAnalytics)
}
