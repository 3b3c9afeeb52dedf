package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/handler"
	"fad/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	listingHandler := handler.GetListingHandler()

	admin := adminGroup(e, authMiddleware, adminMiddleware)

	admin.GET("/listings", listingHandler.ListListings)
	admin.GET("/listings/pending", listingHandler.PendingListings)
	admin.POST("/listings/:id/approve", listingHandler.ApproveListing)
	admin.POST("/listings/:id/reject", listingHandler.RejectListing)
}
