package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter middleware.Limiter) {
	SetupHealthRouter(e)
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupVendorRouter(e, authMiddleware, adminMiddleware)
	SetupCertificateRouter(e, authMiddleware, adminMiddleware)
	SetupListingRouter(e, authMiddleware, adminMiddleware)
	SetupReviewRouter(e, authMiddleware, adminMiddleware)
	SetupComplaintRouter(e, authMiddleware, adminMiddleware, limiter)
	SetupSubscriptionRouter(e, authMiddleware, adminMiddleware)
	SetupSellerRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
}

// adminGroup returns a /v1/admin group behind authentication and the
// admin role check.
func adminGroup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) *echo.Group {
	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	return admin
}
