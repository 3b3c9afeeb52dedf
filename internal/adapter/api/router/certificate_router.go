package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/handler"
	"fad/internal/adapter/api/middleware"
)

func SetupCertificateRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	certificateHandler := handler.GetCertificateHandler()

	admin := adminGroup(e, authMiddleware, adminMiddleware)

	admin.GET("/certificates", certificateHandler.ListCertificates)
	admin.GET("/certificates/:vendorId", certificateHandler.GetCertificate)
	admin.POST("/certificates/:vendorId/renew", certificateHandler.Renew)
	admin.POST("/certificates/:vendorId/revoke", certificateHandler.Revoke)
}
