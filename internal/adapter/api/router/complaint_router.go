package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/handler"
	"fad/internal/adapter/api/middleware"
	"fad/internal/infrastructure/ratelimit"
)

func SetupComplaintRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter middleware.Limiter) {
	complaintHandler := handler.GetComplaintHandler()

	// Protected routes (require authentication)
	reports := e.Group("/v1/reports")
	reports.Use(middleware.RateLimit(limiter, ratelimit.ActionReport))
	reports.Use(authMiddleware.Authenticate)
	reports.POST("", complaintHandler.FileReport)

	complaints := e.Group("/v1/complaints")
	complaints.Use(authMiddleware.Authenticate)
	complaints.POST("/:id/evidence", complaintHandler.UploadEvidence)

	// Admin routes
	admin := adminGroup(e, authMiddleware, adminMiddleware)

	admin.GET("/complaints", complaintHandler.ListTickets)
	admin.GET("/complaints/:id", complaintHandler.GetTicket)
	admin.GET("/complaints/:id/evidence", complaintHandler.GetEvidence)
	admin.PATCH("/complaints/:id/status", complaintHandler.UpdateStatus)
	admin.PATCH("/complaints/:id/notes", complaintHandler.UpdateNotes)
	admin.POST("/complaints/:id/resolve", complaintHandler.Resolve)
	admin.POST("/complaints/:id/reopen", complaintHandler.Reopen)
}
