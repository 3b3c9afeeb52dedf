package router

import (
	"github.com/labstack/echo/v4"

	"fad/internal/adapter/api/handler"
	"fad/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	// Protected routes (require authentication)
	authenticated := e.Group("/v1")
	authenticated.Use(authMiddleware.Authenticate)

	authenticated.POST("/vendors/:id/reviews", reviewHandler.SubmitReview)
	authenticated.POST("/reviews/:id/flag", reviewHandler.FlagReview)

	// Admin routes
	admin := adminGroup(e, authMiddleware, adminMiddleware)

	admin.GET("/reviews", reviewHandler.ModerationQueue)
	admin.POST("/reviews/:id/publish", reviewHandler.PublishReview)
	admin.POST("/reviews/:id/remove", reviewHandler.RemoveReview)
	admin.POST("/reviews/:id/restore", reviewHandler.RestoreReview)
	admin.POST("/reviews/:id/mark-safe", reviewHandler.MarkSafe)
}
