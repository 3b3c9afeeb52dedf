package middleware

import (
	"github.com/labstack/echo/v4"

	"fad/internal/usecase"
	"fad/pkg/errors"
	"fad/pkg/response"
)

// AdminMiddleware must run after AuthMiddleware. The session role already
// reflects the stored profile.
type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, ok := usecase.SessionFrom(c.Request().Context())
		if !ok {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		if !session.IsAdmin() {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}

		return next(c)
	}
}
