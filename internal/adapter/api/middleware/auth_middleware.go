package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"fad/internal/domain/entity"
	"fad/internal/usecase"
	"fad/pkg/errors"
	"fad/pkg/response"
)

// Authenticator resolves an ID token to the caller's session.
type Authenticator interface {
	Authenticate(ctx context.Context, idToken string) (*entity.Session, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
}

func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		idToken, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		session, err := m.authenticator.Authenticate(c.Request().Context(), idToken)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set("uid", session.UID)
		c.Set("role", session.Role)
		c.SetRequest(c.Request().WithContext(usecase.WithSession(c.Request().Context(), session)))

		return next(c)
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers
// on a websocket upgrade, so those requests may pass ?token= instead.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if c.IsWebSocket() {
			if token := c.QueryParam("token"); token != "" {
				return token, nil
			}
		}
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}
