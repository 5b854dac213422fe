package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/lead-discovery/internal/auth"
)

// JWT validates bearer tokens and stores operator metadata in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}

			claims, err := manager.ParseToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			c.Set(ContextKeyOperatorID, claims.Subject)
			c.Set(ContextKeyOperatorEmail, claims.Email)
			c.Set(ContextKeyOperatorRole, claims.Role)

			return next(c)
		}
	}
}

// OperatorEmailFromContext returns the authenticated operator email, if any.
func OperatorEmailFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyOperatorEmail).(string); ok {
		return val
	}
	return ""
}
