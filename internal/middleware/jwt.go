package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
	"cozycomfort/internal/services"
)

// JWT validates the bearer token and loads caller identity (user ID,
// role, company name) into the request context for the role gate and the
// handlers downstream.
func JWT(authSvc services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return common.RespondError(c, common.ErrUnauthenticated)
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return common.RespondError(c, common.ErrUnauthenticated)
			}

			claims, err := authSvc.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				return common.RespondError(c, err)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return common.RespondError(c, common.ErrUnauthenticated)
			}
			role, err := models.ParseRole(claims.Role)
			if err != nil {
				return common.RespondError(c, common.ErrUnauthenticated)
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.RoleKey, role)
			ctx = context.WithValue(ctx, common.CompanyNameKey, claims.CompanyName)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
