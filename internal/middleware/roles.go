package middleware

import (
	"github.com/labstack/echo/v4"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
)

// RequireRole gates a route to the given tiers. It runs after JWT, which
// has already resolved the caller's role into the closed enum.
func RequireRole(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return common.RespondError(c, common.ErrUnauthenticated)
			}
			for _, r := range allowed {
				if role == r {
					return next(c)
				}
			}
			return common.RespondError(c, common.ErrUnauthorized)
		}
	}
}
