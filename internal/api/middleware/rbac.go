package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/events-api/internal/core/domain"
)

// RBAC enforces role-based access control. An admin satisfies every role
// requirement, so it never needs to appear in allowedRoles.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == domain.RoleAdmin {
				return next(c)
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
