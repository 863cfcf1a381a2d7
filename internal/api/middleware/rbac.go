package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/auth-service/internal/core/ports"
)

// RBAC enforces role-based access control. Tokens carry only the subject, so
// the current role is resolved from the user store on each request; a role
// change takes effect without waiting for outstanding tokens to expire.
func RBAC(users ports.UserRepository, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, _ := c.Get("subject").(string)
			if subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if _, ok := allowed[user.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			c.Set("role", user.Role)
			return next(c)
		}
	}
}
