package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/auth-service/internal/core/domain"
)

// ctxClaims extracts the validated claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty subject
// proves the middleware ran on this route.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := c.Get("claims").(domain.Claims)
	if !ok || claims.Subject == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
