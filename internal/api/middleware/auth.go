package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/auth-service/internal/api/metrics"
	"github.com/gatewise/auth-service/internal/core/domain"
	"github.com/gatewise/auth-service/internal/core/ports"
)

// Auth validates the bearer credential through the Authenticator capability
// and injects the resulting claims into the request context under "claims"
// and "subject". Rejections are audited with the failure reason; the decoding
// diagnostic stays out of the response body.
func Auth(authn ports.Authenticator, audit ports.AuditSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := authn.Authenticate(c.Request().Header.Get("Authorization"))
			if err != nil {
				reason := failureReason(err)
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				audit.Enqueue(ports.AuthEventInput{
					Action:    domain.AuditActionAuthenticate,
					Outcome:   domain.AuditOutcomeFailure,
					Reason:    reason,
					Timestamp: time.Now().UTC(),
				})
				return echo.NewHTTPError(http.StatusUnauthorized, failureMessage(err))
			}

			c.Set("claims", claims)
			c.Set("subject", claims.Subject)

			return next(c)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCredentialMissing):
		return "missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	default:
		return "decoding"
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrCredentialMissing):
		return "missing authorization header"
	case errors.Is(err, domain.ErrTokenExpired):
		return "token expired"
	default:
		return "invalid token"
	}
}
