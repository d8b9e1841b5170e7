package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalhq/records-system/internal/api/metrics"
	"github.com/hospitalhq/records-system/internal/api/response"
	"github.com/hospitalhq/records-system/internal/auth/policy"
)

// Require enforces the given policy against the identity stored by Auth.
// Anonymous requests get 401, authenticated requests with the wrong role 403.
func Require(p policy.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := p.Evaluate(IdentityFrom(c))
			switch decision {
			case policy.Allow:
				metrics.PolicyDecisionsTotal.WithLabelValues(p.Name(), "allow").Inc()
				return next(c)
			case policy.DenyAnonymous:
				metrics.PolicyDecisionsTotal.WithLabelValues(p.Name(), "deny_anonymous").Inc()
				return c.JSON(http.StatusUnauthorized,
					response.Failure("Authentication required.", response.CodeUnauthenticated, nil))
			default:
				metrics.PolicyDecisionsTotal.WithLabelValues(p.Name(), "deny_role").Inc()
				return c.JSON(http.StatusForbidden,
					response.Failure("Insufficient role for this operation.", response.CodeForbidden, nil))
			}
		}
	}
}
