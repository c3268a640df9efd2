package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/api/metrics"
	"github.com/clearcrm/crm-api/internal/core/domain"
)

// OwnerResolver loads the owner identifier of the resource a request targets.
// Implementations must read ownership from the store, never from the request
// body, so a caller cannot spoof it. An empty string means the resource is
// unowned.
type OwnerResolver func(c echo.Context) (string, error)

// RequireAuth terminates requests that carry no resolved identity.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			metrics.AuthDeniedTotal.WithLabelValues("unauthenticated").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		return next(c)
	}
}

// RequireAdmin terminates requests whose identity lacks the ADMIN role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			metrics.AuthDeniedTotal.WithLabelValues("unauthenticated").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		if user.Role != domain.RoleAdmin {
			metrics.AuthDeniedTotal.WithLabelValues("not_admin").Inc()
			return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
		}
		return next(c)
	}
}

// RequireOwnerOrAdmin allows admins through unconditionally and everyone else
// only when resolve reports them as the target's owner. Resolver failures
// propagate to the central error handler rather than masquerading as a 403.
func RequireOwnerOrAdmin(resolve OwnerResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				metrics.AuthDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if user.Role == domain.RoleAdmin {
				return next(c)
			}

			ownerID, err := resolve(c)
			if err != nil {
				return err
			}
			if ownerID == "" || ownerID != user.ID {
				metrics.AuthDeniedTotal.WithLabelValues("not_owner").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Not authorized")
			}
			return next(c)
		}
	}
}
