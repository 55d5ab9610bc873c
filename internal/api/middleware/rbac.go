package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole guards a route behind an exact role match. There is no
// hierarchy: an admin token does not satisfy a user-only guard.
//
// A missing identity yields 401; that is unreachable when the guard is
// ordered after Auth, but kept defensive in case of a misordered chain.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if identity.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden: insufficient role")
			}
			return next(c)
		}
	}
}
