package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/patients-api/internal/api/metrics"
	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/ports"
)

// identityKey is the echo context key the verified identity is stored under.
const identityKey = "identity"

// Auth verifies the bearer token and injects the identity into the context.
//
// The status split is deliberate and load-bearing for clients:
//   - missing or malformed Authorization header → 401 (unauthenticated)
//   - well-formed Bearer header whose token fails verification → 403
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			identity, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			c.Set(identityKey, *identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Auth, or false when the
// request never passed through it.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "signature"
	default:
		return "malformed"
	}
}
