package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/patients-api/internal/api/middleware"
	"github.com/clinicore/patients-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware.
// Absence proves the middleware never ran on this route; reject with 401
// rather than proceed with an empty principal.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
