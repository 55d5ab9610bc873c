package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/ports"
)

const defaultAuditLimit = 100

type auditListResponse struct {
	Data []domain.AuditEntry `json:"data"`
}

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List handles GET /audit. Admin only.
//
// @Summary      List recent audit entries, newest first
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 100)"
// @Success      200    {object}  auditListResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}

	entries, err := h.repo.FindRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, auditListResponse{Data: entries})
}
