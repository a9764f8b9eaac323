package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/audit-service/internal/domain/dto"
	"github.com/wekeepgrowing/audit-service/internal/domain/entity"
	"github.com/wekeepgrowing/audit-service/internal/middleware/auth"
	"github.com/wekeepgrowing/audit-service/internal/usecase"
)

// AuditHandler handles HTTP requests for audit records.
type AuditHandler struct {
	service *usecase.AuditService
	logger  *zap.Logger
}

// NewAuditHandler returns a new instance of AuditHandler.
func NewAuditHandler(service *usecase.AuditService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger,
	}
}

// CreateAudit handles POST /audits
func (h *AuditHandler) CreateAudit(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err // RequireAuth already returns the JSON error response
	}

	var cmd dto.CreateAuditCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
	}

	audit, err := h.service.CreateAudit(c.Request().Context(), user.UserID, &cmd)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, audit)
}

// ListAudits handles GET /audits
func (h *AuditHandler) ListAudits(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	page, ok := h.positiveIntParam(c, "page")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Page must be a positive integer",
			"code":  "VALIDATION_ERROR",
		})
	}
	limit, ok := h.positiveIntParam(c, "limit")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Limit must be a positive integer",
			"code":  "VALIDATION_ERROR",
		})
	}

	query := &dto.ListAuditsQuery{
		Pagination: entity.PaginationParams{Page: page, Limit: limit},
		Sort:       c.QueryParam("sort"),
		Filter:     c.QueryParam("filter"),
	}

	response, err := h.service.ListAudits(c.Request().Context(), user.UserID, query)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, response)
}

// GetAudit handles GET /audits/:id
func (h *AuditHandler) GetAudit(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := h.auditIDParam(c)
	if !ok {
		return h.invalidID(c)
	}

	audit, err := h.service.GetAudit(c.Request().Context(), id, user.UserID)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, audit)
}

// UpdateAudit handles PATCH /audits/:id
func (h *AuditHandler) UpdateAudit(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := h.auditIDParam(c)
	if !ok {
		return h.invalidID(c)
	}

	var cmd dto.UpdateAuditCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
	}

	audit, err := h.service.UpdateAudit(c.Request().Context(), id, user.UserID, &cmd)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, audit)
}

// DeleteAudit handles DELETE /audits/:id
func (h *AuditHandler) DeleteAudit(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := h.auditIDParam(c)
	if !ok {
		return h.invalidID(c)
	}

	if err := h.service.DeleteAudit(c.Request().Context(), id, user.UserID); err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ApproveAudit handles POST /audits/:id/approve
func (h *AuditHandler) ApproveAudit(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := h.auditIDParam(c)
	if !ok {
		return h.invalidID(c)
	}

	// The confirm flag is accepted but carries no server-side meaning.
	var cmd dto.ApproveAuditCommand
	_ = c.Bind(&cmd)

	audit, err := h.service.ApproveAudit(c.Request().Context(), id, user.UserID)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, audit)
}

func (h *AuditHandler) auditIDParam(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *AuditHandler) invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": "Invalid audit ID format - must be a valid UUID",
		"code":  "INVALID_ID",
	})
}

// positiveIntParam parses an optional positive integer query parameter.
// Absent means zero; the usecase applies the default.
func (h *AuditHandler) positiveIntParam(c echo.Context, name string) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		h.logger.Warn("Invalid pagination parameter",
			zap.String("param", name),
			zap.String("value", raw))
		return 0, false
	}
	return value, true
}
