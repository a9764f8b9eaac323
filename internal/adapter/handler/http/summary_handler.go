package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/audit-service/internal/domain/dto"
	"github.com/wekeepgrowing/audit-service/internal/middleware/auth"
	"github.com/wekeepgrowing/audit-service/internal/usecase"
)

// SummaryHandler handles AI summary generation requests.
type SummaryHandler struct {
	service *usecase.SummaryService
	logger  *zap.Logger
}

// NewSummaryHandler returns a new instance of SummaryHandler.
func NewSummaryHandler(service *usecase.SummaryService, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		logger:  logger,
	}
}

// GenerateSummary handles POST /audits/generate-summary
func (h *SummaryHandler) GenerateSummary(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	var cmd dto.GenerateSummaryCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
	}

	summary, err := h.service.GenerateSummary(c.Request().Context(), &cmd)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, summary)
}
