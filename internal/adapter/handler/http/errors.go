package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
)

// respondDomainError is the single place where domain errors become HTTP
// status codes. Anything outside the closed set is logged and surfaced as
// a generic internal error.
func respondDomainError(c echo.Context, logger *zap.Logger, err error) error {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "Validation error",
			"code":    "VALIDATION_ERROR",
			"details": validationErr.Fields,
		})
	}

	var sortErr *apperrors.InvalidSortColumnError
	if errors.As(err, &sortErr) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid sorting parameter",
			"code":  "INVALID_SORT_COLUMN",
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrMissingSummary):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Audit cannot be approved without a summary",
			"code":  "MISSING_SUMMARY",
		})
	case errors.Is(err, apperrors.ErrAuditNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Audit not found",
			"code":  "AUDIT_NOT_FOUND",
		})
	case errors.Is(err, apperrors.ErrAuditApproved):
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": "Audit is approved and can no longer be modified",
			"code":  "AUDIT_APPROVED",
		})
	case errors.Is(err, apperrors.ErrAlreadyApproved):
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": "Audit is already approved",
			"code":  "ALREADY_APPROVED",
		})
	case errors.Is(err, apperrors.ErrDuplicateOrderNumber):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Duplicate audit order number",
			"code":  "DUPLICATE_AUDIT_NUMBER",
		})
	case errors.Is(err, apperrors.ErrUpstreamService),
		errors.Is(err, apperrors.ErrInvalidResponseShape):
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": "Failed to generate summary",
			"code":  "UPSTREAM_ERROR",
		})
	}

	logger.Error("Unhandled error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Internal server error",
		"code":  "INTERNAL",
	})
}
