package dto

import (
	"github.com/wekeepgrowing/audit-service/internal/domain/entity"
	"github.com/wekeepgrowing/audit-service/internal/domain/model"
)

// CreateAuditCommand is the payload of POST /audits.
type CreateAuditCommand struct {
	AuditOrderNumber string  `json:"audit_order_number" validate:"required,min=2,max=20"`
	Protocol         string  `json:"protocol" validate:"required,min=1000,max=10000"`
	Description      *string `json:"description"`
}

// UpdateAuditCommand is the payload of PATCH /audits/:id. Only
// protocol/description/summary may change; the order number is immutable.
// At least one field must be present.
type UpdateAuditCommand struct {
	Protocol    *string `json:"protocol" validate:"omitempty,min=1000,max=10000"`
	Description *string `json:"description"`
	Summary     *string `json:"summary"`
}

// IsEmpty reports whether the command carries no field at all.
func (c *UpdateAuditCommand) IsEmpty() bool {
	return c.Protocol == nil && c.Description == nil && c.Summary == nil
}

// ApproveAuditCommand is the payload of POST /audits/:id/approve.
type ApproveAuditCommand struct {
	Confirm bool `json:"confirm"`
}

// ListAuditsQuery carries the query parameters of GET /audits.
type ListAuditsQuery struct {
	Pagination entity.PaginationParams
	Sort       string
	Filter     string
}

// ListAuditsResponse is the body of GET /audits.
type ListAuditsResponse struct {
	Audits     []model.Audit         `json:"audits"`
	Pagination entity.PaginationMeta `json:"pagination"`
}

// GenerateSummaryCommand is the payload of POST /audits/generate-summary.
type GenerateSummaryCommand struct {
	Protocol string `json:"protocol"`
}
