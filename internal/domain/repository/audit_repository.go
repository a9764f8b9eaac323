package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/audit-service/internal/domain/model"
)

// SortOrder is a validated sort specification. Only values produced by the
// usecase layer reach the repository, so the column is safe to interpolate.
type SortOrder struct {
	Column     string
	Descending bool
}

// ListFilter narrows a list query after ownership scoping.
type ListFilter struct {
	// Filter is a case-insensitive substring matched against the order
	// number and the description. Empty means no filtering.
	Filter string
	Sort   SortOrder
	Limit  int
	Offset int
}

// AuditRepository persists audit records. Every operation is scoped by the
// owning user; no call can observe or mutate another user's rows.
type AuditRepository interface {
	Create(ctx context.Context, audit *model.Audit) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Audit, error)
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]model.Audit, int64, error)
	Update(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (*model.Audit, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Approve(ctx context.Context, id, userID uuid.UUID) (*model.Audit, error)
}
