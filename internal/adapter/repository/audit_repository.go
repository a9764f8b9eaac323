package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
	"github.com/wekeepgrowing/audit-service/internal/domain/model"
	"github.com/wekeepgrowing/audit-service/internal/domain/repository"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

type auditRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAuditRepository creates a new audit repository backed by Postgres.
func NewAuditRepository(db *gorm.DB, logger *zap.Logger) repository.AuditRepository {
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new audit. Per-user uniqueness of the order number is
// enforced by the composite unique index, not a prior read, so two
// concurrent creates cannot both succeed.
func (r *auditRepository) Create(ctx context.Context, audit *model.Audit) error {
	err := r.db.WithContext(ctx).Create(audit).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicateOrderNumber
		}
		r.logger.Error("Failed to create audit",
			zap.String("user_id", audit.UserID.String()),
			zap.String("audit_order_number", audit.AuditOrderNumber),
			zap.Error(err))
		return &apperrors.CreationError{Err: err}
	}

	return nil
}

// GetByID retrieves an owned audit. An id that exists under another user is
// indistinguishable from a missing one.
func (r *auditRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Audit, error) {
	var audit model.Audit

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&audit).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuditNotFound
		}
		r.logger.Error("Failed to get audit",
			zap.String("audit_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	return &audit, nil
}

// List returns one page of owned audits plus the total count of matching
// rows. The filter is applied before the range slice so page counts stay
// correct.
func (r *auditRepository) List(ctx context.Context, userID uuid.UUID, filter repository.ListFilter) ([]model.Audit, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Audit{}).
		Where("user_id = ?", userID)

	if filter.Filter != "" {
		pattern := "%" + filter.Filter + "%"
		query = query.Where("audit_order_number ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count audits",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count audits: %w", err)
	}

	direction := "ASC"
	if filter.Sort.Descending {
		direction = "DESC"
	}

	var audits []model.Audit
	err := query.
		Order(fmt.Sprintf("%s %s", filter.Sort.Column, direction)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&audits).Error
	if err != nil {
		r.logger.Error("Failed to list audits",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list audits: %w", err)
	}

	return audits, total, nil
}

// Update applies a partial update and returns the resulting record.
// Callers are responsible for the lifecycle guard; only the allowed field
// set ever reaches this method.
func (r *auditRepository) Update(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (*model.Audit, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Audit{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)

	if result.Error != nil {
		r.logger.Error("Failed to update audit",
			zap.String("audit_id", id.String()),
			zap.Error(result.Error))
		return nil, fmt.Errorf("failed to update audit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrAuditNotFound
	}

	return r.GetByID(ctx, id, userID)
}

// Delete removes an owned audit. A second call reports not-found.
func (r *auditRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Audit{})

	if result.Error != nil {
		r.logger.Error("Failed to delete audit",
			zap.String("audit_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete audit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAuditNotFound
	}

	return nil
}

// Approve marks an owned audit as approved and stamps updated_at.
func (r *auditRepository) Approve(ctx context.Context, id, userID uuid.UUID) (*model.Audit, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Audit{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"status": model.AuditStatusApproved})

	if result.Error != nil {
		r.logger.Error("Failed to approve audit",
			zap.String("audit_id", id.String()),
			zap.Error(result.Error))
		return nil, fmt.Errorf("failed to approve audit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrAuditNotFound
	}

	return r.GetByID(ctx, id, userID)
}
