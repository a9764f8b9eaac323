package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/audit-service/internal/domain/dto"
	"github.com/wekeepgrowing/audit-service/internal/domain/entity"
	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
	"github.com/wekeepgrowing/audit-service/internal/domain/model"
	"github.com/wekeepgrowing/audit-service/internal/domain/repository"
)

// allowedSortColumns is the closed set of columns a caller may sort by.
// The column name is interpolated into the query, so anything outside this
// set is rejected before a query is issued.
var allowedSortColumns = map[string]bool{
	"created_at":         true,
	"audit_order_number": true,
}

const defaultSortColumn = "created_at"

// AuditService enforces the audit lifecycle: records are created pending,
// may be edited until approved, and approval is one-way and terminal.
type AuditService struct {
	repo      repository.AuditRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		repo:      repo,
		validator: newCommandValidator(),
		logger:    logger,
	}
}

// CreateAudit validates the payload and inserts a new pending record.
func (s *AuditService) CreateAudit(ctx context.Context, userID uuid.UUID, cmd *dto.CreateAuditCommand) (*model.Audit, error) {
	if verr := ValidateCreateAudit(s.validator, cmd); verr != nil {
		return nil, verr
	}

	audit := &model.Audit{
		UserID:           userID,
		AuditOrderNumber: cmd.AuditOrderNumber,
		Protocol:         cmd.Protocol,
		Description:      cmd.Description,
		Summary:          "",
		Status:           model.AuditStatusPending,
	}

	if err := s.repo.Create(ctx, audit); err != nil {
		return nil, err
	}

	s.logger.Info("Audit created",
		zap.String("audit_id", audit.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("audit_order_number", audit.AuditOrderNumber))

	return audit, nil
}

// GetAudit retrieves a single owned record.
func (s *AuditService) GetAudit(ctx context.Context, id, userID uuid.UUID) (*model.Audit, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// ListAudits composes pagination, sort validation and filtering into one
// query and returns the page plus the total matching count.
func (s *AuditService) ListAudits(ctx context.Context, userID uuid.UUID, query *dto.ListAuditsQuery) (*dto.ListAuditsResponse, error) {
	params := query.Pagination
	if params.Page < 0 {
		return nil, apperrors.NewValidationError("page", "Page must be a positive integer")
	}
	if params.Limit < 0 {
		return nil, apperrors.NewValidationError("limit", "Limit must be a positive integer")
	}
	params.Normalize()

	sort, err := parseSort(query.Sort)
	if err != nil {
		return nil, err
	}

	audits, total, err := s.repo.List(ctx, userID, repository.ListFilter{
		Filter: query.Filter,
		Sort:   sort,
		Limit:  params.Limit,
		Offset: params.Offset(),
	})
	if err != nil {
		return nil, err
	}

	if audits == nil {
		audits = []model.Audit{}
	}

	return &dto.ListAuditsResponse{
		Audits:     audits,
		Pagination: entity.NewPaginationMeta(params.Page, params.Limit, total),
	}, nil
}

// UpdateAudit applies a partial update to protocol/description/summary.
// Approved records reject all mutation.
func (s *AuditService) UpdateAudit(ctx context.Context, id, userID uuid.UUID, cmd *dto.UpdateAuditCommand) (*model.Audit, error) {
	if verr := ValidateUpdateAudit(s.validator, cmd); verr != nil {
		return nil, verr
	}

	audit, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if audit.IsApproved() {
		return nil, apperrors.ErrAuditApproved
	}

	fields := make(map[string]interface{}, 3)
	if cmd.Protocol != nil {
		fields["protocol"] = *cmd.Protocol
	}
	if cmd.Description != nil {
		fields["description"] = *cmd.Description
	}
	if cmd.Summary != nil {
		fields["summary"] = *cmd.Summary
	}

	updated, err := s.repo.Update(ctx, id, userID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Audit updated",
		zap.String("audit_id", id.String()),
		zap.String("user_id", userID.String()))

	return updated, nil
}

// DeleteAudit removes a record unless it has been approved.
func (s *AuditService) DeleteAudit(ctx context.Context, id, userID uuid.UUID) error {
	audit, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if audit.IsApproved() {
		return apperrors.ErrAuditApproved
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("Audit deleted",
		zap.String("audit_id", id.String()),
		zap.String("user_id", userID.String()))

	return nil
}

// ApproveAudit performs the one-way pending → approved transition. The
// record must carry a non-blank summary; approved is terminal.
func (s *AuditService) ApproveAudit(ctx context.Context, id, userID uuid.UUID) (*model.Audit, error) {
	audit, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if audit.IsApproved() {
		return nil, apperrors.ErrAlreadyApproved
	}
	if strings.TrimSpace(audit.Summary) == "" {
		return nil, apperrors.ErrMissingSummary
	}

	approved, err := s.repo.Approve(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Audit approved",
		zap.String("audit_id", id.String()),
		zap.String("user_id", userID.String()))

	return approved, nil
}

// parseSort validates an optional "[-]column" sort value against the
// allow-list. An empty value means created_at descending.
func parseSort(sort string) (repository.SortOrder, error) {
	if sort == "" {
		return repository.SortOrder{Column: defaultSortColumn, Descending: true}, nil
	}

	column := sort
	descending := false
	if strings.HasPrefix(sort, "-") {
		column = sort[1:]
		descending = true
	}

	if !allowedSortColumns[column] {
		return repository.SortOrder{}, &apperrors.InvalidSortColumnError{Column: column}
	}

	return repository.SortOrder{Column: column, Descending: descending}, nil
}
