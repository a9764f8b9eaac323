package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/audit-service/internal/domain/dto"
	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
	"github.com/wekeepgrowing/audit-service/internal/domain/model"
	"github.com/wekeepgrowing/audit-service/internal/domain/repository"
	"github.com/wekeepgrowing/audit-service/internal/usecase"
)

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, audit *model.Audit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockAuditRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Audit, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Audit), args.Error(1)
}

func (m *MockAuditRepository) List(ctx context.Context, userID uuid.UUID, filter repository.ListFilter) ([]model.Audit, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Audit), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) Update(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (*model.Audit, error) {
	args := m.Called(ctx, id, userID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Audit), args.Error(1)
}

func (m *MockAuditRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockAuditRepository) Approve(ctx context.Context, id, userID uuid.UUID) (*model.Audit, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Audit), args.Error(1)
}

func validProtocol() string {
	return strings.Repeat("p", 1500)
}

func TestAuditService_CreateAudit(t *testing.T) {
	logger := zap.NewNop()
	userID := uuid.New()
	ctx := context.Background()

	t.Run("creates a pending record with empty summary", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Audit) bool {
			return a.UserID == userID &&
				a.AuditOrderNumber == "ORD-001" &&
				a.Status == model.AuditStatusPending &&
				a.Summary == ""
		})).Return(nil)

		audit, err := service.CreateAudit(ctx, userID, &dto.CreateAuditCommand{
			AuditOrderNumber: "ORD-001",
			Protocol:         validProtocol(),
		})

		assert.NoError(t, err)
		assert.NotNil(t, audit)
		assert.Equal(t, model.AuditStatusPending, audit.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects order number shorter than 2 characters", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		audit, err := service.CreateAudit(ctx, userID, &dto.CreateAuditCommand{
			AuditOrderNumber: "X",
			Protocol:         validProtocol(),
		})

		assert.Nil(t, audit)
		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "Audit order number must be at least 2 characters long", verr.Fields["audit_order_number"])
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects order number longer than 20 characters", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		_, err := service.CreateAudit(ctx, userID, &dto.CreateAuditCommand{
			AuditOrderNumber: strings.Repeat("A", 21),
			Protocol:         validProtocol(),
		})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "Audit order number must not exceed 20 characters", verr.Fields["audit_order_number"])
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects protocol shorter than 1000 characters", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		_, err := service.CreateAudit(ctx, userID, &dto.CreateAuditCommand{
			AuditOrderNumber: "ORD-001",
			Protocol:         "too short",
		})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "Protocol must be at least 1000 characters long", verr.Fields["protocol"])
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects protocol longer than 10000 characters", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		_, err := service.CreateAudit(ctx, userID, &dto.CreateAuditCommand{
			AuditOrderNumber: "ORD-001",
			Protocol:         strings.Repeat("p", 10001),
		})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "Protocol must not exceed 10000 characters", verr.Fields["protocol"])
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("accepts boundary lengths", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		mockRepo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := service.CreateAudit(ctx, userID, &dto.CreateAuditCommand{
			AuditOrderNumber: "AB",
			Protocol:         strings.Repeat("p", 1000),
		})
		assert.NoError(t, err)

		_, err = service.CreateAudit(ctx, userID, &dto.CreateAuditCommand{
			AuditOrderNumber: strings.Repeat("A", 20),
			Protocol:         strings.Repeat("p", 10000),
		})
		assert.NoError(t, err)
	})

	t.Run("propagates duplicate order number error", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		mockRepo.On("Create", ctx, mock.Anything).Return(apperrors.ErrDuplicateOrderNumber)

		_, err := service.CreateAudit(ctx, userID, &dto.CreateAuditCommand{
			AuditOrderNumber: "ORD-001",
			Protocol:         validProtocol(),
		})

		assert.ErrorIs(t, err, apperrors.ErrDuplicateOrderNumber)
	})
}

func TestAuditService_ListAudits(t *testing.T) {
	logger := zap.NewNop()
	userID := uuid.New()
	ctx := context.Background()

	t.Run("applies defaults when no parameters are supplied", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		expected := repository.ListFilter{
			Sort:   repository.SortOrder{Column: "created_at", Descending: true},
			Limit:  10,
			Offset: 0,
		}
		mockRepo.On("List", ctx, userID, expected).Return([]model.Audit{}, int64(0), nil)

		result, err := service.ListAudits(ctx, userID, &dto.ListAuditsQuery{})

		assert.NoError(t, err)
		assert.NotNil(t, result.Audits)
		assert.Len(t, result.Audits, 0)
		assert.Equal(t, 1, result.Pagination.Page)
		assert.Equal(t, 10, result.Pagination.Limit)
		assert.Equal(t, int64(0), result.Pagination.Total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("clamps limit to the maximum page size", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		mockRepo.On("List", ctx, userID, mock.MatchedBy(func(f repository.ListFilter) bool {
			return f.Limit == 100
		})).Return([]model.Audit{}, int64(0), nil)

		query := &dto.ListAuditsQuery{}
		query.Pagination.Limit = 500

		result, err := service.ListAudits(ctx, userID, query)

		assert.NoError(t, err)
		assert.Equal(t, 100, result.Pagination.Limit)
	})

	t.Run("computes offset from page and limit", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		mockRepo.On("List", ctx, userID, mock.MatchedBy(func(f repository.ListFilter) bool {
			return f.Offset == 40 && f.Limit == 20
		})).Return([]model.Audit{}, int64(45), nil)

		query := &dto.ListAuditsQuery{}
		query.Pagination.Page = 3
		query.Pagination.Limit = 20

		result, err := service.ListAudits(ctx, userID, query)

		assert.NoError(t, err)
		assert.Equal(t, int64(45), result.Pagination.Total)
	})

	t.Run("rejects unknown sort column without touching the repository", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		_, err := service.ListAudits(ctx, userID, &dto.ListAuditsQuery{Sort: "protocol"})

		var serr *apperrors.InvalidSortColumnError
		assert.ErrorAs(t, err, &serr)
		assert.Equal(t, "protocol", serr.Column)
		mockRepo.AssertNotCalled(t, "List")
	})

	t.Run("parses descending sort prefix", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		mockRepo.On("List", ctx, userID, mock.MatchedBy(func(f repository.ListFilter) bool {
			return f.Sort.Column == "audit_order_number" && f.Sort.Descending
		})).Return([]model.Audit{}, int64(0), nil)

		_, err := service.ListAudits(ctx, userID, &dto.ListAuditsQuery{Sort: "-audit_order_number"})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a bare dash as an unknown column", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		_, err := service.ListAudits(ctx, userID, &dto.ListAuditsQuery{Sort: "-"})

		var serr *apperrors.InvalidSortColumnError
		assert.ErrorAs(t, err, &serr)
	})

	t.Run("rejects negative pagination values", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		query := &dto.ListAuditsQuery{}
		query.Pagination.Page = -1

		_, err := service.ListAudits(ctx, userID, query)

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		mockRepo.AssertNotCalled(t, "List")
	})

	t.Run("passes the filter text through unchanged", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		mockRepo.On("List", ctx, userID, mock.MatchedBy(func(f repository.ListFilter) bool {
			return f.Filter == "ORD"
		})).Return([]model.Audit{{AuditOrderNumber: "ORD-001"}}, int64(1), nil)

		result, err := service.ListAudits(ctx, userID, &dto.ListAuditsQuery{Filter: "ORD"})

		assert.NoError(t, err)
		assert.Len(t, result.Audits, 1)
	})
}

func TestAuditService_UpdateAudit(t *testing.T) {
	logger := zap.NewNop()
	userID := uuid.New()
	auditID := uuid.New()
	ctx := context.Background()

	protocol := validProtocol()

	t.Run("updates only the supplied fields", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		existing := &model.Audit{ID: auditID, UserID: userID, Status: model.AuditStatusPending}
		summary := "generated summary"

		mockRepo.On("GetByID", ctx, auditID, userID).Return(existing, nil)
		mockRepo.On("Update", ctx, auditID, userID, map[string]interface{}{
			"summary": summary,
		}).Return(&model.Audit{ID: auditID, Summary: summary}, nil)

		updated, err := service.UpdateAudit(ctx, auditID, userID, &dto.UpdateAuditCommand{
			Summary: &summary,
		})

		assert.NoError(t, err)
		assert.Equal(t, summary, updated.Summary)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects an empty update", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		_, err := service.UpdateAudit(ctx, auditID, userID, &dto.UpdateAuditCommand{})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		mockRepo.AssertNotCalled(t, "GetByID")
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("rejects updating an approved record", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		approved := &model.Audit{ID: auditID, UserID: userID, Status: model.AuditStatusApproved}
		mockRepo.On("GetByID", ctx, auditID, userID).Return(approved, nil)

		_, err := service.UpdateAudit(ctx, auditID, userID, &dto.UpdateAuditCommand{
			Protocol: &protocol,
		})

		assert.ErrorIs(t, err, apperrors.ErrAuditApproved)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("validates protocol bounds on update", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		short := "too short"
		_, err := service.UpdateAudit(ctx, auditID, userID, &dto.UpdateAuditCommand{
			Protocol: &short,
		})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "Protocol must be at least 1000 characters long", verr.Fields["protocol"])
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("returns not found from the repository", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, auditID, userID).Return(nil, apperrors.ErrAuditNotFound)

		_, err := service.UpdateAudit(ctx, auditID, userID, &dto.UpdateAuditCommand{
			Protocol: &protocol,
		})

		assert.ErrorIs(t, err, apperrors.ErrAuditNotFound)
	})
}

func TestAuditService_DeleteAudit(t *testing.T) {
	logger := zap.NewNop()
	userID := uuid.New()
	auditID := uuid.New()
	ctx := context.Background()

	t.Run("deletes a pending record", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		pending := &model.Audit{ID: auditID, UserID: userID, Status: model.AuditStatusPending}
		mockRepo.On("GetByID", ctx, auditID, userID).Return(pending, nil)
		mockRepo.On("Delete", ctx, auditID, userID).Return(nil)

		err := service.DeleteAudit(ctx, auditID, userID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects deleting an approved record", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		approved := &model.Audit{ID: auditID, UserID: userID, Status: model.AuditStatusApproved}
		mockRepo.On("GetByID", ctx, auditID, userID).Return(approved, nil)

		err := service.DeleteAudit(ctx, auditID, userID)

		assert.ErrorIs(t, err, apperrors.ErrAuditApproved)
		mockRepo.AssertNotCalled(t, "Delete")
	})
}

func TestAuditService_ApproveAudit(t *testing.T) {
	logger := zap.NewNop()
	userID := uuid.New()
	auditID := uuid.New()
	ctx := context.Background()

	t.Run("approves a pending record with a summary", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		pending := &model.Audit{ID: auditID, UserID: userID, Status: model.AuditStatusPending, Summary: "done"}
		approved := &model.Audit{ID: auditID, UserID: userID, Status: model.AuditStatusApproved, Summary: "done"}

		mockRepo.On("GetByID", ctx, auditID, userID).Return(pending, nil)
		mockRepo.On("Approve", ctx, auditID, userID).Return(approved, nil)

		result, err := service.ApproveAudit(ctx, auditID, userID)

		assert.NoError(t, err)
		assert.Equal(t, model.AuditStatusApproved, result.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects approval without a summary", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		pending := &model.Audit{ID: auditID, UserID: userID, Status: model.AuditStatusPending, Summary: "   "}
		mockRepo.On("GetByID", ctx, auditID, userID).Return(pending, nil)

		_, err := service.ApproveAudit(ctx, auditID, userID)

		assert.ErrorIs(t, err, apperrors.ErrMissingSummary)
		mockRepo.AssertNotCalled(t, "Approve")
	})

	t.Run("rejects approving an already approved record", func(t *testing.T) {
		mockRepo := new(MockAuditRepository)
		service := usecase.NewAuditService(mockRepo, logger)

		approved := &model.Audit{ID: auditID, UserID: userID, Status: model.AuditStatusApproved, Summary: "done"}
		mockRepo.On("GetByID", ctx, auditID, userID).Return(approved, nil)

		_, err := service.ApproveAudit(ctx, auditID, userID)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)
		mockRepo.AssertNotCalled(t, "Approve")
	})
}
