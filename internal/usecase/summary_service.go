package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/audit-service/internal/domain/dto"
	"github.com/wekeepgrowing/audit-service/internal/domain/entity"
	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
	"github.com/wekeepgrowing/audit-service/internal/domain/provider"
)

// SummaryService drafts an audit summary from protocol text via the
// external completion provider. The generated summary is returned to the
// caller, never persisted here.
type SummaryService struct {
	provider provider.SummaryProvider
	logger   *zap.Logger
}

// NewSummaryService creates a new summary service
func NewSummaryService(p provider.SummaryProvider, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		provider: p,
		logger:   logger,
	}
}

// GenerateSummary validates the input and performs the one-shot completion
// call. Failures are surfaced as-is; the user retries manually.
func (s *SummaryService) GenerateSummary(ctx context.Context, cmd *dto.GenerateSummaryCommand) (*entity.ProtocolSummary, error) {
	if strings.TrimSpace(cmd.Protocol) == "" {
		return nil, apperrors.NewValidationError("protocol", "Protocol is required")
	}

	summary, err := s.provider.GenerateSummary(ctx, cmd.Protocol)
	if err != nil {
		s.logger.Error("Summary generation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Summary generated",
		zap.Int("protocol_length", len(cmd.Protocol)),
		zap.Int("key_findings", len(summary.KeyFindings)),
		zap.Int("recommendations", len(summary.Recommendations)))

	return summary, nil
}
