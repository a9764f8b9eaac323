package provider

import (
	"context"

	"github.com/wekeepgrowing/audit-service/internal/domain/entity"
)

// SummaryProvider drafts a structured summary from free-text protocol
// content by calling an external completion endpoint. One shot, no retry;
// nothing is persisted.
type SummaryProvider interface {
	GenerateSummary(ctx context.Context, protocol string) (*entity.ProtocolSummary, error)
}
