package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/audit-service/internal/adapter/repository"
	domainRepo "github.com/wekeepgrowing/audit-service/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Audit domainRepo.AuditRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Audit: repository.NewAuditRepository(db, logger),
	}
}
