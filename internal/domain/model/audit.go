package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditStatus represents the lifecycle state of an audit record.
type AuditStatus string

const (
	// AuditStatusNew exists for wire compatibility with legacy rows.
	// Records are never created in this state anymore.
	AuditStatusNew AuditStatus = "new"

	AuditStatusPending  AuditStatus = "pending"
	AuditStatusApproved AuditStatus = "approved"
)

// Audit represents one audit protocol submission and its lifecycle.
type Audit struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	AuditOrderNumber string      `gorm:"type:varchar(20);not null" json:"audit_order_number"`
	Protocol         string      `gorm:"type:text;not null" json:"protocol"`
	Description      *string     `gorm:"type:text" json:"description"`
	Summary          string      `gorm:"type:text;not null;default:''" json:"summary"`
	Status           AuditStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Audit) TableName() string {
	return "audits"
}

// IsApproved reports whether the record has reached its terminal state.
func (a *Audit) IsApproved() bool {
	return a.Status == AuditStatusApproved
}
