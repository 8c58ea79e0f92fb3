package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionRedeem AuditAction = "REDEEM"
)

// AuditLog records one committed change to a promotion, with the serialized
// state before and after it.
type AuditLog struct {
	ID        uuid.UUID   `json:"id" gorm:"type:varchar(36);primaryKey"`
	Entity    string      `json:"entity" gorm:"type:varchar(50);not null;index:idx_audit_record"`
	RecordID  int64       `json:"record_id" gorm:"not null;index:idx_audit_record"`
	Action    AuditAction `json:"action" gorm:"type:varchar(20);not null"`
	OldData   *string     `json:"old_data" gorm:"type:text"`
	NewData   *string     `json:"new_data" gorm:"type:text"`
	ChangedAt time.Time   `json:"changed_at" gorm:"not null"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ChangedAt.IsZero() {
		a.ChangedAt = time.Now()
	}
	return nil
}
