package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/safatanc/promotion-core/internal/app/errors"
	"github.com/safatanc/promotion-core/internal/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const promotionEntity = "promotions"

type AuditService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewAuditService(db *gorm.DB, logger *logrus.Logger) *AuditService {
	return &AuditService{
		db:     db,
		logger: logger,
	}
}

// LogAudit creates an audit log entry for a committed change to a record
func (s *AuditService) LogAudit(entity string, recordID int64, action models.AuditAction, oldData, newData interface{}) error {
	oldDataJSON, err := marshalSnapshot(oldData)
	if err != nil {
		return fmt.Errorf("failed to marshal old data: %w", err)
	}
	newDataJSON, err := marshalSnapshot(newData)
	if err != nil {
		return fmt.Errorf("failed to marshal new data: %w", err)
	}

	auditLog := &models.AuditLog{
		Entity:    entity,
		RecordID:  recordID,
		Action:    action,
		OldData:   oldDataJSON,
		NewData:   newDataJSON,
		ChangedAt: time.Now(),
	}

	if err := s.db.Create(auditLog).Error; err != nil {
		return errors.NewStoreError(err, "Failed to create audit log")
	}

	return nil
}

// RecordPromotionChange writes an audit entry for a promotion. The change it
// describes is already committed, so a failure here is only logged.
func (s *AuditService) RecordPromotionChange(recordID int64, action models.AuditAction, before, after *models.Promotion) {
	var oldData, newData interface{}
	if before != nil {
		oldData = before.Serialize()
	}
	if after != nil {
		newData = after.Serialize()
	}

	if err := s.LogAudit(promotionEntity, recordID, action, oldData, newData); err != nil {
		s.logger.WithFields(logrus.Fields{
			"promotion_id": recordID,
			"action":       action,
		}).WithError(err).Error("failed to write audit log")
	}
}

// GetAuditLogs returns the audit trail of one promotion, oldest first
func (s *AuditService) GetAuditLogs(recordID int64) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	err := s.db.Where("entity = ? AND record_id = ?", promotionEntity, recordID).
		Order("changed_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, errors.NewStoreError(err, "Failed to get audit logs")
	}

	return logs, nil
}

func marshalSnapshot(data interface{}) (*string, error) {
	if data == nil {
		return nil, nil
	}
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	strJSON := string(jsonBytes)
	return &strJSON, nil
}
