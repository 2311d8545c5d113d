package audit

import (
	"context"
	"fmt"

	"epic-events-crm/db/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormSink stores entries in the audit_logs table.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Record(ctx context.Context, entry Entry) error {
	details, err := entry.detailsJSON()
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	row := models.AuditLog{
		Kind:      entry.Kind,
		SessionID: entry.SessionID,
		ActorID:   entry.ActorID,
		Username:  entry.Username,
		Action:    entry.Action,
		Details:   datatypes.JSON(details),
	}
	if !entry.At.IsZero() {
		row.CreatedAt = entry.At
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to store audit entry: %w", err)
	}
	return nil
}
