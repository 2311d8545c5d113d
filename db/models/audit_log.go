package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditKind string

const (
	AuditUnauthorizedAccess AuditKind = "unauthorized_access"
	AuditUnexpectedError    AuditKind = "unexpected_error"
	AuditLoginFailed        AuditKind = "login_failed"
)

// AuditLog records security relevant activity of the CLI sessions.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Kind      AuditKind      `gorm:"type:varchar(30);not null;index" json:"kind"`
	SessionID string         `gorm:"type:varchar(36);index" json:"session_id"`
	ActorID   *uint          `gorm:"index" json:"actor_id"`
	Username  string         `gorm:"type:varchar(150)" json:"username"`
	Action    string         `gorm:"type:varchar(100)" json:"action"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
