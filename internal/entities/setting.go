package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Scheduled integrity audit settings
	SettingKeyIntegrityAuditEnabled     = "integrity_audit_enabled"
	SettingKeyIntegrityAuditSchedule    = "integrity_audit_schedule"
	SettingKeyIntegrityAuditLastAt      = "integrity_audit_last_at"
	SettingKeyIntegrityAuditLastStatus  = "integrity_audit_last_status"
	SettingKeyIntegrityAuditLastMessage = "integrity_audit_last_message"
)
