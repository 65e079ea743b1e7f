package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateTaxRecord = "CREATE_TAX_RECORD"
	ActionUpdateTaxRecord = "UPDATE_TAX_RECORD"
	ActionDeleteTaxRecord = "DELETE_TAX_RECORD"
	ActionMarkTaxPaid     = "MARK_TAX_PAID"
	ActionPayTaxRecord    = "PAY_TAX_RECORD"
	ActionSubmitComplaint = "SUBMIT_COMPLAINT"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated process
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
