package model

import (
	"time"

	"github.com/google/uuid"
)

// Complaint status constants
const (
	ComplaintStatusSubmitted  = "submitted"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusRejected   = "rejected"
)

// Complaint type constants
const (
	ComplaintTypeStreetLight = "Street Light Issue"
	ComplaintTypeWaterSupply = "Water Supply Problem"
	ComplaintTypeGarbage     = "Garbage Collection"
	ComplaintTypeRoad        = "Road Condition"
	ComplaintTypeDrainage    = "Drainage Issue"
	ComplaintTypeTax         = "Tax Related"
	ComplaintTypeOther       = "Other"
)

// Complaint is a citizen-submitted grievance. UserName/UserEmail/UserPhone
// are a deliberate snapshot of what the complainant stated at submission
// time; they are never re-joined to the live profile.
type Complaint struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ComplaintID   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"complaint_id"` // human-shareable tracking code
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName      string    `gorm:"type:varchar(255);not null" json:"user_name"`
	UserEmail     string    `gorm:"type:varchar(255);not null" json:"user_email"`
	UserPhone     string    `gorm:"type:varchar(20)" json:"user_phone"`
	ComplaintType string    `gorm:"type:varchar(50);not null" json:"complaint_type"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Location      *string   `gorm:"type:varchar(255)" json:"location,omitempty"`
	Status        string    `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
