package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRecord status constants
const (
	TaxStatusPending = "pending"
	TaxStatusPaid    = "paid"
	TaxStatusOverdue = "overdue" // derived at read time, never stored
)

// Municipal tax type constants
const (
	TaxTypeProperty       = "Property Tax"
	TaxTypeTradeLicense   = "Trade License"
	TaxTypeAdvertisement  = "Advertisement Tax"
	TaxTypeWater          = "Water Tax"
	TaxTypeSewerage       = "Sewerage Tax"
	TaxTypeMobileTowerFee = "Mobile Tower Fee"
)

// TaxRecord represents one billable obligation assigned to a citizen.
// Invariant: Status == paid exactly when PaidDate is set.
type TaxRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID" json:"-"`
	PropertyID      string          `gorm:"type:varchar(100);not null;index" json:"property_id"`
	PropertyAddress *string         `gorm:"type:text" json:"property_address,omitempty"`
	TaxType         string          `gorm:"type:varchar(50);not null;index" json:"tax_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	DueDate         time.Time       `gorm:"type:date;not null" json:"due_date"`
	FinancialYear   string          `gorm:"type:varchar(20);not null;index" json:"financial_year"` // e.g. "2024-25", free text
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidDate        *time.Time      `gorm:"type:date" json:"paid_date,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
