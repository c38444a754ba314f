package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	DisbursementStatusPending   = "pending"
	DisbursementStatusCompleted = "completed"
	DisbursementStatusFailed    = "failed"
)

const PaymentMethodLightning = "lightning"

// FundingDisbursement is one recorded payment attempt for an economy and
// funding period. The ledger is append-only per attempt: a failed attempt
// may be retried, creating a new row. At most one completed row may exist
// per (economy, funding month, funding year) pair; the dispatcher enforces
// this with a pre-check before every send.
type FundingDisbursement struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	EconomyID        uint           `gorm:"index:ix_disbursement_economy_period,priority:1;not null" json:"economy_id"`
	Economy          *Economy       `gorm:"foreignKey:EconomyID" json:"economy,omitempty"`
	MerchantID       *uint          `gorm:"index" json:"merchant_id,omitempty"` // set for merchant-level payouts
	Merchant         *Merchant      `gorm:"foreignKey:MerchantID" json:"merchant,omitempty"`
	AmountSats       int64          `gorm:"not null" json:"amount_sats"`
	FundingMonth     int            `gorm:"index:ix_disbursement_economy_period,priority:2;not null" json:"funding_month"`
	FundingYear      int            `gorm:"index:ix_disbursement_economy_period,priority:3;not null" json:"funding_year"`
	BatchID          string         `gorm:"type:varchar(36);index" json:"batch_id"`
	Status           string         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaymentMethod    string         `gorm:"type:varchar(30);default:'lightning'" json:"payment_method"`
	RecipientAddress string         `gorm:"type:varchar(320)" json:"recipient_address"`
	ErrorMessage     string         `gorm:"type:text" json:"error_message,omitempty"`
	PaymentHash      string         `gorm:"type:varchar(128);default:null" json:"payment_hash,omitempty"`
	InitiatedBy      uint           `gorm:"index" json:"initiated_by"`
	ProcessedAt      *time.Time     `json:"processed_at,omitempty"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the FundingDisbursement model
func (FundingDisbursement) TableName() string {
	return "funding_disbursements"
}

// FundingPeriodKey returns the "YYYY-MM" key of the disbursement's period.
func (d *FundingDisbursement) FundingPeriodKey() string {
	return fmt.Sprintf("%04d-%02d", d.FundingYear, d.FundingMonth)
}
