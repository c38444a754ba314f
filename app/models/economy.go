package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Economy represents a registered Bitcoin circular economy organization.
// Economies are never hard-deleted during a funding cycle; running totals
// are maintained by the review and disbursement flows.
type Economy struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	Name                 string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Slug                 string         `gorm:"uniqueIndex;type:varchar(200);not null" json:"slug" validate:"required,min=2,max=200"`
	Country              string         `gorm:"type:varchar(100)" json:"country" validate:"max=100"`
	Description          string         `gorm:"type:text" json:"description" validate:"max=2000"`
	LightningAddress     string         `gorm:"type:varchar(320);default:null" json:"lightning_address" validate:"max=320"`
	PaymentProvider      string         `gorm:"type:varchar(50);default:null" json:"payment_provider" validate:"max=50"`
	TotalVideosSubmitted int            `gorm:"default:0" json:"total_videos_submitted"`
	TotalVideosApproved  int            `gorm:"default:0" json:"total_videos_approved"`
	TotalFundingReceived int64          `gorm:"default:0" json:"total_funding_received"` // sats
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Economy model
func (Economy) TableName() string {
	return "economies"
}

func (e *Economy) Validate() error {
	v := validator.New()

	return v.Struct(e)
}

// HasPayoutAddress reports whether the economy can receive Lightning payouts.
func (e *Economy) HasPayoutAddress() bool {
	return e.LightningAddress != "" && e.PaymentProvider != ""
}
