package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Merchant is a business registered under an economy. Appearance counters
// are incremented on each approval of a video the merchant is linked to.
type Merchant struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	EconomyID             uint           `gorm:"index;not null" json:"economy_id"`
	Economy               *Economy       `gorm:"foreignKey:EconomyID" json:"economy,omitempty"`
	Name                  string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	PaymentAddress        string         `gorm:"type:varchar(320);default:null" json:"payment_address" validate:"max=320"`
	PaymentProvider       string         `gorm:"type:varchar(50);default:null" json:"payment_provider" validate:"max=50"`
	AddressVerified       bool           `gorm:"default:false" json:"address_verified"`
	BTCMapVerified        bool           `gorm:"default:false" json:"btcmap_verified"`
	TimesAppearedInVideos int            `gorm:"default:0" json:"times_appeared_in_videos"`
	FirstAppearanceDate   *time.Time     `json:"first_appearance_date,omitempty"`
	LastAppearanceDate    *time.Time     `json:"last_appearance_date,omitempty"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Merchant model
func (Merchant) TableName() string {
	return "merchants"
}

func (m *Merchant) Validate() error {
	v := validator.New()

	return v.Struct(m)
}

// CanReceivePayment reports whether the merchant qualifies for the
// merchant-level funding split.
func (m *Merchant) CanReceivePayment() bool {
	return m.PaymentAddress != "" && m.PaymentProvider != "" && m.AddressVerified
}

// RecordAppearance updates the appearance bookkeeping for an approved video.
func (m *Merchant) RecordAppearance(at time.Time) {
	m.TimesAppearedInVideos++
	if m.FirstAppearanceDate == nil {
		m.FirstAppearanceDate = &at
	}
	m.LastAppearanceDate = &at
}
