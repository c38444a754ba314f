package models

import (
	"time"
)

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer, float
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Funding configuration keys. The funding core never reads these directly:
// they are loaded once per calculation run into a funding.Config value and
// threaded explicitly through every component call.
const (
	SettingFundingBaseAmount       = "funding_base_amount"
	SettingRankBonusEnabled        = "funding_rank_bonus_enabled"
	SettingRankBonusPool           = "funding_rank_bonus_pool"
	SettingPerformanceBonusEnabled = "funding_performance_bonus_enabled"
	SettingPerformanceBonusPool    = "funding_performance_bonus_pool"
)
