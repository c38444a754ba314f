package models

import (
	"time"
)

// VideoMerchant links a video submission to a merchant appearing in it.
// IsNewMerchant is fixed at link time: true iff the merchant had no prior
// appearance in any approved video.
type VideoMerchant struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	VideoSubmissionID uint             `gorm:"index:ux_video_merchant,unique,priority:1;not null" json:"video_submission_id"`
	VideoSubmission   *VideoSubmission `gorm:"foreignKey:VideoSubmissionID" json:"video_submission,omitempty"`
	MerchantID        uint             `gorm:"index:ux_video_merchant,unique,priority:2;not null" json:"merchant_id"`
	Merchant          *Merchant        `gorm:"foreignKey:MerchantID" json:"merchant,omitempty"`
	IsNewMerchant     bool             `gorm:"default:false" json:"is_new_merchant"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the VideoMerchant model
func (VideoMerchant) TableName() string {
	return "video_merchants"
}
