package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
	SubmissionStatusFlagged  = "flagged"
)

// VideoSubmission is one proof-of-work video submitted by an economy.
// The status transitions exactly once on review (pending -> approved,
// rejected or flagged); afterwards the row is immutable except for admin
// corrections.
type VideoSubmission struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UUID            string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	EconomyID       uint           `gorm:"index;not null" json:"economy_id"`
	Economy         *Economy       `gorm:"foreignKey:EconomyID" json:"economy,omitempty"`
	VideoURL        string         `gorm:"type:varchar(2048);not null" json:"video_url" validate:"required,url,max=2048"`
	NormalizedHash  string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"` // sha256 of the normalized URL, global dedup key
	Title           string         `gorm:"type:varchar(255)" json:"title" validate:"max=255"`
	Status          string         `gorm:"type:varchar(20);default:'pending';index" json:"status" validate:"oneof=pending approved rejected flagged"`
	SubmissionMonth string         `gorm:"type:varchar(7);index;not null" json:"submission_month"` // "YYYY-MM"
	MerchantCount   int            `gorm:"default:0" json:"merchant_count"`
	ReviewedBy      *uint          `gorm:"index" json:"reviewed_by,omitempty"`
	Reviewer        *User          `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	AdminComments   string         `gorm:"type:text" json:"admin_comments"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the VideoSubmission model
func (VideoSubmission) TableName() string {
	return "video_submissions"
}

func (s *VideoSubmission) Validate() error {
	v := validator.New()

	return v.Struct(s)
}

// NewVideoSubmission builds a pending submission for the given economy.
func NewVideoSubmission(economyID uint, videoURL, normalizedHash, submissionMonth string) *VideoSubmission {
	return &VideoSubmission{
		UUID:            uuid.New().String(),
		EconomyID:       economyID,
		VideoURL:        videoURL,
		NormalizedHash:  normalizedHash,
		Status:          SubmissionStatusPending,
		SubmissionMonth: submissionMonth,
	}
}

// IsReviewed reports whether the submission already left the pending state.
func (s *VideoSubmission) IsReviewed() bool {
	return s.Status != SubmissionStatusPending
}
