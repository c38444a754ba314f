package models

import (
	"time"
)

// MonthlyRanking holds one economy's score components and resulting rank for
// a funding period. Rows are recomputed wholesale: saving a period deletes
// the existing rows and inserts the new set, never merges.
type MonthlyRanking struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	EconomyID         uint      `gorm:"index:ux_ranking_economy_month,unique,priority:1;not null" json:"economy_id"`
	Economy           *Economy  `gorm:"foreignKey:EconomyID" json:"economy,omitempty"`
	RankingMonth      string    `gorm:"type:varchar(7);index:ux_ranking_economy_month,unique,priority:2;not null" json:"ranking_month"` // "YYYY-MM"
	ApprovedVideos    int       `gorm:"default:0" json:"approved_videos"`
	DistinctMerchants int       `gorm:"default:0" json:"distinct_merchants"`
	NewMerchants      int       `gorm:"default:0" json:"new_merchants"`
	TotalScore        int       `gorm:"default:0" json:"total_score"`
	OverallRank       int       `gorm:"index;not null" json:"overall_rank"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the MonthlyRanking model
func (MonthlyRanking) TableName() string {
	return "monthly_rankings"
}
