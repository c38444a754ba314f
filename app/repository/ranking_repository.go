package repository

import (
	"github.com/DavidKiarie/CircleFund/app/models"
	"gorm.io/gorm"
)

// rankingRepository implements the RankingRepository interface
type rankingRepository struct {
	db *gorm.DB
}

// NewRankingRepository creates a new monthly ranking repository instance
func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &rankingRepository{db: db}
}

func (r *rankingRepository) ReplaceForPeriod(periodKey string, rankings []models.MonthlyRanking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ranking_month = ?", periodKey).Delete(&models.MonthlyRanking{}).Error; err != nil {
			return err
		}
		if len(rankings) == 0 {
			return nil
		}
		return tx.Create(&rankings).Error
	})
}

func (r *rankingRepository) GetForPeriod(periodKey string) ([]models.MonthlyRanking, error) {
	var rankings []models.MonthlyRanking
	err := r.db.Preload("Economy").
		Where("ranking_month = ?", periodKey).
		Order("overall_rank ASC").
		Find(&rankings).Error
	return rankings, err
}
