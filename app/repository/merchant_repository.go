package repository

import (
	"github.com/DavidKiarie/CircleFund/app/models"
	"gorm.io/gorm"
)

// merchantRepository implements the MerchantRepository interface
type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository instance
func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) Create(merchant *models.Merchant) error {
	return r.db.Create(merchant).Error
}

func (r *merchantRepository) GetByID(id uint) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.First(&merchant, id).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *merchantRepository) GetByEconomyID(economyID uint) ([]models.Merchant, error) {
	var merchants []models.Merchant
	err := r.db.Where("economy_id = ?", economyID).Order("name ASC").Find(&merchants).Error
	return merchants, err
}

func (r *merchantRepository) Update(merchant *models.Merchant) error {
	return r.db.Save(merchant).Error
}

func (r *merchantRepository) HasPriorAppearance(merchantID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.VideoMerchant{}).Where("merchant_id = ?", merchantID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *merchantRepository) LinkToSubmission(link *models.VideoMerchant) error {
	return r.db.Create(link).Error
}

func (r *merchantRepository) GetLinksForSubmission(submissionID uint) ([]models.VideoMerchant, error) {
	var links []models.VideoMerchant
	err := r.db.Preload("Merchant").Where("video_submission_id = ?", submissionID).Find(&links).Error
	return links, err
}

// DistinctForEconomyPeriod joins merchants through video_merchants to the
// economy's approved submissions for the period.
func (r *merchantRepository) DistinctForEconomyPeriod(economyID uint, periodKey string) ([]models.Merchant, error) {
	var merchants []models.Merchant
	err := r.db.Model(&models.Merchant{}).
		Distinct("merchants.*").
		Joins("JOIN video_merchants ON video_merchants.merchant_id = merchants.id").
		Joins("JOIN video_submissions ON video_submissions.id = video_merchants.video_submission_id").
		Where("video_submissions.economy_id = ? AND video_submissions.status = ? AND video_submissions.submission_month = ?",
			economyID, models.SubmissionStatusApproved, periodKey).
		Order("merchants.id ASC").
		Find(&merchants).Error
	return merchants, err
}
