package repository

import (
	"github.com/DavidKiarie/CircleFund/app/models"
	"gorm.io/gorm"
)

// submissionRepository implements the SubmissionRepository interface
type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new video submission repository instance
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *models.VideoSubmission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) GetByID(id uint) (*models.VideoSubmission, error) {
	var submission models.VideoSubmission
	err := r.db.Preload("Economy").First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) GetByUUID(uuid string) (*models.VideoSubmission, error) {
	var submission models.VideoSubmission
	err := r.db.Preload("Economy").Where("uuid = ?", uuid).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) GetByNormalizedHash(hash string) (*models.VideoSubmission, error) {
	var submission models.VideoSubmission
	err := r.db.Preload("Economy").Where("normalized_hash = ?", hash).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) Update(submission *models.VideoSubmission) error {
	return r.db.Save(submission).Error
}

func (r *submissionRepository) ListByStatus(status string, offset, limit int) ([]models.VideoSubmission, error) {
	var submissions []models.VideoSubmission
	err := r.db.Preload("Economy").
		Where("status = ?", status).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) ListByEconomy(economyID uint, offset, limit int) ([]models.VideoSubmission, error) {
	var submissions []models.VideoSubmission
	err := r.db.Where("economy_id = ?", economyID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.VideoSubmission{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// PeriodEconomyStats aggregates per-economy activity for one period in a
// single query: approved videos, distinct merchants appearing in them and
// merchants whose link was flagged new at link time.
func (r *submissionRepository) PeriodEconomyStats(periodKey string) ([]EconomyPeriodStats, error) {
	var stats []EconomyPeriodStats
	err := r.db.Model(&models.VideoSubmission{}).
		Select(`economies.id AS economy_id,
			economies.name AS economy_name,
			economies.created_at AS economy_created_at,
			COUNT(DISTINCT video_submissions.id) AS approved_videos,
			COUNT(DISTINCT video_merchants.merchant_id) AS distinct_merchants,
			COUNT(DISTINCT CASE WHEN video_merchants.is_new_merchant THEN video_merchants.merchant_id END) AS new_merchants`).
		Joins("JOIN economies ON economies.id = video_submissions.economy_id").
		Joins("LEFT JOIN video_merchants ON video_merchants.video_submission_id = video_submissions.id").
		Where("video_submissions.status = ? AND video_submissions.submission_month = ?",
			models.SubmissionStatusApproved, periodKey).
		Group("economies.id, economies.name, economies.created_at").
		Scan(&stats).Error
	return stats, err
}
