package repository

import (
	"github.com/DavidKiarie/CircleFund/app/models"
	"gorm.io/gorm"
)

// economyRepository implements the EconomyRepository interface
type economyRepository struct {
	db *gorm.DB
}

// NewEconomyRepository creates a new economy repository instance
func NewEconomyRepository(db *gorm.DB) EconomyRepository {
	return &economyRepository{db: db}
}

func (r *economyRepository) Create(economy *models.Economy) error {
	return r.db.Create(economy).Error
}

func (r *economyRepository) GetByID(id uint) (*models.Economy, error) {
	var economy models.Economy
	err := r.db.First(&economy, id).Error
	if err != nil {
		return nil, err
	}
	return &economy, nil
}

func (r *economyRepository) GetBySlug(slug string) (*models.Economy, error) {
	var economy models.Economy
	err := r.db.Where("slug = ?", slug).First(&economy).Error
	if err != nil {
		return nil, err
	}
	return &economy, nil
}

func (r *economyRepository) GetAll() ([]models.Economy, error) {
	var economies []models.Economy
	err := r.db.Order("name ASC").Find(&economies).Error
	return economies, err
}

func (r *economyRepository) Update(economy *models.Economy) error {
	return r.db.Save(economy).Error
}

func (r *economyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Economy{}).Count(&count).Error
	return count, err
}

func (r *economyRepository) IncrementFundingReceived(id uint, amountSats int64) error {
	return r.db.Model(&models.Economy{}).
		Where("id = ?", id).
		UpdateColumn("total_funding_received", gorm.Expr("total_funding_received + ?", amountSats)).Error
}

func (r *economyRepository) IncrementSubmittedCount(id uint) error {
	return r.db.Model(&models.Economy{}).
		Where("id = ?", id).
		UpdateColumn("total_videos_submitted", gorm.Expr("total_videos_submitted + 1")).Error
}

func (r *economyRepository) IncrementApprovedCount(id uint) error {
	return r.db.Model(&models.Economy{}).
		Where("id = ?", id).
		UpdateColumn("total_videos_approved", gorm.Expr("total_videos_approved + 1")).Error
}
