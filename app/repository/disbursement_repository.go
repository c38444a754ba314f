package repository

import (
	"github.com/DavidKiarie/CircleFund/app/models"
	"gorm.io/gorm"
)

// disbursementRepository implements the DisbursementRepository interface
type disbursementRepository struct {
	db *gorm.DB
}

// NewDisbursementRepository creates a new disbursement ledger repository instance
func NewDisbursementRepository(db *gorm.DB) DisbursementRepository {
	return &disbursementRepository{db: db}
}

func (r *disbursementRepository) Create(disbursement *models.FundingDisbursement) error {
	return r.db.Create(disbursement).Error
}

func (r *disbursementRepository) Update(disbursement *models.FundingDisbursement) error {
	return r.db.Save(disbursement).Error
}

func (r *disbursementRepository) GetByID(id uint) (*models.FundingDisbursement, error) {
	var disbursement models.FundingDisbursement
	err := r.db.Preload("Economy").First(&disbursement, id).Error
	if err != nil {
		return nil, err
	}
	return &disbursement, nil
}

func (r *disbursementRepository) GetCompleted(economyID uint, fundingMonth, fundingYear int) (*models.FundingDisbursement, error) {
	var disbursement models.FundingDisbursement
	err := r.db.Where(
		"economy_id = ? AND funding_month = ? AND funding_year = ? AND status = ?",
		economyID, fundingMonth, fundingYear, models.DisbursementStatusCompleted,
	).First(&disbursement).Error
	if err != nil {
		return nil, err
	}
	return &disbursement, nil
}

func (r *disbursementRepository) List(filter DisbursementFilter) ([]models.FundingDisbursement, int64, error) {
	query := r.applyFilter(r.db.Model(&models.FundingDisbursement{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var disbursements []models.FundingDisbursement
	err := query.Preload("Economy").Preload("Merchant").
		Order("created_at DESC").
		Offset(filter.Offset).Limit(limit).
		Find(&disbursements).Error
	return disbursements, total, err
}

func (r *disbursementRepository) Stats(filter DisbursementFilter) (*DisbursementStats, error) {
	var stats DisbursementStats
	err := r.applyFilter(r.db.Model(&models.FundingDisbursement{}), filter).
		Select(`COALESCE(SUM(amount_sats), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN amount_sats ELSE 0 END), 0) AS paid_amount,
			SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed_count,
			SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END) AS failed_count,
			SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END) AS pending_count`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *disbursementRepository) applyFilter(query *gorm.DB, filter DisbursementFilter) *gorm.DB {
	if filter.FundingMonth > 0 {
		query = query.Where("funding_month = ?", filter.FundingMonth)
	}
	if filter.FundingYear > 0 {
		query = query.Where("funding_year = ?", filter.FundingYear)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EconomyID > 0 {
		query = query.Where("economy_id = ?", filter.EconomyID)
	}
	return query
}
