package repository

import (
	"time"

	"github.com/DavidKiarie/CircleFund/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByOAuth(provider, oauthID string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// EconomyRepository defines the interface for economy-related database operations
type EconomyRepository interface {
	Create(economy *models.Economy) error
	GetByID(id uint) (*models.Economy, error)
	GetBySlug(slug string) (*models.Economy, error)
	GetAll() ([]models.Economy, error)
	Update(economy *models.Economy) error
	Count() (int64, error)
	// IncrementFundingReceived adds the paid amount to the economy's
	// running total in a single UPDATE.
	IncrementFundingReceived(id uint, amountSats int64) error
	IncrementSubmittedCount(id uint) error
	IncrementApprovedCount(id uint) error
}

// EconomyPeriodStats is one economy's aggregated activity for a period,
// the raw input of the ranking engine.
type EconomyPeriodStats struct {
	EconomyID         uint
	EconomyName       string
	EconomyCreatedAt  time.Time
	ApprovedVideos    int
	DistinctMerchants int
	NewMerchants      int
}

// SubmissionRepository defines the interface for video submission operations
type SubmissionRepository interface {
	Create(submission *models.VideoSubmission) error
	GetByID(id uint) (*models.VideoSubmission, error)
	GetByUUID(uuid string) (*models.VideoSubmission, error)
	// GetByNormalizedHash is the single keyed read behind the duplicate
	// filter; returns gorm.ErrRecordNotFound when the hash is unseen.
	GetByNormalizedHash(hash string) (*models.VideoSubmission, error)
	Update(submission *models.VideoSubmission) error
	ListByStatus(status string, offset, limit int) ([]models.VideoSubmission, error)
	ListByEconomy(economyID uint, offset, limit int) ([]models.VideoSubmission, error)
	CountByStatus(status string) (int64, error)
	// PeriodEconomyStats aggregates approved-video, distinct-merchant and
	// new-merchant counts per economy for a "YYYY-MM" period.
	PeriodEconomyStats(periodKey string) ([]EconomyPeriodStats, error)
}

// MerchantRepository defines the interface for merchant-related operations
type MerchantRepository interface {
	Create(merchant *models.Merchant) error
	GetByID(id uint) (*models.Merchant, error)
	GetByEconomyID(economyID uint) ([]models.Merchant, error)
	Update(merchant *models.Merchant) error
	// HasPriorAppearance reports whether the merchant is already linked to
	// any video submission; used to fix IsNewMerchant at link time.
	HasPriorAppearance(merchantID uint) (bool, error)
	LinkToSubmission(link *models.VideoMerchant) error
	GetLinksForSubmission(submissionID uint) ([]models.VideoMerchant, error)
	// DistinctForEconomyPeriod returns the distinct merchants linked to the
	// economy's approved submissions in the given "YYYY-MM" period.
	DistinctForEconomyPeriod(economyID uint, periodKey string) ([]models.Merchant, error)
}

// RankingRepository defines the interface for monthly ranking persistence
type RankingRepository interface {
	// ReplaceForPeriod deletes any existing rows for the period and inserts
	// the new set in one transaction. Recalculation is idempotent and
	// total, never a merge.
	ReplaceForPeriod(periodKey string, rankings []models.MonthlyRanking) error
	GetForPeriod(periodKey string) ([]models.MonthlyRanking, error)
}

// DisbursementFilter narrows ledger queries; zero values mean "no filter".
type DisbursementFilter struct {
	FundingMonth int
	FundingYear  int
	Status       string
	EconomyID    uint
	Limit        int
	Offset       int
}

// DisbursementStats aggregates the ledger for the history/audit view.
type DisbursementStats struct {
	TotalAmount    int64 `json:"total_amount"`
	PaidAmount     int64 `json:"paid_amount"`
	CompletedCount int64 `json:"completed_count"`
	FailedCount    int64 `json:"failed_count"`
	PendingCount   int64 `json:"pending_count"`
}

// DisbursementRepository defines the interface for the disbursement ledger.
// The ledger is append-only per attempt; rows are created, then updated once
// with the attempt's outcome.
type DisbursementRepository interface {
	Create(disbursement *models.FundingDisbursement) error
	Update(disbursement *models.FundingDisbursement) error
	GetByID(id uint) (*models.FundingDisbursement, error)
	// GetCompleted returns the completed row for (economy, month, year) if
	// one exists; gorm.ErrRecordNotFound otherwise. This is the
	// double-disbursement pre-check consulted immediately before dispatch.
	GetCompleted(economyID uint, fundingMonth, fundingYear int) (*models.FundingDisbursement, error)
	List(filter DisbursementFilter) ([]models.FundingDisbursement, int64, error)
	Stats(filter DisbursementFilter) (*DisbursementStats, error)
}

// SettingRepository defines the interface for setting-related database operations
type SettingRepository interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// Repositories contains all repository instances
type Repositories struct {
	User         UserRepository
	Economy      EconomyRepository
	Submission   SubmissionRepository
	Merchant     MerchantRepository
	Ranking      RankingRepository
	Disbursement DisbursementRepository
	Setting      SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Economy:      NewEconomyRepository(db),
		Submission:   NewSubmissionRepository(db),
		Merchant:     NewMerchantRepository(db),
		Ranking:      NewRankingRepository(db),
		Disbursement: NewDisbursementRepository(db),
		Setting:      NewSettingRepository(db),
	}
}
