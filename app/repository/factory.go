package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetEconomyRepository returns the economy repository instance
func (f *Factory) GetEconomyRepository() EconomyRepository {
	return f.GetRepositories().Economy
}

// GetSubmissionRepository returns the video submission repository instance
func (f *Factory) GetSubmissionRepository() SubmissionRepository {
	return f.GetRepositories().Submission
}

// GetMerchantRepository returns the merchant repository instance
func (f *Factory) GetMerchantRepository() MerchantRepository {
	return f.GetRepositories().Merchant
}

// GetRankingRepository returns the monthly ranking repository instance
func (f *Factory) GetRankingRepository() RankingRepository {
	return f.GetRepositories().Ranking
}

// GetDisbursementRepository returns the disbursement ledger repository instance
func (f *Factory) GetDisbursementRepository() DisbursementRepository {
	return f.GetRepositories().Disbursement
}

// GetSettingRepository returns the setting repository instance
func (f *Factory) GetSettingRepository() SettingRepository {
	return f.GetRepositories().Setting
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
