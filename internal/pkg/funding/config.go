package funding

import (
	"fmt"
	"strconv"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
)

// Default pool sizes in sats, used when no setting row exists yet.
const (
	DefaultBaseAmount           int64 = 5000
	DefaultRankBonusPool        int64 = 100000
	DefaultPerformanceBonusPool int64 = 50000
)

// Config carries the funding parameters for one calculation run. It is
// loaded once per run and stays immutable afterwards; every component takes
// it as an explicit argument instead of reading settings ad hoc.
type Config struct {
	BaseAmount              int64 `json:"base_amount"`
	RankBonusEnabled        bool  `json:"rank_bonus_enabled"`
	RankBonusPool           int64 `json:"rank_bonus_pool"`
	PerformanceBonusEnabled bool  `json:"performance_bonus_enabled"`
	PerformanceBonusPool    int64 `json:"performance_bonus_pool"`
	// TotalPool is an optional caller override used for reporting only;
	// the component pools above still drive the actual splits.
	TotalPool int64 `json:"total_pool,omitempty"`
}

// ComponentTotal is the sum of the configured component pools for n base
// recipients, the reference value for conservation checks.
func (c Config) ComponentTotal(n int) int64 {
	total := c.BaseAmount * int64(n)
	if c.RankBonusEnabled {
		total += c.RankBonusPool
	}
	if c.PerformanceBonusEnabled {
		total += c.PerformanceBonusPool
	}
	return total
}

// ReportedPool returns the pool to report: the caller override when present,
// otherwise the component total.
func (c Config) ReportedPool(n int) int64 {
	if c.TotalPool > 0 {
		return c.TotalPool
	}
	return c.ComponentTotal(n)
}

// LoadConfig reads the funding settings into an immutable Config value.
func LoadConfig(settings repository.SettingRepository) (Config, error) {
	cfg := Config{
		BaseAmount:              DefaultBaseAmount,
		RankBonusEnabled:        true,
		RankBonusPool:           DefaultRankBonusPool,
		PerformanceBonusEnabled: true,
		PerformanceBonusPool:    DefaultPerformanceBonusPool,
	}

	if v, err := settings.GetValue(models.SettingFundingBaseAmount); err != nil {
		return Config{}, fmt.Errorf("load funding config: %w", err)
	} else if v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid %s setting: %q", models.SettingFundingBaseAmount, v)
		}
		cfg.BaseAmount = n
	}

	if v, err := settings.GetValue(models.SettingRankBonusEnabled); err != nil {
		return Config{}, fmt.Errorf("load funding config: %w", err)
	} else if v != "" {
		cfg.RankBonusEnabled = v == "true"
	}

	if v, err := settings.GetValue(models.SettingRankBonusPool); err != nil {
		return Config{}, fmt.Errorf("load funding config: %w", err)
	} else if v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid %s setting: %q", models.SettingRankBonusPool, v)
		}
		cfg.RankBonusPool = n
	}

	if v, err := settings.GetValue(models.SettingPerformanceBonusEnabled); err != nil {
		return Config{}, fmt.Errorf("load funding config: %w", err)
	} else if v != "" {
		cfg.PerformanceBonusEnabled = v == "true"
	}

	if v, err := settings.GetValue(models.SettingPerformanceBonusPool); err != nil {
		return Config{}, fmt.Errorf("load funding config: %w", err)
	} else if v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid %s setting: %q", models.SettingPerformanceBonusPool, v)
		}
		cfg.PerformanceBonusPool = n
	}

	return cfg, nil
}
