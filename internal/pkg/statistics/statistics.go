package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/internal/pkg/cache"
	"github.com/DavidKiarie/CircleFund/internal/pkg/database"
)

const (
	CacheKeySubmissionsTotal = "statistics:submissions:total"
	CacheKeySubmissionsDaily = "statistics:submissions:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyEconomies        = "statistics:economies:total"
	CacheKeySatsDisbursed    = "statistics:disbursed:total"
	CacheExpiration          = 30 * time.Minute
)

// StatisticsData holds the aggregate counters shown on the dashboard.
type StatisticsData struct {
	TodaySubmissions int
	TotalSubmissions int
	TotalEconomies   int
	TotalSats        int64
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the stats cache is stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the stats cache when the interval has elapsed.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded call to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalSubmissions int64
	if err := db.Model(&models.VideoSubmission{}).Count(&totalSubmissions).Error; err != nil {
		log.Printf("Error counting total submissions: %v", err)
		return err
	}

	var todaySubmissions int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.VideoSubmission{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todaySubmissions).Error; err != nil {
		log.Printf("Error counting today's submissions: %v", err)
		return err
	}

	var totalEconomies int64
	if err := db.Model(&models.Economy{}).Count(&totalEconomies).Error; err != nil {
		log.Printf("Error counting economies: %v", err)
		return err
	}

	var totalSats int64
	if err := db.Model(&models.FundingDisbursement{}).
		Where("status = ?", models.DisbursementStatusCompleted).
		Select("COALESCE(SUM(amount_sats), 0)").
		Scan(&totalSats).Error; err != nil {
		log.Printf("Error summing disbursed sats: %v", err)
		return err
	}

	if err := cache.Set(CacheKeySubmissionsTotal, strconv.FormatInt(totalSubmissions, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total submissions: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeySubmissionsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todaySubmissions, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's submissions: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyEconomies, strconv.FormatInt(totalEconomies, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total economies: %v", err)
		return err
	}

	if err := cache.Set(CacheKeySatsDisbursed, strconv.FormatInt(totalSats, 10), CacheExpiration); err != nil {
		log.Printf("Error caching disbursed sats: %v", err)
		return err
	}

	return nil
}

// GetTotalSubmissions returns the total number of submissions from cache or database
func GetTotalSubmissions() int {
	val, err := cache.Get(CacheKeySubmissionsTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.VideoSubmission{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total submissions: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeySubmissionsTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total submissions: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodaySubmissions returns the number of submissions created today from cache or database
func GetTodaySubmissions() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeySubmissionsDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.VideoSubmission{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's submissions: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's submissions: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalEconomies returns the number of registered economies from cache or database
func GetTotalEconomies() int {
	val, err := cache.Get(CacheKeyEconomies)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Economy{}).Count(&count).Error; err != nil {
			log.Printf("Error counting economies: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyEconomies, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total economies: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalSatsDisbursed returns the total completed disbursement volume from cache or database
func GetTotalSatsDisbursed() int64 {
	val, err := cache.Get(CacheKeySatsDisbursed)
	if err != nil {
		var total int64
		db := database.GetDB()
		if err := db.Model(&models.FundingDisbursement{}).
			Where("status = ?", models.DisbursementStatusCompleted).
			Select("COALESCE(SUM(amount_sats), 0)").
			Scan(&total).Error; err != nil {
			log.Printf("Error summing disbursed sats: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeySatsDisbursed, strconv.FormatInt(total, 10), CacheExpiration); err != nil {
			log.Printf("Error caching disbursed sats: %v", err)
		}

		return total
	}

	total, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return total
}

// GetStatisticsData returns all statistics data as StatisticsData structure
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodaySubmissions: GetTodaySubmissions(),
		TotalSubmissions: GetTotalSubmissions(),
		TotalEconomies:   GetTotalEconomies(),
		TotalSats:        GetTotalSatsDisbursed(),
	}
}
