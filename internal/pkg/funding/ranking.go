package funding

import (
	"fmt"
	"sort"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
)

// Score weights. A composite score rewards raw output (approved videos),
// breadth (distinct merchants featured) and growth (merchants appearing for
// the first time). Changing these changes every rank, so they live here as
// named constants rather than settings rows.
const (
	WeightApprovedVideos    = 10
	WeightDistinctMerchants = 5
	WeightNewMerchants      = 15
)

// RankedEconomy is one row of a computed ranking, ordered best-first.
type RankedEconomy struct {
	EconomyID         uint   `json:"economy_id"`
	EconomyName       string `json:"economy_name"`
	ApprovedVideos    int    `json:"approved_videos"`
	DistinctMerchants int    `json:"distinct_merchants"`
	NewMerchants      int    `json:"new_merchants"`
	TotalScore        int    `json:"total_score"`
	OverallRank       int    `json:"overall_rank"`
}

// RankingService computes and persists monthly rankings.
type RankingService struct {
	submissions repository.SubmissionRepository
	rankings    repository.RankingRepository
}

// NewRankingService creates a ranking service from injected repositories.
func NewRankingService(submissions repository.SubmissionRepository, rankings repository.RankingRepository) *RankingService {
	return &RankingService{submissions: submissions, rankings: rankings}
}

// CalculateRankings scores every economy with approved videos in the period
// and ranks them by descending score. Ties are broken by earlier economy
// creation time, then by lower economy ID, so repeated runs on unchanged
// data always produce the same ranking.
func (s *RankingService) CalculateRankings(period Period) ([]RankedEconomy, error) {
	stats, err := s.submissions.PeriodEconomyStats(period.Key())
	if err != nil {
		return nil, fmt.Errorf("aggregate period stats: %w", err)
	}

	ranked := make([]RankedEconomy, 0, len(stats))
	for _, st := range stats {
		ranked = append(ranked, RankedEconomy{
			EconomyID:         st.EconomyID,
			EconomyName:       st.EconomyName,
			ApprovedVideos:    st.ApprovedVideos,
			DistinctMerchants: st.DistinctMerchants,
			NewMerchants:      st.NewMerchants,
			TotalScore: st.ApprovedVideos*WeightApprovedVideos +
				st.DistinctMerchants*WeightDistinctMerchants +
				st.NewMerchants*WeightNewMerchants,
		})
	}

	// Stable order: score desc, then economy age asc, then ID asc.
	createdAt := make(map[uint]int64, len(stats))
	for _, st := range stats {
		createdAt[st.EconomyID] = st.EconomyCreatedAt.UnixNano()
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		if createdAt[ranked[i].EconomyID] != createdAt[ranked[j].EconomyID] {
			return createdAt[ranked[i].EconomyID] < createdAt[ranked[j].EconomyID]
		}
		return ranked[i].EconomyID < ranked[j].EconomyID
	})

	for i := range ranked {
		ranked[i].OverallRank = i + 1
	}

	return ranked, nil
}

// SaveRankings overwrites any existing ranking rows for the period.
func (s *RankingService) SaveRankings(period Period, ranked []RankedEconomy) error {
	rows := make([]models.MonthlyRanking, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, models.MonthlyRanking{
			EconomyID:         r.EconomyID,
			RankingMonth:      period.Key(),
			ApprovedVideos:    r.ApprovedVideos,
			DistinctMerchants: r.DistinctMerchants,
			NewMerchants:      r.NewMerchants,
			TotalScore:        r.TotalScore,
			OverallRank:       r.OverallRank,
		})
	}
	return s.rankings.ReplaceForPeriod(period.Key(), rows)
}

// GetSavedRankings returns the previously persisted ranking for a period,
// best rank first; an empty slice if none was computed yet.
func (s *RankingService) GetSavedRankings(period Period) ([]models.MonthlyRanking, error) {
	return s.rankings.GetForPeriod(period.Key())
}
