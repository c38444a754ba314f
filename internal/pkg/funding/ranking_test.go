package funding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
)

// stubSubmissions serves canned period stats; unused interface methods panic.
type stubSubmissions struct {
	repository.SubmissionRepository
	stats []repository.EconomyPeriodStats
	err   error
}

func (s *stubSubmissions) PeriodEconomyStats(periodKey string) ([]repository.EconomyPeriodStats, error) {
	return s.stats, s.err
}

type stubRankings struct {
	repository.RankingRepository
	replaced map[string][]models.MonthlyRanking
}

func (s *stubRankings) ReplaceForPeriod(periodKey string, rankings []models.MonthlyRanking) error {
	if s.replaced == nil {
		s.replaced = make(map[string][]models.MonthlyRanking)
	}
	s.replaced[periodKey] = rankings
	return nil
}

func (s *stubRankings) GetForPeriod(periodKey string) ([]models.MonthlyRanking, error) {
	return s.replaced[periodKey], nil
}

func mustPeriod(t *testing.T, year, month int) Period {
	t.Helper()
	p, err := NewPeriod(year, month)
	require.NoError(t, err)
	return p
}

func TestCalculateRankingsScoring(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	subs := &stubSubmissions{stats: []repository.EconomyPeriodStats{
		{EconomyID: 1, EconomyName: "Bitcoin Beach", EconomyCreatedAt: base, ApprovedVideos: 4, DistinctMerchants: 6, NewMerchants: 2},
		{EconomyID: 2, EconomyName: "Bitcoin Ekasi", EconomyCreatedAt: base, ApprovedVideos: 10, DistinctMerchants: 2, NewMerchants: 0},
		{EconomyID: 3, EconomyName: "Bitcoin Lake", EconomyCreatedAt: base, ApprovedVideos: 1, DistinctMerchants: 1, NewMerchants: 1},
	}}

	svc := NewRankingService(subs, &stubRankings{})
	ranked, err := svc.CalculateRankings(mustPeriod(t, 2025, 6))
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// Scores: Ekasi 10*10+2*5 = 110, Beach 4*10+6*5+2*15 = 100, Lake 10+5+15 = 30.
	assert.Equal(t, uint(2), ranked[0].EconomyID)
	assert.Equal(t, 110, ranked[0].TotalScore)
	assert.Equal(t, uint(1), ranked[1].EconomyID)
	assert.Equal(t, 100, ranked[1].TotalScore)
	assert.Equal(t, uint(3), ranked[2].EconomyID)
	assert.Equal(t, 30, ranked[2].TotalScore)

	for i, r := range ranked {
		assert.Equal(t, i+1, r.OverallRank)
	}
}

func TestCalculateRankingsTieBreaking(t *testing.T) {
	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	subs := &stubSubmissions{stats: []repository.EconomyPeriodStats{
		{EconomyID: 5, EconomyName: "Newer", EconomyCreatedAt: newer, ApprovedVideos: 3},
		{EconomyID: 7, EconomyName: "Older", EconomyCreatedAt: older, ApprovedVideos: 3},
		{EconomyID: 2, EconomyName: "Same Age", EconomyCreatedAt: newer, ApprovedVideos: 3},
	}}

	svc := NewRankingService(subs, &stubRankings{})
	ranked, err := svc.CalculateRankings(mustPeriod(t, 2025, 6))
	require.NoError(t, err)

	// All tied on score: older economy first, then lower ID among same-age.
	assert.Equal(t, uint(7), ranked[0].EconomyID)
	assert.Equal(t, uint(2), ranked[1].EconomyID)
	assert.Equal(t, uint(5), ranked[2].EconomyID)
}

func TestCalculateRankingsDeterministic(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	subs := &stubSubmissions{stats: []repository.EconomyPeriodStats{
		{EconomyID: 1, EconomyCreatedAt: base, ApprovedVideos: 2, NewMerchants: 1},
		{EconomyID: 2, EconomyCreatedAt: base, ApprovedVideos: 5},
		{EconomyID: 3, EconomyCreatedAt: base, DistinctMerchants: 4},
	}}
	svc := NewRankingService(subs, &stubRankings{})
	period := mustPeriod(t, 2025, 6)

	first, err := svc.CalculateRankings(period)
	require.NoError(t, err)
	second, err := svc.CalculateRankings(period)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSaveRankingsReplacesPeriod(t *testing.T) {
	rankings := &stubRankings{}
	svc := NewRankingService(&stubSubmissions{}, rankings)
	period := mustPeriod(t, 2025, 6)

	ranked := []RankedEconomy{
		{EconomyID: 1, EconomyName: "Bitcoin Beach", ApprovedVideos: 4, TotalScore: 100, OverallRank: 1},
		{EconomyID: 2, EconomyName: "Bitcoin Ekasi", ApprovedVideos: 2, TotalScore: 50, OverallRank: 2},
	}
	require.NoError(t, svc.SaveRankings(period, ranked))

	saved, err := svc.GetSavedRankings(period)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "2025-06", saved[0].RankingMonth)
	assert.Equal(t, uint(1), saved[0].EconomyID)
	assert.Equal(t, 1, saved[0].OverallRank)

	// Saving again fully replaces the previous set.
	require.NoError(t, svc.SaveRankings(period, ranked[:1]))
	saved, err = svc.GetSavedRankings(period)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}
