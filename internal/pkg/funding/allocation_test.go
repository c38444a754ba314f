package funding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		BaseAmount:              5000,
		RankBonusEnabled:        true,
		RankBonusPool:           100000,
		PerformanceBonusEnabled: true,
		PerformanceBonusPool:    50000,
	}
}

func rankedThree() []RankedEconomy {
	return []RankedEconomy{
		{EconomyID: 1, EconomyName: "Bitcoin Beach", OverallRank: 1, NewMerchants: 2},
		{EconomyID: 2, EconomyName: "Bitcoin Ekasi", OverallRank: 2, NewMerchants: 1},
		{EconomyID: 3, EconomyName: "Bitcoin Lake", OverallRank: 3, NewMerchants: 0},
	}
}

func TestCalculateAllocationRankBonus(t *testing.T) {
	cfg := testConfig()
	cfg.PerformanceBonusEnabled = false

	result := CalculateAllocation(rankedThree(), cfg)

	assert.Len(t, result.Allocations, 3)

	// Ranks 1,2,3: sum of ranks is 6, so weights are 6,5,4 over a total of 15.
	assert.Equal(t, int64(100000*6/15), result.Allocations[0].RankBonus)
	assert.Equal(t, int64(100000*5/15), result.Allocations[1].RankBonus)
	assert.Equal(t, int64(100000*4/15), result.Allocations[2].RankBonus)

	// Floor division leaves 1 sat of the pool unassigned.
	var distributed int64
	for _, a := range result.Allocations {
		distributed += a.RankBonus
	}
	assert.Equal(t, int64(99999), distributed)
	assert.Equal(t, int64(1), result.UnallocatedBonus)
}

func TestCalculateAllocationRankBonusMonotonic(t *testing.T) {
	cfg := testConfig()
	result := CalculateAllocation(rankedThree(), cfg)

	for i := 1; i < len(result.Allocations); i++ {
		better := result.Allocations[i-1]
		worse := result.Allocations[i]
		if better.RankBonus < worse.RankBonus {
			t.Fatalf("rank %d bonus %d is below rank %d bonus %d",
				better.OverallRank, better.RankBonus, worse.OverallRank, worse.RankBonus)
		}
	}
}

func TestCalculateAllocationEqualRanksEqualBonus(t *testing.T) {
	ranked := []RankedEconomy{
		{EconomyID: 1, OverallRank: 1},
		{EconomyID: 2, OverallRank: 1},
		{EconomyID: 3, OverallRank: 3},
	}
	cfg := testConfig()
	cfg.PerformanceBonusEnabled = false

	result := CalculateAllocation(ranked, cfg)

	assert.Equal(t, result.Allocations[0].RankBonus, result.Allocations[1].RankBonus)
	assert.Greater(t, result.Allocations[0].RankBonus, result.Allocations[2].RankBonus)
}

func TestCalculateAllocationPerformanceBonus(t *testing.T) {
	cfg := testConfig()
	cfg.RankBonusEnabled = false

	result := CalculateAllocation(rankedThree(), cfg)

	// New merchants 2,1,0 over a total of 3.
	assert.Equal(t, int64(50000*2/3), result.Allocations[0].PerformanceBonus)
	assert.Equal(t, int64(50000*1/3), result.Allocations[1].PerformanceBonus)
	assert.Equal(t, int64(0), result.Allocations[2].PerformanceBonus)
	assert.Equal(t, int64(1), result.UnallocatedBonus)
}

func TestCalculateAllocationPerformanceBonusExactSplit(t *testing.T) {
	ranked := []RankedEconomy{
		{EconomyID: 1, OverallRank: 1, NewMerchants: 3},
		{EconomyID: 2, OverallRank: 2, NewMerchants: 0},
		{EconomyID: 3, OverallRank: 3, NewMerchants: 2},
	}
	cfg := testConfig()
	cfg.RankBonusEnabled = false

	result := CalculateAllocation(ranked, cfg)

	// 50000 over 3/5 and 2/5 divides without remainder.
	assert.Equal(t, int64(30000), result.Allocations[0].PerformanceBonus)
	assert.Equal(t, int64(0), result.Allocations[1].PerformanceBonus)
	assert.Equal(t, int64(20000), result.Allocations[2].PerformanceBonus)
	assert.Equal(t, int64(0), result.UnallocatedBonus)
}

func TestCalculateAllocationNoNewMerchants(t *testing.T) {
	ranked := []RankedEconomy{
		{EconomyID: 1, OverallRank: 1, NewMerchants: 0},
		{EconomyID: 2, OverallRank: 2, NewMerchants: 0},
	}
	cfg := testConfig()
	cfg.RankBonusEnabled = false

	result := CalculateAllocation(ranked, cfg)

	// The whole performance pool stays undistributed, never divided by zero.
	for _, a := range result.Allocations {
		assert.Equal(t, int64(0), a.PerformanceBonus)
	}
	assert.Equal(t, cfg.PerformanceBonusPool, result.UnallocatedBonus)
}

func TestCalculateAllocationConservation(t *testing.T) {
	cfg := testConfig()
	ranked := rankedThree()

	result := CalculateAllocation(ranked, cfg)

	var totalFunding int64
	for _, a := range result.Allocations {
		assert.Equal(t, a.BaseAmount+a.RankBonus+a.PerformanceBonus, a.TotalFunding)
		totalFunding += a.TotalFunding
	}

	// Allocated amounts plus the unallocated remainder must equal the
	// configured component pools exactly.
	assert.Equal(t, cfg.ComponentTotal(len(ranked)), totalFunding+result.UnallocatedBonus)
}

func TestCalculateAllocationBaseOnly(t *testing.T) {
	cfg := Config{BaseAmount: 5000}

	result := CalculateAllocation(rankedThree(), cfg)

	for _, a := range result.Allocations {
		assert.Equal(t, int64(5000), a.TotalFunding)
	}
	assert.Equal(t, int64(0), result.UnallocatedBonus)
	assert.Equal(t, int64(15000), result.TotalPool)
}

func TestCalculateAllocationEmptyRanking(t *testing.T) {
	result := CalculateAllocation(nil, testConfig())

	assert.Empty(t, result.Allocations)
	// With no base recipients the reported pool is just the bonus pools.
	assert.Equal(t, int64(150000), result.TotalPool)
	assert.Equal(t, int64(150000), result.UnallocatedBonus)
}

func TestCalculateAllocationTotalPoolOverride(t *testing.T) {
	cfg := testConfig()
	cfg.TotalPool = 999999

	result := CalculateAllocation(rankedThree(), cfg)

	assert.Equal(t, int64(999999), result.TotalPool)
	// The override is reporting only; component amounts are unchanged.
	assert.Equal(t, int64(5000), result.Allocations[0].BaseAmount)
}

func TestCalculateAllocationOrderedByRank(t *testing.T) {
	ranked := []RankedEconomy{
		{EconomyID: 3, OverallRank: 3},
		{EconomyID: 1, OverallRank: 1},
		{EconomyID: 2, OverallRank: 2},
	}

	result := CalculateAllocation(ranked, testConfig())

	for i, a := range result.Allocations {
		assert.Equal(t, i+1, a.OverallRank)
	}
}
