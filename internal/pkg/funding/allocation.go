package funding

import (
	"sort"
)

// Allocation is one economy's funding for a period, split into components.
// All amounts are integer sats, floored — never rounded up — so the sum of
// disbursed amounts can not exceed the configured pools.
type Allocation struct {
	EconomyID        uint   `json:"economy_id"`
	EconomyName      string `json:"economy_name"`
	OverallRank      int    `json:"overall_rank"`
	NewMerchants     int    `json:"new_merchants"`
	BaseAmount       int64  `json:"base_amount"`
	RankBonus        int64  `json:"rank_bonus"`
	PerformanceBonus int64  `json:"performance_bonus"`
	TotalFunding     int64  `json:"total_funding"`
}

// AllocationResult is the outcome of one allocation run.
type AllocationResult struct {
	TotalPool   int64        `json:"total_pool"`
	Allocations []Allocation `json:"allocations"`
	// UnallocatedBonus holds bonus sats that could not be distributed
	// (performance pool with zero new merchants, flooring remainders).
	// The amount is not rolled forward; redistribution is an operator
	// decision.
	UnallocatedBonus int64 `json:"unallocated_bonus"`
}

// CalculateAllocation turns a period's ranking into per-economy amounts.
//
// Every ranked economy (it had at least one approved video, or it would not
// be ranked) receives cfg.BaseAmount independent of rank. The rank bonus
// pool is split by inverse-rank weighting: weight = sumOfAllRanks - rank + 1,
// so rank 1 takes the largest share and equal ranks take equal shares. The
// performance bonus pool is split proportionally to new-merchant counts; if
// no economy brought a new merchant the pool stays undistributed.
func CalculateAllocation(ranked []RankedEconomy, cfg Config) AllocationResult {
	allocations := make([]Allocation, 0, len(ranked))
	for _, r := range ranked {
		allocations = append(allocations, Allocation{
			EconomyID:    r.EconomyID,
			EconomyName:  r.EconomyName,
			OverallRank:  r.OverallRank,
			NewMerchants: r.NewMerchants,
			BaseAmount:   cfg.BaseAmount,
		})
	}

	var distributed int64

	if cfg.RankBonusEnabled && cfg.RankBonusPool > 0 && len(allocations) > 0 {
		distributed += applyRankBonus(allocations, cfg.RankBonusPool)
	}
	if cfg.PerformanceBonusEnabled && cfg.PerformanceBonusPool > 0 {
		distributed += applyPerformanceBonus(allocations, cfg.PerformanceBonusPool)
	}

	for i := range allocations {
		a := &allocations[i]
		a.TotalFunding = a.BaseAmount + a.RankBonus + a.PerformanceBonus
	}

	sort.Slice(allocations, func(i, j int) bool {
		return allocations[i].OverallRank < allocations[j].OverallRank
	})

	var bonusPools int64
	if cfg.RankBonusEnabled {
		bonusPools += cfg.RankBonusPool
	}
	if cfg.PerformanceBonusEnabled {
		bonusPools += cfg.PerformanceBonusPool
	}

	return AllocationResult{
		TotalPool:        cfg.ReportedPool(len(allocations)),
		Allocations:      allocations,
		UnallocatedBonus: bonusPools - distributed,
	}
}

// applyRankBonus distributes the pool by inverse-rank weight and reports the
// sats actually assigned (the flooring remainder stays with the caller).
func applyRankBonus(allocations []Allocation, pool int64) int64 {
	var sumRanks int64
	for _, a := range allocations {
		sumRanks += int64(a.OverallRank)
	}

	var sumWeights int64
	for _, a := range allocations {
		sumWeights += sumRanks - int64(a.OverallRank) + 1
	}
	if sumWeights <= 0 {
		return 0
	}

	var distributed int64
	for i := range allocations {
		weight := sumRanks - int64(allocations[i].OverallRank) + 1
		share := pool * weight / sumWeights // floor division
		allocations[i].RankBonus = share
		distributed += share
	}
	return distributed
}

// applyPerformanceBonus distributes the pool proportionally to new-merchant
// counts. A zero total is defined to yield zero shares for everyone; the
// pool is left undistributed rather than divided by zero.
func applyPerformanceBonus(allocations []Allocation, pool int64) int64 {
	var totalNew int64
	for _, a := range allocations {
		totalNew += int64(a.NewMerchants)
	}
	if totalNew == 0 {
		return 0
	}

	var distributed int64
	for i := range allocations {
		share := pool * int64(allocations[i].NewMerchants) / totalNew // floor division
		allocations[i].PerformanceBonus = share
		distributed += share
	}
	return distributed
}
