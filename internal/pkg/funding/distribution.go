package funding

import (
	"fmt"

	"github.com/DavidKiarie/CircleFund/app/repository"
)

// MerchantShare is one merchant's cut of an economy's allocation.
type MerchantShare struct {
	MerchantID   uint   `json:"merchant_id"`
	MerchantName string `json:"merchant_name"`
	Address      string `json:"address"`
	Provider     string `json:"provider"`
	Amount       int64  `json:"amount"`
	Excluded     bool   `json:"excluded"`
	ExcludeNote  string `json:"exclude_note,omitempty"`
}

// EconomyBreakdown shows how one economy's allocation splits across its
// merchants for the period.
type EconomyBreakdown struct {
	EconomyID        uint            `json:"economy_id"`
	EconomyName      string          `json:"economy_name"`
	TotalFunding     int64           `json:"total_funding"`
	MerchantCount    int             `json:"merchant_count"`
	QualifiedCount   int             `json:"qualified_count"`
	PerMerchantShare int64           `json:"per_merchant_share"`
	Distributed      int64           `json:"distributed"`
	Unallocated      int64           `json:"unallocated"`
	Merchants        []MerchantShare `json:"merchants"`
}

// PaymentRecord is one ready-to-send merchant payment.
type PaymentRecord struct {
	MerchantID  uint   `json:"merchant_id"`
	EconomyID   uint   `json:"economy_id"`
	EconomyName string `json:"economy_name"`
	Address     string `json:"address"`
	Provider    string `json:"provider"`
	Amount      int64  `json:"amount"`
}

// DistributionResult is the merchant-level view of a period's funding.
// TotalDistributed + TotalUnallocated always equals TotalPool exactly:
// flooring remainders and the shares of excluded merchants are both counted
// as unallocated, never silently dropped.
type DistributionResult struct {
	TotalPool         int64              `json:"total_pool"`
	TotalDistributed  int64              `json:"total_distributed"`
	TotalUnallocated  int64              `json:"total_unallocated"`
	EconomyBreakdowns []EconomyBreakdown `json:"economy_breakdowns"`
	PaymentRecords    []PaymentRecord    `json:"payment_records"`
	Summary           string             `json:"summary"`
}

// Distributor splits economy allocations across merchants.
type Distributor struct {
	merchants repository.MerchantRepository
}

// NewDistributor creates a distributor from an injected merchant repository.
func NewDistributor(merchants repository.MerchantRepository) *Distributor {
	return &Distributor{merchants: merchants}
}

// DistributeToMerchants splits each allocation evenly across the distinct
// merchants featured in that economy's approved videos for the period. The
// per-merchant share is floored; merchants without a valid, verified payment
// address keep their would-be share, which is tallied into the unallocated
// total instead of being paid out. An economy with no qualifying merchants
// contributes its entire allocation to the unallocated total.
func (d *Distributor) DistributeToMerchants(period Period, allocations []Allocation) (*DistributionResult, error) {
	result := &DistributionResult{
		EconomyBreakdowns: make([]EconomyBreakdown, 0, len(allocations)),
		PaymentRecords:    []PaymentRecord{},
	}

	for _, alloc := range allocations {
		result.TotalPool += alloc.TotalFunding

		merchants, err := d.merchants.DistinctForEconomyPeriod(alloc.EconomyID, period.Key())
		if err != nil {
			return nil, fmt.Errorf("load merchants for economy %d: %w", alloc.EconomyID, err)
		}

		breakdown := EconomyBreakdown{
			EconomyID:     alloc.EconomyID,
			EconomyName:   alloc.EconomyName,
			TotalFunding:  alloc.TotalFunding,
			MerchantCount: len(merchants),
			Merchants:     make([]MerchantShare, 0, len(merchants)),
		}

		if len(merchants) > 0 {
			breakdown.PerMerchantShare = alloc.TotalFunding / int64(len(merchants)) // floor
		}

		for _, m := range merchants {
			share := MerchantShare{
				MerchantID:   m.ID,
				MerchantName: m.Name,
				Address:      m.PaymentAddress,
				Provider:     m.PaymentProvider,
				Amount:       breakdown.PerMerchantShare,
			}
			if !m.CanReceivePayment() {
				share.Excluded = true
				share.ExcludeNote = "no verified payment address"
				breakdown.Merchants = append(breakdown.Merchants, share)
				continue
			}

			breakdown.QualifiedCount++
			breakdown.Distributed += share.Amount
			breakdown.Merchants = append(breakdown.Merchants, share)
			result.PaymentRecords = append(result.PaymentRecords, PaymentRecord{
				MerchantID:  m.ID,
				EconomyID:   alloc.EconomyID,
				EconomyName: alloc.EconomyName,
				Address:     m.PaymentAddress,
				Provider:    m.PaymentProvider,
				Amount:      share.Amount,
			})
		}

		breakdown.Unallocated = alloc.TotalFunding - breakdown.Distributed
		result.TotalDistributed += breakdown.Distributed
		result.TotalUnallocated += breakdown.Unallocated
		result.EconomyBreakdowns = append(result.EconomyBreakdowns, breakdown)
	}

	result.Summary = fmt.Sprintf("%s: %d payments across %d economies, %d sats distributed, %d sats unallocated",
		period.String(), len(result.PaymentRecords), len(result.EconomyBreakdowns),
		result.TotalDistributed, result.TotalUnallocated)

	return result, nil
}
