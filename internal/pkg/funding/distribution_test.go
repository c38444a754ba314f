package funding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
)

type stubMerchants struct {
	repository.MerchantRepository
	byEconomy map[uint][]models.Merchant
}

func (s *stubMerchants) DistinctForEconomyPeriod(economyID uint, periodKey string) ([]models.Merchant, error) {
	return s.byEconomy[economyID], nil
}

func verifiedMerchant(id uint, name, address string) models.Merchant {
	return models.Merchant{
		ID:              id,
		Name:            name,
		PaymentAddress:  address,
		PaymentProvider: "blink",
		AddressVerified: true,
	}
}

func TestDistributeToMerchantsEvenSplit(t *testing.T) {
	merchants := &stubMerchants{byEconomy: map[uint][]models.Merchant{
		1: {
			verifiedMerchant(10, "Pupuseria Maria", "maria@blink.sv"),
			verifiedMerchant(11, "Tienda Lopez", "lopez@blink.sv"),
			verifiedMerchant(12, "Cafe Sol", "sol@blink.sv"),
		},
	}}
	d := NewDistributor(merchants)

	result, err := d.DistributeToMerchants(mustPeriod(t, 2025, 6), []Allocation{
		{EconomyID: 1, EconomyName: "Bitcoin Beach", TotalFunding: 10000},
	})
	require.NoError(t, err)
	require.Len(t, result.EconomyBreakdowns, 1)

	b := result.EconomyBreakdowns[0]
	assert.Equal(t, int64(3333), b.PerMerchantShare)
	assert.Equal(t, 3, b.QualifiedCount)
	assert.Equal(t, int64(9999), b.Distributed)
	assert.Equal(t, int64(1), b.Unallocated)

	require.Len(t, result.PaymentRecords, 3)
	for _, rec := range result.PaymentRecords {
		assert.Equal(t, int64(3333), rec.Amount)
		assert.Equal(t, uint(1), rec.EconomyID)
	}
}

func TestDistributeToMerchantsExcludesUnverified(t *testing.T) {
	merchants := &stubMerchants{byEconomy: map[uint][]models.Merchant{
		1: {
			verifiedMerchant(10, "Pupuseria Maria", "maria@blink.sv"),
			{ID: 11, Name: "No Address"},
			{ID: 12, Name: "Unverified", PaymentAddress: "x@blink.sv", PaymentProvider: "blink"},
		},
	}}
	d := NewDistributor(merchants)

	result, err := d.DistributeToMerchants(mustPeriod(t, 2025, 6), []Allocation{
		{EconomyID: 1, TotalFunding: 9000},
	})
	require.NoError(t, err)

	b := result.EconomyBreakdowns[0]
	// Share is computed over all three merchants; only one qualifies.
	assert.Equal(t, int64(3000), b.PerMerchantShare)
	assert.Equal(t, 1, b.QualifiedCount)
	assert.Equal(t, int64(3000), b.Distributed)
	assert.Equal(t, int64(6000), b.Unallocated)
	assert.Len(t, result.PaymentRecords, 1)

	var excluded int
	for _, m := range b.Merchants {
		if m.Excluded {
			excluded++
			assert.Equal(t, "no verified payment address", m.ExcludeNote)
		}
	}
	assert.Equal(t, 2, excluded)
}

func TestDistributeToMerchantsNoMerchants(t *testing.T) {
	d := NewDistributor(&stubMerchants{byEconomy: map[uint][]models.Merchant{}})

	result, err := d.DistributeToMerchants(mustPeriod(t, 2025, 6), []Allocation{
		{EconomyID: 1, TotalFunding: 5000},
	})
	require.NoError(t, err)

	b := result.EconomyBreakdowns[0]
	assert.Equal(t, 0, b.MerchantCount)
	assert.Equal(t, int64(0), b.Distributed)
	assert.Equal(t, int64(5000), b.Unallocated)
	assert.Empty(t, result.PaymentRecords)
}

func TestDistributeToMerchantsConservation(t *testing.T) {
	merchants := &stubMerchants{byEconomy: map[uint][]models.Merchant{
		1: {
			verifiedMerchant(10, "A", "a@blink.sv"),
			verifiedMerchant(11, "B", "b@blink.sv"),
			{ID: 12, Name: "C"},
		},
		2: {
			verifiedMerchant(20, "D", "d@walletofsatoshi.com"),
		},
	}}
	d := NewDistributor(merchants)

	result, err := d.DistributeToMerchants(mustPeriod(t, 2025, 6), []Allocation{
		{EconomyID: 1, TotalFunding: 10001},
		{EconomyID: 2, TotalFunding: 7777},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(17778), result.TotalPool)
	assert.Equal(t, result.TotalPool, result.TotalDistributed+result.TotalUnallocated)
}
