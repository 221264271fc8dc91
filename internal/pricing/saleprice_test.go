package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSalePriceMargin(t *testing.T) {
	res := ComputeSalePrice(900000, SalePriceParams{MarginPct: 10})
	assert.InDelta(t, 1000000, res.BaseWithMargin, 1e-6)
	assert.InDelta(t, 1000000, res.SalePriceMonthly, 1e-6)
}

func TestComputeSalePriceMarginAtOrAbove100FallsBackToCost(t *testing.T) {
	for _, pct := range []float64{100, 150} {
		res := ComputeSalePrice(500000, SalePriceParams{MarginPct: pct})
		assert.InDelta(t, 500000, res.BaseWithMargin, 1e-9)
	}
}

func TestComputeSalePriceMonotonicInMargin(t *testing.T) {
	prev := 0.0
	for pct := 0; pct <= 99; pct++ {
		res := ComputeSalePrice(750000, SalePriceParams{MarginPct: float64(pct)})
		assert.Greater(t, res.SalePriceMonthly, prev-1e-9, "marginPct=%d", pct)
		prev = res.SalePriceMonthly
	}
}

func TestComputeSalePriceFinancialSurcharge(t *testing.T) {
	res := ComputeSalePrice(900000, SalePriceParams{
		MarginPct:        10,
		SalePriceBase:    1000000,
		FinancialEnabled: true,
		FinancialRatePct: 2,
	})
	assert.InDelta(t, 20000, res.MonthlyFinancial, 1e-6)
	assert.InDelta(t, 1020000, res.SalePriceMonthly, 1e-6)
}

func TestComputeSalePricePolicySurcharge(t *testing.T) {
	res := ComputeSalePrice(900000, SalePriceParams{
		MarginPct:            10,
		SalePriceBase:        1000000,
		PolicyEnabled:        true,
		PolicyRatePct:        1,
		PolicyContractMonths: 12,
		PolicyContractPct:    100,
	})
	// 1,000,000 * 12 * 1.00 * 0.01 / 12
	assert.InDelta(t, 10000, res.MonthlyPolicy, 1e-6)
	assert.InDelta(t, 1010000, res.SalePriceMonthly, 1e-6)
}

func TestComputeSalePriceSurchargesDisabledByFlags(t *testing.T) {
	res := ComputeSalePrice(900000, SalePriceParams{
		MarginPct:            10,
		SalePriceBase:        1000000,
		FinancialRatePct:     2,
		PolicyRatePct:        1,
		PolicyContractMonths: 12,
		PolicyContractPct:    100,
	})
	assert.Zero(t, res.MonthlyFinancial)
	assert.Zero(t, res.MonthlyPolicy)
}

func TestComputeSalePriceSuggestsRoundedBase(t *testing.T) {
	// no explicit base: the suggestion is the marked-up cost rounded
	// up to the next 100,000
	res := ComputeSalePrice(910000, SalePriceParams{MarginPct: 0, FinancialEnabled: true, FinancialRatePct: 1})
	assert.InDelta(t, 1000000, res.SalePriceBase, 1e-9)
	assert.InDelta(t, 10000, res.MonthlyFinancial, 1e-6)
}

func TestRoundUpToNice(t *testing.T) {
	tests := []struct {
		value    float64
		expected float64
	}{
		{-100, 0},
		{0, 0},
		{1, 100000},
		{99999, 100000},
		{100000, 100000},
		{100001, 200000},
		{912345, 1000000},
		{1000000, 1000000},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, RoundUpToNice(tt.value), 1e-9, "value=%v", tt.value)
	}
}
